package baccarattable

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/weedbox/baccarattable/payout"
)

const logSeparator = "------------------------------"

func formatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

func modeStartedLine(mode payout.Mode) string {
	return "=== " + strings.ToUpper(mode.DisplayName()) + " STARTED ==="
}

func winnerLine(outcome RoundOutcome) string {
	line := "WINNER: " + outcome.Winner.DisplayName()
	if outcome.SpecialTrigger {
		line += " (Special Rule Triggered)"
	}
	return line
}

func shoePassedLine(banker string) string {
	return "--- SHOE PASSED TO " + banker + " ---"
}
