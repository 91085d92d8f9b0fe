package testcases

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/thoas/go-funk"
	"github.com/weedbox/baccarattable"
)

func logJSON(t *testing.T, msg string, jsonPrinter func() (*string, error)) {
	json, _ := jsonPrinter()
	t.Logf("\n===== [%s] =====\n%s\n", msg, *json)
}

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func NewTableSetting(mode baccarattable.GameMode, buyIn string, playerIDs ...string) baccarattable.TableSetting {
	return baccarattable.TableSetting{
		Name:      string(mode) + " table",
		PlayerIDs: playerIDs,
		BuyIn:     money(buyIn),
		Rules:     baccarattable.NewDefaultTableRules(mode),
	}
}

func TotalBalance(table *baccarattable.Table) decimal.Decimal {
	total := decimal.Zero
	for _, player := range table.State.PlayerStates {
		total = total.Add(player.Balance)
	}
	return total
}

// AssertConservation checks that only commission left the table.
func AssertConservation(t *testing.T, table *baccarattable.Table, initial decimal.Decimal, results []*baccarattable.RoundResult) {
	commission := decimal.Zero
	for _, result := range results {
		commission = commission.Add(result.BankerCommission)
	}

	expected := initial.Sub(commission)
	assert.True(t, expected.Equal(TotalBalance(table)), "expected %s, got %s", expected.StringFixed(2), TotalBalance(table).StringFixed(2))
}

func BetAll(playerIDs []string, side baccarattable.Side, amount string) baccarattable.Bets {
	bets := make(baccarattable.Bets)
	funk.ForEach(playerIDs, func(playerID string) {
		bets[playerID] = baccarattable.Bet{Side: side, Amount: money(amount)}
	})
	return bets
}
