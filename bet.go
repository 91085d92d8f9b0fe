package baccarattable

import (
	"github.com/shopspring/decimal"
	"github.com/weedbox/baccarattable/payout"
)

type Bet struct {
	Side   payout.Side     `json:"side"`
	Amount decimal.Decimal `json:"amount"`
}

// Bets maps player id to the player's wager for the current round.
type Bets map[string]Bet

type RoundOutcome struct {
	Winner         payout.Side `json:"winner"`
	SpecialTrigger bool        `json:"special_trigger"` // Banker 6, Dragon 7 or Panda 8 depending on the mode
}

func (bets Bets) Clone() Bets {
	cloned := make(Bets, len(bets))
	for playerID, bet := range bets {
		cloned[playerID] = bet
	}
	return cloned
}

func (bets Bets) Total() decimal.Decimal {
	total := decimal.Zero
	for _, bet := range bets {
		total = total.Add(bet.Amount)
	}
	return total
}
