package baccarattable

import (
	"github.com/shopspring/decimal"
)

type punterBet struct {
	PlayerID string
	Amount   decimal.Decimal
}

/*
AutoFixBets 依莊家上限自動修正下注
  - 只計算莊家以外、有下注的閒家 (依入座順序)
  - 超出上限的部分從最後入座的閒家開始往前扣，直到不再超出
  - 回傳新的下注表，不修改 bets 與玩家餘額
*/
func (t *Table) AutoFixBets(bets Bets, bankLimit decimal.Decimal) Bets {
	punterBets := make([]punterBet, 0, len(bets))
	totalWagered := decimal.Zero
	for _, playerID := range t.Punters() {
		bet, exist := bets[playerID]
		if !exist {
			continue
		}

		punterBets = append(punterBets, punterBet{PlayerID: playerID, Amount: bet.Amount})
		totalWagered = totalWagered.Add(bet.Amount)
	}

	fixed := bets.Clone()

	excess := totalWagered.Sub(bankLimit)
	if !excess.IsPositive() {
		return fixed
	}

	for i := len(punterBets) - 1; i >= 0; i-- {
		if !excess.IsPositive() {
			break
		}

		pb := punterBets[i]
		deduct := decimal.Min(pb.Amount, excess)
		newAmount := pb.Amount.Sub(deduct)
		if newAmount.IsNegative() {
			newAmount = decimal.Zero
		}

		bet := fixed[pb.PlayerID]
		bet.Amount = newAmount
		fixed[pb.PlayerID] = bet

		excess = excess.Sub(deduct)
	}

	return fixed
}

// ExposureOf sums the wagers the banker has to cover.
func (t *Table) ExposureOf(bets Bets) decimal.Decimal {
	return t.coveredBets(bets).Total()
}

// coveredBets keeps the positive wagers of seated punters.
func (t *Table) coveredBets(bets Bets) Bets {
	covered := make(Bets, len(bets))
	for _, playerID := range t.Punters() {
		bet, exist := bets[playerID]
		if !exist || !bet.Amount.IsPositive() {
			continue
		}
		covered[playerID] = bet
	}
	return covered
}
