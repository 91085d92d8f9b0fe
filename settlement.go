package baccarattable

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/weedbox/baccarattable/chips"
	"github.com/weedbox/baccarattable/payout"
)

type PlayerOutcome struct {
	PlayerID string            `json:"player_id"`
	Side     payout.Side       `json:"side"`
	Amount   decimal.Decimal   `json:"amount"` // 下注金額
	Result   payout.ResultKind `json:"result"` // win, push, loss
	Profit   decimal.Decimal   `json:"profit"` // 餘額變化 (輸為負值)
	Payout   decimal.Decimal   `json:"payout"` // 贏時退還本金 + 獲利
	Reason   string            `json:"reason"` // push 原因
	Line     string            `json:"line"`   // 顯示用文字
}

type RoundResult struct {
	GameCount         int              `json:"game_count"`
	Winner            payout.Side      `json:"winner"`
	SpecialTrigger    bool             `json:"special_trigger"`
	Banker            string           `json:"banker"`              // 本局莊家，賭場坐莊為 House
	Outcomes          []*PlayerOutcome `json:"outcomes"`            // 閒家結果 (依入座順序)
	Lines             []string         `json:"lines"`               // 莊家結果在前，其後為閒家
	BankerGross       decimal.Decimal  `json:"banker_gross"`        // 莊家毛利 (輸或賭場坐莊為 0)
	BankerNet         decimal.Decimal  `json:"banker_net"`          // 莊家淨輸贏
	BankerCommission  decimal.Decimal  `json:"banker_commission"`   // 莊家抽水
	BankLimit         decimal.Decimal  `json:"bank_limit"`          // 結算後莊家上限
	BankLimitIncrease decimal.Decimal  `json:"bank_limit_increase"` // 本局補上的上限
	BankerPassed      bool             `json:"banker_passed"`       // 閒贏換莊
	NextBanker        string           `json:"next_banker"`
}

/*
SettleRound 結算本局
  - 莊家自己的下注與非正數下注不計
  - 玩家莊家時，閒家輸贏反向累計到莊家 (零和)
  - 莊家贏錢時抽水，特殊玩法 (Super 6, EZ, Dragon 7, Panda 8) 免抽水
  - 所有餘額變化先計算並檢查守恆，最後才一次寫入
*/
func (t *Table) SettleRound(bets Bets, outcome RoundOutcome) (*RoundResult, error) {
	if !outcome.Winner.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrTableInvalidOutcome, outcome.Winner)
	}

	rule := t.Rule()
	if rule == nil {
		return nil, ErrTableConfiguration
	}

	for playerID := range bets {
		if t.FindPlayerIdx(playerID) == UnsetValue {
			return nil, fmt.Errorf("%w: %s", ErrTablePlayerNotFound, playerID)
		}
	}

	banker := t.CurrentBanker()
	hasPlayerBanker := t.HasPlayerBanker()

	result := &RoundResult{
		GameCount:         t.State.GameCount,
		Winner:            outcome.Winner,
		SpecialTrigger:    outcome.SpecialTrigger,
		Banker:            banker,
		Outcomes:          make([]*PlayerOutcome, 0, len(bets)),
		Lines:             make([]string, 0, len(bets)+1),
		BankerGross:       decimal.Zero,
		BankerNet:         decimal.Zero,
		BankerCommission:  decimal.Zero,
		BankLimit:         t.State.BankLimit,
		BankLimitIncrease: decimal.Zero,
		NextBanker:        banker,
	}

	deltas := make(map[string]decimal.Decimal)
	bankerPnl := decimal.Zero

	covered := t.coveredBets(bets)
	for _, playerID := range t.Punters() {
		bet, exist := covered[playerID]
		if !exist {
			continue
		}

		res := rule.Resolve(bet.Side, outcome.Winner, outcome.SpecialTrigger)
		po := &PlayerOutcome{
			PlayerID: playerID,
			Side:     bet.Side,
			Amount:   bet.Amount,
			Result:   res.Kind,
			Profit:   res.Profit(bet.Amount),
			Payout:   decimal.Zero,
			Reason:   res.Reason,
		}
		if po.Result == payout.Result_Win {
			po.Payout = po.Profit.Add(bet.Amount)
		}
		po.Line = formatPlayerOutcome(po, outcome.Winner)

		deltas[playerID] = po.Profit
		if hasPlayerBanker {
			bankerPnl = bankerPnl.Sub(po.Profit)
		}

		result.Outcomes = append(result.Outcomes, po)
		result.Lines = append(result.Lines, po.Line)
	}

	if hasPlayerBanker {
		var bankerLine string
		switch {
		case bankerPnl.IsPositive():
			commission := decimal.Zero
			if !rule.WaivesBankerCommission() {
				commission = bankerPnl.Mul(t.Meta.Rules.CommissionRate)
			}
			result.BankerGross = bankerPnl
			result.BankerCommission = commission
			result.BankerNet = bankerPnl.Sub(commission)
			bankerLine = fmt.Sprintf("BANKER (%s): WON (+%s) [Gross: %s - Comm: %s]", banker, formatMoney(result.BankerNet), formatMoney(bankerPnl), formatMoney(commission))
		case bankerPnl.IsNegative():
			result.BankerNet = bankerPnl
			bankerLine = fmt.Sprintf("BANKER (%s): LOST (-%s)", banker, formatMoney(bankerPnl.Abs()))
		default:
			bankerLine = fmt.Sprintf("BANKER (%s): EVEN", banker)
		}

		deltas[banker] = result.BankerNet
		result.Lines = append([]string{bankerLine}, result.Lines...)

		if err := checkConservation(deltas, result.BankerCommission); err != nil {
			return nil, err
		}
	}

	for playerID, delta := range deltas {
		player := t.FindPlayer(playerID)
		player.Balance = player.Balance.Add(delta)
	}

	return result, nil
}

// checkConservation: with a player banker money only moves between seats,
// except for the commission taken from the banker.
func checkConservation(deltas map[string]decimal.Decimal, commission decimal.Decimal) error {
	sum := commission
	for _, delta := range deltas {
		sum = sum.Add(delta)
	}
	if !sum.IsZero() {
		return fmt.Errorf("%w: off by %s", ErrTableSettlementImbalance, sum.String())
	}
	return nil
}

func formatPlayerOutcome(po *PlayerOutcome, winner payout.Side) string {
	var text string
	switch po.Result {
	case payout.Result_Win:
		if winner == payout.Side_Tie {
			text = fmt.Sprintf("WON Tie (+%s)", formatMoney(po.Profit))
		} else {
			text = fmt.Sprintf("WON (+%s)", formatMoney(po.Profit))
		}
	case payout.Result_Push:
		text = fmt.Sprintf("PUSH (%s)", po.Reason)
	default:
		text = fmt.Sprintf("LOST (-%s)", formatMoney(po.Amount))
	}

	line := fmt.Sprintf("%s: %s", po.PlayerID, text)
	if po.Payout.IsPositive() {
		line += fmt.Sprintf(" -> Pay: %s", chips.NewBreakdown(po.Payout).String())
	}
	return line
}
