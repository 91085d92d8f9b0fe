package payout

import (
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

type baseRule struct {
	mode   Mode
	params Params
}

func (r baseRule) Mode() Mode {
	return r.mode
}

func (r baseRule) Params() Params {
	return r.params
}

func (r baseRule) WaivesBankerCommission() bool {
	return true
}

func (r baseRule) TriggerName() string {
	return ""
}

func (r baseRule) playerWin(trigger bool) Resolution {
	return win(one)
}

/*
resolve 共用的判定流程
  - 和局: 押和按 TiePayout 賠付，其餘押注退回 (push)
  - 押中: 交給各模式的 bankerWin / playerWin
  - 沒押中: 輸掉本金
*/
func (r baseRule) resolve(side Side, winner Side, trigger bool, bankerWin func(bool) Resolution, playerWin func(bool) Resolution) Resolution {
	if winner == Side_Tie {
		if side == Side_Tie {
			return win(r.params.TiePayout)
		}
		return push("Tie")
	}

	if side != winner {
		return loss()
	}

	if side == Side_Player {
		return playerWin(trigger)
	}

	return bankerWin(trigger)
}

// commissionRule covers Punto Banco and Chemin de Fer: banker side wins pay
// 1:1 less commission.
type commissionRule struct {
	baseRule
}

func (r *commissionRule) Resolve(side Side, winner Side, trigger bool) Resolution {
	return r.resolve(side, winner, trigger, r.bankerWin, r.playerWin)
}

func (r *commissionRule) WaivesBankerCommission() bool {
	return false
}

func (r *commissionRule) bankerWin(bool) Resolution {
	return win(one.Sub(r.params.CommissionRate))
}

type super6Rule struct {
	baseRule
}

func (r *super6Rule) Resolve(side Side, winner Side, trigger bool) Resolution {
	return r.resolve(side, winner, trigger, r.bankerWin, r.playerWin)
}

func (r *super6Rule) TriggerName() string {
	return "Banker 6"
}

func (r *super6Rule) bankerWin(trigger bool) Resolution {
	if trigger {
		return win(r.params.SpecialPayout)
	}
	return win(one)
}

type ezBaccaratRule struct {
	baseRule
}

func (r *ezBaccaratRule) Resolve(side Side, winner Side, trigger bool) Resolution {
	return r.resolve(side, winner, trigger, r.bankerWin, r.playerWin)
}

func (r *ezBaccaratRule) TriggerName() string {
	return "Dragon 7"
}

func (r *ezBaccaratRule) bankerWin(trigger bool) Resolution {
	if trigger {
		return push(r.TriggerName())
	}
	return win(one)
}

type dragon7Rule struct {
	baseRule
}

func (r *dragon7Rule) Resolve(side Side, winner Side, trigger bool) Resolution {
	return r.resolve(side, winner, trigger, r.bankerWin, r.playerWin)
}

func (r *dragon7Rule) TriggerName() string {
	return "Dragon 7"
}

func (r *dragon7Rule) bankerWin(trigger bool) Resolution {
	if trigger {
		return win(r.params.SpecialPayout)
	}
	return win(one)
}

type panda8Rule struct {
	baseRule
}

func (r *panda8Rule) Resolve(side Side, winner Side, trigger bool) Resolution {
	return r.resolve(side, winner, trigger, r.bankerWin, r.playerWin)
}

func (r *panda8Rule) TriggerName() string {
	return "Panda 8"
}

func (r *panda8Rule) bankerWin(bool) Resolution {
	return win(one)
}

func (r *panda8Rule) playerWin(trigger bool) Resolution {
	if trigger {
		return win(r.params.SpecialPayout)
	}
	return win(one)
}

func win(multiplier decimal.Decimal) Resolution {
	return Resolution{Kind: Result_Win, Multiplier: multiplier}
}

func push(reason string) Resolution {
	return Resolution{Kind: Result_Push, Multiplier: decimal.Zero, Reason: reason}
}

func loss() Resolution {
	return Resolution{Kind: Result_Loss, Multiplier: decimal.Zero}
}
