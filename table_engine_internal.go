package baccarattable

import (
	"fmt"
	"time"

	"github.com/thoas/go-funk"
	"github.com/weedbox/baccarattable/bet_collector"
	"github.com/weedbox/baccarattable/payout"
)

func (te *tableEngine) validateTable() error {
	if te.table == nil {
		return fmt.Errorf("%w: table is not created", ErrTableInvalidAction)
	}
	return nil
}

func (te *tableEngine) validateStatus(allowed ...TableStateStatus) error {
	if err := te.validateTable(); err != nil {
		return err
	}

	if !funk.Contains(allowed, te.table.State.Status) {
		return fmt.Errorf("%w: table is %s", ErrTableInvalidAction, te.table.State.Status)
	}

	return nil
}

func (te *tableEngine) validatePunter(playerID string) error {
	if te.table.FindPlayerIdx(playerID) == UnsetValue {
		return fmt.Errorf("%w: %s", ErrTablePlayerNotFound, playerID)
	}

	if te.table.IsBanker(playerID) {
		return fmt.Errorf("%w: %s", ErrTableBankerCannotBet, playerID)
	}

	return nil
}

func (te *tableEngine) validateBet(playerID string, bet Bet) error {
	if err := te.validatePunter(playerID); err != nil {
		return err
	}

	if !bet.Side.Valid() {
		return fmt.Errorf("%w: unknown side %q", ErrTableInvalidBet, bet.Side)
	}

	if bet.Amount.IsNegative() {
		return fmt.Errorf("%w: negative amount %s", ErrTableInvalidBet, bet.Amount.String())
	}

	return nil
}

// validateExposure only applies when a player banks the table.
func (te *tableEngine) validateExposure() error {
	if !te.table.IsRotatingBanker() {
		return nil
	}

	exposure := te.table.ExposureOf(te.table.State.Bets)
	if exposure.GreaterThan(te.table.State.BankLimit) {
		return fmt.Errorf("%w: bets %s, limit %s",
			ErrTableExposureLimitExceeded,
			formatMoney(exposure),
			formatMoney(te.table.State.BankLimit),
		)
	}

	return nil
}

/*
applyRotation 輪莊模式結算後處理
  - 閒贏: 換莊
  - 莊贏且有毛利: 補上莊家上限 (依設定以毛利或扣水後金額計算)
  - 和局: 不變
*/
func (te *tableEngine) applyRotation(result *RoundResult) {
	switch result.Winner {
	case payout.Side_Player:
		te.table.AppendLog(">> Player Won. Shoe passing...")
		result.NextBanker = te.table.RotateBanker()
		result.BankerPassed = true
		te.table.AppendLog(shoePassedLine(result.NextBanker))
	case payout.Side_Banker:
		te.table.AppendLog(">> Banker Won. Shoe remains.")
		if result.BankerGross.IsPositive() {
			increase := result.BankerGross
			if te.table.Meta.Rules.IncludeCommissionInLimit {
				increase = result.BankerNet
			}
			te.table.State.BankLimit = te.table.State.BankLimit.Add(increase)
			result.BankLimitIncrease = increase
			te.table.AppendLog(fmt.Sprintf("[Bank Limit increased to %s]", formatMoney(te.table.State.BankLimit)))
		}
	}

	result.BankLimit = te.table.State.BankLimit
}

func (te *tableEngine) scheduleNextRound(gameCount int) error {
	if te.options.Interval <= 0 {
		return nil
	}

	return te.tb.NewTask(time.Duration(te.options.Interval)*time.Second, func(isCancelled bool) {
		if isCancelled {
			return
		}

		te.lock.Lock()
		stale := te.table.State.GameCount != gameCount || te.table.State.Status != TableStateStatus_RoundClosed
		te.lock.Unlock()
		if stale {
			return
		}

		if err := te.StartRound(); err != nil {
			te.lock.Lock()
			te.emitErrorEvent("StartRound", "", err)
			te.lock.Unlock()
		}
	})
}

func (te *tableEngine) markBetReady(playerID string) {
	if err := te.betCollector.Ready(playerID); err != nil {
		te.logger.Debug("bet collector skipped player", "player", playerID, "err", err)
	}
}

// onBetsClosed can fire inside a collector call made under the engine lock.
func (te *tableEngine) onBetsClosed(state bet_collector.BetCollectorState) {
	go te.closeBets(state)
}

func (te *tableEngine) closeBets(state bet_collector.BetCollectorState) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table == nil || te.table.State.GameCount != state.GameCount || te.table.State.Status != TableStateStatus_BettingRound {
		return
	}

	// the collector was re-armed after this close was reported
	if !te.betCollector.IsClosed() {
		return
	}

	te.table.State.IsBetsClosed = true

	for _, participant := range state.Participants {
		if participant.IsAutoPassed {
			te.logger.Info("player auto passed", "table", te.table.ID, "game", state.GameCount, "player", participant.ID)
		}
	}

	te.emitEvent("BetsClosed", "")
	te.emitTableStateEvent(TableStateEvent_BetsClosed)
}
