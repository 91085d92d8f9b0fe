package baccarattable

const (
	TableStateEvent_Created          = "Created"
	TableStateEvent_StatusUpdated    = "StatusUpdated"
	TableStateEvent_RoundStarted     = "RoundStarted"
	TableStateEvent_BetsClosed       = "BetsClosed"
	TableStateEvent_RoundSettled     = "RoundSettled"
	TableStateEvent_BankerPassed     = "BankerPassed"
	TableStateEvent_BankLimitUpdated = "BankLimitUpdated"
)

func (te *tableEngine) emitEvent(eventName string, playerID string) {
	// refresh table
	te.table.RefreshUpdateAt(te.clock.Now())

	te.logger.Debug("emit event",
		"table", te.table.ID,
		"serial", te.table.UpdateSerial,
		"game", te.table.State.GameCount,
		"player", playerID,
		"event", eventName,
	)
	te.onTableUpdated(te.table)
}

func (te *tableEngine) emitErrorEvent(eventName string, playerID string, err error) {
	te.logger.Error("emit error event",
		"table", te.table.ID,
		"serial", te.table.UpdateSerial,
		"game", te.table.State.GameCount,
		"player", playerID,
		"event", eventName,
		"err", err,
	)
	te.onTableErrorUpdated(te.table, err)
}

func (te *tableEngine) emitTableStateEvent(eventName string) {
	te.onTableStateUpdated(eventName, te.table)
}

func (te *tableEngine) emitRoundSettledEvent(result *RoundResult) {
	te.logger.Info("round settled",
		"table", te.table.ID,
		"game", result.GameCount,
		"winner", result.Winner,
		"banker", result.Banker,
		"banker_net", result.BankerNet.StringFixed(2),
	)
	te.onRoundSettled(te.table, result)
}
