package baccarattable

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/weedbox/baccarattable/payout"
)

var (
	ErrManagerTableNotFound = errors.New("manager: table not found")
)

type Manager interface {
	Reset()

	// TableEngine Actions
	GetTableEngine(tableID string) (TableEngine, error)
	CreateTable(options *TableEngineOptions, callbacks *TableEngineCallbacks, setting TableSetting, opts ...TableEngineOpt) (*Table, error)
	CloseTable(tableID string) error
	StartRound(tableID string) error
	PassBanker(tableID string) (string, error)
	UpdateBankLimit(tableID string, limit decimal.Decimal) error

	// Player Round Actions
	PlayerBet(tableID, playerID string, side payout.Side, amount decimal.Decimal) error
	PlayerPass(tableID, playerID string) error
	SubmitBets(tableID string, bets Bets) error
	VerifyBets(tableID string) error
	AutoFixBets(tableID string) (Bets, error)
	SettleRound(tableID string, outcome RoundOutcome) (*RoundResult, error)
}

type manager struct {
	tableEngines sync.Map
}

func NewManager() Manager {
	return &manager{
		tableEngines: sync.Map{},
	}
}

func (m *manager) Reset() {
	m.tableEngines = sync.Map{}
}

func (m *manager) GetTableEngine(tableID string) (TableEngine, error) {
	tableEngine, exist := m.tableEngines.Load(tableID)
	if !exist {
		return nil, ErrManagerTableNotFound
	}
	return tableEngine.(TableEngine), nil
}

func (m *manager) CreateTable(options *TableEngineOptions, callbacks *TableEngineCallbacks, setting TableSetting, opts ...TableEngineOpt) (*Table, error) {
	var engineOptions *TableEngineOptions
	if options != nil {
		engineOptions = options
	} else {
		engineOptions = NewTableEngineOptions()
	}

	var engineCallbacks *TableEngineCallbacks
	if callbacks != nil {
		engineCallbacks = callbacks
	} else {
		engineCallbacks = NewTableEngineCallbacks()
	}

	tableEngine := NewTableEngine(engineOptions, opts...)
	tableEngine.OnTableUpdated(engineCallbacks.OnTableUpdated)
	tableEngine.OnTableErrorUpdated(engineCallbacks.OnTableErrorUpdated)
	tableEngine.OnTableStateUpdated(engineCallbacks.OnTableStateUpdated)
	tableEngine.OnRoundSettled(engineCallbacks.OnRoundSettled)
	table, err := tableEngine.CreateTable(setting)
	if err != nil {
		return nil, err
	}

	m.tableEngines.Store(table.ID, tableEngine)
	return table, nil
}

func (m *manager) CloseTable(tableID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	if err := tableEngine.CloseTable(); err != nil {
		return err
	}

	m.tableEngines.Delete(tableID)
	return nil
}

func (m *manager) StartRound(tableID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.StartRound()
}

func (m *manager) PassBanker(tableID string) (string, error) {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return "", ErrManagerTableNotFound
	}

	return tableEngine.PassBanker()
}

func (m *manager) UpdateBankLimit(tableID string, limit decimal.Decimal) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.UpdateBankLimit(limit)
}

func (m *manager) PlayerBet(tableID, playerID string, side payout.Side, amount decimal.Decimal) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.PlayerBet(playerID, side, amount)
}

func (m *manager) PlayerPass(tableID, playerID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.PlayerPass(playerID)
}

func (m *manager) SubmitBets(tableID string, bets Bets) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.SubmitBets(bets)
}

func (m *manager) VerifyBets(tableID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.VerifyBets()
}

func (m *manager) AutoFixBets(tableID string) (Bets, error) {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return nil, ErrManagerTableNotFound
	}

	return tableEngine.AutoFixBets()
}

func (m *manager) SettleRound(tableID string, outcome RoundOutcome) (*RoundResult, error) {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return nil, ErrManagerTableNotFound
	}

	return tableEngine.SettleRound(outcome)
}
