package baccarattable

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/weedbox/baccarattable/bet_collector"
	"github.com/weedbox/baccarattable/chips"
	"github.com/weedbox/baccarattable/payout"
	"github.com/weedbox/baccarattable/seat_manager"
	"github.com/weedbox/timebank"
)

var (
	ErrTableConfiguration         = errors.New("table: invalid table configuration")
	ErrTableExposureLimitExceeded = errors.New("table: bets exceed bank limit")
	ErrTablePlayerNotFound        = errors.New("table: player not found")
	ErrTableBankerCannotBet       = errors.New("table: banker cannot bet")
	ErrTableInvalidBet            = errors.New("table: invalid bet")
	ErrTableInvalidOutcome        = errors.New("table: invalid round outcome")
	ErrTableInvalidBankLimit      = errors.New("table: invalid bank limit")
	ErrTableInvalidAction         = errors.New("table: invalid action")
	ErrTableNotRotatingBanker     = errors.New("table: banker does not rotate in this mode")
	ErrTableSettlementImbalance   = errors.New("table: settlement is not balanced")
)

type TableEngineOpt func(*tableEngine)

type TableEngine interface {
	// Events
	OnTableUpdated(fn func(*Table))               // 桌次更新事件監聽器
	OnTableErrorUpdated(fn func(*Table, error))   // 錯誤更新事件監聽器
	OnTableStateUpdated(fn func(string, *Table))  // 桌次狀態監聽器
	OnRoundSettled(fn func(*Table, *RoundResult)) // 結算結果監聽器

	// Table Actions
	GetTable() *Table                                      // 取得桌次
	CreateTable(tableSetting TableSetting) (*Table, error) // 建立桌
	CloseTable() error                                     // 關閉桌
	StartRound() error                                     // 開下一局 (開始收注)
	CurrentBanker() string                                 // 當前莊家
	PassBanker() (string, error)                           // 手動換莊
	UpdateBankLimit(limit decimal.Decimal) error           // 手動調整莊家上限
	ChipBreakdown(amount decimal.Decimal) chips.Breakdown  // 籌碼拆分

	// Player Round Actions
	PlayerBet(playerID string, side payout.Side, amount decimal.Decimal) error // 玩家下注
	PlayerPass(playerID string) error                                          // 玩家本局不下注
	SubmitBets(bets Bets) error                                                // 整桌下注
	VerifyBets() error                                                         // 檢查莊家上限
	AutoFixBets() (Bets, error)                                                // 依莊家上限修正下注
	SettleRound(outcome RoundOutcome) (*RoundResult, error)                    // 結算本局
}

type tableEngine struct {
	lock                sync.Mutex
	options             *TableEngineOptions
	table               *Table
	betCollector        bet_collector.BetCollector
	tb                  *timebank.TimeBank
	logger              *log.Logger
	clock               quartz.Clock
	onTableUpdated      func(*Table)
	onTableErrorUpdated func(*Table, error)
	onTableStateUpdated func(string, *Table)
	onRoundSettled      func(*Table, *RoundResult)
}

func NewTableEngine(options *TableEngineOptions, opts ...TableEngineOpt) TableEngine {
	if options == nil {
		options = NewTableEngineOptions()
	}

	callbacks := NewTableEngineCallbacks()
	te := &tableEngine{
		options:             options,
		tb:                  timebank.NewTimeBank(),
		logger:              log.New(io.Discard),
		clock:               quartz.NewReal(),
		onTableUpdated:      callbacks.OnTableUpdated,
		onTableErrorUpdated: callbacks.OnTableErrorUpdated,
		onTableStateUpdated: callbacks.OnTableStateUpdated,
		onRoundSettled:      callbacks.OnRoundSettled,
	}
	te.betCollector = bet_collector.NewBetCollector(bet_collector.BetCollectorOption{
		Timeout:      options.BetTimeout,
		OnBetsClosed: te.onBetsClosed,
	})

	for _, opt := range opts {
		opt(te)
	}

	return te
}

func WithLogger(logger *log.Logger) TableEngineOpt {
	return func(te *tableEngine) {
		te.logger = logger
	}
}

func WithClock(clock quartz.Clock) TableEngineOpt {
	return func(te *tableEngine) {
		te.clock = clock
	}
}

func (te *tableEngine) OnTableUpdated(fn func(*Table)) {
	te.onTableUpdated = fn
}

func (te *tableEngine) OnTableErrorUpdated(fn func(*Table, error)) {
	te.onTableErrorUpdated = fn
}

func (te *tableEngine) OnTableStateUpdated(fn func(string, *Table)) {
	te.onTableStateUpdated = fn
}

func (te *tableEngine) OnRoundSettled(fn func(*Table, *RoundResult)) {
	te.onRoundSettled = fn
}

func (te *tableEngine) GetTable() *Table {
	return te.table
}

/*
CreateTable 建立桌次
  - 每位玩家以 BuyIn 入座，入座順序即輪莊順序，第一位為莊家
  - 設定不合法時不會建立任何狀態
*/
func (te *tableEngine) CreateTable(tableSetting TableSetting) (*Table, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table != nil {
		return nil, fmt.Errorf("%w: table %s already created", ErrTableInvalidAction, te.table.ID)
	}

	// validate tableSetting
	if err := tableSetting.Validate(); err != nil {
		return nil, err
	}

	sm, err := seat_manager.NewSeatManager(tableSetting.PlayerIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTableConfiguration, err)
	}

	rule, err := payout.NewRule(tableSetting.Rules.Mode, tableSetting.Rules.PayoutParams())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTableConfiguration, err)
	}

	tableID := tableSetting.TableID
	if tableID == "" {
		tableID = uuid.New().String()
	}

	table := &Table{
		ID: tableID,
	}
	table.ConfigureWithSetting(tableSetting, sm, rule, TableStateStatus_TableOpen)
	table.AppendLog(modeStartedLine(tableSetting.Rules.Mode))

	te.table = table

	te.logger.Info("table created",
		"table", table.ID,
		"mode", table.Meta.Rules.Mode,
		"players", len(table.State.PlayerStates),
		"buy_in", table.Meta.BuyIn.StringFixed(2),
	)

	te.emitEvent("CreateTable", "")
	te.emitTableStateEvent(TableStateEvent_Created)
	return te.table, nil
}

/*
CloseTable 關閉桌次
  - 適用時機: 任何狀態皆可關閉，關閉後所有動作皆無效
*/
func (te *tableEngine) CloseTable() error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateTable(); err != nil {
		return err
	}

	te.tb.Cancel()
	te.betCollector.Stop()
	te.table.State.Status = TableStateStatus_TableClosed

	te.emitEvent("CloseTable", "")
	te.emitTableStateEvent(TableStateEvent_StatusUpdated)
	return nil
}

/*
StartRound 開下一局
  - 適用時機: 開桌後或上一局結算後
  - 清空下注，所有閒家開始下注
*/
func (te *tableEngine) StartRound() error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateStatus(TableStateStatus_TableOpen, TableStateStatus_RoundClosed); err != nil {
		return err
	}

	if te.table.State.StartAt == UnsetValue {
		te.table.State.StartAt = te.clock.Now().Unix()
	}

	te.table.State.GameCount++
	te.table.State.Status = TableStateStatus_BettingRound
	te.table.State.Bets = make(Bets)
	te.table.State.IsBetsClosed = false

	te.betCollector.Setup(te.table.State.GameCount, te.table.Punters())

	te.emitEvent("StartRound", "")
	te.emitTableStateEvent(TableStateEvent_RoundStarted)
	return nil
}

func (te *tableEngine) CurrentBanker() string {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table == nil {
		return HouseBanker
	}
	return te.table.CurrentBanker()
}

/*
PassBanker 手動換莊
  - 僅限輪莊模式，且不能在本局進行中換莊
*/
func (te *tableEngine) PassBanker() (string, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateTable(); err != nil {
		return "", err
	}

	if !te.table.IsRotatingBanker() {
		return "", ErrTableNotRotatingBanker
	}

	if err := te.validateStatus(TableStateStatus_TableOpen, TableStateStatus_RoundClosed); err != nil {
		return "", err
	}

	banker := te.table.RotateBanker()
	te.table.AppendLog(shoePassedLine(banker))

	te.emitEvent("PassBanker", banker)
	te.emitTableStateEvent(TableStateEvent_BankerPassed)
	return banker, nil
}

func (te *tableEngine) UpdateBankLimit(limit decimal.Decimal) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateStatus(TableStateStatus_TableOpen, TableStateStatus_BettingRound, TableStateStatus_RoundClosed); err != nil {
		return err
	}

	if limit.IsNegative() {
		return fmt.Errorf("%w: %s", ErrTableInvalidBankLimit, limit.String())
	}

	te.table.State.BankLimit = limit

	te.emitEvent("UpdateBankLimit", "")
	te.emitTableStateEvent(TableStateEvent_BankLimitUpdated)
	return nil
}

func (te *tableEngine) ChipBreakdown(amount decimal.Decimal) chips.Breakdown {
	return chips.NewBreakdown(amount)
}

/*
PlayerBet 玩家下注
  - 同一局重複下注時以最後一次為準
  - 莊家不能下注
*/
func (te *tableEngine) PlayerBet(playerID string, side payout.Side, amount decimal.Decimal) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateStatus(TableStateStatus_BettingRound); err != nil {
		return err
	}

	bet := Bet{Side: side, Amount: amount}
	if err := te.validateBet(playerID, bet); err != nil {
		return err
	}

	te.table.State.Bets[playerID] = bet
	te.markBetReady(playerID)

	te.emitEvent("PlayerBet", playerID)
	return nil
}

func (te *tableEngine) PlayerPass(playerID string) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateStatus(TableStateStatus_BettingRound); err != nil {
		return err
	}

	if err := te.validatePunter(playerID); err != nil {
		return err
	}

	delete(te.table.State.Bets, playerID)
	te.markBetReady(playerID)

	te.emitEvent("PlayerPass", playerID)
	return nil
}

/*
SubmitBets 整桌下注
  - 取代本局所有下注，任何一筆不合法時本局下注不變
  - 重新收集下注，不在新下注中的閒家回到未下注狀態
*/
func (te *tableEngine) SubmitBets(bets Bets) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateStatus(TableStateStatus_BettingRound); err != nil {
		return err
	}

	for playerID, bet := range bets {
		if err := te.validateBet(playerID, bet); err != nil {
			return err
		}
	}

	// players left out of the new bets have not acted yet
	te.table.State.Bets = bets.Clone()
	te.table.State.IsBetsClosed = false
	te.betCollector.Setup(te.table.State.GameCount, te.table.Punters())
	for playerID := range bets {
		te.markBetReady(playerID)
	}

	te.emitEvent("SubmitBets", "")
	return nil
}

/*
VerifyBets 檢查本局下注是否超出莊家上限
  - 只有輪莊模式有上限
*/
func (te *tableEngine) VerifyBets() error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateStatus(TableStateStatus_BettingRound); err != nil {
		return err
	}

	return te.validateExposure()
}

/*
AutoFixBets 依莊家上限修正本局下注
  - 超出的金額從最後入座的閒家開始扣
  - 非輪莊模式沒有上限，下注不變
*/
func (te *tableEngine) AutoFixBets() (Bets, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateStatus(TableStateStatus_BettingRound); err != nil {
		return nil, err
	}

	if !te.table.IsRotatingBanker() {
		return te.table.State.Bets.Clone(), nil
	}

	fixed := te.table.AutoFixBets(te.table.State.Bets, te.table.State.BankLimit)
	te.table.State.Bets = fixed

	te.emitEvent("AutoFixBets", "")
	return fixed.Clone(), nil
}

/*
SettleRound 結算本局
  - 輪莊模式下注超出上限時拒絕結算，狀態不變
  - 閒贏換莊；莊贏且有毛利時補上莊家上限；和局不變
*/
func (te *tableEngine) SettleRound(outcome RoundOutcome) (*RoundResult, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateStatus(TableStateStatus_BettingRound); err != nil {
		return nil, err
	}

	if !outcome.Winner.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrTableInvalidOutcome, outcome.Winner)
	}

	if err := te.validateExposure(); err != nil {
		return nil, err
	}

	te.table.State.Status = TableStateStatus_Settling
	te.emitTableStateEvent(TableStateEvent_StatusUpdated)

	result, err := te.table.SettleRound(te.table.State.Bets, outcome)
	if err != nil {
		te.table.State.Status = TableStateStatus_BettingRound
		te.emitErrorEvent("SettleRound", "", err)
		return nil, err
	}

	te.betCollector.Stop()

	te.table.AppendLog(winnerLine(outcome))
	te.table.AppendLog(result.Lines...)
	te.table.AppendLog(logSeparator)

	if te.table.IsRotatingBanker() {
		te.applyRotation(result)
	}

	te.table.State.LastRound = result
	te.table.State.Bets = make(Bets)
	te.table.State.Status = TableStateStatus_RoundClosed

	te.emitEvent("SettleRound", "")
	te.emitRoundSettledEvent(result)
	te.emitTableStateEvent(TableStateEvent_RoundSettled)
	if result.BankerPassed {
		te.emitTableStateEvent(TableStateEvent_BankerPassed)
	}
	if result.BankLimitIncrease.IsPositive() {
		te.emitTableStateEvent(TableStateEvent_BankLimitUpdated)
	}

	if err := te.scheduleNextRound(te.table.State.GameCount); err != nil {
		te.emitErrorEvent("scheduleNextRound", "", err)
	}

	return result, nil
}
