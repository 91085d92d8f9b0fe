package baccarattable

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thoas/go-funk"
	"github.com/weedbox/baccarattable/payout"
	"github.com/weedbox/baccarattable/seat_manager"
)

type TableStateStatus string

const (
	TableStateStatus_TableOpen    TableStateStatus = "table_open"    // 桌次已開，尚未開局
	TableStateStatus_BettingRound TableStateStatus = "betting_round" // 下注中
	TableStateStatus_Settling     TableStateStatus = "settling"      // 結算中
	TableStateStatus_RoundClosed  TableStateStatus = "round_closed"  // 本局已結算
	TableStateStatus_TableClosed  TableStateStatus = "table_closed"  // 桌次已結束
)

type Table struct {
	ID           string      `json:"id"`
	Meta         TableMeta   `json:"meta"`
	State        *TableState `json:"state"`
	UpdateAt     int64       `json:"update_at"`     // 更新時間 (Seconds)
	UpdateSerial int64       `json:"update_serial"` // 更新序列號 (數字越大越晚發生)

	rule  payout.Rule
	seats seat_manager.SeatManager
}

type TableMeta struct {
	Name  string          `json:"name"`   // 桌次名稱
	BuyIn decimal.Decimal `json:"buy_in"` // 每位玩家起始籌碼
	Rules TableRules      `json:"rules"`  // 遊戲規則 (開桌後不可變更)
}

type TableState struct {
	Status       TableStateStatus    `json:"status"`         // 當前桌次狀態
	StartAt      int64               `json:"start_at"`       // 開桌時間 (Seconds)
	GameCount    int                 `json:"game_count"`     // 已開局次數
	SeatMap      []string            `json:"seat_map"`       // 入座順序，index: seat id, value: player id (座位管理器快照)
	BankerSeat   int                 `json:"banker_seat"`    // 當前莊家座位 (座位管理器快照)
	BankLimit    decimal.Decimal     `json:"bank_limit"`     // 莊家本局承擔上限 (輪莊模式)
	PlayerStates []*TablePlayerState `json:"player_states"`  // 玩家狀態
	Bets         Bets                `json:"bets"`           // 本局下注
	IsBetsClosed bool                `json:"is_bets_closed"` // 所有閒家已下注或 Pass
	LastRound    *RoundResult        `json:"last_round"`     // 上一局結算結果
	ActivityLog  []string            `json:"activity_log"`   // 桌次紀錄 (依時間順序)
}

type TablePlayerState struct {
	PlayerID string          `json:"player_id"` // 玩家 ID
	Seat     int             `json:"seat"`      // 座位編號
	Balance  decimal.Decimal `json:"balance"`   // 玩家餘額
}

// Setters
func (t *Table) RefreshUpdateAt(now time.Time) {
	t.UpdateAt = now.Unix()
	t.UpdateSerial++
}

func (t *Table) ConfigureWithSetting(setting TableSetting, seats seat_manager.SeatManager, rule payout.Rule, status TableStateStatus) {
	t.Meta = TableMeta{
		Name:  setting.Name,
		BuyIn: setting.BuyIn,
		Rules: setting.Rules,
	}
	t.rule = rule
	t.seats = seats

	bankLimit := setting.BuyIn
	if setting.BankLimit != nil {
		bankLimit = *setting.BankLimit
	}

	seatMap := make([]string, len(setting.PlayerIDs))
	copy(seatMap, setting.PlayerIDs)

	bankerSeat := 0
	if seats != nil {
		seatMap = seats.Seats()
		bankerSeat = seats.BankerSeatID()
	}

	t.State = &TableState{
		Status:     status,
		StartAt:    UnsetValue,
		GameCount:  0,
		SeatMap:    seatMap,
		BankerSeat: bankerSeat,
		BankLimit:  bankLimit,
		PlayerStates: funk.Map(seatMap, func(playerID string) *TablePlayerState {
			return &TablePlayerState{
				PlayerID: playerID,
				Seat:     UnsetValue,
				Balance:  setting.BuyIn,
			}
		}).([]*TablePlayerState),
		Bets:        make(Bets),
		ActivityLog: make([]string, 0),
	}

	for seat, player := range t.State.PlayerStates {
		player.Seat = seat
	}
}

// RotateBanker passes the shoe to the next seat and mirrors it into the state.
func (t *Table) RotateBanker() string {
	seats := t.seating()
	if seats == nil {
		return ""
	}

	banker := seats.RotateBanker()
	t.State.BankerSeat = seats.BankerSeatID()
	return banker
}

func (t *Table) AppendLog(lines ...string) {
	t.State.ActivityLog = append(t.State.ActivityLog, lines...)
}

// Getters
func (t *Table) Rule() payout.Rule {
	if t.rule == nil {
		// tables restored from JSON rebuild their rule lazily
		rule, err := payout.NewRule(t.Meta.Rules.Mode, t.Meta.Rules.PayoutParams())
		if err != nil {
			return nil
		}
		t.rule = rule
	}
	return t.rule
}

// seating is the table's seat manager. Tables restored from JSON rebuild it
// from SeatMap and BankerSeat.
func (t *Table) seating() seat_manager.SeatManager {
	if t.seats == nil {
		seats, err := seat_manager.NewSeatManagerFromState(t.State.SeatMap, t.State.BankerSeat)
		if err != nil {
			return nil
		}
		t.seats = seats
	}
	return t.seats
}

func (t *Table) IsRotatingBanker() bool {
	return t.Meta.Rules.Mode.IsRotatingBanker()
}

// CurrentBanker returns the banking player, or HouseBanker when the house banks.
func (t *Table) CurrentBanker() string {
	seats := t.seating()
	if !t.IsRotatingBanker() || seats == nil {
		return HouseBanker
	}
	return seats.BankerPlayerID()
}

func (t *Table) HasPlayerBanker() bool {
	return t.CurrentBanker() != HouseBanker
}

func (t *Table) IsBanker(playerID string) bool {
	seats := t.seating()
	return t.IsRotatingBanker() && seats != nil && seats.IsBanker(playerID)
}

func (t *Table) FindPlayerIdx(playerID string) int {
	seats := t.seating()
	if seats == nil {
		return UnsetValue
	}

	// player states are stored in seat order
	seatID, err := seats.GetSeatID(playerID)
	if err != nil {
		return UnsetValue
	}
	return seatID
}

func (t *Table) FindPlayer(playerID string) *TablePlayerState {
	idx := t.FindPlayerIdx(playerID)
	if idx == UnsetValue {
		return nil
	}
	return t.State.PlayerStates[idx]
}

func (t *Table) Balances() map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(t.State.PlayerStates))
	for _, player := range t.State.PlayerStates {
		balances[player.PlayerID] = player.Balance
	}
	return balances
}

// Punters lists every seated non-banker in seating order.
func (t *Table) Punters() []string {
	seats := t.seating()
	if seats == nil {
		return []string{}
	}

	if !t.IsRotatingBanker() {
		return seats.Seats()
	}
	return seats.ListPunterSeats()
}

func (t *Table) GetJSON() (*string, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	json := string(encoded)
	return &json, nil
}
