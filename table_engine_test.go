package baccarattable

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/baccarattable/payout"
)

func newTestEngine(t *testing.T, options *TableEngineOptions, rules TableRules, playerIDs ...string) (TableEngine, *Table) {
	t.Helper()

	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	tableEngine := NewTableEngine(options, WithLogger(log.New(io.Discard)), WithClock(clock))
	table, err := tableEngine.CreateTable(TableSetting{
		TableID:   "engine-test",
		Name:      "engine",
		PlayerIDs: playerIDs,
		BuyIn:     money("1000"),
		Rules:     rules,
	})
	require.NoError(t, err)
	return tableEngine, table
}

func TestCreateTable(t *testing.T) {
	tableEngine, table := newTestEngine(t, nil, NewDefaultTableRules(GameMode_RotatingBanker), "Carol", "Alice", "Bob")

	assert.Equal(t, "engine-test", table.ID)
	assert.Equal(t, TableStateStatus_TableOpen, table.State.Status)
	assert.Equal(t, "Carol", tableEngine.CurrentBanker())
	assert.Equal(t, []string{"=== CHEMIN DE FER STARTED ==="}, table.State.ActivityLog)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Unix(), table.UpdateAt)
	assert.Equal(t, int64(1), table.UpdateSerial)

	_, err := tableEngine.CreateTable(TableSetting{PlayerIDs: []string{"Zed"}, Rules: NewDefaultTableRules(GameMode_Super6)})
	assert.ErrorIs(t, err, ErrTableInvalidAction)
}

func TestCreateTable_GeneratesID(t *testing.T) {
	tableEngine := NewTableEngine(nil)
	table, err := tableEngine.CreateTable(TableSetting{
		PlayerIDs: []string{"Alice"},
		BuyIn:     money("100"),
		Rules:     NewDefaultTableRules(GameMode_StandardCommission),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, table.ID)
	assert.Equal(t, HouseBanker, tableEngine.CurrentBanker())
}

func TestCreateTable_InvalidSetting(t *testing.T) {
	testCases := map[string]TableSetting{
		"empty roster": {
			BuyIn: money("100"),
			Rules: NewDefaultTableRules(GameMode_StandardCommission),
		},
		"duplicate names": {
			PlayerIDs: []string{"Alice", "Alice"},
			BuyIn:     money("100"),
			Rules:     NewDefaultTableRules(GameMode_StandardCommission),
		},
		"negative buy-in": {
			PlayerIDs: []string{"Alice"},
			BuyIn:     money("-100"),
			Rules:     NewDefaultTableRules(GameMode_StandardCommission),
		},
		"unknown mode": {
			PlayerIDs: []string{"Alice"},
			BuyIn:     money("100"),
			Rules:     TableRules{Mode: "blackjack"},
		},
	}

	for name, setting := range testCases {
		t.Run(name, func(t *testing.T) {
			tableEngine := NewTableEngine(nil)
			table, err := tableEngine.CreateTable(setting)

			assert.ErrorIs(t, err, ErrTableConfiguration)
			assert.Nil(t, table)
			assert.Nil(t, tableEngine.GetTable())
		})
	}
}

func TestRoundActions_RequireBettingRound(t *testing.T) {
	tableEngine, _ := newTestEngine(t, nil, NewDefaultTableRules(GameMode_StandardCommission), "Alice", "Bob")

	assert.ErrorIs(t, tableEngine.PlayerBet("Alice", Side_Player, money("10")), ErrTableInvalidAction)
	assert.ErrorIs(t, tableEngine.PlayerPass("Alice"), ErrTableInvalidAction)
	assert.ErrorIs(t, tableEngine.SubmitBets(Bets{}), ErrTableInvalidAction)
	assert.ErrorIs(t, tableEngine.VerifyBets(), ErrTableInvalidAction)
	_, err := tableEngine.AutoFixBets()
	assert.ErrorIs(t, err, ErrTableInvalidAction)
	_, err = tableEngine.SettleRound(RoundOutcome{Winner: Side_Player})
	assert.ErrorIs(t, err, ErrTableInvalidAction)

	require.NoError(t, tableEngine.StartRound())
	assert.ErrorIs(t, tableEngine.StartRound(), ErrTableInvalidAction)
}

func TestPlayerBet_Validation(t *testing.T) {
	tableEngine, table := newTestEngine(t, nil, NewDefaultTableRules(GameMode_RotatingBanker), "Carol", "Alice", "Bob")
	require.NoError(t, tableEngine.StartRound())

	assert.ErrorIs(t, tableEngine.PlayerBet("Carol", Side_Banker, money("10")), ErrTableBankerCannotBet)
	assert.ErrorIs(t, tableEngine.PlayerBet("Zed", Side_Banker, money("10")), ErrTablePlayerNotFound)
	assert.ErrorIs(t, tableEngine.PlayerBet("Alice", Side_Player, money("-1")), ErrTableInvalidBet)
	assert.ErrorIs(t, tableEngine.PlayerBet("Alice", "dragon", money("1")), ErrTableInvalidBet)
	assert.ErrorIs(t, tableEngine.PlayerPass("Carol"), ErrTableBankerCannotBet)

	require.NoError(t, tableEngine.PlayerBet("Alice", Side_Player, money("10")))
	require.NoError(t, tableEngine.PlayerBet("Alice", Side_Banker, money("20")))
	assert.Equal(t, Bet{Side: Side_Banker, Amount: money("20")}, table.State.Bets["Alice"])

	err := tableEngine.SubmitBets(Bets{
		"Alice": {Side: Side_Player, Amount: money("10")},
		"Carol": {Side: Side_Player, Amount: money("10")},
	})
	assert.ErrorIs(t, err, ErrTableBankerCannotBet)
	assert.Equal(t, Bet{Side: Side_Banker, Amount: money("20")}, table.State.Bets["Alice"])
}

func TestBetsClosed(t *testing.T) {
	var mu sync.Mutex
	events := make([]string, 0)

	tableEngine, table := newTestEngine(t, nil, NewDefaultTableRules(GameMode_StandardCommission), "Alice", "Bob")
	tableEngine.OnTableStateUpdated(func(event string, _ *Table) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, event)
	})

	require.NoError(t, tableEngine.StartRound())
	require.NoError(t, tableEngine.PlayerBet("Alice", Side_Player, money("10")))
	assert.False(t, table.State.IsBetsClosed)
	require.NoError(t, tableEngine.PlayerPass("Bob"))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, event := range events {
			if event == TableStateEvent_BetsClosed {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBetsClosed_Timeout(t *testing.T) {
	options := NewTableEngineOptions()
	options.BetTimeout = 1

	closed := make(chan struct{}, 1)
	tableEngine, _ := newTestEngine(t, options, NewDefaultTableRules(GameMode_StandardCommission), "Alice", "Bob")
	tableEngine.OnTableStateUpdated(func(event string, _ *Table) {
		if event == TableStateEvent_BetsClosed {
			closed <- struct{}{}
		}
	})

	require.NoError(t, tableEngine.StartRound())
	require.NoError(t, tableEngine.PlayerBet("Alice", Side_Player, money("10")))

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("bets were not closed after timeout")
	}

	// settlement works on what was collected
	result, err := tableEngine.SettleRound(RoundOutcome{Winner: Side_Player})
	require.NoError(t, err)
	assert.Len(t, result.Outcomes, 1)
}

func TestBetsClosed_SubmitBetsResetsReadiness(t *testing.T) {
	var mu sync.Mutex
	closedCount := 0

	tableEngine, table := newTestEngine(t, nil, NewDefaultTableRules(GameMode_StandardCommission), "Alice", "Bob")
	tableEngine.OnTableStateUpdated(func(event string, _ *Table) {
		if event != TableStateEvent_BetsClosed {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		closedCount++
	})
	isClosed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return closedCount > 0
	}

	require.NoError(t, tableEngine.StartRound())
	require.NoError(t, tableEngine.PlayerBet("Alice", Side_Player, money("10")))

	// Alice's earlier bet is replaced, so she has to act again
	require.NoError(t, tableEngine.SubmitBets(Bets{
		"Bob": {Side: Side_Banker, Amount: money("20")},
	}))
	assert.Never(t, isClosed, 300*time.Millisecond, 10*time.Millisecond)

	require.NoError(t, tableEngine.PlayerPass("Alice"))
	assert.Eventually(t, isClosed, 2*time.Second, 10*time.Millisecond)

	result, err := tableEngine.SettleRound(RoundOutcome{Winner: Side_Banker})
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, "Bob", result.Outcomes[0].PlayerID)
	assertMoney(t, "1000", table.FindPlayer("Alice").Balance)
}

func TestBetsClosed_FollowsBankerRotation(t *testing.T) {
	closed := make(chan struct{}, 1)
	tableEngine, _ := newTestEngine(t, nil, NewDefaultTableRules(GameMode_RotatingBanker), "Carol", "Alice", "Bob")
	tableEngine.OnTableStateUpdated(func(event string, _ *Table) {
		if event == TableStateEvent_BetsClosed {
			closed <- struct{}{}
		}
	})

	banker, err := tableEngine.PassBanker()
	require.NoError(t, err)
	assert.Equal(t, "Alice", banker)

	require.NoError(t, tableEngine.StartRound())
	assert.ErrorIs(t, tableEngine.PlayerBet("Alice", Side_Player, money("10")), ErrTableBankerCannotBet)
	require.NoError(t, tableEngine.PlayerBet("Carol", Side_Player, money("10")))
	require.NoError(t, tableEngine.PlayerBet("Bob", Side_Banker, money("10")))

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("bets were not closed once Carol and Bob acted")
	}
}

func TestCreateTable_ZeroBankLimit(t *testing.T) {
	zero := money("0")
	tableEngine := NewTableEngine(nil)
	table, err := tableEngine.CreateTable(TableSetting{
		PlayerIDs: []string{"Carol", "Alice"},
		BuyIn:     money("1000"),
		BankLimit: &zero,
		Rules:     NewDefaultTableRules(GameMode_RotatingBanker),
	})
	require.NoError(t, err)
	assertMoney(t, "0", table.State.BankLimit)

	require.NoError(t, tableEngine.StartRound())
	require.NoError(t, tableEngine.PlayerBet("Alice", Side_Player, money("10")))
	assert.ErrorIs(t, tableEngine.VerifyBets(), ErrTableExposureLimitExceeded)

	fixed, err := tableEngine.AutoFixBets()
	require.NoError(t, err)
	assertMoney(t, "0", fixed["Alice"].Amount)
}

func TestSettleRound_ExposureLimit(t *testing.T) {
	tableEngine, table := newTestEngine(t, nil, NewDefaultTableRules(GameMode_RotatingBanker), "Carol", "Alice", "Bob", "Dave")
	require.NoError(t, tableEngine.UpdateBankLimit(money("100")))
	require.NoError(t, tableEngine.StartRound())

	require.NoError(t, tableEngine.SubmitBets(Bets{
		"Alice": {Side: Side_Player, Amount: money("50")},
		"Bob":   {Side: Side_Player, Amount: money("50")},
		"Dave":  {Side: Side_Banker, Amount: money("50")},
	}))

	assert.ErrorIs(t, tableEngine.VerifyBets(), ErrTableExposureLimitExceeded)
	_, err := tableEngine.SettleRound(RoundOutcome{Winner: Side_Player})
	assert.ErrorIs(t, err, ErrTableExposureLimitExceeded)
	assert.Equal(t, TableStateStatus_BettingRound, table.State.Status)
	for _, player := range table.State.PlayerStates {
		assertMoney(t, "1000", player.Balance)
	}

	fixed, err := tableEngine.AutoFixBets()
	require.NoError(t, err)
	assertMoney(t, "0", fixed["Dave"].Amount)
	require.NoError(t, tableEngine.VerifyBets())

	result, err := tableEngine.SettleRound(RoundOutcome{Winner: Side_Player})
	require.NoError(t, err)
	assertMoney(t, "-100", result.BankerNet)
	assertMoney(t, "1000", table.FindPlayer("Dave").Balance)
}

func TestSettleRound_PlayerWinPassesShoe(t *testing.T) {
	var settled *RoundResult
	tableEngine, table := newTestEngine(t, nil, NewDefaultTableRules(GameMode_RotatingBanker), "Carol", "Alice", "Bob")
	tableEngine.OnRoundSettled(func(_ *Table, result *RoundResult) {
		settled = result
	})

	require.NoError(t, tableEngine.StartRound())
	require.NoError(t, tableEngine.PlayerBet("Alice", Side_Player, money("100")))

	result, err := tableEngine.SettleRound(RoundOutcome{Winner: Side_Player})
	require.NoError(t, err)

	assert.Same(t, result, settled)
	assert.True(t, result.BankerPassed)
	assert.Equal(t, "Alice", result.NextBanker)
	assert.Equal(t, "Alice", tableEngine.CurrentBanker())
	assert.Equal(t, 1, table.State.BankerSeat)
	assert.Equal(t, TableStateStatus_RoundClosed, table.State.Status)
	assert.Empty(t, table.State.Bets)
	assert.Same(t, result, table.State.LastRound)

	assert.Equal(t, []string{
		"=== CHEMIN DE FER STARTED ===",
		"WINNER: Player",
		"BANKER (Carol): LOST (-$100.00)",
		"Alice: WON (+$100.00) -> Pay: 2x Green",
		logSeparator,
		">> Player Won. Shoe passing...",
		"--- SHOE PASSED TO Alice ---",
	}, table.State.ActivityLog)
}

func TestSettleRound_BankerWinReplenishesLimit(t *testing.T) {
	testCases := []struct {
		name              string
		includeCommission bool
		limit             string
	}{
		{name: "gross", includeCommission: false, limit: "1100"},
		{name: "net of commission", includeCommission: true, limit: "1095"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rules := NewDefaultTableRules(GameMode_RotatingBanker)
			rules.IncludeCommissionInLimit = tc.includeCommission
			tableEngine, table := newTestEngine(t, nil, rules, "Carol", "Alice")

			require.NoError(t, tableEngine.StartRound())
			require.NoError(t, tableEngine.PlayerBet("Alice", Side_Player, money("100")))

			result, err := tableEngine.SettleRound(RoundOutcome{Winner: Side_Banker})
			require.NoError(t, err)

			assert.False(t, result.BankerPassed)
			assert.Equal(t, "Carol", tableEngine.CurrentBanker())
			assertMoney(t, tc.limit, result.BankLimit)
			assertMoney(t, tc.limit, table.State.BankLimit)
			assert.Contains(t, table.State.ActivityLog, ">> Banker Won. Shoe remains.")
			assert.Contains(t, table.State.ActivityLog, "[Bank Limit increased to $"+money(tc.limit).StringFixed(2)+"]")
		})
	}
}

func TestSettleRound_TieKeepsBanker(t *testing.T) {
	tableEngine, table := newTestEngine(t, nil, NewDefaultTableRules(GameMode_RotatingBanker), "Carol", "Alice")

	require.NoError(t, tableEngine.StartRound())
	require.NoError(t, tableEngine.PlayerBet("Alice", Side_Tie, money("10")))

	result, err := tableEngine.SettleRound(RoundOutcome{Winner: Side_Tie})
	require.NoError(t, err)

	assert.False(t, result.BankerPassed)
	assert.Equal(t, "Carol", tableEngine.CurrentBanker())
	assertMoney(t, "1000", table.State.BankLimit)
	assertMoney(t, "1080", table.FindPlayer("Alice").Balance)
	assertMoney(t, "920", table.FindPlayer("Carol").Balance)
}

func TestPassBanker(t *testing.T) {
	tableEngine, table := newTestEngine(t, nil, NewDefaultTableRules(GameMode_RotatingBanker), "A", "B", "C")

	for _, expected := range []string{"B", "C", "A"} {
		banker, err := tableEngine.PassBanker()
		require.NoError(t, err)
		assert.Equal(t, expected, banker)
	}
	assert.Contains(t, table.State.ActivityLog, "--- SHOE PASSED TO C ---")

	require.NoError(t, tableEngine.StartRound())
	_, err := tableEngine.PassBanker()
	assert.ErrorIs(t, err, ErrTableInvalidAction)

	house, _ := newTestEngine(t, nil, NewDefaultTableRules(GameMode_Panda8), "A", "B")
	_, err = house.PassBanker()
	assert.ErrorIs(t, err, ErrTableNotRotatingBanker)
}

func TestUpdateBankLimit(t *testing.T) {
	tableEngine, table := newTestEngine(t, nil, NewDefaultTableRules(GameMode_RotatingBanker), "A", "B")

	assert.ErrorIs(t, tableEngine.UpdateBankLimit(money("-1")), ErrTableInvalidBankLimit)
	require.NoError(t, tableEngine.UpdateBankLimit(money("250")))
	assertMoney(t, "250", table.State.BankLimit)

	require.NoError(t, tableEngine.CloseTable())
	assert.ErrorIs(t, tableEngine.UpdateBankLimit(money("300")), ErrTableInvalidAction)
}

func TestCloseTable(t *testing.T) {
	tableEngine, table := newTestEngine(t, nil, NewDefaultTableRules(GameMode_StandardCommission), "A", "B")
	require.NoError(t, tableEngine.StartRound())

	require.NoError(t, tableEngine.CloseTable())
	assert.Equal(t, TableStateStatus_TableClosed, table.State.Status)
	assert.ErrorIs(t, tableEngine.StartRound(), ErrTableInvalidAction)
	assert.ErrorIs(t, tableEngine.PlayerBet("A", Side_Player, money("1")), ErrTableInvalidAction)
}

func TestAutoReopenRound(t *testing.T) {
	options := NewTableEngineOptions()
	options.Interval = 1

	tableEngine, table := newTestEngine(t, options, NewDefaultTableRules(GameMode_StandardCommission), "A", "B")
	require.NoError(t, tableEngine.StartRound())
	_, err := tableEngine.SettleRound(RoundOutcome{Winner: Side_Banker})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return tableEngine.VerifyBets() == nil
	}, 3*time.Second, 50*time.Millisecond)
	assert.Equal(t, 2, table.State.GameCount)
}

func TestChipBreakdown(t *testing.T) {
	tableEngine := NewTableEngine(nil)
	breakdown := tableEngine.ChipBreakdown(money("1131"))
	assert.Equal(t, "1x Black, 1x Green, 1x Blue, 1x Red, 1x White", breakdown.String())
}

func TestEndToEnd_AliceBob(t *testing.T) {
	tableEngine, table := newTestEngine(t, nil, NewDefaultTableRules(payout.Mode_StandardCommission), "Alice", "Bob")

	require.NoError(t, tableEngine.StartRound())
	require.NoError(t, tableEngine.SubmitBets(Bets{
		"Alice": {Side: Side_Banker, Amount: money("100")},
		"Bob":   {Side: Side_Player, Amount: money("100")},
	}))
	_, err := tableEngine.SettleRound(RoundOutcome{Winner: Side_Banker})
	require.NoError(t, err)

	assertMoney(t, "1095", table.FindPlayer("Alice").Balance)
	assertMoney(t, "900", table.FindPlayer("Bob").Balance)
}
