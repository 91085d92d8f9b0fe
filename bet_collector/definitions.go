package bet_collector

import (
	"errors"
	"sync"

	"github.com/weedbox/syncsaga"
)

var (
	ErrParticipantNotFound = errors.New("bet_collector: participant not found")
	ErrBetsClosed          = errors.New("bet_collector: bets are closed")
)

type BetCollector interface {
	Setup(gameCount int, participantIDs []string)
	Ready(participantID string) error
	Stop()
	IsClosed() bool
	GetState() BetCollectorState
	PrintState()
}

type betCollector struct {
	onBetsClosed func(state BetCollectorState)
	rg           *syncsaga.ReadyGroup
	completed    chan struct{} // closed once the current ready group reports completion
	state        *BetCollectorState
	mu           sync.Mutex
}

type BetCollectorOption struct {
	Timeout      int // seconds, 0 waits for every punter
	OnBetsClosed func(state BetCollectorState)
}

type BetCollectorState struct {
	Timeout      int                                 `json:"timeout"`
	GameCount    int                                 `json:"game_count"`
	IsClosed     bool                                `json:"is_closed"`
	Participants map[string]*BetCollectorParticipant `json:"participants"` // key: player_id, value: participant
}

type BetCollectorParticipant struct {
	ID           string `json:"id"`
	Index        int    `json:"index"`
	IsReady      bool   `json:"is_ready"`
	IsAutoPassed bool   `json:"is_auto_passed"` // timed out without betting
}
