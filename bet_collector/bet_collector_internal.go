package bet_collector

import (
	"github.com/weedbox/syncsaga"
)

// startReadyGroup arms a new ready group for this round. Caller holds c.mu.
func (c *betCollector) startReadyGroup(participantIDs []string) {
	completed := make(chan struct{})

	opts := make([]syncsaga.ReadyGroupOpt, 0, 2)
	opts = append(opts, syncsaga.WithCompletedCallback(func(rg *syncsaga.ReadyGroup) {
		c.readyGroupOnCompleted(completed)
	}))
	if c.state.Timeout > 0 {
		opts = append(opts, syncsaga.WithTimeout(c.state.Timeout, func(rg *syncsaga.ReadyGroup) {
			c.readyGroupOnTimeout(rg)
		}))
	}

	rg := syncsaga.NewReadyGroup(opts...)
	for idx := range participantIDs {
		rg.Add(int64(idx), false)
	}

	c.rg = rg
	c.completed = completed
	rg.Start()
}

func (c *betCollector) resetParticipants() {
	c.state.Participants = map[string]*BetCollectorParticipant{}
}

// readyGroupReady caller holds c.mu.
func (c *betCollector) readyGroupReady(participantID string) error {
	if c.state.IsClosed || c.rg == nil {
		return ErrBetsClosed
	}

	participant, exist := c.state.Participants[participantID]
	if !exist {
		return ErrParticipantNotFound
	}

	if participant.IsReady {
		return nil
	}

	participant.IsReady = true
	c.rg.Ready(int64(participant.Index))
	return nil
}

// readyAllPending caller holds c.mu.
func (c *betCollector) readyAllPending(rg *syncsaga.ReadyGroup, autoPassed bool) {
	for _, participant := range c.state.Participants {
		if participant.IsReady {
			continue
		}

		participant.IsReady = true
		participant.IsAutoPassed = autoPassed
		rg.Ready(int64(participant.Index))
	}
}

func (c *betCollector) readyGroupOnTimeout(rg *syncsaga.ReadyGroup) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// stale group from an earlier round
	if c.state.IsClosed || c.rg != rg {
		return
	}

	c.readyAllPending(rg, true)
}

func (c *betCollector) readyGroupOnCompleted(completed chan struct{}) {
	if completed != nil {
		defer close(completed)
	}

	c.mu.Lock()
	if c.state.IsClosed || c.completed != completed {
		c.mu.Unlock()
		return
	}

	c.state.IsClosed = true
	for participantID := range c.state.Participants {
		c.state.Participants[participantID].IsReady = true
	}
	state := c.cloneState()
	c.mu.Unlock()

	c.onBetsClosed(state)
}

func (c *betCollector) cloneState() BetCollectorState {
	state := BetCollectorState{
		Timeout:      c.state.Timeout,
		GameCount:    c.state.GameCount,
		IsClosed:     c.state.IsClosed,
		Participants: make(map[string]*BetCollectorParticipant, len(c.state.Participants)),
	}
	for id, participant := range c.state.Participants {
		p := *participant
		state.Participants[id] = &p
	}
	return state
}
