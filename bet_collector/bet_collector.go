package bet_collector

import (
	"encoding/json"
	"fmt"
)

func NewBetCollector(options BetCollectorOption) BetCollector {
	onBetsClosed := options.OnBetsClosed
	if onBetsClosed == nil {
		onBetsClosed = func(BetCollectorState) {}
	}

	c := &betCollector{
		onBetsClosed: onBetsClosed,
		state: &BetCollectorState{
			Timeout:      options.Timeout,
			GameCount:    0,
			IsClosed:     true,
			Participants: make(map[string]*BetCollectorParticipant),
		},
	}

	return c
}

/*
Setup 開始收集本局下注
  - participantIDs 為本局所有閒家 (莊家不下注)
  - 重複呼叫時，先前的收集作廢並重新開始
  - 所有閒家下注或 Pass 後觸發 OnBetsClosed
  - 設定 Timeout 時，逾時未動作的閒家自動 Pass
*/
func (c *betCollector) Setup(gameCount int, participantIDs []string) {
	c.Stop()

	c.mu.Lock()
	c.state.GameCount = gameCount
	c.state.IsClosed = false
	c.resetParticipants()

	if len(participantIDs) == 0 {
		c.mu.Unlock()
		c.readyGroupOnCompleted(nil)
		return
	}

	for idx, id := range participantIDs {
		c.state.Participants[id] = &BetCollectorParticipant{
			ID:    id,
			Index: idx,
		}
	}
	c.startReadyGroup(participantIDs)
	c.mu.Unlock()
}

func (c *betCollector) Ready(participantID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.readyGroupReady(participantID)
}

/*
Stop 結束本局收集
  - 不觸發 OnBetsClosed
  - 先讓 ready group 完成再停止，確保其背景 goroutine 已結束工作
*/
func (c *betCollector) Stop() {
	c.mu.Lock()
	c.state.IsClosed = true
	rg := c.rg
	completed := c.completed
	if rg != nil {
		c.readyAllPending(rg, false)
	}
	c.rg = nil
	c.completed = nil
	c.mu.Unlock()

	if rg == nil {
		return
	}

	<-completed
	rg.Stop()
}

func (c *betCollector) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.IsClosed
}

func (c *betCollector) GetState() BetCollectorState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cloneState()
}

func (c *betCollector) PrintState() {
	encoded, err := json.Marshal(c.GetState())
	if err != nil {
		fmt.Println("state: nil")
	} else {
		fmt.Println("state:", string(encoded))
	}
}
