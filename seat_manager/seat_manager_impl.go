package seat_manager

import (
	"sync"
)

type seatManager struct {
	seats        []string // index: seat id, value: player id
	bankerSeatID int
	mu           sync.RWMutex
}

func (sm *seatManager) GetSeatID(playerID string) (int, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.getSeatID(playerID)
}

// RotateBanker passes the shoe to the next seat and returns the new banker.
func (sm *seatManager) RotateBanker() string {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.seats) == 0 {
		return ""
	}

	sm.bankerSeatID = sm.nextSeatID(sm.bankerSeatID)
	return sm.seats[sm.bankerSeatID]
}

func (sm *seatManager) Seats() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	seats := make([]string, len(sm.seats))
	copy(seats, sm.seats)
	return seats
}

func (sm *seatManager) BankerSeatID() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.bankerSeatID
}

func (sm *seatManager) BankerPlayerID() string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if len(sm.seats) == 0 {
		return ""
	}
	return sm.seats[sm.bankerSeatID]
}

func (sm *seatManager) IsBanker(playerID string) bool {
	return sm.BankerPlayerID() == playerID
}

// ListPunterSeats returns every seated player except the banker, in seating order.
func (sm *seatManager) ListPunterSeats() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	punters := make([]string, 0, len(sm.seats))
	for seatID, playerID := range sm.seats {
		if seatID == sm.bankerSeatID {
			continue
		}
		punters = append(punters, playerID)
	}
	return punters
}
