package seat_manager

import (
	"github.com/thoas/go-funk"
)

func validateRoster(playerIDs []string) error {
	if len(playerIDs) == 0 {
		return ErrEmptyRoster
	}

	if funk.ContainsString(playerIDs, "") {
		return ErrEmptyPlayerID
	}

	if len(funk.UniqString(playerIDs)) != len(playerIDs) {
		return ErrDuplicatePlayers
	}

	return nil
}

func (sm *seatManager) getSeatID(playerID string) (int, error) {
	for seatID, id := range sm.seats {
		if id == playerID {
			return seatID, nil
		}
	}
	return UnsetSeatID, ErrPlayerNotFound
}

func (sm *seatManager) nextSeatID(seatID int) int {
	return (seatID + 1) % len(sm.seats)
}
