package seat_manager

import (
	"errors"
)

var (
	ErrEmptyRoster       = errors.New("seat manager: roster is empty")
	ErrEmptyPlayerID     = errors.New("seat manager: player id is empty")
	ErrPlayerNotFound    = errors.New("seat manager: player not found")
	ErrDuplicatePlayers  = errors.New("seat manager: duplicate players detected")
	ErrInvalidBankerSeat = errors.New("seat manager: banker seat is out of range")
)

type SeatManager interface {
	GetSeatID(playerID string) (int, error)
	RotateBanker() string
	Seats() []string
	BankerSeatID() int
	BankerPlayerID() string
	IsBanker(playerID string) bool
	ListPunterSeats() []string
}

/*
NewSeatManager 依照入座順序建立座位
  - 座位順序即名單順序，不可為空、不可重複
  - 第一個座位為起始莊家
*/
func NewSeatManager(playerIDs []string) (SeatManager, error) {
	return NewSeatManagerFromState(playerIDs, 0)
}

func NewSeatManagerFromState(playerIDs []string, bankerSeatID int) (SeatManager, error) {
	if err := validateRoster(playerIDs); err != nil {
		return nil, err
	}

	if bankerSeatID < 0 || bankerSeatID >= len(playerIDs) {
		return nil, ErrInvalidBankerSeat
	}

	seats := make([]string, len(playerIDs))
	copy(seats, playerIDs)

	return &seatManager{
		seats:        seats,
		bankerSeatID: bankerSeatID,
	}, nil
}
