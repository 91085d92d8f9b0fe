package seat_manager

import "fmt"

func DebugPrintSeats(msg string, sm SeatManager) {
	fmt.Printf("[%s] Banker: %d\n", msg, sm.BankerSeatID())
	for seatID, playerID := range sm.Seats() {
		fmt.Printf("Seat %d is occupied by %s. IsBanker: %t\n", seatID, playerID, sm.IsBanker(playerID))
	}
}
