package testcases

import (
	"fmt"
	"time"

	"github.com/weedbox/baccarattable"
)

func DebugPrintRoundSettled(table baccarattable.Table, result *baccarattable.RoundResult) {
	timeString := func(timestamp int64) string {
		return time.Unix(timestamp, 0).Format("2006-01-02 15:04:05")
	}

	fmt.Printf("---------- 第 (%d) 局結算 ----------\n", result.GameCount)
	fmt.Println("[Table ID] ", table.ID)
	fmt.Println("[Table StartAt] ", timeString(table.State.StartAt))
	fmt.Println("[Winner] ", result.Winner.DisplayName())
	fmt.Println("[Banker] ", result.Banker)
	for _, line := range result.Lines {
		fmt.Println("  ", line)
	}
	fmt.Println("[Balances]")
	for _, player := range table.State.PlayerStates {
		fmt.Printf("seat: %d, player: %s, balance: %s\n", player.Seat, player.PlayerID, player.Balance.StringFixed(2))
	}
	fmt.Printf("[Bank Limit] %s, [Next Banker] %s\n", table.State.BankLimit.StringFixed(2), result.NextBanker)
	fmt.Println("---------------------------------")
}
