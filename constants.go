package baccarattable

import (
	"github.com/weedbox/baccarattable/payout"
)

type GameMode = payout.Mode

type Side = payout.Side

const (
	// General
	UnsetValue = -1

	// Banker
	HouseBanker = "House"

	// GameMode
	GameMode_StandardCommission = payout.Mode_StandardCommission // 抽水百家樂 (莊家為賭場)
	GameMode_RotatingBanker     = payout.Mode_RotatingBanker     // 輪莊 (Chemin de Fer)
	GameMode_Super6             = payout.Mode_Super6             // 超級六
	GameMode_EZBaccarat         = payout.Mode_EZBaccarat         // 免抽水 (Dragon 7 和局)
	GameMode_Dragon7            = payout.Mode_Dragon7            // 龍七
	GameMode_Panda8             = payout.Mode_Panda8             // 熊貓八

	// Side
	Side_Banker = payout.Side_Banker
	Side_Player = payout.Side_Player
	Side_Tie    = payout.Side_Tie
)
