package payout

type Side string

const (
	Side_Banker Side = "banker"
	Side_Player Side = "player"
	Side_Tie    Side = "tie"
)

type Mode string

const (
	Mode_StandardCommission Mode = "standard_commission" // Punto Banco, house banked
	Mode_RotatingBanker     Mode = "rotating_banker"     // Chemin de Fer, player banked
	Mode_Super6             Mode = "super_6"             // banker wins with a 6 pay a fraction
	Mode_EZBaccarat         Mode = "ez_baccarat"         // banker wins with a 3-card 7 push
	Mode_Dragon7            Mode = "dragon_7"            // banker wins with a 3-card 7 pay the dragon multiplier
	Mode_Panda8             Mode = "panda_8"             // player wins with a 3-card 8 pay the panda multiplier
)

type ResultKind string

const (
	Result_Win  ResultKind = "win"
	Result_Push ResultKind = "push"
	Result_Loss ResultKind = "loss"
)

var (
	SupportedSides = []Side{Side_Banker, Side_Player, Side_Tie}
	SupportedModes = []Mode{
		Mode_StandardCommission,
		Mode_RotatingBanker,
		Mode_Super6,
		Mode_EZBaccarat,
		Mode_Dragon7,
		Mode_Panda8,
	}
)

func (s Side) Valid() bool {
	for _, side := range SupportedSides {
		if s == side {
			return true
		}
	}
	return false
}

func (m Mode) Valid() bool {
	for _, mode := range SupportedModes {
		if m == mode {
			return true
		}
	}
	return false
}

// DisplayName is the table name players know the mode by.
func (m Mode) DisplayName() string {
	switch m {
	case Mode_StandardCommission:
		return "Punto Banco"
	case Mode_RotatingBanker:
		return "Chemin de Fer"
	case Mode_Super6:
		return "Super 6"
	case Mode_EZBaccarat:
		return "EZ Baccarat"
	case Mode_Dragon7:
		return "Dragon 7"
	case Mode_Panda8:
		return "Panda 8"
	default:
		return string(m)
	}
}

// UsesSpecialPayout reports whether the mode reads Params.SpecialPayout.
func (m Mode) UsesSpecialPayout() bool {
	return m == Mode_Super6 || m == Mode_Dragon7 || m == Mode_Panda8
}

// IsRotatingBanker reports whether a seated player banks the table.
func (m Mode) IsRotatingBanker() bool {
	return m == Mode_RotatingBanker
}

func (s Side) DisplayName() string {
	switch s {
	case Side_Banker:
		return "Banker"
	case Side_Player:
		return "Player"
	case Side_Tie:
		return "Tie"
	default:
		return string(s)
	}
}
