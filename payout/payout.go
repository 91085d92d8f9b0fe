package payout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidMode           = errors.New("payout: invalid game mode")
	ErrInvalidTiePayout      = errors.New("payout: tie payout must not be negative")
	ErrInvalidCommissionRate = errors.New("payout: commission rate must be in [0, 1)")
	ErrInvalidSpecialPayout  = errors.New("payout: special payout must be positive")
	ErrUnusedSpecialPayout   = errors.New("payout: special payout is not used by this mode")
)

// Params are the configurable numbers of a rule set. SpecialPayout is the
// Super 6, Dragon 7 or Panda 8 multiplier depending on the mode.
type Params struct {
	TiePayout      decimal.Decimal `json:"tie_payout"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	SpecialPayout  decimal.Decimal `json:"special_payout"`
}

// Resolution is how a single wager ends. For wins the profit is
// amount * Multiplier, the principal is returned on top.
type Resolution struct {
	Kind       ResultKind      `json:"kind"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Reason     string          `json:"reason,omitempty"`
}

// Profit returns the signed balance change for a wager of amount.
func (r Resolution) Profit(amount decimal.Decimal) decimal.Decimal {
	switch r.Kind {
	case Result_Win:
		return amount.Mul(r.Multiplier)
	case Result_Loss:
		return amount.Neg()
	default:
		return decimal.Zero
	}
}

type Rule interface {
	Mode() Mode
	Params() Params
	Resolve(side Side, winner Side, trigger bool) Resolution // resolve one wager against the round winner
	WaivesBankerCommission() bool                            // player banker keeps the full gross win
	TriggerName() string                                     // name of the special condition, empty if none
}

func NewRule(mode Mode, params Params) (Rule, error) {
	if err := ValidateParams(mode, params); err != nil {
		return nil, err
	}

	base := baseRule{mode: mode, params: params}
	switch mode {
	case Mode_StandardCommission, Mode_RotatingBanker:
		return &commissionRule{baseRule: base}, nil
	case Mode_Super6:
		return &super6Rule{baseRule: base}, nil
	case Mode_EZBaccarat:
		return &ezBaccaratRule{baseRule: base}, nil
	case Mode_Dragon7:
		return &dragon7Rule{baseRule: base}, nil
	case Mode_Panda8:
		return &panda8Rule{baseRule: base}, nil
	}

	return nil, ErrInvalidMode
}

func ValidateParams(mode Mode, params Params) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	if params.TiePayout.IsNegative() {
		return ErrInvalidTiePayout
	}

	if params.CommissionRate.IsNegative() || params.CommissionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidCommissionRate
	}

	if mode.UsesSpecialPayout() {
		if !params.SpecialPayout.IsPositive() {
			return ErrInvalidSpecialPayout
		}
	} else if !params.SpecialPayout.IsZero() {
		return fmt.Errorf("%w: %s", ErrUnusedSpecialPayout, mode.DisplayName())
	}

	return nil
}

// DefaultParams returns the house defaults for a mode.
func DefaultParams(mode Mode) Params {
	params := Params{
		TiePayout:      decimal.NewFromInt(8),
		CommissionRate: decimal.NewFromFloat(0.05),
		SpecialPayout:  decimal.Zero,
	}

	switch mode {
	case Mode_Super6:
		params.SpecialPayout = decimal.NewFromFloat(0.5)
	case Mode_Dragon7:
		params.SpecialPayout = decimal.NewFromInt(40)
	case Mode_Panda8:
		params.SpecialPayout = decimal.NewFromInt(25)
	}

	return params
}
