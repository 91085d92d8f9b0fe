package chips

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyDenominations     = errors.New("chips: no denominations")
	ErrInvalidDenomination    = errors.New("chips: denomination must be positive")
	ErrUnorderedDenominations = errors.New("chips: denominations must be strictly descending")
)

type Denomination struct {
	Value decimal.Decimal `json:"value"`
	Label string          `json:"label"`
}

type Stack struct {
	Count int64  `json:"count"`
	Label string `json:"label"`
}

type Breakdown struct {
	Stacks    []Stack         `json:"stacks"`
	Remainder decimal.Decimal `json:"remainder"` // sub-unit amount paid in coins
}

// DefaultDenominations is the table's chip set, largest first.
var DefaultDenominations = []Denomination{
	{Value: decimal.NewFromInt(1000), Label: "Black"},
	{Value: decimal.NewFromInt(100), Label: "Green"},
	{Value: decimal.NewFromInt(25), Label: "Blue"},
	{Value: decimal.NewFromInt(5), Label: "Red"},
	{Value: decimal.NewFromInt(1), Label: "White"},
}

var defaultBreakdowner = &Breakdowner{denominations: DefaultDenominations}

// Breakdowner decomposes amounts greedily. The greedy result is only minimal
// for canonical chip sets, which the default set is.
type Breakdowner struct {
	denominations []Denomination
}

func NewBreakdowner(denominations []Denomination) (*Breakdowner, error) {
	if len(denominations) == 0 {
		return nil, ErrEmptyDenominations
	}

	for i, denom := range denominations {
		if !toCents(denom.Value).IsPositive() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDenomination, denom.Label)
		}
		if i > 0 && !denom.Value.LessThan(denominations[i-1].Value) {
			return nil, ErrUnorderedDenominations
		}
	}

	return &Breakdowner{denominations: denominations}, nil
}

// NewBreakdown breaks amount down with the default chip set.
func NewBreakdown(amount decimal.Decimal) Breakdown {
	return defaultBreakdowner.Breakdown(amount)
}

func (b *Breakdowner) Breakdown(amount decimal.Decimal) Breakdown {
	result := Breakdown{
		Stacks:    make([]Stack, 0),
		Remainder: decimal.Zero,
	}

	if !amount.IsPositive() {
		return result
	}

	// work in integer cents to avoid drift
	cents := toCents(amount).IntPart()
	for _, denom := range b.denominations {
		chipCents := toCents(denom.Value).IntPart()
		count := cents / chipCents
		if count > 0 {
			result.Stacks = append(result.Stacks, Stack{Count: count, Label: denom.Label})
			cents %= chipCents
		}
	}

	if cents > 0 {
		result.Remainder = decimal.New(cents, -2)
	}

	return result
}

func (bd Breakdown) IsEmpty() bool {
	return len(bd.Stacks) == 0 && bd.Remainder.IsZero()
}

// String renders "1x Black, 2x Red, $0.50 (Coins)".
func (bd Breakdown) String() string {
	parts := make([]string, 0, len(bd.Stacks)+1)
	for _, stack := range bd.Stacks {
		parts = append(parts, fmt.Sprintf("%dx %s", stack.Count, stack.Label))
	}
	if bd.Remainder.IsPositive() {
		parts = append(parts, fmt.Sprintf("$%s (Coins)", bd.Remainder.StringFixed(2)))
	}
	return strings.Join(parts, ", ")
}

func toCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(100)).Round(0)
}
