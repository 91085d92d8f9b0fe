package chips

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdown_OneOfEach(t *testing.T) {
	bd := NewBreakdown(decimal.RequireFromString("1131.00"))

	assert.Equal(t, []Stack{
		{Count: 1, Label: "Black"},
		{Count: 1, Label: "Green"},
		{Count: 1, Label: "Blue"},
		{Count: 1, Label: "Red"},
		{Count: 1, Label: "White"},
	}, bd.Stacks)
	assert.True(t, bd.Remainder.IsZero())
	assert.Equal(t, "1x Black, 1x Green, 1x Blue, 1x Red, 1x White", bd.String())
}

func TestBreakdown_Remainder(t *testing.T) {
	bd := NewBreakdown(decimal.RequireFromString("195.5"))

	assert.Equal(t, []Stack{
		{Count: 1, Label: "Green"},
		{Count: 3, Label: "Blue"},
		{Count: 4, Label: "Red"},
	}, bd.Stacks)
	assert.Equal(t, "0.50", bd.Remainder.StringFixed(2))
	assert.Equal(t, "1x Green, 3x Blue, 4x Red, $0.50 (Coins)", bd.String())
}

func TestBreakdown_RoundsToCents(t *testing.T) {
	bd := NewBreakdown(decimal.RequireFromString("0.004"))
	assert.True(t, bd.IsEmpty())

	bd = NewBreakdown(decimal.RequireFromString("2.999"))
	assert.Equal(t, []Stack{{Count: 3, Label: "White"}}, bd.Stacks)
	assert.True(t, bd.Remainder.IsZero())
}

func TestBreakdown_NonPositive(t *testing.T) {
	assert.True(t, NewBreakdown(decimal.Zero).IsEmpty())
	assert.True(t, NewBreakdown(decimal.NewFromInt(-25)).IsEmpty())
	assert.Equal(t, "", NewBreakdown(decimal.NewFromInt(-25)).String())
}

func TestNewBreakdowner(t *testing.T) {
	_, err := NewBreakdowner(nil)
	assert.ErrorIs(t, err, ErrEmptyDenominations)

	_, err = NewBreakdowner([]Denomination{
		{Value: decimal.NewFromInt(5), Label: "Red"},
		{Value: decimal.NewFromInt(25), Label: "Blue"},
	})
	assert.ErrorIs(t, err, ErrUnorderedDenominations)

	_, err = NewBreakdowner([]Denomination{{Value: decimal.Zero, Label: "Nothing"}})
	assert.ErrorIs(t, err, ErrInvalidDenomination)

	b, err := NewBreakdowner([]Denomination{
		{Value: decimal.NewFromInt(500), Label: "Purple"},
		{Value: decimal.NewFromInt(1), Label: "White"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2x Purple, 3x White", b.Breakdown(decimal.NewFromInt(1003)).String())
}
