package money_test

import (
	"math"
	"testing"

	"github.com/ledgerd/bankcore/pkg/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr error
	}{
		{name: "whole units", input: "100", want: 10000},
		{name: "with fraction", input: "42.50", want: 4250},
		{name: "short fraction is padded", input: "4.5", want: 450},
		{name: "zero", input: "0", want: 0},
		{name: "fraction only", input: ".07", want: 7},
		{name: "negative", input: "-12.05", want: -1205},
		{name: "explicit plus", input: "+3.00", want: 300},
		{name: "surrounding spaces", input: " 8.10 ", want: 810},
		{name: "empty", input: "", wantErr: money.ErrInvalidAmount},
		{name: "bare dot", input: ".", wantErr: money.ErrInvalidAmount},
		{name: "not a number", input: "ten", wantErr: money.ErrInvalidAmount},
		{name: "too many fraction digits", input: "1.005", wantErr: money.ErrInvalidAmount},
		{name: "overflow", input: "92233720368547758.08", wantErr: money.ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.MinorUnits())
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "100.00", money.MustParse("100").String())
	assert.Equal(t, "-12.05", money.MustParse("-12.05").String())
	assert.Equal(t, "0.07", money.NewFromMinorUnits(7).String())
	assert.Equal(t, "0.00", money.Zero.String())
}

func TestAddSub(t *testing.T) {
	a := money.MustParse("100.25")
	b := money.MustParse("0.75")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(10100), sum.MinorUnits())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(9950), diff.MinorUnits())
}

func TestAddOverflow(t *testing.T) {
	huge := money.NewFromMinorUnits(math.MaxInt64)
	_, err := huge.Add(money.NewFromMinorUnits(1))
	require.ErrorIs(t, err, money.ErrOverflow)

	tiny := money.NewFromMinorUnits(math.MinInt64)
	_, err = tiny.Sub(money.NewFromMinorUnits(1))
	require.ErrorIs(t, err, money.ErrOverflow)
}

func TestComparisons(t *testing.T) {
	small := money.MustParse("1")
	big := money.MustParse("2")

	assert.Equal(t, -1, small.Cmp(big))
	assert.Equal(t, 1, big.Cmp(small))
	assert.Equal(t, 0, small.Cmp(money.NewFromMinorUnits(100)))

	assert.True(t, small.IsPositive())
	assert.False(t, money.Zero.IsPositive())
	assert.True(t, money.MustParse("-1").IsNegative())
	assert.True(t, money.Zero.IsZero())
	assert.True(t, small.Equals(money.MustParse("1.00")))
}
