package stablecoin

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		amount   string
		decimals uint8
		want     uint64
		err      error
	}{
		{"1", 6, 1_000_000, nil},
		{"0.4", 6, 400_000, nil},
		{"0.000001", 6, 1, nil},
		{"600000", 0, 600_000, nil},
		{"0", 9, 0, nil},
		{"18446744073709551615", 0, 18446744073709551615, nil},
		{"0.0000001", 6, 0, ErrAmountPrecision},
		{"-1", 6, 0, ErrNegativeAmount},
		{"18446744073709.551616", 6, 0, ErrAmountOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got, err := ToBaseUnits(decimal.RequireFromString(tt.amount), tt.decimals)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToUIAmount(t *testing.T) {
	assert.Equal(t, "0.6", ToUIAmount(600_000, 6).String())
	assert.Equal(t, "1", ToUIAmount(1_000_000, 6).String())
	assert.Equal(t, "42", ToUIAmount(42, 0).String())

	back, err := ToBaseUnits(ToUIAmount(123_456_789, 9), 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(123_456_789), back)
}
