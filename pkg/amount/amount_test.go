package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint8
		want     string
	}{
		{"whole amount", "100", 8, "10000000000"},
		{"exact fraction", "1.23456789", 8, "123456789"},
		{"ninth digit truncated not rounded", "1.234567891", 8, "123456789"},
		{"truncation never rounds up", "0.999999999", 8, "99999999"},
		{"zero decimals", "42.9", 0, "42"},
		{"high decimals token", "1.5", 18, "1500000000000000000"},
		{"zero", "0", 8, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBaseUnits(tt.amount, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestToBaseUnitsRejectsBadInput(t *testing.T) {
	_, err := ToBaseUnits("not-a-number", 8)
	assert.Error(t, err)

	_, err = ToBaseUnits("-1", 8)
	assert.Error(t, err)
}

func TestWithFee(t *testing.T) {
	base := big.NewInt(10000000000)
	fee := big.NewInt(10000)
	assert.Equal(t, "10000010000", WithFee(base, fee).String())

	// inputs must not be mutated
	assert.Equal(t, "10000000000", base.String())
}

func TestFromBaseUnits(t *testing.T) {
	got := FromBaseUnits(big.NewInt(123456789), 8)
	assert.Equal(t, "1.23456789", got.String())
}
