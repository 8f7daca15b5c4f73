package amount

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ToBaseUnits scales a human-readable token amount into the integer
// base-unit representation the ledger uses: floor(amount * 10^decimals).
// Fractional base units are truncated, never rounded up, so the result
// can never exceed what the user asked for.
func ToBaseUnits(amt string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(amt)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amt, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative: %s", amt)
	}
	return d.Mul(decimal.New(1, int32(decimals))).BigInt(), nil
}

// WithFee adds the ledger transfer fee on top of a base-unit amount.
func WithFee(baseUnits, fee *big.Int) *big.Int {
	return new(big.Int).Add(baseUnits, fee)
}

// FromBaseUnits converts a base-unit quantity back to a human-readable
// decimal amount for display.
func FromBaseUnits(baseUnits *big.Int, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(baseUnits, -int32(decimals))
}
