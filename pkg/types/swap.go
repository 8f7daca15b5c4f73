package types

import "math/big"

// Platform identifies a swap venue on the Internet Computer
type Platform string

const (
	PlatformKongSwap Platform = "kongswap"
	PlatformICPSwap  Platform = "icpswap"
)

// SwapRequest represents a user's swap command
type SwapRequest struct {
	Amount    string
	FromToken string
	ToToken   string
	Platform  Platform
}

// Token is a token record resolved from the registry
type Token struct {
	Symbol     string
	Name       string
	CanisterID string
	Metrics    TokenMetrics
}

// TokenMetrics holds the market data the registry publishes per token
type TokenMetrics struct {
	Price          string
	PriceChange24h string
	MarketCap      string
	Volume24h      string
	UpdatedAt      string
}

// SwapReceipt is the result of a completed swap. KongSwap reports both
// amounts plus price and slippage; ICPSwap's withdraw step only reports
// the destination-side amount, so the other fields stay zero there.
type SwapReceipt struct {
	Platform        Platform
	TxID            string
	FromAmount      *big.Int
	ToAmount        *big.Int
	Price           float64
	SlippagePercent float64
}
