// Package swap orchestrates token swaps across the KongSwap and ICPSwap
// venues. Engines sequence the venue-specific remote-call protocol; the
// dispatcher validates requests and routes them to the right engine.
package swap

import (
	"context"
	"fmt"

	"ic-swap/pkg/types"
)

// Engine executes the venue-specific swap protocol for already-resolved
// tokens. Every invocation is independent; engines hold no per-swap state.
type Engine interface {
	Swap(ctx context.Context, req *types.SwapRequest, from, to *types.Token) (*types.SwapReceipt, error)
}

// ProgressFunc receives advisory phase-start notifications. Callers may
// surface them to the user; they carry no contractual guarantee.
type ProgressFunc func(message string)

func notify(fn ProgressFunc, format string, args ...any) {
	if fn != nil {
		fn(fmt.Sprintf(format, args...))
	}
}
