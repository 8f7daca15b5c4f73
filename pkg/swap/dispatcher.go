package swap

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"ic-swap/pkg/tokens"
	"ic-swap/pkg/types"
)

// TokenResolver resolves a symbol or name fragment to a registry token.
type TokenResolver interface {
	Resolve(ctx context.Context, fragment string) (*types.Token, error)
}

// Dispatcher validates swap requests and routes them to the engine for
// the requested venue. Validation failures never touch the network.
type Dispatcher struct {
	resolver TokenResolver
	engines  map[types.Platform]Engine
}

// NewDispatcher creates a dispatcher over the given engines.
func NewDispatcher(resolver TokenResolver, engines map[types.Platform]Engine) *Dispatcher {
	return &Dispatcher{resolver: resolver, engines: engines}
}

// Execute validates the request, resolves both tokens, and runs the swap
// on the requested platform.
func (d *Dispatcher) Execute(ctx context.Context, req *types.SwapRequest) (*types.SwapReceipt, error) {
	if req.Platform == "" {
		return nil, errf(CodePlatformRequired, "please specify which platform to use (kongswap or icpswap)")
	}
	engine, ok := d.engines[req.Platform]
	if !ok {
		return nil, errf(CodeUnknownPlatform, "unknown platform %q, use either kongswap or icpswap", req.Platform)
	}

	amt, err := decimal.NewFromString(req.Amount)
	if err != nil || !amt.IsPositive() {
		return nil, errf(CodeInvalidAmount, "amount must be a positive number, got %q", req.Amount)
	}

	from, err := d.resolver.Resolve(ctx, req.FromToken)
	if err != nil {
		return nil, resolveError(req.FromToken, err)
	}
	to, err := d.resolver.Resolve(ctx, req.ToToken)
	if err != nil {
		return nil, resolveError(req.ToToken, err)
	}

	return engine.Swap(ctx, req, from, to)
}

func resolveError(fragment string, err error) *Error {
	if errors.Is(err, tokens.ErrNotFound) {
		return errf(CodeTokenNotFound, "could not find token %q", fragment)
	}
	return errf(CodeRemoteCallFailed, "failed to resolve token %q: %v", fragment, err)
}
