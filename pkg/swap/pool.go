package swap

import (
	"context"

	"github.com/aviate-labs/agent-go/candid/idl"
	"github.com/aviate-labs/agent-go/principal"

	"ic-swap/pkg/canister"
)

// DefaultICPSwapFactoryID is the ICPSwap swap factory canister on mainnet.
const DefaultICPSwapFactoryID = "4mmnk-kiaaa-aaaag-qbllq-cai"

// TokenRef identifies one side of a pool.
type TokenRef struct {
	Address  string `ic:"address"`
	Standard string `ic:"standard"`
}

// Pool is an ICPSwap liquidity pool record. A pool is undirected with
// respect to token order; swap direction is derived per request.
type Pool struct {
	Fee        idl.Nat             `ic:"fee"`
	Key        string              `ic:"key"`
	Token0     TokenRef            `ic:"token0"`
	Token1     TokenRef            `ic:"token1"`
	CanisterID principal.Principal `ic:"canisterId"`
}

// venueError is the error variant shared by the ICPSwap factory and pool
// canisters.
type venueError struct {
	CommonError       *idl.Null `ic:"CommonError,variant"`
	InternalError     *string   `ic:"InternalError,variant"`
	UnsupportedToken  *string   `ic:"UnsupportedToken,variant"`
	InsufficientFunds *idl.Null `ic:"InsufficientFunds,variant"`
}

func (e venueError) String() string {
	switch {
	case e.InternalError != nil:
		return *e.InternalError
	case e.UnsupportedToken != nil:
		return "unsupported token: " + *e.UnsupportedToken
	case e.InsufficientFunds != nil:
		return "insufficient funds"
	case e.CommonError != nil:
		return "common error"
	}
	return "unknown venue error"
}

// PoolLocator finds the liquidity pool trading a given token pair by
// listing the factory's pools. No pagination, no caching; a missing pool
// is a hard failure.
type PoolLocator struct {
	client    canister.Client
	factoryID string
}

// NewPoolLocator creates a locator against the given swap factory.
func NewPoolLocator(client canister.Client, factoryID string) *PoolLocator {
	if factoryID == "" {
		factoryID = DefaultICPSwapFactoryID
	}
	return &PoolLocator{client: client, factoryID: factoryID}
}

// FindPool returns the first pool trading the pair, in either token order.
func (l *PoolLocator) FindPool(ctx context.Context, tokenA, tokenB string) (*Pool, error) {
	var res canister.LowerResult[[]Pool, venueError]
	if err := l.client.Query(ctx, l.factoryID, "getPools", nil, []any{&res}); err != nil {
		return nil, errf(CodeRemoteCallFailed, "failed to list pools: %v", err)
	}
	pools, err := res.Unwrap()
	if err != nil {
		return nil, errf(CodeRemoteCallFailed, "failed to list pools: %v", err)
	}

	for i := range *pools {
		p := &(*pools)[i]
		if (p.Token0.Address == tokenA && p.Token1.Address == tokenB) ||
			(p.Token0.Address == tokenB && p.Token1.Address == tokenA) {
			return p, nil
		}
	}
	return nil, errf(CodePoolNotFound, "no liquidity pool found for %s/%s", tokenA, tokenB)
}
