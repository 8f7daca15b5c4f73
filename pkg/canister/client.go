package canister

import (
	"context"

	"github.com/aviate-labs/agent-go/principal"
)

// Client is the narrow surface the swap engines need from an Internet
// Computer agent: invoke a named method on a named canister with typed
// arguments. The concrete transport and candid encoding live behind this
// interface, so engines can be exercised against scripted fakes.
type Client interface {
	// Query performs a read-only call.
	Query(ctx context.Context, canisterID, method string, args []any, out []any) error
	// Call performs a state-mutating call and waits for certification.
	Call(ctx context.Context, canisterID, method string, args []any, out []any) error
	// Caller returns the principal the client signs requests with.
	Caller() principal.Principal
}
