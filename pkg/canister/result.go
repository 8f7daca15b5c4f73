package canister

import "fmt"

// Canisters on the IC reply with a two-armed success/failure envelope.
// The arm casing differs between services: ICRC ledgers and KongSwap use
// Ok/Err, the ICPSwap canisters use ok/err. Both unwrap the same way.

// Result is the Ok/Err envelope used by ICRC ledgers and KongSwap.
type Result[T, E any] struct {
	Ok  *T `ic:"Ok,variant"`
	Err *E `ic:"Err,variant"`
}

// Unwrap returns the success payload or an error carrying the remote
// detail rendered through %v.
func (r Result[T, E]) Unwrap() (*T, error) {
	if r.Err != nil {
		return nil, fmt.Errorf("%v", *r.Err)
	}
	if r.Ok == nil {
		return nil, fmt.Errorf("empty result envelope")
	}
	return r.Ok, nil
}

// LowerResult is the ok/err envelope used by the ICPSwap factory and
// pool canisters.
type LowerResult[T, E any] struct {
	Ok  *T `ic:"ok,variant"`
	Err *E `ic:"err,variant"`
}

// Unwrap returns the success payload or an error carrying the remote
// detail rendered through %v.
func (r LowerResult[T, E]) Unwrap() (*T, error) {
	if r.Err != nil {
		return nil, fmt.Errorf("%v", *r.Err)
	}
	if r.Ok == nil {
		return nil, fmt.Errorf("empty result envelope")
	}
	return r.Ok, nil
}
