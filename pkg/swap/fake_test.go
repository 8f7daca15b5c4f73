package swap

import (
	"context"
	"fmt"

	"github.com/aviate-labs/agent-go/principal"
)

type fakeCall struct {
	canister string
	method   string
	args     []any
}

// fakeClient scripts canister responses per "canisterID/method" key and
// records every call so tests can assert on call counts and arguments.
type fakeClient struct {
	handlers map[string]func(args, out []any) error
	calls    []fakeCall
	caller   principal.Principal
}

func newFakeClient() *fakeClient {
	return &fakeClient{handlers: make(map[string]func(args, out []any) error)}
}

func (f *fakeClient) on(canisterID, method string, h func(args, out []any) error) {
	f.handlers[canisterID+"/"+method] = h
}

// respond scripts a handler that writes a fixed reply into out[0].
func respond[T any](v T) func(args, out []any) error {
	return func(_, out []any) error {
		*(out[0].(*T)) = v
		return nil
	}
}

func (f *fakeClient) dispatch(canisterID, method string, args, out []any) error {
	f.calls = append(f.calls, fakeCall{canister: canisterID, method: method, args: args})
	h, ok := f.handlers[canisterID+"/"+method]
	if !ok {
		return fmt.Errorf("unexpected call to %s/%s", canisterID, method)
	}
	return h(args, out)
}

func (f *fakeClient) Query(_ context.Context, canisterID, method string, args, out []any) error {
	return f.dispatch(canisterID, method, args, out)
}

func (f *fakeClient) Call(_ context.Context, canisterID, method string, args, out []any) error {
	return f.dispatch(canisterID, method, args, out)
}

func (f *fakeClient) Caller() principal.Principal {
	return f.caller
}

func (f *fakeClient) count(method string) int {
	n := 0
	for _, c := range f.calls {
		if c.method == method {
			n++
		}
	}
	return n
}

func (f *fakeClient) lastArgs(method string) []any {
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].method == method {
			return f.calls[i].args
		}
	}
	return nil
}
