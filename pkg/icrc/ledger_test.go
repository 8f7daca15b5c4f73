package icrc

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/aviate-labs/agent-go/candid/idl"
	"github.com/aviate-labs/agent-go/principal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ic-swap/pkg/canister"
)

type scriptedClient struct {
	handlers map[string]func(args, out []any) error
}

func (c *scriptedClient) on(method string, h func(args, out []any) error) {
	c.handlers[method] = h
}

func (c *scriptedClient) dispatch(method string, args, out []any) error {
	h, ok := c.handlers[method]
	if !ok {
		return fmt.Errorf("unexpected call to %s", method)
	}
	return h(args, out)
}

func (c *scriptedClient) Query(_ context.Context, _, method string, args, out []any) error {
	return c.dispatch(method, args, out)
}

func (c *scriptedClient) Call(_ context.Context, _, method string, args, out []any) error {
	return c.dispatch(method, args, out)
}

func (c *scriptedClient) Caller() principal.Principal {
	return principal.AnonymousID
}

func newScriptedClient() *scriptedClient {
	return &scriptedClient{handlers: make(map[string]func(args, out []any) error)}
}

func TestLedgerReads(t *testing.T) {
	client := newScriptedClient()
	client.on("icrc1_decimals", func(_, out []any) error {
		*(out[0].(*uint8)) = 8
		return nil
	})
	client.on("icrc1_fee", func(_, out []any) error {
		*(out[0].(*idl.Nat)) = idl.NewBigNat(big.NewInt(10000))
		return nil
	})
	client.on("icrc1_balance_of", func(args, out []any) error {
		account := args[0].(Account)
		assert.Equal(t, principal.AnonymousID, account.Owner)
		*(out[0].(*idl.Nat)) = idl.NewBigNat(big.NewInt(123456))
		return nil
	})

	ledger := NewLedger(client, "ryjl3-tyaaa-aaaaa-aaaba-cai")

	decimals, err := ledger.Decimals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint8(8), decimals)

	fee, err := ledger.Fee(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10000", fee.String())

	balance, err := ledger.BalanceOf(context.Background(), client.Caller())
	require.NoError(t, err)
	assert.Equal(t, "123456", balance.String())
}

func TestApproveRejectionIsDistinguishable(t *testing.T) {
	client := newScriptedClient()
	client.on("icrc2_approve", func(_, out []any) error {
		*(out[0].(*canister.Result[idl.Nat, ApproveError])) = canister.Result[idl.Nat, ApproveError]{
			Err: &ApproveError{
				InsufficientFunds: &InsufficientFundsError{Balance: idl.NewBigNat(big.NewInt(42))},
			},
		}
		return nil
	})

	ledger := NewLedger(client, "ryjl3-tyaaa-aaaaa-aaaba-cai")
	err := ledger.Approve(context.Background(), principal.AnonymousID, big.NewInt(1000))

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "insufficient funds, balance is 42 base units", rejection.Detail)
}

func TestApproveTransportFailureIsNotARejection(t *testing.T) {
	client := newScriptedClient()
	client.on("icrc2_approve", func(_, _ []any) error {
		return fmt.Errorf("gateway timeout")
	})

	ledger := NewLedger(client, "ryjl3-tyaaa-aaaaa-aaaba-cai")
	err := ledger.Approve(context.Background(), principal.AnonymousID, big.NewInt(1000))

	require.Error(t, err)
	var rejection *RejectionError
	assert.False(t, errors.As(err, &rejection))
	assert.Contains(t, err.Error(), "gateway timeout")
}
