package swap

import (
	"context"
	"math/big"
	"testing"

	"github.com/aviate-labs/agent-go/candid/idl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ic-swap/pkg/canister"
	"ic-swap/pkg/icrc"
	"ic-swap/pkg/types"
)

var (
	chatToken = &types.Token{Symbol: "CHAT", Name: "OpenChat", CanisterID: "2ouva-viaaa-aaaaq-aaamq-cai"}
	icpToken  = &types.Token{Symbol: "ICP", Name: "Internet Computer", CanisterID: "ryjl3-tyaaa-aaaaa-aaaba-cai"}
)

func approveOK() func(args, out []any) error {
	ok := idl.NewBigNat(big.NewInt(1))
	return respond(canister.Result[idl.Nat, icrc.ApproveError]{Ok: &ok})
}

func approveRejected(detail icrc.ApproveError) func(args, out []any) error {
	return respond(canister.Result[idl.Nat, icrc.ApproveError]{Err: &detail})
}

func TestKongSwapHappyPath(t *testing.T) {
	client := newFakeClient()
	client.on(chatToken.CanisterID, "icrc1_decimals", respond(uint8(8)))
	client.on(chatToken.CanisterID, "icrc1_fee", respond(idl.NewBigNat(big.NewInt(10000))))
	client.on(chatToken.CanisterID, "icrc2_approve", approveOK())

	reply := kongSwapReply{
		TxID:          42,
		PayAmount:     idl.NewBigNat(big.NewInt(10000010000)),
		ReceiveAmount: idl.NewBigNat(big.NewInt(500000000)),
		Price:         0.05,
		Slippage:      0.1,
	}
	client.on(DefaultKongSwapCanisterID, "swap", respond(canister.Result[kongSwapReply, string]{Ok: &reply}))

	engine := NewKongSwapEngine(client, "", nil)
	req := &types.SwapRequest{Amount: "100", FromToken: "CHAT", ToToken: "ICP", Platform: types.PlatformKongSwap}

	receipt, err := engine.Swap(context.Background(), req, chatToken, icpToken)
	require.NoError(t, err)

	assert.Equal(t, "42", receipt.TxID)
	assert.Equal(t, "10000010000", receipt.FromAmount.String())
	assert.Equal(t, "500000000", receipt.ToAmount.String())
	assert.Equal(t, 0.05, receipt.Price)
	assert.Equal(t, 0.1, receipt.SlippagePercent)

	// approval covers the scaled amount plus the transfer fee
	approveArgs := client.lastArgs("icrc2_approve")[0].(icrc.ApproveArgs)
	assert.Equal(t, "10000010000", approveArgs.Amount.BigInt().String())

	// the venue is paid the scaled amount without the fee
	swapArgs := client.lastArgs("swap")[0].(kongSwapArgs)
	assert.Equal(t, "IC."+chatToken.CanisterID, swapArgs.PayToken)
	assert.Equal(t, "IC."+icpToken.CanisterID, swapArgs.ReceiveToken)
	assert.Equal(t, "10000000000", swapArgs.PayAmount.BigInt().String())
}

func TestKongSwapAbortsOnApprovalFailure(t *testing.T) {
	client := newFakeClient()
	client.on(chatToken.CanisterID, "icrc1_decimals", respond(uint8(8)))
	client.on(chatToken.CanisterID, "icrc1_fee", respond(idl.NewBigNat(big.NewInt(10000))))

	client.on(chatToken.CanisterID, "icrc2_approve", approveRejected(icrc.ApproveError{
		InsufficientFunds: &icrc.InsufficientFundsError{Balance: idl.NewBigNat(big.NewInt(5))},
	}))

	engine := NewKongSwapEngine(client, "", nil)
	req := &types.SwapRequest{Amount: "100", Platform: types.PlatformKongSwap}

	_, err := engine.Swap(context.Background(), req, chatToken, icpToken)

	var swapErr *Error
	require.ErrorAs(t, err, &swapErr)
	assert.Equal(t, CodeApprovalRejected, swapErr.Code)
	assert.Contains(t, swapErr.Detail, "insufficient funds")

	// no call reaches the venue after a rejected approval
	assert.Zero(t, client.count("swap"))
}

func TestKongSwapSurfacesVenueRejection(t *testing.T) {
	client := newFakeClient()
	client.on(chatToken.CanisterID, "icrc1_decimals", respond(uint8(8)))
	client.on(chatToken.CanisterID, "icrc1_fee", respond(idl.NewBigNat(big.NewInt(10000))))
	client.on(chatToken.CanisterID, "icrc2_approve", approveOK())

	detail := "Pool not found. IC.CHAT_IC.ICP"
	client.on(DefaultKongSwapCanisterID, "swap", respond(canister.Result[kongSwapReply, string]{Err: &detail}))

	engine := NewKongSwapEngine(client, "", nil)
	req := &types.SwapRequest{Amount: "100", Platform: types.PlatformKongSwap}

	_, err := engine.Swap(context.Background(), req, chatToken, icpToken)

	var swapErr *Error
	require.ErrorAs(t, err, &swapErr)
	assert.Equal(t, CodeSwapRejected, swapErr.Code)
	assert.Contains(t, swapErr.Detail, detail)
}
