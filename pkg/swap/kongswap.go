package swap

import (
	"context"
	"errors"
	"fmt"

	"github.com/aviate-labs/agent-go/candid/idl"
	"github.com/aviate-labs/agent-go/principal"

	"ic-swap/pkg/amount"
	"ic-swap/pkg/canister"
	"ic-swap/pkg/icrc"
	"ic-swap/pkg/types"
)

// DefaultKongSwapCanisterID is the KongSwap backend canister on mainnet.
const DefaultKongSwapCanisterID = "2ipq2-uqaaa-aaaar-qailq-cai"

type kongTxID struct {
	BlockIndex      *idl.Nat `ic:"BlockIndex,variant"`
	TransactionHash *string  `ic:"TransactionHash,variant"`
}

type kongSwapArgs struct {
	PayToken       string    `ic:"pay_token"`
	PayAmount      idl.Nat   `ic:"pay_amount"`
	PayTxID        *kongTxID `ic:"pay_tx_id,omitempty"`
	ReceiveToken   string    `ic:"receive_token"`
	ReceiveAmount  *idl.Nat  `ic:"receive_amount,omitempty"`
	ReceiveAddress *string   `ic:"receive_address,omitempty"`
	MaxSlippage    *float64  `ic:"max_slippage,omitempty"`
	ReferredBy     *string   `ic:"referred_by,omitempty"`
}

type kongSwapReply struct {
	TxID          uint64  `ic:"tx_id"`
	RequestID     uint64  `ic:"request_id"`
	Status        string  `ic:"status"`
	PaySymbol     string  `ic:"pay_symbol"`
	PayAmount     idl.Nat `ic:"pay_amount"`
	ReceiveSymbol string  `ic:"receive_symbol"`
	ReceiveAmount idl.Nat `ic:"receive_amount"`
	Price         float64 `ic:"price"`
	Slippage      float64 `ic:"slippage"`
}

// KongSwapEngine executes the single-call escrow-pull protocol: grant the
// KongSwap backend an allowance, then let its swap call pull the funds.
type KongSwapEngine struct {
	client     canister.Client
	canisterID string
	progress   ProgressFunc
}

// NewKongSwapEngine creates a KongSwap engine targeting the given backend
// canister.
func NewKongSwapEngine(client canister.Client, canisterID string, progress ProgressFunc) *KongSwapEngine {
	if canisterID == "" {
		canisterID = DefaultKongSwapCanisterID
	}
	return &KongSwapEngine{client: client, canisterID: canisterID, progress: progress}
}

// Swap approves and executes a swap on KongSwap. The allowance granted in
// the approval phase is consumed by the venue's swap call; it is not
// revoked if the swap is rejected afterwards, so a failed swap leaves a
// usable allowance on the ledger.
func (e *KongSwapEngine) Swap(ctx context.Context, req *types.SwapRequest, from, to *types.Token) (*types.SwapReceipt, error) {
	ledger := icrc.NewLedger(e.client, from.CanisterID)

	decimals, err := ledger.Decimals(ctx)
	if err != nil {
		return nil, errf(CodeRemoteCallFailed, "%v", err)
	}
	fee, err := ledger.Fee(ctx)
	if err != nil {
		return nil, errf(CodeRemoteCallFailed, "%v", err)
	}

	payAmount, err := amount.ToBaseUnits(req.Amount, decimals)
	if err != nil {
		return nil, errf(CodeInvalidAmount, "%v", err)
	}
	approveAmount := amount.WithFee(payAmount, fee)

	spender, err := principal.Decode(e.canisterID)
	if err != nil {
		return nil, errf(CodeRemoteCallFailed, "invalid KongSwap canister ID: %v", err)
	}

	notify(e.progress, "Approving KongSwap to spend your %s...", from.Symbol)
	if err := ledger.Approve(ctx, spender, approveAmount); err != nil {
		var rejection *icrc.RejectionError
		if errors.As(err, &rejection) {
			return nil, errf(CodeApprovalRejected, "%s", rejection.Detail)
		}
		return nil, errf(CodeRemoteCallFailed, "%v", err)
	}

	notify(e.progress, "Swapping %s %s for %s on KongSwap...", req.Amount, from.Symbol, to.Symbol)
	args := kongSwapArgs{
		PayToken:     "IC." + from.CanisterID,
		PayAmount:    idl.NewBigNat(payAmount),
		ReceiveToken: "IC." + to.CanisterID,
	}

	var res canister.Result[kongSwapReply, string]
	if err := e.client.Call(ctx, e.canisterID, "swap", []any{args}, []any{&res}); err != nil {
		return nil, errf(CodeRemoteCallFailed, "swap call failed: %v", err)
	}
	reply, err := res.Unwrap()
	if err != nil {
		return nil, errf(CodeSwapRejected, "%v", err)
	}

	return &types.SwapReceipt{
		Platform:        types.PlatformKongSwap,
		TxID:            fmt.Sprintf("%d", reply.TxID),
		FromAmount:      reply.PayAmount.BigInt(),
		ToAmount:        reply.ReceiveAmount.BigInt(),
		Price:           reply.Price,
		SlippagePercent: reply.Slippage,
	}, nil
}
