package swap

import (
	"context"
	"errors"
	"math/big"

	"github.com/aviate-labs/agent-go/candid/idl"
	"golang.org/x/sync/errgroup"

	"ic-swap/pkg/amount"
	"ic-swap/pkg/canister"
	"ic-swap/pkg/icrc"
	"ic-swap/pkg/types"
)

type depositArgs struct {
	Fee    idl.Nat `ic:"fee"`
	Token  string  `ic:"token"`
	Amount idl.Nat `ic:"amount"`
}

type poolSwapArgs struct {
	AmountIn         string `ic:"amountIn"`
	ZeroForOne       bool   `ic:"zeroForOne"`
	AmountOutMinimum string `ic:"amountOutMinimum"`
}

type unusedBalance struct {
	Balance0 idl.Nat `ic:"balance0"`
	Balance1 idl.Nat `ic:"balance1"`
}

type withdrawArgs struct {
	Fee    idl.Nat `ic:"fee"`
	Token  string  `ic:"token"`
	Amount idl.Nat `ic:"amount"`
}

// ICPSwapEngine executes the multi-phase deposit/swap/withdraw protocol.
// Unlike KongSwap, the pool cannot pull from an allowance during the swap
// itself: funds must first be deposited into the pool's internal ledger,
// traded there, and the proceeds withdrawn back to the caller's account.
//
// The pipeline is forward-only. A failed phase leaves every prior phase's
// effect in place: a failed deposit leaves the allowance granted, a failed
// swap leaves the deposit inside the pool, and a failed withdraw strands
// the traded proceeds in the pool's internal balance. Stranded proceeds
// are recoverable through ResumeWithdraw; nothing is rolled back
// automatically.
type ICPSwapEngine struct {
	client   canister.Client
	locator  *PoolLocator
	progress ProgressFunc
}

// NewICPSwapEngine creates an ICPSwap engine using the given swap factory
// for pool discovery.
func NewICPSwapEngine(client canister.Client, factoryID string, progress ProgressFunc) *ICPSwapEngine {
	return &ICPSwapEngine{
		client:   client,
		locator:  NewPoolLocator(client, factoryID),
		progress: progress,
	}
}

// Swap runs the full deposit/swap/withdraw pipeline for the pair.
func (e *ICPSwapEngine) Swap(ctx context.Context, req *types.SwapRequest, from, to *types.Token) (*types.SwapReceipt, error) {
	notify(e.progress, "Locating %s/%s pool on ICPSwap...", from.Symbol, to.Symbol)
	pool, err := e.locator.FindPool(ctx, from.CanisterID, to.CanisterID)
	if err != nil {
		return nil, err
	}
	zeroForOne := pool.Token0.Address == from.CanisterID
	poolID := pool.CanisterID.String()

	fromLedger := icrc.NewLedger(e.client, from.CanisterID)
	toLedger := icrc.NewLedger(e.client, to.CanisterID)

	var (
		fromDecimals, toDecimals uint8
		fromFee, toFee           *big.Int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { fromDecimals, err = fromLedger.Decimals(gctx); return })
	g.Go(func() (err error) { toDecimals, err = toLedger.Decimals(gctx); return })
	g.Go(func() (err error) { fromFee, err = fromLedger.Fee(gctx); return })
	g.Go(func() (err error) { toFee, err = toLedger.Fee(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, errf(CodeRemoteCallFailed, "%v", err)
	}

	base, err := amount.ToBaseUnits(req.Amount, fromDecimals)
	if err != nil {
		return nil, errf(CodeInvalidAmount, "%v", err)
	}
	poolFee := pool.Fee.BigInt()

	// Approve amount + pool fee + a 3% buffer + the transfer fee so the
	// deposit below can never under-fund the trade.
	buffer := new(big.Int).Div(new(big.Int).Mul(base, big.NewInt(3)), big.NewInt(100))
	approveAmount := new(big.Int).Add(base, poolFee)
	approveAmount.Add(approveAmount, buffer)
	approveAmount.Add(approveAmount, fromFee)

	notify(e.progress, "Approving the pool to spend your %s...", from.Symbol)
	if err := fromLedger.Approve(ctx, pool.CanisterID, approveAmount); err != nil {
		var rejection *icrc.RejectionError
		if errors.As(err, &rejection) {
			return nil, errf(CodeApprovalRejected, "%s", rejection.Detail)
		}
		return nil, errf(CodeRemoteCallFailed, "%v", err)
	}

	feeBuffer := new(big.Int).Div(new(big.Int).Mul(fromFee, big.NewInt(3)), big.NewInt(100))
	depositAmount := new(big.Int).Add(base, poolFee)
	depositAmount.Add(depositAmount, feeBuffer)

	notify(e.progress, "Depositing %s into the pool...", from.Symbol)
	var depositRes canister.LowerResult[idl.Nat, venueError]
	deposit := depositArgs{
		Fee:    idl.NewBigNat(fromFee),
		Token:  from.CanisterID,
		Amount: idl.NewBigNat(depositAmount),
	}
	if err := e.client.Call(ctx, poolID, "depositFrom", []any{deposit}, []any{&depositRes}); err != nil {
		return nil, errf(CodeRemoteCallFailed, "deposit call failed: %v", err)
	}
	if _, err := depositRes.Unwrap(); err != nil {
		return nil, errf(CodeDepositRejected, "%v", err)
	}

	// No on-chain slippage floor: amountOutMinimum stays "0", matching the
	// venue's trade semantics as deployed.
	notify(e.progress, "Swapping %s for %s...", from.Symbol, to.Symbol)
	var swapRes canister.LowerResult[idl.Nat, venueError]
	swapCall := poolSwapArgs{
		AmountIn:         base.String(),
		ZeroForOne:       zeroForOne,
		AmountOutMinimum: "0",
	}
	if err := e.client.Call(ctx, poolID, "swap", []any{swapCall}, []any{&swapRes}); err != nil {
		return nil, errf(CodeRemoteCallFailed, "swap call failed: %v", err)
	}
	if _, err := swapRes.Unwrap(); err != nil {
		return nil, errf(CodeSwapRejected, "%v", err)
	}

	notify(e.progress, "Withdrawing %s from the pool...", to.Symbol)
	received, err := e.withdrawProceeds(ctx, pool, zeroForOne, toFee)
	if err != nil {
		return nil, err
	}
	notify(e.progress, "Received %s %s", amount.FromBaseUnits(received, toDecimals), to.Symbol)

	// The withdraw step does not report price or slippage; only the
	// destination-side amount is known.
	return &types.SwapReceipt{
		Platform: types.PlatformICPSwap,
		ToAmount: received,
	}, nil
}

// ResumeWithdraw recovers proceeds stranded in a pool's internal balance
// by a swap pipeline that failed after the deposit phase. It re-runs only
// the unused-balance query and the withdrawal.
func (e *ICPSwapEngine) ResumeWithdraw(ctx context.Context, from, to *types.Token) (*types.SwapReceipt, error) {
	pool, err := e.locator.FindPool(ctx, from.CanisterID, to.CanisterID)
	if err != nil {
		return nil, err
	}
	zeroForOne := pool.Token0.Address == from.CanisterID

	notify(e.progress, "Withdrawing unused %s balance from the pool...", to.Symbol)
	received, err := e.withdrawProceeds(ctx, pool, zeroForOne, nil)
	if err != nil {
		return nil, err
	}
	return &types.SwapReceipt{
		Platform: types.PlatformICPSwap,
		ToAmount: received,
	}, nil
}

// withdrawProceeds queries the caller's unused balance at the pool and
// withdraws the destination-side amount, minus the destination token's
// transfer fee, back to the caller's ledger account. The fee is read
// on-chain when withdrawFee is nil. The returned amount is the unused
// balance before the fee deduction.
func (e *ICPSwapEngine) withdrawProceeds(ctx context.Context, pool *Pool, zeroForOne bool, withdrawFee *big.Int) (*big.Int, error) {
	poolID := pool.CanisterID.String()

	var balanceRes canister.LowerResult[unusedBalance, venueError]
	if err := e.client.Query(ctx, poolID, "getUserUnusedBalance", []any{e.client.Caller()}, []any{&balanceRes}); err != nil {
		return nil, errf(CodeRemoteCallFailed, "balance query failed: %v", err)
	}
	balance, err := balanceRes.Unwrap()
	if err != nil {
		return nil, errf(CodeRemoteCallFailed, "balance query failed: %v", err)
	}

	withdrawAmount := balance.Balance0.BigInt()
	withdrawToken := pool.Token0.Address
	if zeroForOne {
		withdrawAmount = balance.Balance1.BigInt()
		withdrawToken = pool.Token1.Address
	}
	if withdrawAmount.Sign() == 0 {
		return nil, errf(CodeWithdrawRejected, "no unused balance to withdraw for %s", withdrawToken)
	}

	if withdrawFee == nil {
		fee, err := icrc.NewLedger(e.client, withdrawToken).Fee(ctx)
		if err != nil {
			return nil, errf(CodeRemoteCallFailed, "%v", err)
		}
		withdrawFee = fee
	}
	if withdrawAmount.Cmp(withdrawFee) <= 0 {
		return nil, errf(CodeWithdrawRejected, "unused balance %s is below the %s transfer fee", withdrawAmount, withdrawFee)
	}

	var withdrawRes canister.LowerResult[idl.Nat, venueError]
	withdraw := withdrawArgs{
		Fee:    idl.NewBigNat(withdrawFee),
		Token:  withdrawToken,
		Amount: idl.NewBigNat(new(big.Int).Sub(withdrawAmount, withdrawFee)),
	}
	if err := e.client.Call(ctx, poolID, "withdraw", []any{withdraw}, []any{&withdrawRes}); err != nil {
		return nil, errf(CodeRemoteCallFailed, "withdraw call failed: %v", err)
	}
	if _, err := withdrawRes.Unwrap(); err != nil {
		return nil, errf(CodeWithdrawRejected, "%v", err)
	}

	return withdrawAmount, nil
}
