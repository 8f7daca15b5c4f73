// Package icrc wraps the ICRC-1/ICRC-2 ledger methods the swap engines
// consume: decimals, transfer fee, balance, and allowance approval.
package icrc

import (
	"context"
	"fmt"
	"math/big"

	"github.com/aviate-labs/agent-go/candid/idl"
	"github.com/aviate-labs/agent-go/principal"

	"ic-swap/pkg/canister"
)

// Account is an ICRC-1 account reference.
type Account struct {
	Owner      principal.Principal `ic:"owner"`
	Subaccount *[]byte             `ic:"subaccount,omitempty"`
}

// ApproveArgs are the ICRC-2 icrc2_approve arguments. Optional fields are
// left nil: no subaccounts, no expiry, default fee.
type ApproveArgs struct {
	FromSubaccount    *[]byte  `ic:"from_subaccount,omitempty"`
	Spender           Account  `ic:"spender"`
	Amount            idl.Nat  `ic:"amount"`
	ExpectedAllowance *idl.Nat `ic:"expected_allowance,omitempty"`
	ExpiresAt         *uint64  `ic:"expires_at,omitempty"`
	Fee               *idl.Nat `ic:"fee,omitempty"`
	Memo              *[]byte  `ic:"memo,omitempty"`
	CreatedAtTime     *uint64  `ic:"created_at_time,omitempty"`
}

// BadFeeError reports the fee the ledger expected.
type BadFeeError struct {
	ExpectedFee idl.Nat `ic:"expected_fee"`
}

// InsufficientFundsError reports the owner's actual balance.
type InsufficientFundsError struct {
	Balance idl.Nat `ic:"balance"`
}

// AllowanceChangedError reports the allowance currently on record.
type AllowanceChangedError struct {
	CurrentAllowance idl.Nat `ic:"current_allowance"`
}

// LedgerTimeError carries the ledger clock for time-window rejections.
type LedgerTimeError struct {
	LedgerTime uint64 `ic:"ledger_time"`
}

// DuplicateError points at the block that already processed the request.
type DuplicateError struct {
	DuplicateOf idl.Nat `ic:"duplicate_of"`
}

// GenericError is the ledger's catch-all rejection.
type GenericError struct {
	ErrorCode idl.Nat `ic:"error_code"`
	Message   string  `ic:"message"`
}

// ApproveError is the ICRC-2 approval rejection variant.
type ApproveError struct {
	BadFee                 *BadFeeError            `ic:"BadFee,variant"`
	InsufficientFunds      *InsufficientFundsError `ic:"InsufficientFunds,variant"`
	AllowanceChanged       *AllowanceChangedError  `ic:"AllowanceChanged,variant"`
	Expired                *LedgerTimeError        `ic:"Expired,variant"`
	TooOld                 *idl.Null               `ic:"TooOld,variant"`
	CreatedInFuture        *LedgerTimeError        `ic:"CreatedInFuture,variant"`
	Duplicate              *DuplicateError         `ic:"Duplicate,variant"`
	TemporarilyUnavailable *idl.Null               `ic:"TemporarilyUnavailable,variant"`
	GenericError           *GenericError           `ic:"GenericError,variant"`
}

// String renders the rejection as a human-readable message.
func (e ApproveError) String() string {
	switch {
	case e.InsufficientFunds != nil:
		return fmt.Sprintf("insufficient funds, balance is %s base units", e.InsufficientFunds.Balance.BigInt())
	case e.BadFee != nil:
		return fmt.Sprintf("incorrect fee, expected %s", e.BadFee.ExpectedFee.BigInt())
	case e.AllowanceChanged != nil:
		return fmt.Sprintf("allowance changed, current allowance is %s", e.AllowanceChanged.CurrentAllowance.BigInt())
	case e.Expired != nil:
		return "approval expired"
	case e.TooOld != nil:
		return "transaction is too old"
	case e.CreatedInFuture != nil:
		return "transaction timestamp is in the future"
	case e.Duplicate != nil:
		return fmt.Sprintf("duplicate transaction, already processed in block %s", e.Duplicate.DuplicateOf.BigInt())
	case e.TemporarilyUnavailable != nil:
		return "ledger temporarily unavailable"
	case e.GenericError != nil:
		return fmt.Sprintf("%s (error code %s)", e.GenericError.Message, e.GenericError.ErrorCode.BigInt())
	}
	return "unknown ledger error"
}

// RejectionError marks an approval the ledger rejected, as opposed to a
// transport failure. Callers use this to tell the two apart.
type RejectionError struct {
	Detail string
}

func (e *RejectionError) Error() string {
	return e.Detail
}

// Ledger issues ICRC ledger calls against one token canister.
type Ledger struct {
	client     canister.Client
	canisterID string
}

// NewLedger returns a ledger bound to the given token canister.
func NewLedger(client canister.Client, canisterID string) *Ledger {
	return &Ledger{client: client, canisterID: canisterID}
}

// Decimals returns the token's base-unit scale.
func (l *Ledger) Decimals(ctx context.Context) (uint8, error) {
	var decimals uint8
	if err := l.client.Query(ctx, l.canisterID, "icrc1_decimals", nil, []any{&decimals}); err != nil {
		return 0, fmt.Errorf("failed to read decimals: %w", err)
	}
	return decimals, nil
}

// Fee returns the token's transfer fee in base units.
func (l *Ledger) Fee(ctx context.Context) (*big.Int, error) {
	var fee idl.Nat
	if err := l.client.Query(ctx, l.canisterID, "icrc1_fee", nil, []any{&fee}); err != nil {
		return nil, fmt.Errorf("failed to read transfer fee: %w", err)
	}
	return fee.BigInt(), nil
}

// BalanceOf returns the owner's ledger balance in base units.
func (l *Ledger) BalanceOf(ctx context.Context, owner principal.Principal) (*big.Int, error) {
	var balance idl.Nat
	account := Account{Owner: owner}
	if err := l.client.Query(ctx, l.canisterID, "icrc1_balance_of", []any{account}, []any{&balance}); err != nil {
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}
	return balance.BigInt(), nil
}

// Approve grants the spender an allowance over the caller's account. A
// ledger-side rejection comes back as *RejectionError with the rendered
// detail; any other error is a transport failure.
func (l *Ledger) Approve(ctx context.Context, spender principal.Principal, amountBaseUnits *big.Int) error {
	args := ApproveArgs{
		Spender: Account{Owner: spender},
		Amount:  idl.NewBigNat(amountBaseUnits),
	}

	var res canister.Result[idl.Nat, ApproveError]
	if err := l.client.Call(ctx, l.canisterID, "icrc2_approve", []any{args}, []any{&res}); err != nil {
		return fmt.Errorf("approve call failed: %w", err)
	}
	if res.Err != nil {
		return &RejectionError{Detail: res.Err.String()}
	}
	return nil
}
