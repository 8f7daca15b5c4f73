package swap

import "fmt"

// Code classifies a swap failure. Validation codes are produced before
// any network call; the rejection codes carry the remote-supplied detail
// verbatim and name the pipeline phase that failed.
type Code string

const (
	CodeTokenNotFound    Code = "token_not_found"
	CodeInvalidAmount    Code = "invalid_amount"
	CodePlatformRequired Code = "platform_required"
	CodeUnknownPlatform  Code = "unknown_platform"
	CodePoolNotFound     Code = "pool_not_found"
	CodeApprovalRejected Code = "approval_rejected"
	CodeDepositRejected  Code = "deposit_rejected"
	CodeSwapRejected     Code = "swap_rejected"
	CodeWithdrawRejected Code = "withdraw_rejected"
	CodeRemoteCallFailed Code = "remote_call_failed"
)

// Error is a classified swap failure.
type Error struct {
	Code   Code
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func errf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}
