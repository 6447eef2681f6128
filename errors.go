package timemarket

import "errors"

// Failure sites of the ledger transitions. The upstream contract folded
// all of these into a bare boolean; they are kept distinguishable here
// and matched with errors.Is.
var (
	// ErrNotAuthorized means the identity authority denied the call.
	// Nothing was read or written.
	ErrNotAuthorized = errors.New("timemarket: operation not authorized")

	// ErrTokenNotFound means the id was never minted or was deleted.
	ErrTokenNotFound = errors.New("timemarket: token not found")

	// ErrOwnershipMismatch means the calling seller does not own the
	// token it tried to mutate.
	ErrOwnershipMismatch = errors.New("timemarket: seller does not own token")

	// ErrInsufficientHours means a purchase asked for more hours than
	// the token has available. No partial fill happens.
	ErrInsufficientHours = errors.New("timemarket: insufficient hours available")

	// ErrTransferFailed wraps a value-transfer refusal during purchase.
	ErrTransferFailed = errors.New("timemarket: value transfer failed")

	// ErrInsufficientFunds is returned by the settlement book when the
	// payer balance cannot cover a move.
	ErrInsufficientFunds = errors.New("timemarket: insufficient funds")

	// ErrNegativeAmount is returned by the settlement book for moves or
	// deposits of a negative amount.
	ErrNegativeAmount = errors.New("timemarket: negative amount")
)
