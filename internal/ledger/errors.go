package ledger

import "errors"

var (
	// ErrUnknownFood is returned when the requested food is not in the
	// reference table. Recoverable: the caller should re-prompt.
	ErrUnknownFood = errors.New("unknown food")

	// ErrInvalidQuantity is returned for negative quantities. The input
	// widget should prevent these, but the ledger is the trust boundary
	// for persistence and validates independently.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrPersistence wraps I/O failures while appending an entry. The
	// submission failed; nothing was silently dropped.
	ErrPersistence = errors.New("ledger write failed")

	// ErrCorruptStore indicates existing ledger rows could not be parsed.
	// History is unavailable but recording still works.
	ErrCorruptStore = errors.New("ledger store corrupt")
)
