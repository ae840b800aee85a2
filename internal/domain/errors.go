package domain

import "errors"

var (
	// ErrStoreUnavailable is returned when the question store cannot be reached or does not exist.
	ErrStoreUnavailable = errors.New("question store unavailable")
	// ErrInvalidTransition is returned when an action is not allowed in the current phase.
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrUnknownLabel indicates a submitted label is not one of A-D.
	ErrUnknownLabel = errors.New("unknown alternative label")
	// ErrLabelEliminated indicates the submitted label was removed by the eliminate help.
	ErrLabelEliminated = errors.New("alternative was eliminated")
	// ErrHelpUnavailable is returned when no help lives remain or help was already used on the question.
	ErrHelpUnavailable = errors.New("help unavailable")
	// ErrUnknownHelp indicates an unsupported help kind.
	ErrUnknownHelp = errors.New("unknown help kind")
	// ErrLedgerWrite wraps a score ledger persistence failure.
	ErrLedgerWrite = errors.New("score ledger write failed")
)
