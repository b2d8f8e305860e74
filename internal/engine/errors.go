package engine

import (
	"errors"

	"github.com/dshills/deckforge/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrNilDocument indicates a load with no document.
	ErrNilDocument = errors.New("nil document")

	// ErrInvalidDocument indicates a load that failed validation. The
	// wrapped error carries the violated invariant.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrNothingToUndo indicates the undo side of history is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo side of history is empty.
	ErrNothingToRedo = history.ErrNothingToRedo
)
