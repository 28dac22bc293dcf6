package ledger

import (
	"errors"

	"SignalSentry/internal/model"
)

// ErrDuplicateID is returned by Append when a position with the same identity
// already exists. Identities must stay unique; overwriting would silently
// alias two signals.
var ErrDuplicateID = errors.New("duplicate position id")

// Ledger persists the full history of emitted signals and their outcomes.
// Load and Save form a read-all/replace-all contract; Append adds a single
// new position. Implementations must initialize an empty store on first use.
type Ledger interface {
	Load() ([]model.Position, error)
	Save(positions []model.Position) error
	Append(pos model.Position) error
	Close() error
}
