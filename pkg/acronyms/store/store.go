package store

import (
	"context"
	"time"

	"github.com/cognicore/acronyms/pkg/acronyms"
)

// Store persists aggregation runs and answers cross-run queries
type Store interface {
	Close() error

	// SaveRun persists a run. An empty ID or zero CreatedAt is filled in;
	// the stored run is returned.
	SaveRun(ctx context.Context, r Run) (Run, error)
	// GetRun returns internalerr.ErrNotFound for unknown IDs.
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns run summaries (without tables), newest first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	// TopPairs sums counts across all runs and ranks them like Table.Top.
	TopPairs(ctx context.Context, k int) ([]acronyms.Entry, error)
}

// Run is one aggregation over a corpus
type Run struct {
	ID        string
	CreatedAt time.Time
	Source    string // free-form description of the inputs
	Sentences int64
	Table     acronyms.Table
}

// Prepare fills the ID and timestamp of a run about to be stored.
func Prepare(r Run, ids *IDGenerator) Run {
	if r.ID == "" {
		r.ID = ids.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.Table == nil {
		r.Table = acronyms.NewTable()
	}
	return r
}
