// Package repository defines the prospect data interfaces and their
// SQLite and in-memory implementations.
package repository

import (
	"context"
	"time"

	"github.com/hooplens/prospectrank/internal/domain/model"
)

// Filter narrows a prospect fetch.
type Filter struct {
	DraftClass int    // 0 = all classes
	Position   string // "" = all positions
	Limit      int    // 0 = no limit
}

// ProspectSource is the boundary to the external collaborator that owns
// raw prospect records. Fetch errors are surfaced to the caller as-is;
// retrying is the collaborator's concern, not the engine's.
type ProspectSource interface {
	// FetchProspects returns raw records ordered by consensus rank.
	FetchProspects(ctx context.Context, f Filter) ([]model.Prospect, error)
}

// SnapshotStore persists append-only stat history for trend views.
type SnapshotStore interface {
	// Append records one snapshot. History is never updated in place.
	Append(ctx context.Context, s model.Snapshot) error

	// LatestPair returns the two most recent snapshots for a prospect
	// captured at or after since, newest first. ok is false when fewer
	// than two snapshots exist in the window.
	LatestPair(ctx context.Context, prospectID string, since time.Time) (current, prior model.Snapshot, ok bool, err error)

	// ProspectIDsWithHistory lists prospects holding at least two
	// snapshots at or after since.
	ProspectIDsWithHistory(ctx context.Context, since time.Time) ([]string, error)
}
