package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/hooplens/prospectrank/internal/domain/model"
	"github.com/hooplens/prospectrank/internal/domain/tier"
	"github.com/hooplens/prospectrank/pkg/metrics"
)

// BoardStore holds the current ranked board in memory. The board is
// rebuilt wholesale by each refresh pass, so Replace swaps the full
// slice under a write lock and reads never observe a partial update.
type BoardStore struct {
	mu      sync.RWMutex
	entries []model.BoardEntry          // sorted by score desc
	byID    map[string]model.BoardEntry // prospect id -> entry
}

// NewBoardStore creates an empty board store.
func NewBoardStore() *BoardStore {
	return &BoardStore{
		byID: make(map[string]model.BoardEntry),
	}
}

// Replace installs a new board. Entries are re-sorted by score
// descending with prospect ID as the deterministic tie-break; ranks and
// tiers are assigned from the resulting order.
func (b *BoardStore) Replace(ctx context.Context, entries []model.BoardEntry) {
	sorted := make([]model.BoardEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalScore != sorted[j].TotalScore {
			return sorted[i].TotalScore > sorted[j].TotalScore
		}
		return sorted[i].ProspectID < sorted[j].ProspectID
	})

	byID := make(map[string]model.BoardEntry, len(sorted))
	for i := range sorted {
		sorted[i].Rank = i + 1
		sorted[i].Tier = string(tier.ByRank(sorted[i].Rank))
		byID[sorted[i].ProspectID] = sorted[i]
	}

	b.mu.Lock()
	b.entries = sorted
	b.byID = byID
	b.mu.Unlock()

	metrics.UpdateBoardSize(len(sorted))
}

// TopN returns the best n entries.
func (b *BoardStore) TopN(ctx context.Context, n int) ([]model.BoardEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n > len(b.entries) {
		n = len(b.entries)
	}
	out := make([]model.BoardEntry, n)
	copy(out, b.entries[:n])
	return out, nil
}

// Rank returns the board entry for a prospect, or ErrNotFound.
func (b *BoardStore) Rank(ctx context.Context, prospectID string) (model.BoardEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	entry, ok := b.byID[prospectID]
	if !ok {
		return model.BoardEntry{}, ErrNotFound
	}
	return entry, nil
}

// Count returns the number of prospects on the board.
func (b *BoardStore) Count(ctx context.Context) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
