package service_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/hooplens/prospectrank/internal/adapters/repository"
	service "github.com/hooplens/prospectrank/internal/app"
	"github.com/hooplens/prospectrank/internal/domain/model"
	"github.com/hooplens/prospectrank/internal/domain/scoring"
	"github.com/hooplens/prospectrank/internal/domain/tier"
	. "github.com/smartystreets/goconvey/convey"
)

func fptr(v float64) *float64 { return &v }
func intptr(v int) *int       { return &v }

// fakeSource serves a fixed prospect list, with an optional hook run on
// each fetch.
type fakeSource struct {
	mu        sync.Mutex
	prospects []model.Prospect
	err       error
	onFetch   func()
}

func (f *fakeSource) FetchProspects(ctx context.Context, _ repository.Filter) ([]model.Prospect, error) {
	f.mu.Lock()
	hook := f.onFetch
	prospects := append([]model.Prospect(nil), f.prospects...)
	err := f.err
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return prospects, err
}

func (f *fakeSource) set(prospects []model.Prospect) {
	f.mu.Lock()
	f.prospects = prospects
	f.mu.Unlock()
}

// memSnapshots is an in-memory SnapshotStore.
type memSnapshots struct {
	mu    sync.Mutex
	snaps []model.Snapshot
}

func (m *memSnapshots) Append(ctx context.Context, s model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps = append(m.snaps, s)
	return nil
}

func (m *memSnapshots) LatestPair(ctx context.Context, prospectID string, since time.Time) (model.Snapshot, model.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matching []model.Snapshot
	for _, s := range m.snaps {
		if s.ProspectID == prospectID && !s.CapturedAt.Before(since) {
			matching = append(matching, s)
		}
	}
	if len(matching) < 2 {
		return model.Snapshot{}, model.Snapshot{}, false, nil
	}
	sort.Slice(matching, func(i, j int) bool { return matching[i].CapturedAt.After(matching[j].CapturedAt) })
	return matching[0], matching[1], true, nil
}

func (m *memSnapshots) ProspectIDsWithHistory(ctx context.Context, since time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, s := range m.snaps {
		if !s.CapturedAt.Before(since) {
			counts[s.ProspectID]++
		}
	}
	var ids []string
	for id, n := range counts {
		if n >= 2 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func pool() []model.Prospect {
	return []model.Prospect{
		{ID: "p1", Name: "Alpha", Position: "PG", PPG: fptr(18), APG: fptr(6), GamesPlayed: intptr(30), HeightRaw: "6-3"},
		{ID: "p2", Name: "Beta", Position: "C", PPG: fptr(12), RPG: fptr(9), GamesPlayed: intptr(28), HeightRaw: "6-11"},
		{ID: "p3", Name: "Gamma", Position: "SF", GamesPlayed: intptr(25)},
	}
}

func startService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestService_Evaluate(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startService(t)
		ctx := context.Background()
		p := pool()[0]

		Convey("When evaluating the same prospect twice", func() {
			first, err1 := svc.Evaluate(ctx, p)
			second, err2 := svc.Evaluate(ctx, p)

			Convey("Then results are identical and the cache holds one entry", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second, ShouldResemble, first)
				So(svc.CacheLen(), ShouldEqual, 1)
			})
		})

		Convey("When a score-relevant stat changes", func() {
			_, _ = svc.Evaluate(ctx, p)
			changed := p
			changed.PPG = fptr(21)
			_, err := svc.Evaluate(ctx, changed)

			Convey("Then the change occupies a second cache slot", func() {
				So(err, ShouldBeNil)
				So(svc.CacheLen(), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New()
		_, err := svc.Evaluate(context.Background(), pool()[0])
		So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
	})
}

func TestService_Refresh(t *testing.T) {
	Convey("Given a service over a fake prospect source", t, func() {
		src := &fakeSource{}
		src.set(pool())
		svc := startService(t, service.WithSource(src))
		ctx := context.Background()

		Convey("When refreshing", func() {
			So(svc.Refresh(ctx), ShouldBeNil)

			Convey("Then the board ranks every fetched prospect", func() {
				So(svc.Count(ctx), ShouldEqual, 3)
				top, err := svc.TopN(ctx, 10)
				So(err, ShouldBeNil)
				So(top[0].Rank, ShouldEqual, 1)
				So(top[0].TotalScore, ShouldBeGreaterThanOrEqualTo, top[1].TotalScore)
				So(top[1].TotalScore, ShouldBeGreaterThanOrEqualTo, top[2].TotalScore)
			})

			Convey("And a statless prospect still lands on the board", func() {
				entry, err := svc.Rank(ctx, "p3")
				So(err, ShouldBeNil)
				So(entry.TotalScore, ShouldEqual, 0)
				So(entry.Rank, ShouldEqual, 3)
			})

			Convey("And tiers derive from board rank", func() {
				top, _ := svc.TopN(ctx, 10)
				for _, e := range top {
					So(e.Tier, ShouldEqual, string(tier.Elite))
				}
			})
		})

		Convey("When the source fails", func() {
			src.err = errors.New("feed down")
			So(svc.Refresh(ctx), ShouldNotBeNil)
		})
	})
}

func TestService_RefreshGenerationGuard(t *testing.T) {
	Convey("Given a refresh that overlaps a newer one", t, func() {
		src := &fakeSource{}
		src.set(pool())
		svc := startService(t, service.WithSource(src))
		ctx := context.Background()

		// While the outer refresh is fetching, a newer refresh runs to
		// completion with different data. The outer pass must then be
		// discarded, leaving the newer board in place.
		ran := false
		src.onFetch = func() {
			if ran {
				return
			}
			ran = true
			src.set([]model.Prospect{{ID: "fresh", Name: "Newer", PPG: fptr(15), GamesPlayed: intptr(20)}})
			So(svc.Refresh(ctx), ShouldBeNil)
		}

		Convey("When the stale pass finishes last", func() {
			So(svc.Refresh(ctx), ShouldBeNil)

			Convey("Then the board reflects the newer pass only", func() {
				So(svc.Count(ctx), ShouldEqual, 1)
				entry, err := svc.Rank(ctx, "fresh")
				So(err, ShouldBeNil)
				So(entry.Rank, ShouldEqual, 1)
				_, err = svc.Rank(ctx, "p1")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_ApplyScoringConfig(t *testing.T) {
	Convey("Given a service with cached evaluations", t, func() {
		svc := startService(t)
		ctx := context.Background()
		_, _ = svc.Evaluate(ctx, pool()[0])
		So(svc.CacheLen(), ShouldEqual, 1)

		Convey("When a new scoring table is applied", func() {
			next := scoring.DefaultWeights()
			next.Version = "2026.2"
			svc.ApplyScoringConfig(ctx, next)

			Convey("Then stale evaluations are released", func() {
				So(svc.CacheLen(), ShouldEqual, 0)
			})

			Convey("And new evaluations key on the new version", func() {
				_, err := svc.Evaluate(ctx, pool()[0])
				So(err, ShouldBeNil)
				So(svc.CacheLen(), ShouldEqual, 1)
			})
		})
	})
}

func TestService_SnapshotsAndTrending(t *testing.T) {
	Convey("Given a service with snapshot history", t, func() {
		src := &fakeSource{}
		src.set(pool())
		snaps := &memSnapshots{}
		svc := startService(t,
			service.WithSource(src),
			service.WithSnapshotStore(snaps),
			service.WithTrendTopK(3),
		)
		ctx := context.Background()
		now := time.Now().UTC()

		seed := func(id string, daysAgo int, score float64) {
			So(snaps.Append(ctx, model.Snapshot{
				ID:         id + "-" + strconv.Itoa(daysAgo),
				ProspectID: id,
				CapturedAt: now.Add(-time.Duration(daysAgo) * 24 * time.Hour),
				Score:      score,
			}), ShouldBeNil)
		}
		seed("p1", 5, 0.60)
		seed("p1", 1, 0.72) // rising
		seed("p2", 5, 0.66)
		seed("p2", 1, 0.58) // falling
		seed("p3", 5, 0.50)
		seed("p3", 1, 0.505) // stable

		Convey("When asking for trending over 7 days", func() {
			rising, falling, err := svc.Trending(ctx, "7d", 3)

			Convey("Then movers split by direction and stable ones drop out", func() {
				So(err, ShouldBeNil)
				So(rising, ShouldHaveLength, 1)
				So(rising[0].ProspectID, ShouldEqual, "p1")
				So(rising[0].ScoreDelta, ShouldAlmostEqual, 0.12)
				So(falling, ShouldHaveLength, 1)
				So(falling[0].ProspectID, ShouldEqual, "p2")
			})
		})

		Convey("When the window excludes the older snapshots", func() {
			rising, falling, err := svc.Trending(ctx, "48h", 3)
			So(err, ShouldBeNil)
			So(rising, ShouldBeEmpty)
			So(falling, ShouldBeEmpty)
		})

		Convey("When the window is malformed", func() {
			_, _, err := svc.Trending(ctx, "next week", 3)
			So(err, ShouldNotBeNil)
		})

		Convey("When capturing snapshots", func() {
			before := len(snaps.snaps)
			So(svc.CaptureSnapshots(ctx), ShouldBeNil)

			Convey("Then one snapshot per prospect is appended", func() {
				snaps.mu.Lock()
				defer snaps.mu.Unlock()
				So(len(snaps.snaps), ShouldEqual, before+3)
			})
		})
	})
}
