package service_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"

	"github.com/okian/fairway/internal/adapters/repository"
	"github.com/okian/fairway/internal/adapters/storage"
	service "github.com/okian/fairway/internal/app"
	"github.com/okian/fairway/internal/domain/archetype"
	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/scoring"
	"github.com/okian/fairway/internal/domain/timeline"
	"github.com/okian/fairway/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func metricsFor(carry float64) scoring.Metrics {
	return scoring.Metrics{
		scoring.MetricCarryDriver:   carry,
		scoring.MetricDriverShots:   30,
		scoring.MetricScoreMean:     92,
		scoring.MetricScoreStdDev:   4.5,
		scoring.MetricPuttsPerRound: 33,
		scoring.MetricRoundsCount:   10,
	}
}

func newService(opts ...service.Option) *service.Service {
	return service.New(append([]service.Option{service.WithLogger(logger.Nop())}, opts...)...)
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestProfile(t *testing.T) {
	convey.Convey("Given a service without history", t, func() {
		ctx := context.Background()
		svc := newService()

		convey.Convey("Profile scores, classifies and ranks the player", func() {
			p, err := svc.Profile(ctx, scoring.Input{PlayerID: "p1", Handicap: 18, Metrics: metricsFor(215)})
			convey.So(err, convey.ShouldBeNil)
			convey.So(p.Scoring.PlayerID, convey.ShouldEqual, "p1")
			_, err = archetype.Lookup(p.Identity.Archetype.ID)
			convey.So(err, convey.ShouldBeNil)

			entry, err := svc.Rank(ctx, "p1")
			convey.So(err, convey.ShouldBeNil)
			convey.So(entry.Rank, convey.ShouldEqual, 1)
			convey.So(entry.Overall, convey.ShouldEqual, p.Scoring.OverallScore)
			convey.So(entry.ArchetypeID, convey.ShouldEqual, string(p.Identity.Archetype.ID))

			convey.Convey("and a newer profile replaces the old entry", func() {
				_, err := svc.Profile(ctx, scoring.Input{PlayerID: "p1", Handicap: 18, Metrics: scoring.Metrics{}})
				convey.So(err, convey.ShouldBeNil)
				top, err := svc.TopN(ctx, 10)
				convey.So(err, convey.ShouldBeNil)
				convey.So(top, convey.ShouldHaveLength, 1)
				convey.So(top[0].Overall, convey.ShouldEqual, 5.0)
			})
		})

		convey.Convey("Score rejects non-finite input", func() {
			_, err := svc.Score(ctx, scoring.Input{PlayerID: "p1", Handicap: math.NaN()})
			convey.So(errors.Is(err, scoring.ErrInvalidHandicap), convey.ShouldBeTrue)
			_, err = svc.Profile(ctx, scoring.Input{PlayerID: "p1", Metrics: scoring.Metrics{scoring.MetricCarryDriver: math.Inf(1)}})
			convey.So(errors.Is(err, scoring.ErrInvalidMetric), convey.ShouldBeTrue)
		})

		convey.Convey("Unknown players are not ranked", func() {
			_, err := svc.Rank(ctx, "ghost")
			convey.So(errors.Is(err, repository.ErrNotFound), convey.ShouldBeTrue)
		})

		convey.Convey("Classify maps a score vector to an archetype", func() {
			scores := map[string]float64{}
			for _, d := range scoring.Dimensions {
				scores[string(d)] = 5
			}
			scores[string(scoring.Power)] = 8
			scores[string(scoring.Accuracy)] = 4

			id, err := svc.Classify(ctx, "p2", 15, scores)
			convey.So(err, convey.ShouldBeNil)
			convey.So(id.Archetype.ID, convey.ShouldEqual, archetype.A1)

			_, err = svc.Classify(ctx, "p2", 15, map[string]float64{"swagger": 3})
			convey.So(errors.Is(err, scoring.ErrUnknownDimension), convey.ShouldBeTrue)
		})

		convey.Convey("History is reported as disabled", func() {
			_, err := svc.History(ctx, "p1", 10)
			convey.So(errors.Is(err, service.ErrHistoryDisabled), convey.ShouldBeTrue)
			convey.So(errors.Is(svc.PruneHistory(ctx), service.ErrHistoryDisabled), convey.ShouldBeTrue)
		})

		convey.Convey("Archetypes can be listed, searched and looked up", func() {
			convey.So(svc.Archetypes(""), convey.ShouldHaveLength, 12)
			found := svc.Archetypes("B3")
			convey.So(found, convey.ShouldNotBeEmpty)
			convey.So(found[0].ID, convey.ShouldEqual, archetype.B3)

			_, err := svc.Archetype("Z9")
			convey.So(errors.Is(err, archetype.ErrUnknownArchetype), convey.ShouldBeTrue)
		})

		convey.So(svc.Stop(ctx), convey.ShouldBeNil)
	})
}

func TestScoreBatch(t *testing.T) {
	convey.Convey("Given a service with a small batch limit", t, func() {
		ctx := context.Background()
		svc := newService(service.WithBatch(5, 2))

		convey.Convey("Results keep input order and carry per-item errors", func() {
			inputs := []scoring.Input{
				{PlayerID: "a", Handicap: 10, Metrics: metricsFor(240)},
				{PlayerID: "b", Handicap: math.Inf(1)},
				{PlayerID: "c", Handicap: 28, Metrics: metricsFor(170)},
			}
			items, err := svc.ScoreBatch(ctx, inputs)
			convey.So(err, convey.ShouldBeNil)
			convey.So(items, convey.ShouldHaveLength, 3)
			convey.So(items[0].Profile.Scoring.PlayerID, convey.ShouldEqual, "a")
			convey.So(items[1].Profile, convey.ShouldBeNil)
			convey.So(errors.Is(items[1].Err, scoring.ErrInvalidHandicap), convey.ShouldBeTrue)
			convey.So(items[2].Profile.Scoring.PlayerID, convey.ShouldEqual, "c")

			top, err := svc.TopN(ctx, 10)
			convey.So(err, convey.ShouldBeNil)
			convey.So(top, convey.ShouldHaveLength, 2)
		})

		convey.Convey("Empty and oversized batches are rejected", func() {
			_, err := svc.ScoreBatch(ctx, nil)
			convey.So(errors.Is(err, service.ErrEmptyBatch), convey.ShouldBeTrue)
			_, err = svc.ScoreBatch(ctx, make([]scoring.Input, 6))
			convey.So(errors.Is(err, service.ErrBatchTooLarge), convey.ShouldBeTrue)
		})

		convey.Convey("A cancelled context cancels the batch", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.ScoreBatch(cctx, []scoring.Input{{PlayerID: "a"}})
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
		})
	})
}

func TestSubmit(t *testing.T) {
	convey.Convey("Given a service", t, func() {
		ctx := context.Background()
		svc := newService(service.WithWorkerCount(2), service.WithQueueSize(100))
		job := model.ProfileJob{SubmissionID: "s-0", PlayerID: "p-0", Handicap: 12, Metrics: metricsFor(230)}

		convey.Convey("Submissions are refused before Start", func() {
			_, err := svc.Submit(ctx, job)
			convey.So(errors.Is(err, service.ErrNotStarted), convey.ShouldBeTrue)
		})

		convey.Convey("Once started, submissions are processed asynchronously", func() {
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)

			for i := 0; i < 20; i++ {
				j := job
				j.SubmissionID = "s-" + strconv.Itoa(i)
				j.PlayerID = "p-" + strconv.Itoa(i)
				outcome, err := svc.Submit(ctx, j)
				convey.So(err, convey.ShouldBeNil)
				convey.So(outcome, convey.ShouldEqual, service.SubmitAccepted)
			}

			outcome, err := svc.Submit(ctx, job)
			convey.So(err, convey.ShouldBeNil)
			convey.So(outcome, convey.ShouldEqual, service.SubmitDuplicate)

			bad := job
			bad.SubmissionID = ""
			_, err = svc.Submit(ctx, bad)
			convey.So(errors.Is(err, service.ErrInvalidSubmission), convey.ShouldBeTrue)
			convey.So(errors.Is(err, model.ErrMissingSubmissionID), convey.ShouldBeTrue)

			convey.So(waitFor(func() bool {
				top, err := svc.TopN(ctx, 100)
				return err == nil && len(top) == 20
			}), convey.ShouldBeTrue)

			stats := svc.GetStats()
			convey.So(stats["started"], convey.ShouldEqual, true)
			convey.So(stats["totalPlayers"], convey.ShouldEqual, 20)
			convey.So(stats["scheduledJobs"], convey.ShouldResemble, []string{service.JobMetricsRefresh})

			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			convey.So(svc.Stop(stopCtx), convey.ShouldBeNil)

			_, err = svc.Submit(ctx, model.ProfileJob{SubmissionID: "late", PlayerID: "p"})
			convey.So(errors.Is(err, service.ErrNotStarted), convey.ShouldBeTrue)
		})
	})
}

func TestHistory(t *testing.T) {
	convey.Convey("Given a service with SQLite history", t, func() {
		ctx := context.Background()
		clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
		store, err := storage.Open(ctx, filepath.Join(t.TempDir(), "history.db"), storage.WithLogger(logger.Nop()))
		convey.So(err, convey.ShouldBeNil)

		svc := newService(
			service.WithHistory(store, 24*time.Hour),
			service.WithClock(func() time.Time { return clock }),
		)

		convey.Convey("Profiles are stored newest first and pruned after the retention", func() {
			_, err := svc.Profile(ctx, scoring.Input{PlayerID: "p1", Handicap: 20, Metrics: metricsFor(200)})
			convey.So(err, convey.ShouldBeNil)
			clock = clock.Add(36 * time.Hour)
			second, err := svc.Profile(ctx, scoring.Input{PlayerID: "p1", Handicap: 19, Metrics: metricsFor(210)})
			convey.So(err, convey.ShouldBeNil)

			snaps, err := svc.History(ctx, "p1", 10)
			convey.So(err, convey.ShouldBeNil)
			convey.So(snaps, convey.ShouldHaveLength, 2)
			convey.So(snaps[0].Handicap, convey.ShouldEqual, 19)
			convey.So(snaps[0].OverallScore, convey.ShouldEqual, second.Scoring.OverallScore)
			convey.So(string(snaps[0].Payload), convey.ShouldContainSubstring, `"golf_identity"`)

			convey.So(svc.PruneHistory(ctx), convey.ShouldBeNil)
			snaps, err = svc.History(ctx, "p1", 10)
			convey.So(err, convey.ShouldBeNil)
			convey.So(snaps, convey.ShouldHaveLength, 1)

			convey.So(svc.GetStats()["historyRows"], convey.ShouldEqual, int64(1))
		})

		convey.So(svc.Stop(ctx), convey.ShouldBeNil)
		_, err = svc.History(ctx, "p1", 10)
		convey.So(errors.Is(err, service.ErrHistoryDisabled), convey.ShouldBeTrue)
	})
}

// slowHistory holds every Save until release is closed and records saves that finish
// after Close.
type slowHistory struct {
	entered chan struct{}
	release chan struct{}

	mu          sync.Mutex
	closed      bool
	lateSaves   int
	closedCalls int
}

func newSlowHistory() *slowHistory {
	return &slowHistory{entered: make(chan struct{}, 1), release: make(chan struct{})}
}

func (h *slowHistory) Save(_ context.Context, snap storage.Snapshot) (storage.Snapshot, error) { //nolint:gocritic // hugeParam: matches storage.History
	h.entered <- struct{}{}
	<-h.release
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		h.lateSaves++
		return storage.Snapshot{}, errors.New("store closed")
	}
	return snap, nil
}

func (h *slowHistory) ListByPlayer(context.Context, string, int) ([]storage.Snapshot, error) {
	return nil, nil
}

func (h *slowHistory) Prune(context.Context, time.Time) (int64, error) { return 0, nil }

func (h *slowHistory) Count(context.Context) (int64, error) { return 0, nil }

func (h *slowHistory) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.closedCalls++
	return nil
}

func (h *slowHistory) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

func TestStopWaitsForHistoryWrites(t *testing.T) {
	convey.Convey("Given a profile whose snapshot write is in flight", t, func() {
		ctx := context.Background()
		h := newSlowHistory()
		svc := newService(service.WithHistory(h, time.Hour))

		profiled := make(chan error, 1)
		go func() {
			_, err := svc.Profile(ctx, scoring.Input{PlayerID: "p1", Handicap: 12, Metrics: metricsFor(220)})
			profiled <- err
		}()
		<-h.entered

		convey.Convey("When the service stops", func() {
			stopped := make(chan error, 1)
			go func() { stopped <- svc.Stop(ctx) }()

			convey.Convey("Then the store stays open until the write finishes", func() {
				select {
				case <-stopped:
					convey.So("Stop returned early", convey.ShouldBeEmpty)
				case <-time.After(50 * time.Millisecond):
				}
				convey.So(h.isClosed(), convey.ShouldBeFalse)

				close(h.release)
				convey.So(<-profiled, convey.ShouldBeNil)
				convey.So(<-stopped, convey.ShouldBeNil)

				h.mu.Lock()
				defer h.mu.Unlock()
				convey.So(h.closed, convey.ShouldBeTrue)
				convey.So(h.closedCalls, convey.ShouldEqual, 1)
				convey.So(h.lateSaves, convey.ShouldEqual, 0)
			})

			convey.Convey("Then later history reads see it disabled", func() {
				close(h.release)
				convey.So(<-stopped, convey.ShouldBeNil)
				convey.So(<-profiled, convey.ShouldBeNil)
				_, err := svc.History(ctx, "p1", 10)
				convey.So(errors.Is(err, service.ErrHistoryDisabled), convey.ShouldBeTrue)
			})
		})
	})
}

func TestTimeline(t *testing.T) {
	convey.Convey("Given a player's dated practice and rounds", t, func() {
		svc := newService(service.WithTimelineWindow(90, 60))
		d := func(s string) timeline.Date {
			date, err := timeline.ParseDate(s)
			if err != nil {
				t.Fatalf("parse %s: %v", s, err)
			}
			return date
		}
		carry := 205.0

		periods, err := svc.Timeline(context.Background(), timeline.Request{
			PlayerID: "p1",
			Handicap: 22,
			Shots:    []timeline.Shot{{Date: d("2025-01-10"), Club: "Driver", Carry: &carry}},
			Rounds:   []timeline.Round{{Date: d("2025-03-02"), Score: 96}},
		})

		convey.So(err, convey.ShouldBeNil)
		convey.So(periods, convey.ShouldNotBeEmpty)
		convey.So(periods[len(periods)-1].IsCurrent, convey.ShouldBeTrue)
	})
}
