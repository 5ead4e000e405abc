package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/fairway/internal/adapters/scheduler"
	"github.com/okian/fairway/pkg/logger"
)

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestScheduler(t *testing.T) {
	convey.Convey("Given a scheduler", t, func() {
		s, err := scheduler.New(scheduler.WithLogger(logger.Nop()))
		convey.So(err, convey.ShouldBeNil)
		defer func() { _ = s.Stop() }()

		convey.Convey("Invalid jobs are rejected", func() {
			err := s.Add(scheduler.Job{Name: "noop", Interval: 0, Task: func(context.Context) error { return nil }})
			convey.So(errors.Is(err, scheduler.ErrInvalidJob), convey.ShouldBeTrue)
			err = s.Add(scheduler.Job{Name: "nil-task", Interval: time.Second})
			convey.So(errors.Is(err, scheduler.ErrInvalidJob), convey.ShouldBeTrue)
			convey.So(s.Jobs(), convey.ShouldBeEmpty)
		})

		convey.Convey("Jobs run repeatedly, failing ones included", func() {
			var ok, failed atomic.Int32
			convey.So(s.Add(scheduler.Job{
				Name:      "tick",
				Interval:  20 * time.Millisecond,
				Immediate: true,
				Task: func(context.Context) error {
					ok.Add(1)
					return nil
				},
			}), convey.ShouldBeNil)
			convey.So(s.Add(scheduler.Job{
				Name:      "broken",
				Interval:  20 * time.Millisecond,
				Immediate: true,
				Task: func(context.Context) error {
					failed.Add(1)
					return errors.New("boom")
				},
			}), convey.ShouldBeNil)
			convey.So(s.Jobs(), convey.ShouldResemble, []string{"tick", "broken"})

			s.Start()
			convey.So(waitFor(func() bool { return ok.Load() >= 2 && failed.Load() >= 2 }), convey.ShouldBeTrue)

			convey.So(errors.Is(s.Add(scheduler.Job{
				Name: "late", Interval: time.Second, Task: func(context.Context) error { return nil },
			}), scheduler.ErrStarted), convey.ShouldBeTrue)

			convey.So(s.Stop(), convey.ShouldBeNil)
			convey.So(s.Stop(), convey.ShouldBeNil)

			after := ok.Load()
			time.Sleep(60 * time.Millisecond)
			convey.So(ok.Load(), convey.ShouldEqual, after)
		})
	})
}
