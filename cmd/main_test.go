package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/fairway/internal/config"
	"github.com/okian/fairway/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Addr = "127.0.0.1:0"
	cfg.WorkerCount = 2
	cfg.QueueSize = 64
	cfg.DBPath = filepath.Join(t.TempDir(), "fairway.db")
	cfg.ShutdownTimeout = 5 * time.Second
	return cfg
}

func TestNewService(t *testing.T) {
	convey.Convey("Given a configuration with history", t, func() {
		ctx := context.Background()
		cfg := testConfig(t)

		convey.Convey("When building the service", func() {
			svc, err := newService(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer func() { _ = svc.Stop(ctx) }()

			convey.Convey("Then history is enabled and the pool is sized", func() {
				stats := svc.GetStats()
				convey.So(stats["historyEnabled"], convey.ShouldEqual, true)
				convey.So(stats["workerCount"], convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When the benchmarks file is missing", func() {
			cfg.BenchmarksFile = filepath.Join(t.TempDir(), "missing.yaml")
			_, err := newService(ctx, cfg, logger.Nop())

			convey.Convey("Then building fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "benchmarks")
			})
		})

		convey.Convey("When a benchmarks file is configured", func() {
			path := filepath.Join(t.TempDir(), "bench.yaml")
			convey.So(os.WriteFile(path, []byte("version: test-1\n"), 0o600), convey.ShouldBeNil)
			cfg.BenchmarksFile = path
			cfg.DBPath = ""

			svc, err := newService(ctx, cfg, logger.Nop())

			convey.Convey("Then the file's version is reported", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(svc.GetStats()["benchmarkVersion"], convey.ShouldEqual, "test-1")
			})
		})
	})
}

func TestNewHTTPServer(t *testing.T) {
	convey.Convey("Given the assembled HTTP server", t, func() {
		ctx := context.Background()
		cfg := testConfig(t)
		cfg.DBPath = ""
		svc, err := newService(ctx, cfg, logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		srv := newHTTPServer(ctx, cfg, svc, logger.Nop())

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			return w
		}

		convey.Convey("Then site, docs and API routes are all served", func() {
			convey.So(get("/").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/archetypes").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/leaderboard").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then the profile route scores a player end to end", func() {
			body := `{"player_id":"p1","handicap":14,"metrics":{"score_mean":86}}`
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(body))
			srv.Handler.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/players/p1").Code, convey.ShouldEqual, http.StatusOK)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a running application", t, func() {
		cfg := testConfig(t)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- run(ctx, cfg, logger.Nop()) }()

		convey.Convey("When the context is cancelled", func() {
			time.Sleep(50 * time.Millisecond)
			cancel()

			convey.Convey("Then it shuts down cleanly", func() {
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(10 * time.Second):
					convey.So("timeout", convey.ShouldBeEmpty)
				}
			})
		})
	})
}
