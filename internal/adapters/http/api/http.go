// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/cors"

	"github.com/okian/fairway/internal/adapters/storage"
	service "github.com/okian/fairway/internal/app"
	"github.com/okian/fairway/internal/domain/archetype"
	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/scoring"
	"github.com/okian/fairway/internal/domain/timeline"
	"github.com/okian/fairway/internal/domain/types"
	"github.com/okian/fairway/pkg/logger"
)

const (
	defaultLeaderboardLimit = 10
	defaultMaxLimit         = 100
	defaultHistoryLimit     = 20
	maxBodyBytes            = 8 << 20
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Score(ctx context.Context, in scoring.Input) (scoring.Result, error)
	Classify(ctx context.Context, playerID string, hcp float64, scores map[string]float64) (archetype.Result, error)
	Profile(ctx context.Context, in scoring.Input) (model.Profile, error)
	Submit(ctx context.Context, job model.ProfileJob) (service.SubmitOutcome, error)
	ScoreBatch(ctx context.Context, inputs []scoring.Input) ([]service.BatchItem, error)
	Timeline(ctx context.Context, req timeline.Request) ([]timeline.Period, error)

	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, playerID string) (Entry, error)
	History(ctx context.Context, playerID string, limit int) ([]storage.Snapshot, error)

	Archetypes(query string) []archetype.Archetype
	Archetype(id string) (archetype.Archetype, error)

	StatsProvider
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	scoringHandler     *ScoringHandler
	profilesHandler    *ProfilesHandler
	timelineHandler    *TimelineHandler
	archetypesHandler  *ArchetypesHandler
	leaderboardHandler *LeaderboardHandler
	playersHandler     *PlayersHandler
	dashboardHandler   *dashboardHandler

	allowedOrigins []string
	logger         logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	maxLimit       int
	allowedOrigins []string
	logger         logger.Logger
}

// WithMaxLeaderboardLimit caps GET /leaderboard?limit.
func WithMaxLeaderboardLimit(n int) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxLimit = n
		}
	}
}

// WithAllowedOrigins sets the CORS origins. Empty allows any origin.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(c *serverConfig) {
		c.allowedOrigins = origins
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) ServerOption {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	cfg := serverConfig{maxLimit: defaultMaxLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Get()
	}

	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(deps),
		scoringHandler:     NewScoringHandler(deps),
		profilesHandler:    NewProfilesHandler(deps),
		timelineHandler:    NewTimelineHandler(deps),
		archetypesHandler:  NewArchetypesHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, cfg.maxLimit),
		playersHandler:     NewPlayersHandler(deps, cfg.maxLimit),
		dashboardHandler:   newDashboardHandler(),
		allowedOrigins:     cfg.allowedOrigins,
		logger:             cfg.logger.Named("http"),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /score", MetricsMiddleware(s.scoringHandler.HandleScore, "score"))
	mux.HandleFunc("POST /classify", MetricsMiddleware(s.scoringHandler.HandleClassify, "classify"))
	mux.HandleFunc("POST /profile", MetricsMiddleware(s.scoringHandler.HandleProfile, "profile"))
	mux.HandleFunc("POST /profiles", MetricsMiddleware(s.profilesHandler.HandleSubmit, "profiles"))
	mux.HandleFunc("POST /profiles/batch", MetricsMiddleware(s.profilesHandler.HandleBatch, "profiles_batch"))
	mux.HandleFunc("POST /timeline", MetricsMiddleware(s.timelineHandler.HandleTimeline, "timeline"))

	mux.HandleFunc("GET /archetypes", MetricsMiddleware(s.archetypesHandler.HandleList, "archetypes"))
	mux.HandleFunc("GET /archetypes/{id}", MetricsMiddleware(s.archetypesHandler.HandleGet, "archetype"))
	mux.HandleFunc("GET /leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("GET /players/{id}", MetricsMiddleware(s.playersHandler.HandleGetRank, "player"))
	mux.HandleFunc("GET /players/{id}/history", MetricsMiddleware(s.playersHandler.HandleGetHistory, "player_history"))
}

// Handler wraps h with request ids and CORS.
func (s *Server) Handler(h http.Handler) http.Handler {
	origins := s.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})
	return RequestIDMiddleware(s.logger)(c.Handler(h))
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads a single JSON document into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// queryLimit parses ?limit=N, returning def when absent.
func queryLimit(r *http.Request, def, maxLimit int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("limit %q: %w", raw, ErrBadRequest)
	}
	if n > maxLimit {
		return 0, fmt.Errorf("limit %d > %d: %w", n, maxLimit, ErrLimitTooHigh)
	}
	return n, nil
}
