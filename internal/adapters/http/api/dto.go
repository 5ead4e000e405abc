package api

import (
	"github.com/okian/fairway/internal/domain/archetype"
	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/scoring"
)

// scoreRequest is the body of POST /score and POST /profile, and one item of a batch.
type scoreRequest struct {
	PlayerID string             `json:"player_id"`
	Handicap *float64           `json:"handicap"`
	Metrics  map[string]float64 `json:"metrics"`
}

func (r scoreRequest) input() (scoring.Input, error) {
	if r.Handicap == nil {
		return scoring.Input{}, wrapKind("api.score", ErrBadRequest, errMissing("handicap"))
	}
	return scoring.Input{PlayerID: r.PlayerID, Handicap: *r.Handicap, Metrics: scoring.Metrics(r.Metrics)}, nil
}

// classifyRequest is the body of POST /classify.
type classifyRequest struct {
	PlayerID string             `json:"player_id"`
	Handicap *float64           `json:"handicap"`
	Scores   map[string]float64 `json:"scores"`
}

// submissionRequest is the body of POST /profiles.
type submissionRequest struct {
	SubmissionID string             `json:"submission_id"`
	PlayerID     string             `json:"player_id"`
	Handicap     *float64           `json:"handicap"`
	Metrics      map[string]float64 `json:"metrics"`
}

func (r submissionRequest) job() (model.ProfileJob, error) {
	if r.Handicap == nil {
		return model.ProfileJob{}, wrapKind("api.submit", ErrBadRequest, errMissing("handicap"))
	}
	return model.ProfileJob{
		SubmissionID: r.SubmissionID,
		PlayerID:     r.PlayerID,
		Handicap:     *r.Handicap,
		Metrics:      scoring.Metrics(r.Metrics),
	}, nil
}

type batchRequest struct {
	Profiles []scoreRequest `json:"profiles"`
}

type missingFieldError string

func (e missingFieldError) Error() string { return "missing " + string(e) }

func errMissing(field string) error { return missingFieldError(field) }

// scoringProfile is the JSON shape of a scoring result.
type scoringProfile struct {
	PlayerID         string                            `json:"player_id"`
	PlayerHCP        float64                           `json:"player_hcp"`
	OverallScore     float64                           `json:"overall_score"`
	TeeToGreen       float64                           `json:"tee_to_green"`
	ScoringGame      float64                           `json:"scoring_game"`
	DataCompleteness float64                           `json:"data_completeness"`
	RoundsAnalyzed   int                               `json:"rounds_analyzed"`
	ShotsAnalyzed    int                               `json:"shots_analyzed"`
	BenchmarkVersion string                            `json:"benchmark_version"`
	Dimensions       map[string]scoring.DimensionScore `json:"dimensions"`
	Ranking          []scoring.DimensionValue          `json:"ranking"`
	TopStrength      scoring.DimensionValue            `json:"top_strength"`
	TopGap           scoring.DimensionValue            `json:"top_gap"`
}

func newScoringProfile(r *scoring.Result) scoringProfile {
	dims := make(map[string]scoring.DimensionScore, len(scoring.Dimensions))
	for _, d := range scoring.Dimensions {
		ds, _ := r.Dimension(d)
		if ds.Notes == nil {
			ds.Notes = []string{}
		}
		dims[string(d)] = ds
	}
	return scoringProfile{
		PlayerID:         r.PlayerID,
		PlayerHCP:        r.PlayerHCP,
		OverallScore:     r.OverallScore,
		TeeToGreen:       r.TeeToGreen,
		ScoringGame:      r.ScoringGame,
		DataCompleteness: r.DataCompleteness,
		RoundsAnalyzed:   r.RoundsAnalyzed,
		ShotsAnalyzed:    r.ShotsAnalyzed,
		BenchmarkVersion: r.BenchmarkVersion,
		Dimensions:       dims,
		Ranking:          r.DimensionsByScore(),
		TopStrength:      r.TopStrength(),
		TopGap:           r.TopGap(),
	}
}

// golfIdentity is the JSON shape of a classification.
type golfIdentity struct {
	ArchetypeID          archetype.ID           `json:"archetype_id"`
	ArchetypeName        string                 `json:"archetype_name"`
	ArchetypeFamily      string                 `json:"archetype_family"`
	ArchetypeTagline     string                 `json:"archetype_tagline"`
	ArchetypeDescription string                 `json:"archetype_description"`
	ArchetypeStrategy    string                 `json:"archetype_strategy"`
	FitScore             float64                `json:"fit_score"`
	PrimaryStrength      scoring.DimensionValue `json:"primary_strength"`
	PrimaryGap           scoring.DimensionValue `json:"primary_gap"`
	SimilarArchetypes    []archetype.Similar    `json:"similar_archetypes"`
	EvolutionTarget      *archetype.Target      `json:"evolution_target"`
	PersonalizedInsight  string                 `json:"personalized_insight"`
	ProReferences        []string               `json:"pro_references"`
	DefiningStrengths    []scoring.Dimension    `json:"defining_strengths"`
	DefiningGaps         []scoring.Dimension    `json:"defining_gaps"`
}

func newGolfIdentity(r *archetype.Result) golfIdentity {
	a := r.Archetype
	similar := r.SimilarArchetypes
	if similar == nil {
		similar = []archetype.Similar{}
	}
	return golfIdentity{
		ArchetypeID:          a.ID,
		ArchetypeName:        a.Name,
		ArchetypeFamily:      a.ID.Family(),
		ArchetypeTagline:     a.Tagline,
		ArchetypeDescription: a.Description,
		ArchetypeStrategy:    a.Strategy,
		FitScore:             r.FitScore,
		PrimaryStrength:      scoring.DimensionValue{Dimension: r.PrimaryStrengthDim, Score: r.PrimaryStrengthVal},
		PrimaryGap:           scoring.DimensionValue{Dimension: r.PrimaryGapDim, Score: r.PrimaryGapVal},
		SimilarArchetypes:    similar,
		EvolutionTarget:      r.EvolutionTarget,
		PersonalizedInsight:  r.InsightES,
		ProReferences:        nonNil(a.ProReferences),
		DefiningStrengths:    nonNil(a.DefiningStrengths),
		DefiningGaps:         nonNil(a.DefiningGaps),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// profileResponse pairs both views of a profile.
type profileResponse struct {
	ScoringProfile scoringProfile `json:"scoring_profile"`
	GolfIdentity   golfIdentity   `json:"golf_identity"`
}

func newProfileResponse(p *model.Profile) profileResponse {
	return profileResponse{
		ScoringProfile: newScoringProfile(&p.Scoring),
		GolfIdentity:   newGolfIdentity(&p.Identity),
	}
}

type batchResult struct {
	Index int `json:"index"`
	*profileResponse
	Error *errorResponse `json:"error,omitempty"`
}

type batchResponse struct {
	Results   []batchResult `json:"results"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}
