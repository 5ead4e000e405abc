package scoring

import (
	"fmt"
	"maps"
	"slices"
	"sort"
)

// Benchmark table names.
const (
	TableDriver        = "driver"
	TableIron7         = "iron7"
	TablePW            = "pw"
	TableStrokesGained = "strokes_gained"
	TableFairway       = "fairway"
	TableIronSmash     = "iron_smash"
	TableScrambling    = "scrambling"
	TablePutting       = "putting"
	TableConsistency   = "consistency"
	TableMental        = "mental"
	TableClubSpeed     = "club_speed"
	TableClubSpeed7    = "club_speed_7iron"
	TableAccuracy      = "accuracy"
)

// DefaultBenchmarkVersion labels the built-in tables.
const DefaultBenchmarkVersion = "v1.0"

var (
	fullLevels  = []float64{0, 5, 10, 15, 20, 25, 30, 36}
	sevenLevels = []float64{0, 10, 15, 20, 25, 30, 36}
)

// Table holds expected metric values at a set of handicap levels.
type Table struct {
	Levels  []float64            `yaml:"levels" json:"levels"`
	Metrics map[string][]float64 `yaml:"metrics" json:"metrics"`
}

// Interpolate returns the expected value of metric at hcp. Values between two levels are
// blended linearly; values outside the table clamp to the first or last level.
func (t *Table) Interpolate(hcp float64, metric string) (float64, error) {
	row, ok := t.Metrics[metric]
	if !ok {
		return 0, fmt.Errorf("metric %q: %w", metric, ErrUnknownBenchmark)
	}
	levels := t.Levels
	last := len(levels) - 1
	if hcp <= levels[0] {
		return row[0], nil
	}
	if hcp >= levels[last] {
		return row[last], nil
	}
	// First level at or above hcp; hcp is inside (levels[0], levels[last]).
	hi := sort.SearchFloat64s(levels, hcp)
	if levels[hi] == hcp {
		return row[hi], nil
	}
	lo := hi - 1
	frac := (hcp - levels[lo]) / (levels[hi] - levels[lo])
	return row[lo]*(1-frac) + row[hi]*frac, nil
}

// Scratch returns the value of metric at the lowest handicap level.
func (t *Table) Scratch(metric string) (float64, error) {
	row, ok := t.Metrics[metric]
	if !ok {
		return 0, fmt.Errorf("metric %q: %w", metric, ErrUnknownBenchmark)
	}
	return row[0], nil
}

func (t *Table) validate(name string) error {
	if len(t.Levels) < 2 {
		return fmt.Errorf("table %q needs at least two levels: %w", name, ErrInvalidBenchmark)
	}
	for i := 1; i < len(t.Levels); i++ {
		if t.Levels[i] <= t.Levels[i-1] {
			return fmt.Errorf("table %q levels must be strictly ascending: %w", name, ErrInvalidBenchmark)
		}
	}
	if len(t.Metrics) == 0 {
		return fmt.Errorf("table %q has no metrics: %w", name, ErrInvalidBenchmark)
	}
	for metric, row := range t.Metrics {
		if len(row) != len(t.Levels) {
			return fmt.Errorf("table %q metric %q has %d values for %d levels: %w",
				name, metric, len(row), len(t.Levels), ErrInvalidBenchmark)
		}
	}
	return nil
}

func (t *Table) clone() *Table {
	c := &Table{
		Levels:  slices.Clone(t.Levels),
		Metrics: make(map[string][]float64, len(t.Metrics)),
	}
	for k, v := range t.Metrics {
		c.Metrics[k] = slices.Clone(v)
	}
	return c
}

// BenchmarkSet is a versioned collection of named benchmark tables.
type BenchmarkSet struct {
	Version string            `yaml:"version" json:"version"`
	Tables  map[string]*Table `yaml:"tables" json:"tables"`
}

// requiredMetrics lists every table and metric the engine reads.
var requiredMetrics = map[string][]string{
	TableDriver:        {"ball_speed", "carry", "lateral_std"},
	TableIron7:         {"carry", "lateral_std"},
	TablePW:            {"lateral_std"},
	TableStrokesGained: {"sg_ott", "sg_app", "sg_arg", "sg_putt"},
	TableFairway:       {"fairway_hit_pct"},
	TableIronSmash:     {"smash_factor"},
	TableScrambling:    {"scrambling_pct"},
	TablePutting:       {"putts_per_round", "three_putt_pct"},
	TableConsistency:   {"score_cv", "carry_cv_driver"},
	TableMental:        {"bounce_back", "f9_b9_delta", "par3_relative", "explosion_hole"},
	TableClubSpeed:     {"club_speed_driver"},
	TableClubSpeed7:    {"club_speed_7iron"},
	TableAccuracy:      {"face_to_path", "gir_pct"},
}

// Validate checks every table and that all tables and metrics the engine reads exist.
func (b *BenchmarkSet) Validate() error {
	if b == nil {
		return fmt.Errorf("nil benchmark set: %w", ErrInvalidBenchmark)
	}
	for _, name := range slices.Sorted(maps.Keys(b.Tables)) {
		t := b.Tables[name]
		if t == nil {
			return fmt.Errorf("table %q is empty: %w", name, ErrInvalidBenchmark)
		}
		if err := t.validate(name); err != nil {
			return err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(requiredMetrics)) {
		t, ok := b.Tables[name]
		if !ok {
			return fmt.Errorf("missing table %q: %w", name, ErrInvalidBenchmark)
		}
		for _, metric := range requiredMetrics[name] {
			if _, ok := t.Metrics[metric]; !ok {
				return fmt.Errorf("table %q missing metric %q: %w", name, metric, ErrInvalidBenchmark)
			}
		}
	}
	return nil
}

// Table returns the named table.
func (b *BenchmarkSet) Table(name string) (*Table, error) {
	t, ok := b.Tables[name]
	if !ok {
		return nil, fmt.Errorf("table %q: %w", name, ErrUnknownBenchmark)
	}
	return t, nil
}

// Clone returns a deep copy of the set.
func (b *BenchmarkSet) Clone() *BenchmarkSet {
	c := &BenchmarkSet{Version: b.Version, Tables: make(map[string]*Table, len(b.Tables))}
	for name, t := range b.Tables {
		c.Tables[name] = t.clone()
	}
	return c
}

// expected interpolates a benchmark and its scratch value. The set must have passed
// Validate, so a lookup failure is a programming error.
func (b *BenchmarkSet) expected(table, metric string, hcp float64) (atHCP, atScratch float64) {
	t, err := b.Table(table)
	if err != nil {
		panic(fmt.Sprintf("scoring: %v", err))
	}
	atHCP, err = t.Interpolate(hcp, metric)
	if err != nil {
		panic(fmt.Sprintf("scoring: table %q: %v", table, err))
	}
	atScratch, _ = t.Scratch(metric)
	return atHCP, atScratch
}

// DefaultBenchmarks returns a fresh copy of the built-in benchmark tables.
func DefaultBenchmarks() *BenchmarkSet {
	return &BenchmarkSet{
		Version: DefaultBenchmarkVersion,
		Tables: map[string]*Table{
			TableDriver: {
				Levels: slices.Clone(fullLevels),
				Metrics: map[string][]float64{
					"ball_speed":   {267, 240, 232, 225, 215, 210, 200, 188},
					"carry":        {257, 228, 218, 210, 198, 190, 178, 162},
					"lateral_std":  {5.5, 7.0, 9.0, 10.5, 13.0, 15.5, 19.0, 23.0},
					"smash_factor": {1.49, 1.47, 1.45, 1.43, 1.41, 1.39, 1.36, 1.32},
				},
			},
			TableIron7: {
				Levels: slices.Clone(fullLevels),
				Metrics: map[string][]float64{
					"ball_speed":  {177, 165, 158, 153, 147, 143, 136, 128},
					"carry":       {160, 150, 142, 135, 128, 122, 113, 103},
					"lateral_std": {3.5, 5.0, 7.0, 8.5, 11.0, 13.5, 17.0, 21.0},
				},
			},
			TablePW: {
				Levels: slices.Clone(fullLevels),
				Metrics: map[string][]float64{
					"carry":       {125, 118, 112, 105, 98, 93, 86, 78},
					"lateral_std": {2.5, 3.5, 5.0, 6.5, 9.0, 11.5, 14.0, 18.0},
					"spin":        {9500, 8500, 7800, 7000, 6200, 5600, 5000, 4300},
				},
			},
			TableStrokesGained: {
				Levels: slices.Clone(fullLevels),
				Metrics: map[string][]float64{
					"sg_ott":  {0.0, -0.3, -0.6, -1.0, -1.5, -2.1, -2.8, -3.8},
					"sg_app":  {0.0, -0.4, -0.9, -1.6, -2.3, -3.0, -3.8, -5.0},
					"sg_arg":  {0.0, -0.3, -0.6, -0.9, -1.3, -1.7, -2.2, -3.0},
					"sg_putt": {0.0, -0.2, -0.4, -0.6, -0.8, -1.0, -1.3, -1.7},
				},
			},
			TableFairway: {
				Levels:  []float64{0, 10, 20, 30, 36},
				Metrics: map[string][]float64{"fairway_hit_pct": {60, 50, 42, 34, 28}},
			},
			TableIronSmash: {
				Levels:  slices.Clone(sevenLevels),
				Metrics: map[string][]float64{"smash_factor": {1.37, 1.35, 1.33, 1.31, 1.29, 1.26, 1.23}},
			},
			TableScrambling: {
				Levels:  slices.Clone(sevenLevels),
				Metrics: map[string][]float64{"scrambling_pct": {58, 45, 38, 30, 23, 18, 13}},
			},
			TablePutting: {
				Levels: slices.Clone(sevenLevels),
				Metrics: map[string][]float64{
					"putts_per_round": {28.2, 31.5, 32.8, 33.8, 35.2, 36.5, 38.5},
					"three_putt_pct":  {2.5, 8.0, 11.0, 14.0, 18.0, 22.0, 28.0},
				},
			},
			TableConsistency: {
				Levels: slices.Clone(sevenLevels),
				Metrics: map[string][]float64{
					"score_cv":        {3.0, 6.0, 8.0, 10.0, 12.5, 15.0, 19.0},
					"carry_cv_driver": {2.0, 4.0, 5.0, 6.5, 8.0, 10.0, 13.0},
				},
			},
			TableMental: {
				Levels: slices.Clone(sevenLevels),
				Metrics: map[string][]float64{
					"bounce_back":    {33, 22, 18, 15, 12, 9, 6},
					"f9_b9_delta":    {0.8, 2.0, 2.5, 3.2, 4.0, 5.2, 7.0},
					"par3_relative":  {0.0, 0.5, 0.8, 1.1, 1.4, 1.8, 2.3},
					"explosion_hole": {0.5, 3.0, 5.0, 7.0, 9.5, 12.0, 16.0},
				},
			},
			TableClubSpeed: {
				Levels:  slices.Clone(fullLevels),
				Metrics: map[string][]float64{"club_speed_driver": {179, 165, 155, 150, 143, 138, 133, 125}},
			},
			TableClubSpeed7: {
				Levels:  slices.Clone(sevenLevels),
				Metrics: map[string][]float64{"club_speed_7iron": {136, 124, 118, 113, 108, 103, 97}},
			},
			TableAccuracy: {
				Levels: slices.Clone(fullLevels),
				Metrics: map[string][]float64{
					"face_to_path": {1.0, 2.0, 2.8, 3.5, 4.5, 5.5, 7.0, 9.0},
					"gir_pct":      {66, 52, 40, 32, 25, 18, 13, 8},
				},
			},
		},
	}
}
