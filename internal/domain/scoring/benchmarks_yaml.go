package scoring

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadBenchmarks decodes a YAML benchmark overlay and applies it over the defaults.
// Each table in the overlay replaces the default table of the same name as a whole.
// The merged set is validated before it is returned.
//
//	version: v1.1
//	tables:
//	  fairway:
//	    levels: [0, 18, 36]
//	    metrics:
//	      fairway_hit_pct: [62, 45, 30]
func LoadBenchmarks(r io.Reader) (*BenchmarkSet, error) {
	var overlay BenchmarkSet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&overlay); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode benchmarks: %w: %w", ErrInvalidBenchmark, err)
	}

	set := DefaultBenchmarks()
	if overlay.Version != "" {
		set.Version = overlay.Version
	}
	for name, t := range overlay.Tables {
		set.Tables[name] = t
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadBenchmarksFile is LoadBenchmarks over the file at path.
func LoadBenchmarksFile(path string) (*BenchmarkSet, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("open benchmarks %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return LoadBenchmarks(f)
}
