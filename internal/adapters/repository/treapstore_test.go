package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/okian/fairway/internal/domain/archetype"
	"github.com/okian/fairway/internal/domain/model"
)

func score(id string, overall float64) model.PlayerScore {
	return model.PlayerScore{PlayerID: id, Overall: overall, Handicap: 18, ArchetypeID: archetype.C3}
}

func TestTreapStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewTreapStore(WithSeed(1), WithClock(func() time.Time { return fixed }))

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	created, err := store.Upsert(ctx, score("alice", 6.42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected first upsert to create the player")
	}

	entry, err := store.Rank(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Rank != 1 || entry.Overall != 6.42 || entry.ArchetypeID != "C3" || !entry.UpdatedAt.Equal(fixed) {
		t.Errorf("unexpected entry %+v", entry)
	}

	if _, err := store.Rank(ctx, "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTreapStore_LatestProfileWins(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(WithSeed(2))

	for _, s := range []model.PlayerScore{score("alice", 7.1), score("bob", 6.0)} {
		if _, err := store.Upsert(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	created, err := store.Upsert(ctx, score("alice", 5.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected update of an existing player")
	}
	if count := store.Count(ctx); count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}

	top, err := store.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 2 || top[0].PlayerID != "bob" || top[1].PlayerID != "alice" || top[1].Overall != 5.5 {
		t.Errorf("lower latest score should replace the old one, got %+v", top)
	}
}

func TestTreapStore_TiesShareRank(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(WithSeed(3))
	for _, s := range []model.PlayerScore{
		score("carol", 6.5), score("alice", 6.5), score("dave", 8.0), score("bob", 5.0),
	} {
		if _, err := store.Upsert(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	top, err := store.TopN(ctx, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []struct {
		id   string
		rank int
	}{{"dave", 1}, {"alice", 2}, {"carol", 2}, {"bob", 4}}
	for i, w := range want {
		if top[i].PlayerID != w.id || top[i].Rank != w.rank {
			t.Errorf("position %d: want %s rank %d, got %s rank %d", i, w.id, w.rank, top[i].PlayerID, top[i].Rank)
		}
	}

	for _, w := range want {
		e, err := store.Rank(ctx, w.id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Rank != w.rank {
			t.Errorf("Rank(%s): want %d, got %d", w.id, w.rank, e.Rank)
		}
	}
}

func TestTreapStore_InvalidInput(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore()

	if _, err := store.TopN(ctx, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
	if _, err := store.Upsert(ctx, score("nan", math.NaN())); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("expected ErrInvalidScore, got %v", err)
	}
	if _, err := store.Upsert(ctx, score("", 5)); err == nil {
		t.Error("expected error for empty player id")
	}
	if top, err := store.TopN(ctx, 5); err != nil || len(top) != 0 {
		t.Errorf("expected empty leaderboard, got %v %v", top, err)
	}
}

// TestTreapStore_MatchesSortedReference checks ranks against a brute-force sort after
// many random upserts.
func TestTreapStore_MatchesSortedReference(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(WithSeed(4))
	rng := rand.New(rand.NewSource(4))
	latest := map[string]float64{}

	for i := 0; i < 2000; i++ {
		id := fmt.Sprintf("p%03d", rng.Intn(300))
		overall := math.Round(rng.Float64()*1000) / 100
		latest[id] = overall
		if _, err := store.Upsert(ctx, score(id, overall)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	type row struct {
		id      string
		overall float64
	}
	ref := make([]row, 0, len(latest))
	for id, o := range latest {
		ref = append(ref, row{id, o})
	}
	sort.Slice(ref, func(i, j int) bool {
		if ref[i].overall != ref[j].overall {
			return ref[i].overall > ref[j].overall
		}
		return ref[i].id < ref[j].id
	})

	top, err := store.TopN(ctx, len(ref))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != len(ref) {
		t.Fatalf("expected %d entries, got %d", len(ref), len(top))
	}
	for i := range ref {
		if top[i].PlayerID != ref[i].id || top[i].Overall != ref[i].overall {
			t.Fatalf("position %d: want %+v, got %+v", i, ref[i], top[i])
		}
		e, err := store.Rank(ctx, ref[i].id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Rank != top[i].Rank {
			t.Fatalf("Rank(%s)=%d disagrees with TopN rank %d", ref[i].id, e.Rank, top[i].Rank)
		}
	}
}

func TestTreapStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore()
	const writers, perWriter = 8, 200

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				id := fmt.Sprintf("w%d-p%d", w, i%50)
				if _, err := store.Upsert(ctx, score(id, float64(i%10))); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if _, err := store.TopN(ctx, 5); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		}(w)
	}
	wg.Wait()

	if count := store.Count(ctx); count != writers*50 {
		t.Errorf("expected %d players, got %d", writers*50, count)
	}
}
