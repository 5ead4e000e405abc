package repository

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: overall DESC, then playerID ASC. "less" means ranks earlier, so an in-order
// traversal yields the leaderboard from best to worst. Subtree sizes give O(log n) ranks.

// scoreScale stores overall scores as fixed-point hundredths, matching their precision.
const scoreScale = 100

type scoreFP int64

func toFixedPoint(x float64) scoreFP {
	return scoreFP(math.Round(x * scoreScale))
}

func toFloat(x scoreFP) float64 {
	return float64(x) / scoreScale
}

// record is a player's latest leaderboard state.
type record struct {
	score       scoreFP
	handicap    float64
	archetypeID string
	updatedAt   time.Time
}

type node struct {
	id    string
	score scoreFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aScore, aID) should appear before (bScore, bID).
func less(aScore scoreFP, aID string, bScore scoreFP, bID string) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, score scoreFP, prio uint64) *node {
	if n == nil {
		return &node{id: id, score: score, prio: prio, size: 1}
	}
	if less(score, id, n.score, n.id) {
		n.left = insert(n.left, id, score, prio)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, score, prio)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, score scoreFP) *node {
	if n == nil {
		return nil
	}
	switch {
	case score == n.score && id == n.id:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, score)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, score)
		}
	case less(score, id, n.score, n.id):
		n.left = deleteNode(n.left, id, score)
	default:
		n.right = deleteNode(n.right, id, score)
	}
	fix(n)
	return n
}

// countBefore returns how many nodes rank strictly before (score, id).
func countBefore(n *node, score scoreFP, id string) int {
	count := 0
	for n != nil {
		if less(n.score, n.id, score, id) {
			count += nsize(n.left) + 1
			n = n.right
		} else {
			n = n.left
		}
	}
	return count
}

// collectTopN appends up to limit nodes in rank order.
func collectTopN(n *node, limit int, out *[]*node) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, n)
	}
	collectTopN(n.right, limit, out)
}

// TreapStore is the in-memory leaderboard. Reads take a shared lock.
type TreapStore struct {
	mu   sync.RWMutex
	root *node
	byID map[string]record
	rng  *rand.Rand
	now  func() time.Time
}

// NewTreapStore constructs an empty leaderboard.
func NewTreapStore(opts ...Option) *TreapStore {
	s := &TreapStore{
		byID: make(map[string]record),
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert implements Store.Upsert in O(log n) expected time.
func (s *TreapStore) Upsert(_ context.Context, ps model.PlayerScore) (bool, error) {
	if ps.PlayerID == "" {
		metrics.RecordErrorByComponent("repository", "missing_player")
		return false, fmt.Errorf("empty player id: %w", ErrNotFound)
	}
	if math.IsNaN(ps.Overall) || math.IsInf(ps.Overall, 0) {
		metrics.RecordErrorByComponent("repository", "invalid_score")
		return false, fmt.Errorf("%v: %w", ps.Overall, ErrInvalidScore)
	}
	start := time.Now()
	score := toFixedPoint(ps.Overall)

	s.mu.Lock()
	old, existed := s.byID[ps.PlayerID]
	if existed {
		s.root = deleteNode(s.root, ps.PlayerID, old.score)
	}
	s.byID[ps.PlayerID] = record{
		score:       score,
		handicap:    ps.Handicap,
		archetypeID: string(ps.ArchetypeID),
		updatedAt:   s.now(),
	}
	s.root = insert(s.root, ps.PlayerID, score, s.rng.Uint64())
	count := len(s.byID)
	s.mu.Unlock()

	metrics.RecordLeaderboardUpdate(float64(time.Since(start).Microseconds()) / 1000)
	if !existed {
		metrics.UpdateLeaderboardSize(count)
	}
	return !existed, nil
}

// Rank returns the player's entry in O(log n). Tied players share a rank.
func (s *TreapStore) Rank(_ context.Context, playerID string) (Entry, error) {
	defer observeQuery(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[playerID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, fmt.Errorf("%q: %w", playerID, ErrNotFound)
	}
	// An empty id ranks before every real id with the same score, so this counts only
	// strictly better scores.
	e := s.entry(playerID, rec)
	e.Rank = countBefore(s.root, rec.score, "") + 1
	return e, nil
}

// TopN returns the top N entries ordered by overall desc, then player id.
func (s *TreapStore) TopN(_ context.Context, n int) ([]Entry, error) {
	defer observeQuery(time.Now())

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, fmt.Errorf("limit %d: %w", n, ErrInvalidLimit)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]*node, 0, min(n, len(s.byID)))
	collectTopN(s.root, n, &nodes)

	out := make([]Entry, len(nodes))
	for i, nd := range nodes {
		out[i] = s.entry(nd.id, s.byID[nd.id])
		if i > 0 && nodes[i-1].score == nd.score {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out, nil
}

// Count returns the number of ranked players.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *TreapStore) entry(id string, rec record) Entry {
	return Entry{
		PlayerID:    id,
		Overall:     toFloat(rec.score),
		Handicap:    rec.handicap,
		ArchetypeID: rec.archetypeID,
		UpdatedAt:   rec.updatedAt,
	}
}

func observeQuery(start time.Time) {
	metrics.RecordLeaderboardQuery(float64(time.Since(start).Microseconds()) / 1000)
}
