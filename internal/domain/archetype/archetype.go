// Package archetype assigns a golfer one of twelve fixed player archetypes from a
// scoring result, using an ordered rule cascade.
package archetype

import (
	"errors"
	"fmt"
	"sort"

	"github.com/okian/fairway/internal/domain/scoring"
)

// ErrUnknownArchetype is returned when an id is not in the taxonomy.
var ErrUnknownArchetype = errors.New("unknown archetype")

// ID identifies an archetype. The first character is its family.
type ID string

// Archetype ids, grouped by family.
const (
	A1 ID = "A1"
	A2 ID = "A2"
	A3 ID = "A3"
	B1 ID = "B1"
	B2 ID = "B2"
	B3 ID = "B3"
	C1 ID = "C1"
	C2 ID = "C2"
	C3 ID = "C3"
	D1 ID = "D1"
	D2 ID = "D2"
	D3 ID = "D3"
)

// Family returns the family letter of the id.
func (id ID) Family() string {
	if id == "" {
		return ""
	}
	return string(id[0])
}

// Archetype is a hand-authored player type. Values are immutable configuration.
type Archetype struct {
	ID                ID                  `json:"id"`
	Name              string              `json:"name"`
	Tagline           string              `json:"tagline"`
	Description       string              `json:"description"`
	Strategy          string              `json:"strategy"`
	DefiningStrengths []scoring.Dimension `json:"defining_strengths"`
	DefiningGaps      []scoring.Dimension `json:"defining_gaps"`
	CanEvolveTo       []ID                `json:"can_evolve_to"`
	EvolvedFrom       []ID                `json:"evolved_from"`
	ProReferences     []string            `json:"pro_references"`
}

// Lookup returns the archetype with the given id.
func Lookup(id ID) (Archetype, error) {
	a, ok := taxonomy[id]
	if !ok {
		return Archetype{}, fmt.Errorf("%q: %w", id, ErrUnknownArchetype)
	}
	return a, nil
}

// All returns every archetype ordered by id.
func All() []Archetype {
	out := make([]Archetype, 0, len(taxonomy))
	for _, id := range IDs() {
		out = append(out, taxonomy[id])
	}
	return out
}

// IDs returns every archetype id in order.
func IDs() []ID {
	ids := make([]ID, 0, len(taxonomy))
	for id := range taxonomy {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func mustLookup(id ID) Archetype {
	a, err := Lookup(id)
	if err != nil {
		panic(fmt.Sprintf("archetype: %v", err))
	}
	return a
}
