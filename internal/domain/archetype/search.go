package archetype

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match tiers, best first.
const (
	tierID = iota
	tierSubstring
	tierTypo
	tierSubsequence
	noMatch
)

// maxTypoDistance is the largest edit distance between the query and a name word
// that still counts as a typo. Queries shorter than minTypoLen never match by typo.
const (
	maxTypoDistance = 2
	minTypoLen      = 4
)

var accents = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n")

func fold(s string) string {
	return accents.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Search finds archetypes by id, name or tagline. It tolerates accents, case and small
// typos. Results are ordered by match quality, then id. An empty query returns all.
func Search(query string) []Archetype {
	q := fold(query)
	if q == "" {
		return All()
	}

	type hit struct {
		a    Archetype
		tier int
	}
	var hits []hit
	for _, a := range All() {
		if t := matchTier(q, a); t != noMatch {
			hits = append(hits, hit{a: a, tier: t})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].tier < hits[j].tier })

	out := make([]Archetype, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.a)
	}
	return out
}

func matchTier(q string, a Archetype) int {
	name, tagline := fold(a.Name), fold(a.Tagline)
	switch {
	case q == fold(string(a.ID)):
		return tierID
	case strings.Contains(name, q) || strings.Contains(tagline, q):
		return tierSubstring
	case typoMatch(q, name):
		return tierTypo
	case fuzzy.MatchNormalizedFold(q, a.Name):
		return tierSubsequence
	}
	return noMatch
}

func typoMatch(q, name string) bool {
	if len(q) < minTypoLen {
		return false
	}
	for _, w := range strings.Fields(name) {
		if len(w) < minTypoLen {
			continue
		}
		if fuzzy.LevenshteinDistance(q, w) <= maxTypoDistance {
			return true
		}
	}
	return false
}
