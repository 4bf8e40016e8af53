package match

import "strings"

// FuzzyThreshold is the maximum edit distance for the fuzzy tier.
const FuzzyThreshold = 3

// Tier identifies which matching tier produced a hit, in precedence order.
type Tier string

const (
	TierExact       Tier = "exact"
	TierContainment Tier = "containment"
	TierAlias       Tier = "alias"
	TierFuzzy       Tier = "fuzzy"
	TierNone        Tier = "none"
)

// Candidate is one entity's names as seen by the matcher.
type Candidate struct {
	// Canonical is the preferred display name.
	Canonical string
	// Aliases are alternate strings that should resolve to the same
	// entity.
	Aliases []string
}

// Match checks a raw query against one candidate, trying each tier in
// order and reporting the first tier that hits. Both sides are normalized
// before comparison; the fuzzy tier applies to the canonical name only.
func Match(query string, c Candidate) (Tier, bool) {
	q := Normalize(query)
	canonical := Normalize(c.Canonical)

	if q == canonical {
		return TierExact, true
	}
	if contains(q, canonical) {
		return TierContainment, true
	}
	for _, alias := range c.Aliases {
		a := Normalize(alias)
		if q == a || contains(q, a) {
			return TierAlias, true
		}
	}
	if WithinDistance(q, canonical, FuzzyThreshold) {
		return TierFuzzy, true
	}
	return TierNone, false
}

// Matches reports whether the query resolves to the candidate on any tier.
func Matches(query string, c Candidate) bool {
	_, ok := Match(query, c)
	return ok
}

// contains reports substring containment in either direction. Empty
// strings never contain or get contained; a normalized-to-empty query
// must not match everything.
func contains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
