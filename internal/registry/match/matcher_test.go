package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchTiers(t *testing.T) {
	starbucks := Candidate{
		Canonical: "Starbucks",
		Aliases:   []string{"STARBUCKS CORP", "Starbucks Coffee"},
	}

	cases := []struct {
		query string
		tier  Tier
		ok    bool
	}{
		{"Starbucks", TierExact, true},
		{"STARBUCKS *123", TierExact, true},
		{"Starbucks Reserve Roastery", TierContainment, true},
		{"starbucks coffee", TierContainment, true},
		{"starbuks", TierFuzzy, true},
		{"Walgreens", TierNone, false},
	}
	for _, tc := range cases {
		tier, ok := Match(tc.query, starbucks)
		assert.Equal(t, tc.ok, ok, "Match(%q)", tc.query)
		assert.Equal(t, tc.tier, tier, "Match(%q)", tc.query)
	}
}

func TestMatchAliasTier(t *testing.T) {
	bofa := Candidate{
		Canonical: "Bank of America",
		Aliases:   []string{"BofA", "BoA"},
	}

	tier, ok := Match("bofa", bofa)
	assert.True(t, ok)
	assert.Equal(t, TierAlias, tier)

	// The canonical tiers run before aliases.
	tier, ok = Match("Bank of America NA", bofa)
	assert.True(t, ok)
	assert.Equal(t, TierContainment, tier)
}

func TestMatchFuzzyAppliesToCanonicalOnly(t *testing.T) {
	c := Candidate{Canonical: "Netflix", Aliases: []string{"NETFLIX.COM"}}

	tier, ok := Match("netflx", c)
	assert.True(t, ok)
	assert.Equal(t, TierFuzzy, tier)

	// Close to an alias but far from the canonical name gets nothing
	// from the fuzzy tier.
	far := Candidate{Canonical: "Wise", Aliases: []string{"TransferWise"}}
	_, ok = Match("TransferWize", far)
	assert.False(t, ok)
}

func TestMatchEmptyQueryNeverMatches(t *testing.T) {
	c := Candidate{Canonical: "Starbucks"}
	_, ok := Match("", c)
	assert.False(t, ok)
	_, ok = Match("*123", c)
	assert.False(t, ok)
}
