package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"STARBUCKS *123", "starbucks"},
		{"Amazon.com Inc", "amazon"},
		{"UBER *TRIP #456", "uber trip"},
		{"Stripe Payments Co", "stripe payments"},
		{"Netflix.com", "netflix"},
		{"  Plain Name  ", "plain name"},
		{"#789", ""},
		{"*", ""},
		{"COSTCO", "costco"},
		{"Example Corporation", "example"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "Normalize(%q)", tc.in)
	}
}

func TestNormalizeKeepsNonNumericMarkerTokens(t *testing.T) {
	// A '*' or '#' prefix is stripped but the word survives when the
	// remainder is not all digits.
	assert.Equal(t, "uber trip", Normalize("UBER *TRIP"))
	assert.Equal(t, "ref a12", Normalize("REF #A12"))
}

func TestNormalizeStripsSuffixesOncePerSuffix(t *testing.T) {
	// " inc" precedes ".com" in the suffix list, so "amazon.com inc"
	// loses both.
	assert.Equal(t, "amazon", Normalize("Amazon.com Inc"))
	// A bare word that merely ends in a suffix letter sequence without
	// the leading space is untouched.
	assert.Equal(t, "medco", Normalize("MEDCO"))
}
