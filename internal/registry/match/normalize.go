// Package match resolves free-text names to canonical entities. It layers
// three tiers over a shared normalization pass: exact match, substring
// containment, and Levenshtein edit distance. Aliases get the exact and
// containment tiers; the fuzzy tier applies to the canonical name only.
package match

import "strings"

// Corporate suffixes stripped after the token pass, checked in order in a
// single pass. The word suffixes carry a leading space so "costco" is not
// cut down to "cost"; " inc" preceding ".com" lets "amazon.com inc"
// collapse all the way to "amazon".
var suffixes = []string{
	" inc", " corp", " llc", " ltd", " co", " corporation", " company",
	".com", ".net", ".org",
}

// Normalize prepares a name for comparison:
//
//   - lowercase
//   - each whitespace token beginning with '*' or '#' is dropped entirely
//     when the remainder is all digits (a location code, e.g. "*123"),
//     otherwise only the prefix character is stripped ("*TRIP" -> "trip")
//   - trailing corporate suffixes are removed
//   - surrounding whitespace is trimmed
//
// Examples: "STARBUCKS *123" -> "starbucks", "Amazon.com Inc" -> "amazon",
// "UBER *TRIP #456" -> "uber trip".
func Normalize(s string) string {
	lowered := strings.ToLower(s)

	var words []string
	for _, word := range strings.Fields(lowered) {
		if strings.HasPrefix(word, "*") || strings.HasPrefix(word, "#") {
			rest := word[1:]
			if isAllDigits(rest) {
				continue
			}
			words = append(words, rest)
			continue
		}
		words = append(words, word)
	}
	normalized := strings.Join(words, " ")

	for _, suffix := range suffixes {
		normalized = strings.TrimSuffix(normalized, suffix)
	}

	return strings.TrimSpace(normalized)
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
