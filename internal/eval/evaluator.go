package eval

import "strings"

// NormalizeAnswer collapses internal whitespace runs, trims, and
// case-folds. Comparison is exact string equality after normalization: no
// fuzzy matching, no partial credit.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Correct reports whether the model answer matches the ground truth.
func Correct(answer, groundTruth string) bool {
	return NormalizeAnswer(answer) == NormalizeAnswer(groundTruth)
}
