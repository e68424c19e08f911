package common

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleCase lower-cases s and capitalises the first letter of every
// whitespace-delimited word. Runs of whitespace collapse to one space.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// RoundHalfUp rounds to the nearest integer, with halves going towards
// positive infinity (-2.5 becomes -2).
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
