// Package cnpj normalizes, validates, and formats Brazilian company tax identifiers.
package cnpj

import "strings"

// Length is the number of digits in a CNPJ.
const Length = 14

var (
	firstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Normalize strips every non-digit character.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether s holds a CNPJ with correct check digits.
// Punctuation is ignored. Sequences of a single repeated digit are rejected.
func Valid(s string) bool {
	digits := Normalize(s)
	if len(digits) != Length {
		return false
	}
	if strings.Count(digits, digits[:1]) == Length {
		return false
	}

	d := make([]int, Length)
	for i := range digits {
		d[i] = int(digits[i] - '0')
	}

	return checkDigit(d[:12], firstWeights) == d[12] &&
		checkDigit(d[:13], secondWeights) == d[13]
}

// Format renders a CNPJ as 00.000.000/0000-00.
// Inputs that do not normalize to 14 digits are returned unchanged.
func Format(s string) string {
	d := Normalize(s)
	if len(d) != Length {
		return s
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

func checkDigit(digits, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}
