package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// DigitsOnly drops every character that is not an ASCII digit
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// NormalizeInt strips non-digits and re-renders the number without leading
// zeros. It returns "" when no digits remain.
func NormalizeInt(s string) string {
	digits := DigitsOnly(s)
	if digits == "" {
		return ""
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return digits
	}
	return strconv.FormatInt(n, 10)
}

// NormalizeDecimal keeps digits and dots and re-renders the value as a
// decimal number. It returns "" when nothing parses.
func NormalizeDecimal(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' {
			return r
		}
		return -1
	}, s)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// AtoiOrZero returns the whole-number part of the leading digits of s, so
// "320 kcal" is 320 and "12.5" is 12. Anything without leading digits is zero.
func AtoiOrZero(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
