// Package codepoint turns free-form search text into a Unicode codepoint.
package codepoint

import (
	"strconv"
	"strings"
)

// Max is the largest valid Unicode scalar value.
const Max = 0x10FFFF

// hexPrefixes are matched case-insensitively, longest first so "&#x" wins over "&#".
var hexPrefixes = []string{"&#x", "u+", "0x", `\u`}

const decimalPrefix = "&#"

// Parse recognizes a codepoint in text. Accepted forms:
//
//	U+1F600  0x1f600  \u2764  &#x2764;   hex with prefix
//	2764     1f600             bare hex digits
//	&#10084;                   decimal numeric entity
//
// Surrounding whitespace is ignored. Parse never fails; ok is false when the
// text is empty, has digits invalid for its base, or is outside [0, Max].
func Parse(text string) (r rune, ok bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	lower := strings.ToLower(s)

	for _, prefix := range hexPrefixes {
		if strings.HasPrefix(lower, prefix) {
			digits := lower[len(prefix):]
			if prefix == "&#x" {
				digits = strings.TrimSuffix(digits, ";")
			}
			return parseDigits(digits, 16)
		}
	}

	if strings.HasPrefix(lower, decimalPrefix) {
		digits := strings.TrimSuffix(lower[len(decimalPrefix):], ";")
		return parseDigits(digits, 10)
	}

	return parseDigits(lower, 16)
}

// parseDigits accepts only digits of the given base: no sign, no
// underscores, no embedded prefix. Leading zeros are ignored.
func parseDigits(digits string, base int) (rune, bool) {
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i], base) {
			return 0, false
		}
	}
	if digits = strings.TrimLeft(digits, "0"); digits == "" {
		return 0, true
	}
	if len(digits) > 8 {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil || v > Max {
		return 0, false
	}
	return rune(v), true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	}
	return false
}

// Hex formats r as lowercase hex digits without prefix, the inverse of Parse
// for bare hex input.
func Hex(r rune) string {
	return strconv.FormatInt(int64(r), 16)
}
