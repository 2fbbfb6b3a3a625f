package ipaddr

import (
	"fmt"
	"math"
	"strings"
)

const (
	fieldSeparator = '\t'
	octetSeparator = '.'
)

// ParseLine parses the address held in the first tab-delimited field of line.
// The remaining fields are ignored.
func ParseLine(line string) (Address, error) {
	line = strings.TrimSuffix(line, "\r")
	return ParseAddress(Split(line, fieldSeparator)[0])
}

// ParseAddress converts dotted text into an Address.
//
// The field must contain exactly 4 dot-separated tokens, otherwise an error
// wrapping ErrMalformedAddress is returned. Tokens themselves are parsed
// leniently: only the leading integer is read, text without one becomes 0, and
// the value is truncated to its low 8 bits.
func ParseAddress(field string) (Address, error) {
	tokens := Split(field, octetSeparator)
	if len(tokens) != OctetsCount {
		return Address{}, fmt.Errorf("%w: %q has %d octets, want %d",
			ErrMalformedAddress, field, len(tokens), OctetsCount)
	}

	var a Address
	for i, tok := range tokens {
		a[i] = uint8(leadingInt(tok))
	}
	return a, nil
}

// leadingInt parses the integer at the start of s. Leading whitespace is
// skipped, an optional sign is accepted and parsing stops at the first
// non-digit. It returns 0 when no digits are found and saturates instead of
// overflowing.
func leadingInt(s string) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int(s[i] - '0')
		if n > (math.MaxInt32-d)/10 {
			n = math.MaxInt32
			continue
		}
		n = n*10 + d
	}

	if neg {
		return -n
	}
	return n
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
