package filter

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"go4.org/netipx"

	"project/ip-filter/ipaddr"
)

// ErrInvalidRange reports a range string ParseRanges cannot read.
var ErrInvalidRange = errors.New("filter: invalid range")

// Stage is one named step of the output pipeline.
type Stage struct {
	Name  string
	Apply func(ipaddr.Collection) ipaddr.Collection
}

// All returns the stage printing the whole collection.
func All() Stage {
	return Stage{Name: "all", Apply: func(c ipaddr.Collection) ipaddr.Collection { return c }}
}

// PrefixStage returns the stage wrapping Prefix.
func PrefixStage(octets ...uint8) Stage {
	parts := make([]string, len(octets))
	for i, o := range octets {
		parts[i] = fmt.Sprint(o)
	}
	return Stage{
		Name:  "prefix " + strings.Join(parts, "."),
		Apply: func(c ipaddr.Collection) ipaddr.Collection { return Prefix(c, octets...) },
	}
}

// AnyStage returns the stage wrapping AnyPosition.
func AnyStage(value uint8) Stage {
	return Stage{
		Name:  fmt.Sprintf("any %d", value),
		Apply: func(c ipaddr.Collection) ipaddr.Collection { return AnyPosition(c, value) },
	}
}

// RangeStage returns the stage wrapping Ranges for the given range strings.
func RangeStage(ranges []string) (Stage, error) {
	set, err := ParseRanges(ranges)
	if err != nil {
		return Stage{}, err
	}
	return Stage{
		Name:  "range " + strings.Join(ranges, ","),
		Apply: func(c ipaddr.Collection) ipaddr.Collection { return Ranges(c, set) },
	}, nil
}

// ParseRanges merges single addresses, CIDR prefixes and "start-end" ranges
// into one IPSet.
func ParseRanges(ranges []string) (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for _, s := range ranges {
		s = strings.TrimSpace(s)
		switch {
		case strings.Contains(s, "-"):
			r, err := netipx.ParseIPRange(s)
			if err != nil {
				return nil, fmt.Errorf("%w: range %q: %w", ErrInvalidRange, s, err)
			}
			b.AddRange(r)
		case strings.Contains(s, "/"):
			p, err := netip.ParsePrefix(s)
			if err != nil {
				return nil, fmt.Errorf("%w: prefix %q: %w", ErrInvalidRange, s, err)
			}
			b.AddPrefix(p.Masked())
		default:
			a, err := netip.ParseAddr(s)
			if err != nil {
				return nil, fmt.Errorf("%w: address %q: %w", ErrInvalidRange, s, err)
			}
			b.Add(a)
		}
	}
	set, err := b.IPSet()
	if err != nil {
		return nil, fmt.Errorf("build IPSet: %w", err)
	}
	return set, nil
}
