package filter

import (
	"fmt"

	"project/ip-filter/ipaddr"
)

// Prefix returns every address whose leading octets equal octets.
// Prefix(c, 1) keeps 1.*.*.*, Prefix(c, 46, 70) keeps 46.70.*.*.
// It panics when given more than 4 octets.
func Prefix(c ipaddr.Collection, octets ...uint8) ipaddr.Collection {
	if len(octets) > ipaddr.OctetsCount {
		panic(fmt.Sprintf("filter: prefix of %d octets", len(octets)))
	}

	out := ipaddr.Collection{}
	for _, addr := range c {
		if hasPrefix(addr, octets) {
			out = append(out, addr)
		}
	}
	return out
}

func hasPrefix(addr ipaddr.Address, octets []uint8) bool {
	for i, o := range octets {
		if addr[i] != o {
			return false
		}
	}
	return true
}

// AnyPosition returns every address that holds value in at least one octet.
// Each address is returned once, however many of its octets match.
func AnyPosition(c ipaddr.Collection, value uint8) ipaddr.Collection {
	out := ipaddr.Collection{}
	for _, addr := range c {
		for _, o := range addr {
			if o == value {
				out = append(out, addr)
				break
			}
		}
	}
	return out
}
