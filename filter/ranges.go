package filter

import (
	"go4.org/netipx"

	"project/ip-filter/ipaddr"
)

// Ranges returns every address contained in set. A nil set matches nothing.
func Ranges(c ipaddr.Collection, set *netipx.IPSet) ipaddr.Collection {
	out := ipaddr.Collection{}
	if set == nil {
		return out
	}
	for _, addr := range c {
		if set.Contains(addr.Addr()) {
			out = append(out, addr)
		}
	}
	return out
}
