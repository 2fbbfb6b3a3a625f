// Fichier: ipaddr/address.go

package ipaddr

import (
	"net/netip"
	"strconv"
)

// OctetsCount is the number of octets in an IPv4 address.
const OctetsCount = 4

// Address is an IPv4 address stored as its 4 octets, most significant first.
type Address [OctetsCount]uint8

// String renders the address in dotted-decimal form without padding.
func (a Address) String() string {
	buf := make([]byte, 0, 15)
	for i, o := range a {
		if i != 0 {
			buf = append(buf, '.')
		}
		buf = strconv.AppendUint(buf, uint64(o), 10)
	}
	return string(buf)
}

// Addr converts the address to a [netip.Addr].
func (a Address) Addr() netip.Addr {
	return netip.AddrFrom4(a)
}

// FromAddr converts an IPv4 (or IPv4-mapped IPv6) [netip.Addr] to an Address.
// The boolean is false for any other address.
func FromAddr(addr netip.Addr) (Address, bool) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return Address{}, false
	}
	return Address(addr.As4()), true
}

// Collection is an ordered list of addresses. Duplicates are kept.
type Collection []Address

// Append adds addresses to the end of the collection.
func (c *Collection) Append(addrs ...Address) {
	*c = append(*c, addrs...)
}
