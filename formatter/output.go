// Fichier: formatter/output.go

package formatter

import (
	"bufio"
	"io"

	"project/ip-filter/ipaddr"
)

const nameSeparator = '\t'

// Format renders an address as dotted decimal, e.g. "1.70.44.170".
func Format(a ipaddr.Address) string {
	return a.String()
}

// WriteAddresses writes one formatted address per line. When names holds a
// PTR name for an address it is appended after a tab.
func WriteAddresses(w io.Writer, addrs ipaddr.Collection, names map[ipaddr.Address]string) error {
	bw := bufio.NewWriter(w)
	for _, addr := range addrs {
		bw.WriteString(Format(addr))
		if name, ok := names[addr]; ok && name != "" {
			bw.WriteByte(nameSeparator)
			bw.WriteString(name)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
