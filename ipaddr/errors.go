package ipaddr

import "errors"

// ErrMalformedAddress is returned when an address field does not split into
// exactly 4 dot-separated tokens.
var ErrMalformedAddress = errors.New("ipaddr: malformed address")
