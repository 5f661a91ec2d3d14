package ip

import (
	"strings"
	"urlkit/network"
	ipv4 "urlkit/network/ip/v4"
	ipv6 "urlkit/network/ip/v6"

	"github.com/pkg/errors"
)

type Addr interface {
	network.Addr

	Version() uint
}

var (
	_ Addr = ipv4.Addr{}
	_ Addr = ipv6.Addr{}
)

// ParseAddr parses either an IPv4 dotted quad or an IPv6 address.
// Brackets around IPv6 literals are not accepted here.
func ParseAddr(s string) (Addr, error) {
	if strings.IndexByte(s, ':') >= 0 {
		addr, err := ipv6.ParseAddr(s)
		if err != nil {
			return nil, errors.Wrap(err, "parsing ipv6 address")
		}
		return addr, nil
	}

	addr, err := ipv4.ParseAddr(s)
	if err != nil {
		return nil, errors.Wrap(err, "parsing ipv4 address")
	}
	return addr, nil
}
