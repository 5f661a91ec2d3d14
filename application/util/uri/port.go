package uri

import (
	"strconv"
)

// Port is a TCP/UDP port number. 0 means unspecified.
//
// NOTE: RFC 3986 allows any number of digits. Ports beyond 16 bits are rejected here.
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.2.3
type Port uint16

const maxPortDigits = len("65535")

func ParsePort(s string) (Port, error) {
	if len(s) == 0 || len(s) > maxPortDigits {
		return 0, malformed("port %q must have 1 to %d digits", s, maxPortDigits)
	}

	n := 0
	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if c < '0' || c > '9' {
			return 0, malformed("port %q contains non-digit %q", s, c)
		}
		n = n*10 + int(c-'0')
		if n > 0xFFFF {
			return 0, malformed("port %q exceeds 65535", s)
		}
	}

	return Port(n), nil
}

func (p Port) Len() int {
	switch {
	case p >= 10000:
		return 5
	case p >= 1000:
		return 4
	case p >= 100:
		return 3
	case p >= 10:
		return 2
	}
	return 1
}

func (p Port) AppendTo(b []byte) []byte { return strconv.AppendUint(b, uint64(p), 10) }
func (p Port) String() string           { return strconv.FormatUint(uint64(p), 10) }

var schemePorts = map[string]Port{
	SchemeFTP:   21,
	SchemeSFTP:  22,
	SchemeHTTP:  80,
	SchemeHTTPS: 443,
}

// SchemePort returns the default port of well-known schemes, and 0 for the rest.
func SchemePort(scheme Scheme) Port {
	return schemePorts[scheme.Value()]
}
