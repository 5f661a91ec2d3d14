package uri

import (
	"strings"
	"urlkit/application/util/rule"
	"urlkit/network/ip"
	ipv4 "urlkit/network/ip/v4"
	ipv6 "urlkit/network/ip/v6"
)

type HostKind uint8

const (
	HostNone HostKind = iota
	HostIPv4
	HostIPv6
	HostName
)

func (k HostKind) String() string {
	switch k {
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	case HostName:
		return "name"
	}
	return "none"
}

const (
	maxHostLen  = 255
	maxLabelLen = 63
)

// Host is an IPv4 address, a bracketed IPv6 literal or a registered name.
// value always holds the serialized form.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.2.2
type Host struct {
	kind  HostKind
	value string
	v4    ipv4.Addr
	v6    ipv6.Addr
}

func ParseHost(s string) (Host, error) {
	var h Host
	if err := h.Parse(s); err != nil {
		return Host{}, err
	}
	return h, nil
}

// Parse detects the host type by shape. The host is cleared on failure.
func (h *Host) Parse(s string) error {
	parsed, err := parseHost(s)
	if err != nil {
		h.Clear()
		return err
	}
	*h = parsed
	return nil
}

func parseHost(s string) (Host, error) {
	if s == "" {
		return Host{}, malformed("host is empty")
	}

	if s[0] == '[' {
		if s[len(s)-1] != ']' {
			return Host{}, malformed("missing ']' in IP literal %q", s)
		}
		addr, err := ipv6.ParseAddr(s[1 : len(s)-1])
		if err != nil {
			return Host{}, malformed("IP literal %q: %v", s, err)
		}
		return hostFromIPv6(addr), nil
	}

	if rule.IsDigit(s[0]) {
		if addr, err := ipv4.ParseAddr(s); err == nil {
			return hostFromIPv4(addr), nil
		}
		// Names such as "1.example.com" are fine as well.
	}

	if err := assertValidRegName(s); err != nil {
		return Host{}, err
	}
	return Host{kind: HostName, value: rule.LowerASCII(s)}, nil
}

func assertValidRegName(s string) error {
	if len(s) > maxHostLen {
		return malformed("host length exceeds limit(%d): %d", maxHostLen, len(s))
	}

	for label := range strings.SplitSeq(s, ".") {
		if err := assertValidLabel(label); err != nil {
			return err
		}
	}
	return nil
}

// Reference: https://datatracker.ietf.org/doc/html/rfc1123#section-2.1
func assertValidLabel(label string) error {
	if len(label) == 0 || len(label) > maxLabelLen {
		return malformed("label %q must have 1 to %d bytes", label, maxLabelLen)
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return malformed("label %q starts or ends with hyphen", label)
	}
	for idx := 0; idx < len(label); idx++ {
		c := label[idx]
		if !rule.IsAlnum(c) && c != '-' {
			return malformed("label %q contains invalid byte %q", label, c)
		}
	}
	return nil
}

func hostFromIPv4(addr ipv4.Addr) Host {
	return Host{kind: HostIPv4, value: addr.String(), v4: addr}
}

func hostFromIPv6(addr ipv6.Addr) Host {
	b := make([]byte, 0, addr.Len()+2)
	b = append(b, '[')
	b = addr.AppendTo(b)
	b = append(b, ']')
	return Host{kind: HostIPv6, value: string(b), v6: addr}
}

func (h *Host) SetIPv4(addr ipv4.Addr) { *h = hostFromIPv4(addr) }
func (h *Host) SetIPv6(addr ipv6.Addr) { *h = hostFromIPv6(addr) }

func (h Host) Kind() HostKind          { return h.kind }
func (h Host) IsIPv4() bool            { return h.kind == HostIPv4 }
func (h Host) IsIPv6() bool            { return h.kind == HostIPv6 }
func (h Host) IsRegisteredName() bool  { return h.kind == HostName }
func (h Host) IPv4() (ipv4.Addr, bool) { return h.v4, h.kind == HostIPv4 }
func (h Host) IPv6() (ipv6.Addr, bool) { return h.v6, h.kind == HostIPv6 }

// Addr returns the IP address of the host, or nil for registered names.
func (h Host) Addr() ip.Addr {
	switch h.kind {
	case HostIPv4:
		return h.v4
	case HostIPv6:
		return h.v6
	}
	return nil
}

func (h Host) Empty() bool { return h.kind == HostNone }
func (h *Host) Clear()     { *h = Host{} }

func (h Host) Len() int                 { return len(h.value) }
func (h Host) AppendTo(b []byte) []byte { return append(b, h.value...) }
func (h Host) String() string           { return h.value }
