package ipv6

import (
	"encoding/binary"
	"strconv"
	"urlkit/application/util/rule"
	ipv4 "urlkit/network/ip/v4"

	"github.com/pkg/errors"
)

var ErrMalformed = errors.New("malformed ipv6 address")

const (
	groupCount = 8
	// 8 groups of 4 hex digits plus 7 colons.
	fullTextLen = groupCount*4 + groupCount - 1
	// 6 groups followed by a dotted quad.
	maxTextLen = 6*4 + 6 + 15
)

// Addr is an IPv6 address stored in network byte order.
// The zero value doubles as "unset", same as [ipv4.Addr].
type Addr [16]byte

func FromGroups(groups [groupCount]uint16) Addr {
	var addr Addr
	for idx, g := range groups {
		binary.BigEndian.PutUint16(addr[idx*2:], g)
	}
	return addr
}

// ParseAddr parses the text form of RFC 4291 section 2.2, including "::"
// compression and a trailing dotted quad.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc4291#section-2.2
func ParseAddr(s string) (Addr, error) {
	if len(s) < len("::") || len(s) > maxTextLen {
		return Addr{}, errors.Wrapf(ErrMalformed, "length %d out of range", len(s))
	}

	var groups [groupCount]uint16
	n := 0         // groups written so far
	ellipsis := -1 // group index where "::" was found

	idx := 0
	if s[0] == ':' {
		if s[1] != ':' {
			return Addr{}, errors.Wrap(ErrMalformed, "leading single colon")
		}
		ellipsis, idx = 0, 2
	}

	for idx < len(s) {
		if n == groupCount {
			return Addr{}, errors.Wrap(ErrMalformed, "too many groups")
		}

		end := idx
		for end < len(s) && rule.IsHex(s[end]) {
			end++
		}

		if end < len(s) && s[end] == '.' {
			// Only the last 32 bits may be written as a dotted quad.
			if n > groupCount-2 {
				return Addr{}, errors.Wrap(ErrMalformed, "no room for embedded ipv4 address")
			}
			v4, err := ipv4.ParseAddr(s[idx:])
			if err != nil {
				return Addr{}, errors.Wrap(ErrMalformed, err.Error())
			}
			groups[n] = binary.BigEndian.Uint16(v4[0:2])
			groups[n+1] = binary.BigEndian.Uint16(v4[2:4])
			n += 2
			break
		}

		digits := end - idx
		if digits == 0 || digits > 4 {
			return Addr{}, errors.Wrapf(ErrMalformed, "group %d must have 1 to 4 hex digits", n)
		}
		v, err := strconv.ParseUint(s[idx:end], 16, 16)
		if err != nil {
			return Addr{}, errors.Wrap(ErrMalformed, err.Error())
		}
		groups[n] = uint16(v)
		n++

		idx = end
		if idx == len(s) {
			break
		}
		if s[idx] != ':' {
			return Addr{}, errors.Wrapf(ErrMalformed, "invalid byte %q", s[idx])
		}

		idx++
		if idx == len(s) {
			return Addr{}, errors.Wrap(ErrMalformed, "trailing single colon")
		}
		if s[idx] == ':' {
			if ellipsis >= 0 {
				return Addr{}, errors.Wrap(ErrMalformed, "'::' used more than once")
			}
			ellipsis = n
			idx++
		}
	}

	if ellipsis < 0 {
		if n != groupCount {
			return Addr{}, errors.Wrapf(ErrMalformed, "expected %d groups, got %d", groupCount, n)
		}
		return FromGroups(groups), nil
	}

	if n == groupCount {
		return Addr{}, errors.Wrap(ErrMalformed, "'::' must stand for at least one group")
	}

	// Move the groups following "::" to the end of the address.
	// Everything between is still zero, so swapping leaves the gap zero-filled.
	tail := n - ellipsis
	for i := 0; i < tail; i++ {
		src, dst := n-1-i, groupCount-1-i
		groups[src], groups[dst] = groups[dst], groups[src]
	}

	return FromGroups(groups), nil
}

func (a Addr) Version() uint { return 6 }
func (a Addr) Raw() []byte   { return a[:] }
func (a Addr) IsZero() bool  { return a == Addr{} }

func (a Addr) Group(idx int) uint16 {
	return binary.BigEndian.Uint16(a[idx*2:])
}

func (a Addr) Groups() [groupCount]uint16 {
	var groups [groupCount]uint16
	for idx := range groups {
		groups[idx] = a.Group(idx)
	}
	return groups
}

// largestZeroRun returns the inclusive group range of the longest run of
// zero groups, preferring the first one on ties. Runs shorter than two
// groups are not reported, since RFC 5952 forbids compressing a lone zero group.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc5952#section-4.2
func (a Addr) largestZeroRun() (start, end int) {
	start, end = -1, -1
	bestLen, runStart := 1, -1

	for idx := 0; idx <= groupCount; idx++ {
		if idx < groupCount && a.Group(idx) == 0 {
			if runStart < 0 {
				runStart = idx
			}
			continue
		}
		if runStart >= 0 {
			if l := idx - runStart; l > bestLen {
				bestLen, start, end = l, runStart, idx-1
			}
			runStart = -1
		}
	}

	return start, end
}

func hexLen(g uint16) int {
	switch {
	case g >= 0x1000:
		return 4
	case g >= 0x100:
		return 3
	case g >= 0x10:
		return 2
	}
	return 1
}

// Len returns the length of the compressed form.
func (a Addr) Len() int {
	start, end := a.largestZeroRun()

	n := 0
	for idx := 0; idx < groupCount; idx++ {
		if start <= idx && idx <= end {
			continue
		}
		n += hexLen(a.Group(idx))
	}

	if start < 0 {
		return n + groupCount - 1
	}
	// Colons between groups on each side, plus "::".
	before, after := start, groupCount-1-end
	return n + max(before-1, 0) + max(after-1, 0) + 2
}

// AppendTo appends the canonical compressed form.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc5952#section-4
func (a Addr) AppendTo(b []byte) []byte {
	start, end := a.largestZeroRun()

	for idx := 0; idx < groupCount; idx++ {
		if idx == start {
			b = append(b, ':', ':')
			idx = end
			continue
		}
		if idx > 0 && idx != end+1 {
			b = append(b, ':')
		}
		b = strconv.AppendUint(b, uint64(a.Group(idx)), 16)
	}

	return b
}

func (a Addr) String() string {
	return string(a.AppendTo(make([]byte, 0, a.Len())))
}

// LenFull returns the length of the uncompressed form, which is always 39.
func (a Addr) LenFull() int { return fullTextLen }

// AppendFullTo appends all 8 groups zero-padded to 4 hex digits.
func (a Addr) AppendFullTo(b []byte) []byte {
	const hexSet = "0123456789abcdef"
	for idx := 0; idx < groupCount; idx++ {
		if idx > 0 {
			b = append(b, ':')
		}
		g := a.Group(idx)
		b = append(b, hexSet[g>>12], hexSet[g>>8&0xF], hexSet[g>>4&0xF], hexSet[g&0xF])
	}
	return b
}

func (a Addr) StringFull() string {
	return string(a.AppendFullTo(make([]byte, 0, fullTextLen)))
}

func (a Addr) MarshalText() ([]byte, error) {
	return a.AppendTo(make([]byte, 0, a.Len())), nil
}

// UnmarshalText parses text into a. a is left untouched on failure.
func (a *Addr) UnmarshalText(text []byte) error {
	parsed, err := ParseAddr(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
