package ipv4

import (
	"encoding/binary"
	"strconv"

	"github.com/pkg/errors"
)

var ErrMalformed = errors.New("malformed ipv4 address")

const (
	minTextLen = len("0.0.0.0")
	maxTextLen = len("255.255.255.255")
)

// Addr is an IPv4 address stored in network byte order.
// The zero value doubles as "unset"; use the error returned by [ParseAddr]
// to tell a parsed 0.0.0.0 apart from an empty address.
type Addr [4]byte

func FromUint32(u32 uint32) Addr {
	var addr Addr
	binary.BigEndian.PutUint32(addr[:], u32)
	return addr
}

// ParseAddr parses dotted-decimal notation.
// Each group holds 1 to 3 digits and must not exceed 255.
func ParseAddr(s string) (Addr, error) {
	if len(s) < minTextLen || len(s) > maxTextLen {
		return Addr{}, errors.Wrapf(ErrMalformed, "length %d out of range", len(s))
	}

	var addr Addr
	group, digits, value := 0, 0, 0
	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if c == '.' {
			if digits == 0 {
				return Addr{}, errors.Wrap(ErrMalformed, "empty group")
			}
			if group == len(addr)-1 {
				return Addr{}, errors.Wrap(ErrMalformed, "too many groups")
			}
			addr[group] = byte(value)
			group, digits, value = group+1, 0, 0
			continue
		}

		if c < '0' || c > '9' {
			return Addr{}, errors.Wrapf(ErrMalformed, "invalid byte %q", c)
		}
		if digits == 3 {
			return Addr{}, errors.Wrap(ErrMalformed, "group longer than 3 digits")
		}
		value = value*10 + int(c-'0')
		if value > 0xFF {
			return Addr{}, errors.Wrapf(ErrMalformed, "group %d exceeds 255", group)
		}
		digits++
	}

	if group != len(addr)-1 || digits == 0 {
		return Addr{}, errors.Wrap(ErrMalformed, "digits are not properly seperated")
	}
	addr[group] = byte(value)

	return addr, nil
}

func (a Addr) Version() uint { return 4 }
func (a Addr) Raw() []byte   { return a[:] }
func (a Addr) IsZero() bool  { return a == Addr{} }

func (a Addr) ToUint32() uint32 {
	return binary.BigEndian.Uint32(a[:])
}

// Bits returns the address bits, most significant first.
func (a Addr) Bits() [32]bool {
	var bits [32]bool
	u32 := a.ToUint32()
	for idx := range bits {
		bits[idx] = u32&(1<<(31-idx)) != 0
	}
	return bits
}

// Len returns the length of the dotted-decimal form.
func (a Addr) Len() int {
	n := len(a) - 1
	for _, b := range a {
		switch {
		case b >= 100:
			n += 3
		case b >= 10:
			n += 2
		default:
			n++
		}
	}
	return n
}

func (a Addr) AppendTo(b []byte) []byte {
	for idx, octet := range a {
		if idx > 0 {
			b = append(b, '.')
		}
		b = strconv.AppendUint(b, uint64(octet), 10)
	}
	return b
}

func (a Addr) String() string {
	return string(a.AppendTo(make([]byte, 0, a.Len())))
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
