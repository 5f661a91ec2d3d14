// Package percent implements percent-encoding of arbitrary byte strings.
//
// Every byte outside of the safe set
//
//	A-Z a-z 0-9 - _ . ! ~ * ' ( )
//
// is written as '%' followed by two upper case hex digits.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-2.1
package percent

import (
	"urlkit/application/util/rule"

	"github.com/pkg/errors"
)

var ErrMalformedEscape = errors.New("malformed percent escape")

func hex(c byte) (h [2]byte) {
	const hexSet = "0123456789ABCDEF"
	h[0] = hexSet[c>>4]
	h[1] = hexSet[c&0xF]
	return
}

func unhex(h [2]byte) (c byte, ok bool) {
	hi, ok1 := rule.HexValue(h[0])
	lo, ok2 := rule.HexValue(h[1])
	return hi<<4 | lo, ok1 && ok2
}

// ShouldEncode reports whether c is outside of the safe set.
func ShouldEncode(c byte) bool {
	if rule.IsAlnum(c) {
		return false
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return false
	}
	return true
}

// EncodedLen returns the exact length of Encode(s).
func EncodedLen(s string) int {
	n := len(s)
	for idx := 0; idx < len(s); idx++ {
		if ShouldEncode(s[idx]) {
			n += 2
		}
	}
	return n
}

func Encode(s string) string {
	n := EncodedLen(s)
	if n == len(s) {
		return s
	}
	return string(AppendEncode(make([]byte, 0, n), s))
}

// AppendEncode appends the encoded form of s to dst.
func AppendEncode(dst []byte, s string) []byte {
	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if ShouldEncode(c) {
			h := hex(c)
			dst = append(dst, '%', h[0], h[1])
		} else {
			dst = append(dst, c)
		}
	}
	return dst
}

// DecodedLen returns the exact length of Decode(s).
// It fails when an escape is truncated or carries non-hex digits.
func DecodedLen(s string) (int, error) {
	n := 0
	for idx := 0; idx < len(s); idx++ {
		if s[idx] == '%' {
			if idx+2 >= len(s) || !rule.IsHex(s[idx+1]) || !rule.IsHex(s[idx+2]) {
				bad := s[idx:min(len(s), idx+3)]
				return 0, errors.Wrapf(ErrMalformedEscape, "%q", bad)
			}
			idx += 2
		}
		n++
	}
	return n, nil
}

func Decode(s string) (string, error) {
	n, err := DecodedLen(s)
	if err != nil {
		return "", err
	}
	if n == len(s) {
		// Nothing escaped.
		return s, nil
	}

	out, err := appendDecode(make([]byte, 0, n), s)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// AppendDecode appends the decoded form of s to dst.
// On failure dst is returned unchanged.
func AppendDecode(dst []byte, s string) ([]byte, error) {
	n, err := DecodedLen(s)
	if err != nil {
		return dst, err
	}
	dst = growTo(dst, n)

	out, err := appendDecode(dst, s)
	if err != nil {
		return dst, err
	}
	return out, nil
}

func appendDecode(dst []byte, s string) ([]byte, error) {
	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if c != '%' {
			dst = append(dst, c)
			continue
		}

		if idx+2 >= len(s) {
			return nil, errors.Wrapf(ErrMalformedEscape, "%q", s[idx:])
		}
		d, ok := unhex([2]byte{s[idx+1], s[idx+2]})
		if !ok {
			return nil, errors.Wrapf(ErrMalformedEscape, "%q", s[idx:idx+3])
		}
		dst = append(dst, d)
		idx += 2
	}
	return dst, nil
}

func growTo(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	grown := make([]byte, len(b), len(b)+n)
	copy(grown, b)
	return grown
}
