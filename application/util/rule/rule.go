package rule

// Core ABNF rules used across the text codecs.
// Reference: https://datatracker.ietf.org/doc/html/rfc5234#appendix-B.1

func IsAlpha(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }
func IsDigit(c byte) bool { return '0' <= c && c <= '9' }
func IsAlnum(c byte) bool { return IsAlpha(c) || IsDigit(c) }

// IsCTL reports control characters, including DEL.
func IsCTL(c byte) bool { return c < ' ' || c == 0x7F }

func IsHex(c byte) bool {
	return IsDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// HexValue returns the numeric value of a hex digit. ok is false for non-hex bytes.
func HexValue(c byte) (v byte, ok bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func ToLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// LowerASCII lowercases ASCII letters only, leaving every other byte untouched.
// It returns s itself when there is nothing to change.
func LowerASCII(s string) string {
	idx := 0
	for ; idx < len(s); idx++ {
		if 'A' <= s[idx] && s[idx] <= 'Z' {
			break
		}
	}
	if idx == len(s) {
		return s
	}

	b := []byte(s)
	for ; idx < len(b); idx++ {
		b[idx] = ToLower(b[idx])
	}
	return string(b)
}
