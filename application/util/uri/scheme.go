package uri

import (
	"strings"
	"urlkit/application/util/rule"
)

const (
	SchemeFile   = "file"
	SchemeFTP    = "ftp"
	SchemeSFTP   = "sftp"
	SchemeHTTP   = "http"
	SchemeHTTPS  = "https"
	SchemeMailto = "mailto"
	SchemeTel    = "tel"
)

// Scheme holds a validated, lower case scheme name. The zero value is an absent scheme.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.1
type Scheme struct {
	value string
}

func ParseScheme(s string) (Scheme, error) {
	var scheme Scheme
	if err := scheme.Set(s); err != nil {
		return Scheme{}, err
	}
	return scheme, nil
}

// Set validates s and stores it lower cased. An empty s clears the scheme.
// The previous value is kept on failure.
func (s *Scheme) Set(value string) error {
	if value == "" {
		s.Clear()
		return nil
	}
	if err := assertValidScheme(value); err != nil {
		return err
	}

	s.value = rule.LowerASCII(value)
	return nil
}

func assertValidScheme(scheme string) error {
	if !rule.IsAlpha(scheme[0]) {
		return malformed("scheme %q doesn't start with ALPHA", scheme)
	}

	for idx := 1; idx < len(scheme); idx++ {
		c := scheme[idx]
		switch {
		case rule.IsAlnum(c):
		case c == '+' || c == '-' || c == '.':
		default:
			return malformed("scheme %q contains invalid byte %q", scheme, c)
		}
	}

	return nil
}

func (s Scheme) Value() string  { return s.value }
func (s Scheme) String() string { return s.value }
func (s Scheme) Len() int       { return len(s.value) }
func (s Scheme) Empty() bool    { return s.value == "" }
func (s *Scheme) Clear()        { s.value = "" }

func (s Scheme) Equal(other Scheme) bool { return s.value == other.value }

// EqualString compares against a raw scheme name, ignoring case.
func (s Scheme) EqualString(other string) bool { return strings.EqualFold(s.value, other) }

// DefaultPort returns the port registered for the scheme, or 0.
func (s Scheme) DefaultPort() Port { return SchemePort(s) }
