package uri

import (
	"strings"
	"urlkit/application/util/rule"

	"github.com/pkg/errors"
)

// URL is a parsed URL. Every component is optional.
// The fragment is kept as is, without decoding.
// A URL holds no references shared with other URLs, a copy can be changed freely.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3
type URL struct {
	Scheme    Scheme
	Authority Authority
	Path      Path
	Query     Query
	Fragment  string
}

func Parse(rawURL string) (URL, error) {
	var u URL
	if err := u.Parse(rawURL); err != nil {
		return URL{}, err
	}
	return u, nil
}

// Parse replaces u with the URL in rawURL.
// rawURL may start from any component, e.g. "//host/path", "/path?q" or "?q#frag".
// u is cleared when any component is malformed.
func (u *URL) Parse(rawURL string) error {
	parsed, err := parseURL(rawURL)
	if err != nil {
		u.Clear()
		return err
	}
	*u = parsed
	return nil
}

func parseURL(rawURL string) (URL, error) {
	if containsCTL(rawURL) {
		return URL{}, malformed("URL should not contain CTL bytes")
	}

	var u URL

	scheme, rest, hasAuthority, err := cutScheme(rawURL)
	if err != nil {
		return URL{}, errors.Wrap(err, "parsing scheme")
	}
	u.Scheme = scheme

	if hasAuthority {
		var rawAuthority string
		rawAuthority, rest = rest, ""
		if idx := strings.IndexAny(rawAuthority, "/?#"); idx >= 0 {
			rawAuthority, rest = rawAuthority[:idx], rawAuthority[idx:]
		}

		if rawAuthority != "" {
			if err := u.Authority.Parse(rawAuthority); err != nil {
				return URL{}, errors.Wrap(err, "parsing authority")
			}
		}
	}

	rest, u.Fragment, _ = strings.Cut(rest, "#")
	rawPath, rawQuery, _ := strings.Cut(rest, "?")

	if err := u.Path.Parse(rawPath); err != nil {
		return URL{}, errors.Wrap(err, "parsing path")
	}
	if err := u.Query.Parse(rawQuery); err != nil {
		return URL{}, errors.Wrap(err, "parsing query")
	}

	return u, nil
}

func containsCTL(s string) bool {
	for idx := 0; idx < len(s); idx++ {
		if rule.IsCTL(s[idx]) {
			return true
		}
	}
	return false
}

// cutScheme cuts the scheme and the authority marker from rawURL.
// A scheme is only recognized when followed by "://".
func cutScheme(rawURL string) (scheme Scheme, rest string, hasAuthority bool, err error) {
	if idx := strings.Index(rawURL, "://"); idx >= 0 && !strings.ContainsAny(rawURL[:idx], "/?#") {
		if idx == 0 {
			return Scheme{}, "", false, malformed("empty scheme in %q", rawURL)
		}
		if scheme, err = ParseScheme(rawURL[:idx]); err != nil {
			return Scheme{}, "", false, err
		}
		return scheme, rawURL[idx+len("://"):], true, nil
	}

	if rest, found := strings.CutPrefix(rawURL, "//"); found {
		return Scheme{}, rest, true, nil
	}
	return Scheme{}, rawURL, false, nil
}

func (u URL) Empty() bool {
	return u.Scheme.Empty() && u.Authority.Empty() && u.Path.Empty() && u.Query.Empty() && u.Fragment == ""
}

func (u *URL) Clear() { *u = URL{} }

// EffectivePort returns the explicit port, or the default port of the scheme.
func (u URL) EffectivePort() Port {
	if u.Authority.Port != 0 {
		return u.Authority.Port
	}
	return u.Scheme.DefaultPort()
}

func (u URL) validate() error {
	if !u.Scheme.Empty() && u.Authority.Host.Empty() {
		return errors.Wrapf(ErrMissingAuthority, "scheme %q", u.Scheme.Value())
	}
	return nil
}

// Len returns the length of the encoded URL, or 0 if it can't be encoded.
func (u URL) Len() int {
	if u.Empty() || u.validate() != nil {
		return 0
	}

	n := 0
	if !u.Scheme.Empty() {
		n += u.Scheme.Len() + len("://")
	} else if !u.Authority.Host.Empty() {
		n += len("//")
	}
	n += u.Authority.Len()
	n += u.Path.Len()
	if !u.Query.Empty() {
		n += len("?") + u.Query.Len()
	}
	if u.Fragment != "" {
		n += len("#") + len(u.Fragment)
	}
	return n
}

// AppendTo appends the encoded URL to b.
// b is returned unchanged along with an error when a scheme has no authority.
func (u URL) AppendTo(b []byte) ([]byte, error) {
	if u.Empty() {
		return b, nil
	}
	if err := u.validate(); err != nil {
		return b, err
	}

	if !u.Scheme.Empty() {
		b = append(b, u.Scheme.Value()...)
		b = append(b, "://"...)
	} else if !u.Authority.Host.Empty() {
		b = append(b, "//"...)
	}
	b = u.Authority.AppendTo(b)
	b = u.Path.AppendTo(b)
	if !u.Query.Empty() {
		b = append(b, '?')
		b = u.Query.AppendTo(b)
	}
	if u.Fragment != "" {
		b = append(b, '#')
		b = append(b, u.Fragment...)
	}
	return b, nil
}

func (u URL) Encode() (string, error) {
	b, err := u.AppendTo(make([]byte, 0, u.Len()))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// String returns the encoded URL, or an empty string if it can't be encoded.
func (u URL) String() string {
	s, _ := u.Encode()
	return s
}

func (u URL) MarshalText() ([]byte, error) {
	return u.AppendTo(make([]byte, 0, u.Len()))
}

func (u *URL) UnmarshalText(text []byte) error {
	return u.Parse(string(text))
}
