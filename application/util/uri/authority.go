package uri

import (
	"strings"
)

// Authority is the [userinfo "@"] host [":" port] component of a URL.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.2
type Authority struct {
	UserInfo UserInfo
	Host     Host
	Port     Port
}

func ParseAuthority(s string) (Authority, error) {
	var a Authority
	if err := a.Parse(s); err != nil {
		return Authority{}, err
	}
	return a, nil
}

// Parse replaces the authority with the one in s.
// The authority is cleared when any part of s is invalid.
func (a *Authority) Parse(s string) error {
	parsed, err := parseAuthority(s)
	if err != nil {
		a.Clear()
		return err
	}
	*a = parsed
	return nil
}

func parseAuthority(s string) (Authority, error) {
	var a Authority

	hostport := s
	if idx := strings.LastIndexByte(s, '@'); idx >= 0 {
		if err := a.UserInfo.Parse(s[:idx]); err != nil {
			return Authority{}, err
		}
		hostport = s[idx+1:]
	}

	host, rawPort, hasPort, err := splitHostPort(hostport)
	if err != nil {
		return Authority{}, err
	}

	if err := a.Host.Parse(host); err != nil {
		return Authority{}, err
	}

	if hasPort {
		port, err := ParsePort(rawPort)
		if err != nil {
			return Authority{}, err
		}
		a.Port = port
	}

	return a, nil
}

func splitHostPort(s string) (host, port string, hasPort bool, err error) {
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return "", "", false, malformed("missing ']' in %q", s)
		}

		host, rest := s[:end+1], s[end+1:]
		if rest == "" {
			return host, "", false, nil
		}
		if rest[0] != ':' {
			return "", "", false, malformed("unexpected %q after IP literal", rest)
		}
		return host, rest[1:], true, nil
	}

	idx := strings.LastIndexByte(s, ':')
	if idx < 0 {
		return s, "", false, nil
	}
	return s[:idx], s[idx+1:], true, nil
}

func (a Authority) Empty() bool {
	return a.Host.Empty() && a.Port == 0 && a.UserInfo.Empty()
}

func (a *Authority) Clear() { *a = Authority{} }

// Len returns 0 whenever the host is empty, since such an authority can't be written.
func (a Authority) Len() int {
	if a.Host.Empty() {
		return 0
	}

	n := a.Host.Len()
	if !a.UserInfo.Empty() {
		n += a.UserInfo.Len() + len("@")
	}
	if a.Port != 0 {
		n += len(":") + a.Port.Len()
	}
	return n
}

func (a Authority) AppendTo(b []byte) []byte {
	if a.Host.Empty() {
		return b
	}

	if !a.UserInfo.Empty() {
		b = a.UserInfo.AppendTo(b)
		b = append(b, '@')
	}
	b = a.Host.AppendTo(b)
	if a.Port != 0 {
		b = append(b, ':')
		b = a.Port.AppendTo(b)
	}
	return b
}

func (a Authority) String() string {
	return string(a.AppendTo(make([]byte, 0, a.Len())))
}
