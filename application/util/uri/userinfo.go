package uri

import (
	"strings"
	"urlkit/application/util/percent"
)

// UserInfo holds the decoded user and password of an authority.
// A password is only written out when it is non-empty.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.2.1
type UserInfo struct {
	user     string
	password string
}

func ParseUserInfo(s string) (UserInfo, error) {
	var ui UserInfo
	if err := ui.Parse(s); err != nil {
		return UserInfo{}, err
	}
	return ui, nil
}

// Parse splits s on the first ':' and decodes both halves.
// Existing values are overwritten on success and kept on failure.
func (ui *UserInfo) Parse(s string) error {
	rawUser, rawPassword, _ := strings.Cut(s, ":")

	user, err := percent.Decode(rawUser)
	if err != nil {
		return malformed("decoding user: %v", err)
	}
	password, err := percent.Decode(rawPassword)
	if err != nil {
		return malformed("decoding password: %v", err)
	}

	ui.user, ui.password = user, password
	return nil
}

func (ui UserInfo) User() string     { return ui.user }
func (ui UserInfo) Password() string { return ui.password }

func (ui *UserInfo) SetUser(user string)         { ui.user = user }
func (ui *UserInfo) SetPassword(password string) { ui.password = password }
func (ui *UserInfo) ClearUser()                  { ui.user = "" }
func (ui *UserInfo) ClearPassword()              { ui.password = "" }

func (ui UserInfo) Empty() bool { return ui.user == "" && ui.password == "" }
func (ui *UserInfo) Clear()     { *ui = UserInfo{} }

// Len returns the length of the encoded form including the password.
func (ui UserInfo) Len() int {
	n := ui.RedactedLen()
	if ui.password != "" {
		n += 1 + percent.EncodedLen(ui.password)
	}
	return n
}

func (ui UserInfo) AppendTo(b []byte) []byte {
	b = ui.AppendRedactedTo(b)
	if ui.password != "" {
		b = append(b, ':')
		b = percent.AppendEncode(b, ui.password)
	}
	return b
}

func (ui UserInfo) String() string {
	return string(ui.AppendTo(make([]byte, 0, ui.Len())))
}

// RedactedLen returns the length of the encoded form without the password.
func (ui UserInfo) RedactedLen() int { return percent.EncodedLen(ui.user) }

func (ui UserInfo) AppendRedactedTo(b []byte) []byte {
	return percent.AppendEncode(b, ui.user)
}

// Redacted returns the encoded user without the password.
func (ui UserInfo) Redacted() string {
	return string(ui.AppendRedactedTo(make([]byte, 0, ui.RedactedLen())))
}
