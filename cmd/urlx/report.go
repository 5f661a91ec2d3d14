package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"urlkit/application/util/uri"
	sliceutil "urlkit/lib/slice"

	"github.com/pkg/errors"
)

type queryReport struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type report struct {
	Input         string        `json:"input"`
	Valid         bool          `json:"valid"`
	Error         string        `json:"error,omitempty"`
	URL           string        `json:"url,omitempty"`
	Scheme        string        `json:"scheme,omitempty"`
	User          string        `json:"user,omitempty"`
	Host          string        `json:"host,omitempty"`
	HostKind      string        `json:"host_kind,omitempty"`
	Port          uint16        `json:"port,omitempty"`
	EffectivePort uint16        `json:"effective_port,omitempty"`
	Path          []string      `json:"path,omitempty"`
	Query         []queryReport `json:"query,omitempty"`
	Fragment      string        `json:"fragment,omitempty"`
}

func newReport(res Result) report {
	rep := report{Input: res.Input, Valid: res.OK()}
	if !res.OK() {
		rep.Error = res.Err.Error()
		return rep
	}

	u := res.URL
	rep.URL = redact(res)
	rep.Scheme = u.Scheme.Value()
	rep.User = u.Authority.UserInfo.User()
	if !u.Authority.Host.Empty() {
		rep.Host = u.Authority.Host.String()
		rep.HostKind = u.Authority.Host.Kind().String()
	}
	rep.Port = uint16(u.Authority.Port)
	rep.EffectivePort = uint16(u.EffectivePort())
	rep.Path = u.Path.Segments()
	rep.Query = sliceutil.Map(u.Query.Fields(), func(field uri.QueryField) queryReport {
		return queryReport{Name: field.Name(), Values: field.Values()}
	})
	rep.Fragment = u.Fragment
	return rep
}

// writeReport prints results in the format selected by cfg.
// Passwords are never printed.
func writeReport(w io.Writer, results []Result, cfg config) error {
	switch {
	case cfg.json:
		enc := json.NewEncoder(w)
		for _, res := range results {
			if err := enc.Encode(newReport(res)); err != nil {
				return errors.Wrap(err, "encoding report")
			}
		}
	case cfg.canonical:
		for _, res := range sliceutil.Filter(results, Result.OK) {
			if _, err := fmt.Fprintln(w, redact(res)); err != nil {
				return errors.Wrap(err, "writing report")
			}
		}
	default:
		for _, res := range results {
			if _, err := io.WriteString(w, formatText(res)); err != nil {
				return errors.Wrap(err, "writing report")
			}
		}
	}
	return nil
}

// redact returns the canonical form of res without the password.
func redact(res Result) string {
	if res.URL.Authority.UserInfo.Password() == "" {
		return res.Canonical
	}

	u := res.URL
	u.Authority.UserInfo.ClearPassword()
	return u.String()
}

func formatText(res Result) string {
	var b strings.Builder
	if !res.OK() {
		fmt.Fprintf(&b, "ERR %s: %v\n", res.Input, res.Err)
		return b.String()
	}

	u := res.URL
	fmt.Fprintf(&b, "OK  %s\n", redact(res))
	if !u.Scheme.Empty() {
		fmt.Fprintf(&b, "    scheme:   %s\n", u.Scheme)
	}
	if user := u.Authority.UserInfo.User(); user != "" {
		fmt.Fprintf(&b, "    user:     %s\n", user)
	}
	if !u.Authority.Host.Empty() {
		fmt.Fprintf(&b, "    host:     %s (%s)\n", u.Authority.Host, u.Authority.Host.Kind())
	}
	if port := u.EffectivePort(); port != 0 {
		fmt.Fprintf(&b, "    port:     %d\n", port)
	}
	fmt.Fprintf(&b, "    path:     %q\n", u.Path.Segments())
	for _, field := range u.Query.Fields() {
		fmt.Fprintf(&b, "    query:    %s = %q\n", field.Name(), field.Values())
	}
	if u.Fragment != "" {
		fmt.Fprintf(&b, "    fragment: %s\n", u.Fragment)
	}
	return b.String()
}
