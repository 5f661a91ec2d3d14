package uri

import (
	"slices"
	"strings"
	"urlkit/application/util/percent"
	"urlkit/lib/ds/stack"
)

// Path holds decoded path segments in order.
// Empty segments, such as the ones produced by "a//b", are not kept.
//
// Every change builds a new segment slice, so copying a Path gives an independent Path.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.3
type Path struct {
	segments []string
}

func ParsePath(s string) (Path, error) {
	var p Path
	if err := p.Parse(s); err != nil {
		return Path{}, err
	}
	return p, nil
}

// Parse appends the segments of s to the path.
// On failure the path keeps the segments it had before.
func (p *Path) Parse(s string) error {
	segments := slices.Clip(p.segments)

	for raw := range strings.SplitSeq(s, "/") {
		if raw == "" {
			continue
		}
		decoded, err := decodeSegment(raw)
		if err != nil {
			return err
		}
		segments = append(segments, decoded)
	}

	p.segments = segments
	return nil
}

func decodeSegment(segment string) (string, error) {
	decoded, err := percent.Decode(segment)
	if err != nil {
		return "", malformed("path segment %q: %v", segment, err)
	}
	return decoded, nil
}

// Add appends an already decoded segment.
func (p *Path) Add(segment string) { p.segments = append(slices.Clip(p.segments), segment) }

// AddEncoded decodes segment and appends it.
func (p *Path) AddEncoded(segment string) error {
	decoded, err := decodeSegment(segment)
	if err != nil {
		return err
	}
	p.Add(decoded)
	return nil
}

func (p Path) At(idx int) (string, error) {
	if idx < 0 || idx >= len(p.segments) {
		return "", outOfRange(idx, len(p.segments))
	}
	return p.segments[idx], nil
}

func (p *Path) Set(idx int, segment string) error {
	if idx < 0 || idx >= len(p.segments) {
		return outOfRange(idx, len(p.segments))
	}
	segments := slices.Clone(p.segments)
	segments[idx] = segment
	p.segments = segments
	return nil
}

func (p *Path) RemoveAt(idx int) error {
	if idx < 0 || idx >= len(p.segments) {
		return outOfRange(idx, len(p.segments))
	}
	p.segments = slices.Concat(p.segments[:idx], p.segments[idx+1:])
	return nil
}

// Segments returns a copy of the decoded segments.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

func (p Path) Count() int  { return len(p.segments) }
func (p Path) Empty() bool { return len(p.segments) == 0 }
func (p *Path) Clear()     { p.segments = nil }

// Normalize removes "." and ".." segments.
// A ".." never climbs above the root.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-5.2.4
func (p *Path) Normalize() {
	st := stack.New[string](len(p.segments))
	for _, seg := range p.segments {
		switch seg {
		case ".":
		case "..":
			_, _ = st.Pop()
		default:
			st.Push(seg)
		}
	}
	p.segments = st.Data()
}

func (p Path) Len() int {
	if len(p.segments) == 0 {
		return len("/")
	}

	n := 0
	for _, seg := range p.segments {
		n += len("/") + percent.EncodedLen(seg)
	}
	return n
}

func (p Path) AppendTo(b []byte) []byte {
	if len(p.segments) == 0 {
		return append(b, '/')
	}

	for _, seg := range p.segments {
		b = append(b, '/')
		b = percent.AppendEncode(b, seg)
	}
	return b
}

func (p Path) String() string {
	return string(p.AppendTo(make([]byte, 0, p.Len())))
}
