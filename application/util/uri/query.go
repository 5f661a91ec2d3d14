package uri

import (
	"slices"
	"strings"
	"urlkit/application/util/percent"
)

// Query is an insertion ordered set of uniquely named fields.
// Lookups scan linearly, queries are expected to be small.
//
// A Query owns its fields: Get returns copies and every change goes through
// the Query, which never writes into storage an earlier copy may share.
// Copying a Query therefore gives an independent Query.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.4
type Query struct {
	fields []QueryField
}

func ParseQuery(s string) (Query, error) {
	var q Query
	if err := q.Parse(s); err != nil {
		return Query{}, err
	}
	return q, nil
}

// Parse adds the "name=value" pairs of s to the query.
//
// A name ending with "[]" marks an array occurrence: the first one replaces
// whatever the field held, the following ones append to it.
// A plain occurrence replaces every value of the field.
//
// The query is left as it was when s contains a malformed pair.
func (q *Query) Parse(s string) error {
	fields, err := parseQuery(slices.Clone(q.fields), s)
	if err != nil {
		return err
	}
	q.fields = fields
	return nil
}

func parseQuery(fields []QueryField, s string) ([]QueryField, error) {
	// Fields turned into arrays by this call, which may still hold a single value.
	pending := make(map[int]struct{})

	for pair := range strings.SplitSeq(s, "&") {
		if pair == "" {
			continue
		}

		rawName, rawValue, _ := strings.Cut(pair, "=")
		rawName, isArray := trimArraySuffix(rawName)

		name, err := percent.Decode(rawName)
		if err != nil {
			return nil, malformed("query name %q: %v", rawName, err)
		}
		if name == "" {
			return nil, malformed("query pair %q has no name", pair)
		}
		value, err := percent.Decode(rawValue)
		if err != nil {
			return nil, malformed("query value %q: %v", rawValue, err)
		}

		idx := indexField(fields, name)
		if idx < 0 {
			fields = append(fields, QueryField{name: name})
			fields[len(fields)-1].SetValue(value)
			if isArray {
				pending[len(fields)-1] = struct{}{}
			}
			continue
		}

		field := &fields[idx]
		_, isPending := pending[idx]
		switch {
		case !isArray:
			field.SetValue(value)
			delete(pending, idx)
		case field.IsArray() || isPending:
			field.AddValue(value)
		default:
			field.SetValue(value)
			pending[idx] = struct{}{}
		}
	}

	return fields, nil
}

func trimArraySuffix(rawName string) (string, bool) {
	const encoded = "%5B%5D"

	switch {
	case strings.HasSuffix(rawName, "[]"):
		return rawName[:len(rawName)-len("[]")], true
	case len(rawName) >= len(encoded) && strings.EqualFold(rawName[len(rawName)-len(encoded):], encoded):
		return rawName[:len(rawName)-len(encoded)], true
	}
	return rawName, false
}

func indexField(fields []QueryField, name string) int {
	return slices.IndexFunc(fields, func(f QueryField) bool { return f.name == name })
}

func (q *Query) Contains(name string) bool { return indexField(q.fields, name) >= 0 }

// Get returns a copy of the field with the given name.
// Changes to the copy are not seen by q, use Edit or Insert for that.
func (q *Query) Get(name string) (QueryField, bool) {
	idx := indexField(q.fields, name)
	if idx < 0 {
		return QueryField{}, false
	}
	return q.fields[idx], true
}

// Edit calls fn with the field of the given name, adding an empty field first
// if it doesn't exist yet. f must not be used once fn returns.
func (q *Query) Edit(name string, fn func(f *QueryField)) {
	fields := slices.Clone(q.fields)
	idx := indexField(fields, name)
	if idx < 0 {
		fields = append(fields, QueryField{name: name, indices: []int{0}})
		idx = len(fields) - 1
	}

	fn(&fields[idx])
	q.fields = fields
}

// Insert stores field, replacing the values of an existing field with the same name.
func (q *Query) Insert(field MutableQueryField) error {
	if field.name == "" {
		return malformed("query field has no name")
	}

	q.Edit(field.name, func(f *QueryField) { *f = field.QueryField })
	return nil
}

func (q *Query) Remove(name string) bool {
	idx := indexField(q.fields, name)
	if idx < 0 {
		return false
	}
	q.fields = slices.Concat(q.fields[:idx], q.fields[idx+1:])
	return true
}

// Fields returns copies of the fields in insertion order.
func (q *Query) Fields() []QueryField { return slices.Clone(q.fields) }

func (q *Query) Count() int  { return len(q.fields) }
func (q *Query) Empty() bool { return len(q.fields) == 0 }
func (q *Query) Clear()      { q.fields = nil }

func (q *Query) Len() int {
	if len(q.fields) == 0 {
		return 0
	}

	n := len(q.fields) - 1
	for _, field := range q.fields {
		n += field.Len()
	}
	return n
}

func (q *Query) AppendTo(b []byte) []byte {
	for idx, field := range q.fields {
		if idx > 0 {
			b = append(b, '&')
		}
		b = field.AppendTo(b)
	}
	return b
}

func (q *Query) String() string {
	return string(q.AppendTo(make([]byte, 0, q.Len())))
}
