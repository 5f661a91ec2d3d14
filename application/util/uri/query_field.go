package uri

import (
	"fmt"
	"slices"
	"strconv"
	"urlkit/application/util/percent"
)

// QueryField is a named query parameter holding one or more decoded values.
//
// Values are packed into a single comma separated string.
// indices holds the offset of each value: indices[0] is always 0,
// and for i > 0 the byte at indices[i]-1 is the separating comma.
//
// Mutations never write into storage a copy may share,
// so copying a QueryField gives an independent field.
// A field stored in a Query can't be renamed, see MutableQueryField.
type QueryField struct {
	name    string
	value   string
	indices []int
}

func (f *QueryField) Name() string { return f.name }

// Value returns the packed values. Use ValueAt or Values when the field is an array,
// since values may contain commas themselves.
func (f *QueryField) Value() string { return f.value }

func (f *QueryField) Count() int {
	if len(f.indices) == 0 {
		return 1
	}
	return len(f.indices)
}

func (f *QueryField) IsArray() bool { return f.Count() > 1 }

// Indices returns a copy of the value offsets.
func (f *QueryField) Indices() []int {
	if len(f.indices) == 0 {
		return []int{0}
	}
	out := make([]int, len(f.indices))
	copy(out, f.indices)
	return out
}

// bounds returns the [start, end) range of the value at idx. idx must be valid.
func (f *QueryField) bounds(idx int) (int, int) {
	if len(f.indices) == 0 {
		return 0, len(f.value)
	}

	start, end := f.indices[idx], len(f.value)
	if idx+1 < len(f.indices) {
		end = f.indices[idx+1] - 1
	}
	return start, end
}

func (f *QueryField) ValueAt(idx int) (string, error) {
	if idx < 0 || idx >= f.Count() {
		return "", outOfRange(idx, f.Count())
	}
	start, end := f.bounds(idx)
	return f.value[start:end], nil
}

func (f *QueryField) Values() []string {
	out := make([]string, 0, f.Count())
	for idx := range f.Count() {
		start, end := f.bounds(idx)
		out = append(out, f.value[start:end])
	}
	return out
}

// AddValue appends v, turning the field into an array.
func (f *QueryField) AddValue(v string) {
	if len(f.indices) == 0 {
		f.indices = []int{0}
	}
	f.indices = append(slices.Clip(f.indices), len(f.value)+1)
	f.value += "," + v
}

// SetValue replaces every value with v. An array field becomes a scalar.
func (f *QueryField) SetValue(v string) {
	f.value = v
	f.indices = []int{0}
}

// SetValueAt replaces the value at idx. Out of range indices append v instead.
func (f *QueryField) SetValueAt(idx int, v string) {
	if idx < 0 || idx >= f.Count() {
		f.AddValue(v)
		return
	}

	start, end := f.bounds(idx)
	delta := len(v) - (end - start)
	f.value = f.value[:start] + v + f.value[end:]
	f.indices = f.Indices()
	for i := idx + 1; i < len(f.indices); i++ {
		f.indices[i] += delta
	}
}

// RemoveValueAt removes the value at idx.
// Removing the only value leaves a single empty value, like ClearValues.
func (f *QueryField) RemoveValueAt(idx int) error {
	count := f.Count()
	if idx < 0 || idx >= count {
		return outOfRange(idx, count)
	}
	if count == 1 {
		f.ClearValues()
		return nil
	}

	if idx == 0 {
		cut := f.indices[1]
		f.value = f.value[cut:]
		f.indices = slices.Clone(f.indices[1:])
		for i := range f.indices {
			f.indices[i] -= cut
		}
		return nil
	}

	// Drop the value together with the comma before it.
	start, end := f.bounds(idx)
	start--
	delta := end - start
	f.value = f.value[:start] + f.value[end:]
	f.indices = slices.Concat(f.indices[:idx], f.indices[idx+1:])
	for i := idx; i < len(f.indices); i++ {
		f.indices[i] -= delta
	}
	return nil
}

// ClearValues leaves the field with a single empty value.
func (f *QueryField) ClearValues() {
	f.value = ""
	f.indices = []int{0}
}

// AddValueOf formats v and appends it.
func (f *QueryField) AddValueOf(v any) { f.AddValue(formatValue(v)) }

// SetValueOf formats v and replaces every value with it.
func (f *QueryField) SetValueOf(v any) { f.SetValue(formatValue(v)) }

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64:
		return strconv.FormatInt(toInt64(v), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(toUint64(v), 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

func toInt64(v any) int64 {
	switch v := v.(type) {
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	}
	return 0
}

func toUint64(v any) uint64 {
	switch v := v.(type) {
	case uint:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	}
	return 0
}

// Len returns the encoded length. Scalars are written as "name=value",
// arrays as "name[]=v1&name[]=v2".
func (f *QueryField) Len() int {
	name := percent.EncodedLen(f.name)
	if !f.IsArray() {
		return name + len("=") + percent.EncodedLen(f.value)
	}

	n := 0
	for idx := range f.Count() {
		start, end := f.bounds(idx)
		n += name + len("[]=") + percent.EncodedLen(f.value[start:end])
	}
	return n + f.Count() - 1
}

func (f *QueryField) AppendTo(b []byte) []byte {
	if !f.IsArray() {
		b = percent.AppendEncode(b, f.name)
		b = append(b, '=')
		return percent.AppendEncode(b, f.value)
	}

	for idx := range f.Count() {
		if idx > 0 {
			b = append(b, '&')
		}
		start, end := f.bounds(idx)
		b = percent.AppendEncode(b, f.name)
		b = append(b, "[]="...)
		b = percent.AppendEncode(b, f.value[start:end])
	}
	return b
}

func (f *QueryField) String() string {
	return string(f.AppendTo(make([]byte, 0, f.Len())))
}

// MutableQueryField is a standalone field whose name can change.
type MutableQueryField struct {
	QueryField
}

func NewQueryField(name string) *MutableQueryField {
	return &MutableQueryField{QueryField: QueryField{name: name, indices: []int{0}}}
}

func (f *MutableQueryField) SetName(name string) { f.name = name }

// Clear drops the name and every value.
func (f *MutableQueryField) Clear() {
	f.name = ""
	f.ClearValues()
}
