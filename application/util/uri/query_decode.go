package uri

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// Decode stores the query fields into out, which must be a pointer to a struct or a map.
// Struct fields are matched by their `query` tag, values are converted weakly,
// so "8080" decodes into an int and array fields decode into slices.
func (q *Query) Decode(out any) error {
	input := make(map[string]any, len(q.fields))
	for _, field := range q.fields {
		if field.IsArray() {
			input[field.name] = field.Values()
		} else {
			input[field.name] = field.value
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "query",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "creating query decoder")
	}

	if err := decoder.Decode(input); err != nil {
		return errors.Wrap(err, "decoding query")
	}
	return nil
}
