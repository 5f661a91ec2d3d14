package sliceutil

// Map applies f to every element of v.
func Map[From any, To any](v []From, f func(From) To) []To {
	if v == nil {
		return nil
	}

	out := make([]To, len(v))
	for idx := range v {
		out[idx] = f(v[idx])
	}
	return out
}

// Filter returns the elements of v for which keep returns true, in order.
func Filter[T any](v []T, keep func(T) bool) []T {
	var out []T
	for _, elem := range v {
		if keep(elem) {
			out = append(out, elem)
		}
	}
	return out
}
