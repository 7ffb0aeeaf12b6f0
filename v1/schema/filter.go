package schema

// Include reports whether name passes the include list. An empty list
// admits every name; otherwise the name must equal one of the entries.
func Include(filter []string, name string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if f == name {
			return true
		}
	}
	return false
}

// FilterByName keeps the items whose name passes Include. The result is never nil.
func FilterByName[T any](items []T, filter []string, name func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Include(filter, name(item)) {
			out = append(out, item)
		}
	}
	return out
}
