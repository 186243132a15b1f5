package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Optional patches a nullable string column: nil keeps current, "" clears it.
func Optional(ptr *string, current *string) *string {
	if ptr == nil {
		return current
	}
	if *ptr == "" {
		return nil
	}
	v := *ptr
	return &v
}
