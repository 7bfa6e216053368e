package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// BothOrNone reports whether a and b are either both set or both unset
func BothOrNone[A, B any](a *A, b *B) bool {
	return (a == nil) == (b == nil)
}
