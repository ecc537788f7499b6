package utils

// FindIndex returns the index of the first element equal to item, -1 if there is none.
func FindIndex[T comparable](slice []T, item T) int {
	return FindFunc(slice, func(v T) bool { return v == item })
}

// FindFunc returns the index of the first element matching pred, -1 if there is none.
func FindFunc[T any](slice []T, pred func(T) bool) int {
	for i, v := range slice {
		if pred(v) {
			return i
		}
	}
	return -1
}
