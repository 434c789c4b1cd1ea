package collections

// Contains returns true if elem is present in elements.
func Contains[T comparable](elem T, elements []T) bool {
	for _, e := range elements {
		if elem == e {
			return true
		}
	}
	return false
}

// Dedup returns elements with every repeated value removed, keeping the first
// occurrence of each. A nil slice stays nil.
func Dedup[T comparable](elements []T) []T {
	if elements == nil {
		return nil
	}

	seen := make(map[T]struct{}, len(elements))
	result := make([]T, 0, len(elements))
	for _, e := range elements {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		result = append(result, e)
	}
	return result
}
