package generation

// DedupeLastByKey keeps the last occurrence of each key. Items are scanned
// from the end and the survivors are returned in their original relative
// order, so [A1, B, A2] becomes [B, A2].
func DedupeLastByKey[T any](items []T, key func(T) string) []T {
	if items == nil {
		return nil
	}

	seen := make(map[string]bool, len(items))
	kept := make([]T, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		k := key(items[i])
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, items[i])
	}

	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}
