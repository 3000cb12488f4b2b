package store

// Sanitize returns a copy of a write payload without nil-valued keys.
// Firestore rejects explicit nulls where the caller meant "absent", and
// partial updates bound from JSON can carry them. Nils nested inside maps
// or slices are left untouched.
func Sanitize(fields map[string]any) map[string]any {
	cleaned := make(map[string]any, len(fields))
	for k, v := range fields {
		if v == nil {
			continue
		}
		cleaned[k] = v
	}
	return cleaned
}
