package store

import "time"

// NormalizeTimestamp converts a store-native timestamp value into an
// ISO-8601 string. Firestore hands timestamps back as time.Time; documents
// written by older clients may already carry ISO strings. Anything else
// falls back to the current time, so the result is always a valid instant.
func NormalizeTimestamp(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case string:
		if t != "" {
			return t
		}
	}
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// timeOf parses a timestamp-like value for ordering purposes. Values that
// cannot be interpreted as an instant compare as "now".
func timeOf(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts
		}
	}
	return time.Now().UTC()
}
