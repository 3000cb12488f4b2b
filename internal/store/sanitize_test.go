package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Run("drops nil-valued keys", func(t *testing.T) {
		in := map[string]any{
			"name":  "Mike",
			"phone": nil,
			"year":  2020,
		}

		out := Sanitize(in)

		assert.Equal(t, map[string]any{"name": "Mike", "year": 2020}, out)
	})

	t.Run("keeps empty strings and zero values", func(t *testing.T) {
		in := map[string]any{"bio": "", "likes": 0, "tags": []string{}}

		out := Sanitize(in)

		assert.Equal(t, in, out)
	})

	t.Run("is idempotent", func(t *testing.T) {
		in := map[string]any{"a": 1, "b": nil, "c": "x"}

		once := Sanitize(in)
		twice := Sanitize(once)

		assert.Equal(t, once, twice)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := map[string]any{"a": nil, "b": 2}

		_ = Sanitize(in)

		assert.Contains(t, in, "a")
	})

	t.Run("does not recurse into nested values", func(t *testing.T) {
		nested := map[string]any{"inner": nil}
		in := map[string]any{"outer": nested}

		out := Sanitize(in)

		assert.Equal(t, nested, out["outer"])
	})
}
