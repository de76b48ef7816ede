package tagwalk_test

import (
	"testing"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/stretchr/testify/assert"
)

func TestQuery_Compact(t *testing.T) {
	t.Parallel()

	var nilPointer *string

	empty := ""
	size := 24

	query := tagwalk.Query{
		"designer": "chanel",
		"from":     0,
		"city":     "",
		"tags":     []string{},
		"season":   nil,
		"models":   nilPointer,
		"type":     &empty,
		"size":     &size,
		"talent":   false,
	}

	assert.Equal(t, tagwalk.Query{"designer": "chanel", "size": &size}, query.Compact())
}

func TestQuery_Key(t *testing.T) {
	t.Parallel()

	t.Run("construction order does not matter", func(t *testing.T) {
		t.Parallel()

		first := tagwalk.Query{}
		first["designer"] = "chanel"
		first["season"] = "fall-winter-2019"
		first["type"] = "woman"

		second := tagwalk.Query{}
		second["type"] = "woman"
		second["season"] = "fall-winter-2019"
		second["designer"] = "chanel"

		assert.Equal(t, first.Key(), second.Key())
	})

	t.Run("empty filters equal absent ones", func(t *testing.T) {
		t.Parallel()

		withEmpty := tagwalk.Query{"designer": "chanel", "city": "", "from": 0, "tags": nil}
		without := tagwalk.Query{"designer": "chanel"}

		assert.Equal(t, without.Key(), withEmpty.Key())
	})

	t.Run("distinct filters give distinct keys", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t,
			tagwalk.Query{"designer": "chanel"}.Key(),
			tagwalk.Query{"designer": "dior"}.Key(),
		)
		assert.NotEqual(t,
			tagwalk.Query{"designer": "chanel"}.Key(),
			tagwalk.Query{"season": "chanel"}.Key(),
		)
	})

	t.Run("scalars are compared by their text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, tagwalk.Query{"size": 24}.Key(), tagwalk.Query{"size": "24"}.Key())
	})

	t.Run("key is a sha256 hex digest", func(t *testing.T) {
		t.Parallel()

		key := tagwalk.Query{}.Key()
		assert.Len(t, string(key), 64)
		assert.Equal(t, "cities."+string(key), key.Namespaced("cities"))
	})
}

func TestQuery_Values(t *testing.T) {
	t.Parallel()

	values := tagwalk.Query{
		"designer": "chanel",
		"tags":     []string{"red", "tweed"},
		"size":     24,
		"city":     "",
	}.Values()

	assert.Equal(t, "chanel", values.Get("designer"))
	assert.Equal(t, "red,tweed", values.Get("tags"))
	assert.Equal(t, "24", values.Get("size"))
	assert.False(t, values.Has("city"))
}

func TestQuery_WithAndMerge(t *testing.T) {
	t.Parallel()

	base := tagwalk.Query{"sort": "name:asc", "size": 10}

	with := base.With("sort", "created_at:desc")
	assert.Equal(t, "created_at:desc", with["sort"])
	assert.Equal(t, "name:asc", base["sort"])

	merged := base.Merge(tagwalk.Query{"size": 50, "city": "paris"})
	assert.Equal(t, tagwalk.Query{"sort": "name:asc", "size": 50, "city": "paris"}, merged)
	assert.Len(t, base, 2)
}
