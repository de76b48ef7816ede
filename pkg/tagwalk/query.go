package tagwalk

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Query is a flat set of API filters. Values are scalars; slices are sent
// comma separated.
type Query map[string]any

// CacheKey is the hex SHA-256 digest of a compacted Query.
type CacheKey string

// Namespaced prefixes the key with a resource family (e.g. "cities").
func (k CacheKey) Namespaced(namespace string) string {
	return namespace + "." + string(k)
}

// Compact returns a copy without empty filters: nil, zero values, empty
// slices, and pointers to nothing.
func (q Query) Compact() Query {
	out := make(Query, len(q))

	for key, value := range q {
		if isEmptyValue(value) {
			continue
		}

		out[key] = value
	}

	return out
}

// With returns a copy of q with key set to value.
func (q Query) With(key string, value any) Query {
	out := make(Query, len(q)+1)
	for k, v := range q {
		out[k] = v
	}

	out[key] = value

	return out
}

// Merge returns a copy of q overlaid with other. Keys in other win.
func (q Query) Merge(other Query) Query {
	out := make(Query, len(q)+len(other))
	for k, v := range q {
		out[k] = v
	}

	for k, v := range other {
		out[k] = v
	}

	return out
}

// Values converts the compacted query to URL values.
func (q Query) Values() url.Values {
	values := url.Values{}
	for key, value := range q.Compact() {
		values.Set(key, formatValue(value))
	}

	return values
}

// Key computes the cache key. Construction order and empty filters do not
// change the result.
func (q Query) Key() CacheKey {
	compact := q.Compact()

	keys := make([]string, 0, len(compact))
	for key := range compact {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	pairs := make([][2]string, len(keys))
	for i, key := range keys {
		pairs[i] = [2]string{key, formatValue(compact[key])}
	}

	// [][2]string always marshals.
	data, _ := json.Marshal(pairs)
	sum := sha256.Sum256(data)

	return CacheKey(hex.EncodeToString(sum[:]))
}

func formatValue(value any) string {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return strings.Join(cast.ToStringSlice(rv.Interface()), ",")
	}

	return cast.ToString(rv.Interface())
}

func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	default:
		return rv.IsZero()
	}
}
