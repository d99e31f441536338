//go:build unit || e2e

package testutil

import "strings"

// Field sets key in a decoded JSON body, or deletes it when value is nil.
// Dotted keys reach into nested objects, e.g. "customer.email".
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		path := strings.Split(key, ".")
		for _, k := range path[:len(path)-1] {
			next, ok := m[k].(map[string]any)
			if !ok {
				return
			}
			m = next
		}
		last := path[len(path)-1]
		if value == nil {
			delete(m, last)
		} else {
			m[last] = value
		}
	}
}
