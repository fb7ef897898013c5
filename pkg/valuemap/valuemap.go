// Package valuemap implements the sparse, insertion-ordered string map used
// for per-answer question state. A key is present only while it holds a
// non-empty value; setting a key to "" removes it.
package valuemap

// Map is an ordered sparse map. The zero value is ready to use.
type Map struct {
	keys   []string
	values map[string]string
}

// Delta describes how a single key changed between two maps.
type Delta struct {
	Value   string `json:"value,omitempty"`
	Deleted bool   `json:"deleted,omitempty"`
}

// Diff maps changed keys to their new state. Unchanged keys are omitted.
type Diff map[string]Delta

// New builds a map from ordered key/value pairs. Empty values are skipped.
func New(pairs ...[2]string) *Map {
	m := &Map{}
	for _, pair := range pairs {
		m.Set(pair[0], pair[1])
	}
	return m
}

// FromOrdered copies values following the key order supplied in keys. Keys
// missing from values, or holding empty strings, are skipped.
func FromOrdered(keys []string, values map[string]string) *Map {
	m := &Map{}
	for _, key := range keys {
		m.Set(key, values[key])
	}
	return m
}

// Get returns the value stored for key.
func (m *Map) Get(key string) (string, bool) {
	if m == nil || m.values == nil {
		return "", false
	}
	value, ok := m.values[key]
	return value, ok
}

// Has reports whether key currently holds a value.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key and reports whether the map changed. An empty
// value deletes the key.
func (m *Map) Set(key, value string) bool {
	if value == "" {
		return m.Delete(key)
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	current, ok := m.values[key]
	if ok && current == value {
		return false
	}
	if !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return true
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	if m == nil || m.values == nil {
		return false
	}
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for idx, existing := range m.keys {
		if existing == key {
			m.keys = append(m.keys[:idx:idx], m.keys[idx+1:]...)
			break
		}
	}
	return true
}

// Len reports the number of keys holding a value.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil || len(m.keys) == 0 {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Range calls fn for every entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key, value string) bool) {
	if m == nil {
		return
	}
	for _, key := range m.keys {
		if !fn(key, m.values[key]) {
			return
		}
	}
}

// Clone returns an independent copy.
func (m *Map) Clone() *Map {
	out := &Map{}
	m.Range(func(key, value string) bool {
		out.Set(key, value)
		return true
	})
	return out
}

// ToMap returns a plain map copy. The result is nil when m is empty.
func (m *Map) ToMap() map[string]string {
	if m.Len() == 0 {
		return nil
	}
	out := make(map[string]string, m.Len())
	m.Range(func(key, value string) bool {
		out[key] = value
		return true
	})
	return out
}

// Compare returns the keys that differ between before and after. Removed
// keys are reported with Deleted set. The result is nil when nothing changed.
func Compare(before, after *Map) Diff {
	var diff Diff
	record := func(key string, delta Delta) {
		if diff == nil {
			diff = make(Diff)
		}
		diff[key] = delta
	}

	before.Range(func(key, old string) bool {
		current, ok := after.Get(key)
		switch {
		case !ok:
			record(key, Delta{Deleted: true})
		case current != old:
			record(key, Delta{Value: current})
		}
		return true
	})
	after.Range(func(key, value string) bool {
		if !before.Has(key) {
			record(key, Delta{Value: value})
		}
		return true
	})
	return diff
}
