package catalog

// OrderedMap is a string-keyed map that remembers insertion order.
// Member order carries serialization significance for catalog files, so every
// mapping in the document model preserves the order in which keys first
// appeared. Lookups are by key only; position never affects semantics.
//
// OrderedMap is not safe for concurrent use; the owning Store serializes
// access behind its lock.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap creates an empty ordered map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{
		values: make(map[string]V),
	}
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Get returns the value for key and whether it exists.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	value, ok := m.values[key]
	return value, ok
}

// Set stores a value. A new key is appended to the iteration order;
// an existing key keeps its position.
func (m *OrderedMap[V]) Set(key string, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes a key, reporting whether it was present.
func (m *OrderedMap[V]) Delete(key string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in iteration order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// ForEach applies fn to each entry in iteration order.
// If fn returns false, iteration stops early.
func (m *OrderedMap[V]) ForEach(fn func(key string, value V) bool) {
	if m == nil {
		return
	}
	for _, key := range m.keys {
		if !fn(key, m.values[key]) {
			break
		}
	}
}

// retain keeps only the entries for which fn returns true, preserving order.
func (m *OrderedMap[V]) retain(fn func(key string, value V) bool) {
	if m == nil {
		return
	}
	kept := m.keys[:0]
	for _, key := range m.keys {
		if fn(key, m.values[key]) {
			kept = append(kept, key)
		} else {
			delete(m.values, key)
		}
	}
	m.keys = kept
}
