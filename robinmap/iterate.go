package robinmap

import "iter"

// All iterates live entries in slot order, which is arbitrary and changes
// across growth. The map must not be mutated during iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range m.slots {
			if m.slots[i].hash == emptySlot {
				continue
			}
			if !yield(m.slots[i].key, m.slots[i].value) {
				return
			}
		}
	}
}

// Keys iterates live keys in slot order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := range m.slots {
			if m.slots[i].hash == emptySlot {
				continue
			}
			if !yield(m.slots[i].key) {
				return
			}
		}
	}
}

// Values iterates live values in slot order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := range m.slots {
			if m.slots[i].hash == emptySlot {
				continue
			}
			if !yield(m.slots[i].value) {
				return
			}
		}
	}
}
