package robinmap

import (
	"fmt"
	"strings"

	"github.com/joshuapare/memkit/introspect"
)

// Stats is a structural summary of a map, including probe-distance figures
// useful for judging hash quality.
type Stats struct {
	Length           int
	Capacity         int
	Usable           int
	Shift            uint
	LoadFactor       float64
	MaxDisplacement  int
	MeanDisplacement float64
}

// Stats walks the table and returns the current structural summary.
func (m *Map[K, V]) Stats() Stats {
	s := Stats{
		Length:   m.length,
		Capacity: len(m.slots),
		Usable:   m.usable,
		Shift:    m.shift,
	}
	if len(m.slots) == 0 {
		return s
	}
	s.LoadFactor = float64(m.length) / float64(len(m.slots))

	total := 0
	for i := range m.slots {
		if m.slots[i].hash == emptySlot {
			continue
		}
		d := m.displacement(i, m.slots[i].hash)
		total += d
		if d > s.MaxDisplacement {
			s.MaxDisplacement = d
		}
	}
	if m.length > 0 {
		s.MeanDisplacement = float64(total) / float64(m.length)
	}
	return s
}

// Slot is one physical slot in an introspection snapshot. A zero Hash marks
// a vacant slot.
type Slot[K comparable, V any] struct {
	Hash  uint64
	Key   K
	Value V
}

// Fields exposes the map's internal fields by name for introspection
// tooling. The data field is a snapshot of the full slot array, vacant
// slots included.
func (m *Map[K, V]) Fields() []introspect.Field {
	data := make([]Slot[K, V], len(m.slots))
	for i := range m.slots {
		data[i] = Slot[K, V]{
			Hash:  m.slots[i].hash,
			Key:   m.slots[i].key,
			Value: m.slots[i].value,
		}
	}
	return []introspect.Field{
		{Name: "data", Value: data},
		{Name: "capacity", Value: len(m.slots)},
		{Name: "length", Value: m.length},
		{Name: "usable", Value: m.usable},
		{Name: "shift", Value: m.shift},
	}
}

// DebugString renders the physical slot layout, one line per slot, with each
// entry's ideal slot and displacement. Intended for tests and debugging.
func (m *Map[K, V]) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "robinmap: len=%d cap=%d usable=%d shift=%d\n",
		m.length, len(m.slots), m.usable, m.shift)
	for i := range m.slots {
		if m.slots[i].hash == emptySlot {
			fmt.Fprintf(&b, "  [%d] empty\n", i)
			continue
		}
		fmt.Fprintf(&b, "  [%d] hash=%#016x ideal=%d dist=%d key=%v value=%v\n",
			i, m.slots[i].hash, m.ideal(m.slots[i].hash),
			m.displacement(i, m.slots[i].hash), m.slots[i].key, m.slots[i].value)
	}
	return b.String()
}

var _ introspect.Introspectable = (*Map[int, int])(nil)
