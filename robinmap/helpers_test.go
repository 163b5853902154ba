package robinmap

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

// verifyMap checks the structural invariants of the table: bookkeeping
// fields derived from capacity, odd stored hashes, the Robin Hood probe
// ordering, and that every live entry is reachable through lookup.
func verifyMap[K comparable, V comparable](m *Map[K, V]) error {
	if len(m.slots) == 0 {
		if m.length != 0 {
			return fmt.Errorf("length %d with no slot array", m.length)
		}
		return nil
	}
	if len(m.slots)&(len(m.slots)-1) != 0 {
		return fmt.Errorf("capacity %d is not a power of two", len(m.slots))
	}
	if want := len(m.slots) / 4 * 3; m.usable != want {
		return fmt.Errorf("usable %d, want %d for capacity %d", m.usable, want, len(m.slots))
	}
	if want := uint(bits.LeadingZeros64(uint64(len(m.slots))) + 1); m.shift != want {
		return fmt.Errorf("shift %d, want %d for capacity %d", m.shift, want, len(m.slots))
	}
	if m.length > m.usable {
		return fmt.Errorf("length %d exceeds usable %d", m.length, m.usable)
	}

	occupied := 0
	for i := range m.slots {
		s := &m.slots[i]
		if s.hash == emptySlot {
			continue
		}
		occupied++
		if s.hash&1 == 0 {
			return fmt.Errorf("slot %d: stored hash %#x is even", i, s.hash)
		}
		if got := m.storedHash(s.key); got != s.hash {
			return fmt.Errorf("slot %d: stored hash %#x does not match key %v's %#x", i, s.hash, s.key, got)
		}

		d := m.displacement(i, s.hash)
		prev := i - 1
		if prev < 0 {
			prev = len(m.slots) - 1
		}
		if m.slots[prev].hash == emptySlot {
			if d != 0 {
				return fmt.Errorf("slot %d: displacement %d directly after a vacant slot", i, d)
			}
		} else if pd := m.displacement(prev, m.slots[prev].hash); d > pd+1 {
			return fmt.Errorf("slot %d: displacement %d jumps past predecessor's %d", i, d, pd)
		}

		got, ok := m.Get(s.key)
		if !ok {
			return fmt.Errorf("slot %d: key %v not reachable through lookup", i, s.key)
		}
		if got != s.value {
			return fmt.Errorf("slot %d: key %v resolves to %v, want %v", i, s.key, got, s.value)
		}
	}
	if occupied != m.length {
		return fmt.Errorf("length %d but %d occupied slots", m.length, occupied)
	}
	return nil
}

func requireMapValid[K comparable, V comparable](t *testing.T, m *Map[K, V]) {
	t.Helper()
	require.NoError(t, verifyMap(m))
}
