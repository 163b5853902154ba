// Package introspect defines the read-only structural export containers
// offer to generic tooling: a container names its internal fields and hands
// out snapshot values, and tools render or serialize them without knowing
// container internals. The facility never influences container algorithms.
package introspect

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// Field is one named internal field of a container.
type Field struct {
	Name  string
	Value any
}

// Introspectable is implemented by containers that expose their internal
// fields by name. Values are snapshots; mutating them does not affect the
// container.
type Introspectable interface {
	Fields() []Field
}

// dumpConfig renders field values without pointer addresses so output is
// stable across runs.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump writes every field of v to w, one "name: value" block per field.
func Dump(w io.Writer, v Introspectable) error {
	for _, f := range v.Fields() {
		if _, err := fmt.Fprintf(w, "%s: %s", f.Name, dumpConfig.Sdump(f.Value)); err != nil {
			return err
		}
	}
	return nil
}
