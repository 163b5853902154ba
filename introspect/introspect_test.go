package introspect

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContainer struct {
	fields []Field
}

func (f *fakeContainer) Fields() []Field { return f.fields }

// TestDump tests rendering of named fields.
func TestDump(t *testing.T) {
	c := &fakeContainer{fields: []Field{
		{Name: "data", Value: []int{5, 3, 8}},
		{Name: "length", Value: 3},
		{Name: "capacity", Value: 8},
	}}

	var sb strings.Builder
	require.NoError(t, Dump(&sb, c))
	out := sb.String()

	assert.Contains(t, out, "data:")
	assert.Contains(t, out, "length:")
	assert.Contains(t, out, "capacity:")
	assert.Contains(t, out, "(int) 3")
	assert.Contains(t, out, "(int) 8")
}

// TestDump_WriterError tests error propagation from the writer.
func TestDump_WriterError(t *testing.T) {
	c := &fakeContainer{fields: []Field{{Name: "length", Value: 1}}}
	err := Dump(failWriter{}, c)
	require.Error(t, err)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("sink closed") }
