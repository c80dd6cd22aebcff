package types

import (
	"bytes"

	"github.com/lyraproj/rcall/eval"
)

// Bundle is the value of a variadic parameter. It holds the arguments that were not
// matched by any other parameter, in the order they were given. The values are often
// promises that haven't been forced yet. A bundle is never modified once created.
type Bundle struct {
	names  []string
	values []eval.Value
}

// EmptyBundle is the value of a variadic parameter that received no arguments
var EmptyBundle = &Bundle{}

// NewBundle creates a new bundle. The names and values slices must have equal length and
// are owned by the bundle from now on. An empty string denotes an unnamed value.
func NewBundle(names []string, values []eval.Value) *Bundle {
	if len(values) == 0 {
		return EmptyBundle
	}
	return &Bundle{names, values}
}

func (b *Bundle) Len() int {
	return len(b.values)
}

func (b *Bundle) Name(i int) string {
	return b.names[i]
}

func (b *Bundle) Value(i int) eval.Value {
	return b.values[i]
}

// Names returns the names of the bundle. The slice must not be modified.
func (b *Bundle) Names() []string {
	return b.names
}

// Values returns the values of the bundle. The slice must not be modified.
func (b *Bundle) Values() []eval.Value {
	return b.values
}

func (b *Bundle) String() string {
	bf := bytes.NewBufferString(`...(`)
	writeEntries(bf, b.names, b.values)
	bf.WriteByte(')')
	return bf.String()
}
