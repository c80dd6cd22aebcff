package types

import (
	"bytes"
	"strconv"

	"github.com/lyraproj/rcall/eval"
)

type (
	IntegerValue int64

	FloatValue float64

	StringValue string

	LogicalValue bool

	nullValue struct{}

	// ListValue is an ordered sequence of optionally named values. A list that is
	// created by the c() builtin renders itself as a vector.
	ListValue struct {
		names  []string
		values []eval.Value
		vector bool
	}
)

// Null is the NULL value
var Null eval.Value = nullValue{}

var (
	True  = LogicalValue(true)
	False = LogicalValue(false)
)

func WrapInteger(v int64) IntegerValue {
	return IntegerValue(v)
}

func WrapFloat(v float64) FloatValue {
	return FloatValue(v)
}

func WrapString(v string) StringValue {
	return StringValue(v)
}

func WrapLogical(v bool) LogicalValue {
	return LogicalValue(v)
}

// WrapNative converts an int64, float64, string, bool, or nil into its value counterpart
func WrapNative(v interface{}) eval.Value {
	switch v := v.(type) {
	case int:
		return IntegerValue(v)
	case int64:
		return IntegerValue(v)
	case float64:
		return FloatValue(v)
	case string:
		return StringValue(v)
	case bool:
		return LogicalValue(v)
	case nil:
		return Null
	}
	panic(`unable to wrap native value`)
}

func (v IntegerValue) Int() int64 {
	return int64(v)
}

func (v IntegerValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v FloatValue) Float() float64 {
	return float64(v)
}

func (v FloatValue) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

func (v StringValue) String() string {
	return strconv.Quote(string(v))
}

func (v LogicalValue) Bool() bool {
	return bool(v)
}

func (v LogicalValue) String() string {
	if v {
		return `TRUE`
	}
	return `FALSE`
}

func (nullValue) String() string {
	return `NULL`
}

// WrapList creates a list. The names slice may be nil when no value is named.
func WrapList(names []string, values []eval.Value) *ListValue {
	return &ListValue{names: names, values: values}
}

// WrapVector creates a list that renders itself as a vector
func WrapVector(names []string, values []eval.Value) *ListValue {
	return &ListValue{names: names, values: values, vector: true}
}

func (l *ListValue) Len() int {
	return len(l.values)
}

func (l *ListValue) At(i int) eval.Value {
	return l.values[i]
}

// NameAt returns the name of the element at the given index or the empty string
func (l *ListValue) NameAt(i int) string {
	if l.names == nil {
		return ``
	}
	return l.names[i]
}

func (l *ListValue) Values() []eval.Value {
	return l.values
}

func (l *ListValue) String() string {
	b := bytes.NewBufferString(``)
	if l.vector {
		b.WriteString(`c(`)
	} else {
		b.WriteString(`list(`)
	}
	writeEntries(b, l.names, l.values)
	b.WriteByte(')')
	return b.String()
}

func writeEntries(b *bytes.Buffer, names []string, values []eval.Value) {
	for i, v := range values {
		if i > 0 {
			b.WriteString(`, `)
		}
		if names != nil && names[i] != `` {
			b.WriteString(names[i])
			b.WriteString(` = `)
		}
		b.WriteString(v.String())
	}
}

// Length returns the number of elements in the value. NULL has length zero and a
// scalar has length one.
func Length(v eval.Value) int {
	switch v := v.(type) {
	case *ListValue:
		return v.Len()
	case *Bundle:
		return v.Len()
	case nullValue:
		return 0
	}
	return 1
}
