// Package dispatch implements the calling of closures and builtins: argument matching,
// expansion of variadic arguments, callee resolution and the self-specializing call site.
package dispatch

import (
	"bytes"
	"strconv"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/types"
)

type (
	// Actual is an actual argument. The name is empty for a positional argument.
	Actual struct {
		Name  string
		Value eval.Value
	}

	// Binding is the result of matching actual arguments against formals. The slots are
	// indexed by formal. A nil slot is unbound. The slot of the variadic formal, if any,
	// always holds a *types.Bundle.
	Binding struct {
		formals *types.Formals
		slots   []eval.Value
	}

	// Layout is the outcome of matching a list of argument names against formals. It
	// depends only on the names so it can be computed once and then be reused for
	// all calls that pass arguments with the same names to the same formals.
	Layout struct {
		formals *types.Formals
		names   []string

		// formal index per actual, or -1 when the actual goes to the variadic formal
		targets []int

		// indexes of the actuals that are collected by the variadic formal
		dots []int
	}

	matcher struct {
		location issue.Location
		names    []string
		formals  *types.Formals
		describe func(int) string
		targets  []int
		bound    []bool
	}
)

const unmatched = -2

// ComputeLayout matches the given actual argument names against formals. The names
// slice has one entry per actual and the empty string denotes a positional actual.
// The describe function renders the actual at the given index and is only called when
// an UnusedArguments error is produced.
//
// Matching is done in three passes. The exact pass binds named actuals to formals with
// the same name. The partial pass binds remaining named actuals to formals that precede
// the variadic formal and that have the actual name as a prefix. The positional pass
// binds unnamed actuals to the remaining formals, in order, up to the variadic formal.
// All actuals that remain after that are collected by the variadic formal.
func ComputeLayout(location issue.Location, names []string, formals *types.Formals, describe func(int) string) (*Layout, error) {
	m := &matcher{
		location: location,
		names:    names,
		formals:  formals,
		describe: describe,
		targets:  make([]int, len(names)),
		bound:    make([]bool, formals.Len()),
	}
	for i := range m.targets {
		m.targets[i] = unmatched
	}
	if err := m.exactPass(); err != nil {
		return nil, err
	}
	if m.hasUnmatchedNames() {
		if err := m.partialPass(); err != nil {
			return nil, err
		}
	}
	m.positionalPass()
	return m.layout()
}

func (m *matcher) bind(actual, formal int) error {
	if m.bound[formal] {
		return eval.Error(m.location, eval.DuplicateBinding, issue.H{`name`: m.formals.Name(formal)})
	}
	m.bound[formal] = true
	m.targets[actual] = formal
	return nil
}

func (m *matcher) exactPass() error {
	for i, n := range m.names {
		if n == `` {
			continue
		}
		if fi := m.formals.ExactIndex(n); fi >= 0 {
			if err := m.bind(i, fi); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *matcher) hasUnmatchedNames() bool {
	for i, n := range m.names {
		if n != `` && m.targets[i] == unmatched {
			return true
		}
	}
	return false
}

func (m *matcher) partialPass() error {
	partial := make([]bool, len(m.names))
	for fi, fn := range m.formals.Names() {
		if fi == m.formals.DotsIndex() {
			// only exact matches after the variadic formal
			break
		}
		if m.bound[fi] {
			continue
		}
		matched := -1
		for ai, an := range m.names {
			if an == `` || !isPartialMatch(an, fn) {
				continue
			}
			if partial[ai] {
				return eval.Error(m.location, eval.AmbiguousPartialMatch, issue.H{
					`detail`: argumentDetail(ai, an) + ` matches multiple formal arguments`})
			}
			if m.targets[ai] != unmatched {
				continue
			}
			if matched >= 0 {
				return eval.Error(m.location, eval.AmbiguousPartialMatch, issue.H{
					`detail`: `formal argument "` + fn + `" matched by multiple actual arguments`})
			}
			matched = ai
		}
		if matched >= 0 {
			m.bound[fi] = true
			m.targets[matched] = fi
			partial[matched] = true
		}
	}
	return nil
}

func argumentDetail(ai int, name string) string {
	return `argument ` + strconv.Itoa(ai+1) + ` (` + name + `)`
}

func isPartialMatch(actual, formal string) bool {
	return len(actual) < len(formal) && formal[:len(actual)] == actual
}

func (m *matcher) positionalPass() {
	fi := 0
	nf := m.formals.Len()
	dotsIndex := m.formals.DotsIndex()
	for ai, an := range m.names {
		if an != `` || m.targets[ai] != unmatched {
			continue
		}
		for fi < nf && m.bound[fi] {
			fi++
		}
		if fi >= nf || fi == dotsIndex {
			return
		}
		m.bound[fi] = true
		m.targets[ai] = fi
		fi++
	}
}

func (m *matcher) layout() (*Layout, error) {
	var dots []int
	var unused []int
	for ai, t := range m.targets {
		if t == unmatched {
			if m.formals.HasDots() {
				m.targets[ai] = -1
				dots = append(dots, ai)
			} else {
				unused = append(unused, ai)
			}
		}
	}
	if len(unused) > 0 {
		b := bytes.NewBufferString(``)
		for i, ai := range unused {
			if i > 0 {
				b.WriteString(`, `)
			}
			if n := m.names[ai]; n != `` {
				b.WriteString(n)
				b.WriteString(` = `)
			}
			b.WriteString(m.describe(ai))
		}
		return nil, eval.Error(m.location, eval.UnusedArguments, issue.H{`arguments`: b.String()})
	}
	return &Layout{formals: m.formals, names: m.names, targets: m.targets, dots: dots}, nil
}

func (l *Layout) Formals() *types.Formals {
	return l.formals
}

// Target returns the index of the formal that receives the given actual, or the index
// of the variadic formal when the actual is collected by it
func (l *Layout) Target(actual int) int {
	if t := l.targets[actual]; t >= 0 {
		return t
	}
	return l.formals.DotsIndex()
}

// Bind creates a binding from the given values. The values are indexed by actual and
// must be given in the same order as the names passed to ComputeLayout.
func (l *Layout) Bind(values []eval.Value) *Binding {
	slots := make([]eval.Value, l.formals.Len())
	for ai, t := range l.targets {
		if t >= 0 {
			slots[t] = values[ai]
		}
	}
	if di := l.formals.DotsIndex(); di >= 0 {
		if len(l.dots) == 0 {
			slots[di] = types.EmptyBundle
		} else {
			dn := make([]string, len(l.dots))
			dv := make([]eval.Value, len(l.dots))
			for i, ai := range l.dots {
				dn[i] = l.names[ai]
				dv[i] = values[ai]
			}
			slots[di] = types.NewBundle(dn, dv)
		}
	}
	return &Binding{l.formals, slots}
}

// Match matches the actual arguments against the formals and returns the binding
func Match(location issue.Location, actuals []Actual, formals *types.Formals) (*Binding, error) {
	names := make([]string, len(actuals))
	values := make([]eval.Value, len(actuals))
	for i, a := range actuals {
		names[i] = a.Name
		values[i] = a.Value
	}
	layout, err := ComputeLayout(location, names, formals, func(i int) string { return types.Describe(values[i]) })
	if err != nil {
		return nil, err
	}
	return layout.Bind(values), nil
}

func (b *Binding) Formals() *types.Formals {
	return b.formals
}

// Get returns the value bound to the given formal or nil when the formal is unbound
func (b *Binding) Get(i int) eval.Value {
	return b.slots[i]
}

// Slots returns the slot-indexed values. The slice must not be modified.
func (b *Binding) Slots() []eval.Value {
	return b.slots
}

func (b *Binding) String() string {
	bf := bytes.NewBufferString(`(`)
	for i, v := range b.slots {
		if i > 0 {
			bf.WriteString(`, `)
		}
		bf.WriteString(b.formals.Name(i))
		bf.WriteString(` = `)
		if v == nil {
			bf.WriteString(eval.Missing.String())
		} else {
			bf.WriteString(v.String())
		}
	}
	bf.WriteByte(')')
	return bf.String()
}
