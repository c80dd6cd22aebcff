package types

import (
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/eval"
)

// Formals is the ordered list of formal parameter names of a callable. At most one
// of the names is the variadic marker "...".
type Formals struct {
	names []string
	dots  int
}

// NewFormals validates the given names and returns the formals. The names must be
// unique and at most one of them can be the variadic marker. The location is used in
// errors and may be nil.
func NewFormals(location issue.Location, names ...string) (*Formals, error) {
	dots := -1
	dotsCount := 0
	for i, n := range names {
		if n == ast.DotsName {
			dots = i
			dotsCount++
			continue
		}
		for _, p := range names[:i] {
			if p == n {
				return nil, eval.Error(location, eval.DuplicateFormal, issue.H{`name`: n})
			}
		}
	}
	if dotsCount > 1 {
		return nil, eval.Error(location, eval.MultipleDotsFormals, issue.H{`count`: dotsCount})
	}
	return &Formals{names, dots}, nil
}

// MustFormals is like NewFormals but panics on error
func MustFormals(names ...string) *Formals {
	f, err := NewFormals(nil, names...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Formals) Len() int {
	return len(f.names)
}

func (f *Formals) Name(i int) string {
	return f.names[i]
}

// Names returns the names of the formals. The slice must not be modified.
func (f *Formals) Names() []string {
	return f.names
}

// DotsIndex returns the index of the variadic formal or -1 when there is none
func (f *Formals) DotsIndex() int {
	return f.dots
}

func (f *Formals) HasDots() bool {
	return f.dots >= 0
}

// ExactIndex returns the index of the formal with the given name or -1 when no such
// formal exists. The variadic formal is never found by name.
func (f *Formals) ExactIndex(name string) int {
	if name == ast.DotsName {
		return -1
	}
	for i, n := range f.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (f *Formals) String() string {
	return `(` + strings.Join(f.names, `, `) + `)`
}
