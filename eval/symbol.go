package eval

import (
	"sync"
	"sync/atomic"
)

type (
	// Symbol is the interned representation of a variable name. The version of a
	// symbol is incremented each time a variable with that name is bound in any
	// frame. A symbol with version zero has therefore never been bound and a lookup
	// of it can only find a builtin.
	Symbol struct {
		name    string
		version int64
	}

	// SymbolTable interns symbols. It is safe for concurrent use.
	SymbolTable struct {
		symbols sync.Map
	}
)

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Intern returns the symbol with the given name, creating it if necessary
func (t *SymbolTable) Intern(name string) *Symbol {
	if s, ok := t.symbols.Load(name); ok {
		return s.(*Symbol)
	}
	s, _ := t.symbols.LoadOrStore(name, &Symbol{name: name})
	return s.(*Symbol)
}

// MarkBound increments the version of the named symbol
func (t *SymbolTable) MarkBound(name string) {
	t.Intern(name).MarkBound()
}

func (s *Symbol) Name() string {
	return s.name
}

func (s *Symbol) Version() int64 {
	return atomic.LoadInt64(&s.version)
}

// Unbound returns true if no variable with this name has ever been bound
func (s *Symbol) Unbound() bool {
	return atomic.LoadInt64(&s.version) == 0
}

func (s *Symbol) MarkBound() {
	atomic.AddInt64(&s.version, 1)
}

func (s *Symbol) String() string {
	return s.name
}
