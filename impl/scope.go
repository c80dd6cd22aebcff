package impl

import (
	"sync"

	"github.com/lyraproj/rcall/eval"
)

// frame is a slot-indexed activation frame with an additional map of named variables.
// The slots hold the formal parameters of a function call. Assignments always end up in
// the map of the frame where they are made and are never propagated to the parent.
type frame struct {
	lock      sync.RWMutex
	symbols   *eval.SymbolTable
	slotNames []string
	slots     []eval.Value
	locals    map[string]eval.Value
	parent    eval.Frame
}

// NewGlobalFrame creates a frame without parent
func NewGlobalFrame(symbols *eval.SymbolTable) eval.Frame {
	return &frame{symbols: symbols}
}

func (f *frame) Get(slot int) eval.Value {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.slots[slot]
}

func (f *frame) Set(slot int, value eval.Value) {
	f.lock.Lock()
	f.slots[slot] = value
	f.lock.Unlock()
}

// Local finds a variable in this frame only. A formal that has not been bound has the
// value eval.Missing.
func (f *frame) Local(name string) (value eval.Value, found bool) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	if value, found = f.locals[name]; found {
		return
	}
	for i, n := range f.slotNames {
		if n == name {
			if value = f.slots[i]; value == nil {
				value = eval.Missing
			}
			return value, true
		}
	}
	return nil, false
}

func (f *frame) Lookup(name string) (eval.Value, bool) {
	for s := eval.Frame(f); s != nil; s = s.Parent() {
		if v, ok := s.Local(name); ok {
			return v, true
		}
	}
	return nil, false
}

func (f *frame) Assign(name string, value eval.Value) {
	f.lock.Lock()
	if f.locals == nil {
		f.locals = make(map[string]eval.Value, 8)
	}
	f.locals[name] = value
	f.lock.Unlock()
	f.symbols.MarkBound(name)
}

func (f *frame) Child(slotNames []string) eval.Frame {
	return &frame{symbols: f.symbols, slotNames: slotNames, slots: make([]eval.Value, len(slotNames)), parent: f}
}

func (f *frame) Parent() eval.Frame {
	return f.parent
}
