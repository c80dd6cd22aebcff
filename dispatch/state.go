package dispatch

import (
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/types"
)

// Strategy is the execution strategy that a call site currently uses
type Strategy int

const (
	// Uninitialized call sites have not been executed yet
	Uninitialized Strategy = iota

	// SimpleBuiltin call sites call a builtin by a name that has never been bound to a
	// variable. The callee is not evaluated.
	SimpleBuiltin

	// StableBuiltin call sites evaluate the callee and have so far always found the
	// same builtin
	StableBuiltin

	// Generic call sites handle any sequence of callees
	Generic

	// GenericDots call sites pass variadic arguments on to the callee. They are never
	// specialized.
	GenericDots
)

func (s Strategy) String() string {
	switch s {
	case Uninitialized:
		return `uninitialized`
	case SimpleBuiltin:
		return `simple builtin`
	case StableBuiltin:
		return `stable builtin`
	case Generic:
		return `generic`
	case GenericDots:
		return `generic dots`
	}
	return `unknown`
}

type (
	state interface {
		strategy() Strategy
	}

	uninitializedState struct{}

	simpleBuiltinState struct {
		symbol  *eval.Symbol
		builtin *types.Builtin
		node    eval.Node
	}

	stableBuiltinState struct {
		builtin *types.Builtin
		node    eval.Node
	}

	// genericState caches the outcome of the last closure call and of the last builtin
	// call independently. A zero genericState caches nothing.
	genericState struct {
		closure   *types.Closure
		function  *types.Function
		layout    *Layout
		enclosing eval.Frame

		builtin *types.Builtin
		node    eval.Node
	}
)

var uninitialized state = uninitializedState{}

func (uninitializedState) strategy() Strategy {
	return Uninitialized
}

func (*simpleBuiltinState) strategy() Strategy {
	return SimpleBuiltin
}

func (*stableBuiltinState) strategy() Strategy {
	return StableBuiltin
}

func (*genericState) strategy() Strategy {
	return Generic
}
