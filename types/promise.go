package types

import (
	"sync/atomic"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/threadlocal"
)

type (
	// Promise is a deferred evaluation of an argument expression in the frame of the caller.
	// The expression is evaluated at most once per successful force unless two goroutines
	// race, in which case both compute the value and the last one to finish is remembered.
	// A promise that is forced again by the goroutine that is computing it raises
	// EVAL_RECURSIVE_PROMISE.
	Promise struct {
		node    eval.Node
		frame   eval.Frame
		value   atomic.Pointer[forced]
		forcing atomic.Uint64
	}

	forced struct {
		value eval.Value
	}
)

func NewPromise(node eval.Node, frame eval.Frame) *Promise {
	return &Promise{node: node, frame: frame}
}

// Expression returns the expression that the promise evaluates
func (p *Promise) Expression() ast.Expression {
	return p.node.AST()
}

// IsForced returns true if the value of the promise has been computed
func (p *Promise) IsForced() bool {
	return p.value.Load() != nil
}

// ForceOrGet returns the memoized value of the promise, computing it first if necessary
func (p *Promise) ForceOrGet(c eval.Context) eval.Value {
	if f := p.value.Load(); f != nil {
		return f.value
	}
	gid := threadlocal.GoroutineID()
	if p.forcing.Load() == gid {
		panic(eval.Error(p.node.AST(), eval.RecursivePromise, issue.H{`expression`: p.node.AST().String()}))
	}
	p.forcing.Store(gid)
	defer p.forcing.CompareAndSwap(gid, 0)

	v := Force(c, p.node.Execute(c, p.frame))
	p.value.Store(&forced{v})
	return v
}

// String renders the source of the promised expression
func (p *Promise) String() string {
	return p.node.AST().String()
}

// Force returns the value of the given promise or the given value when it is not a promise
func Force(c eval.Context, v eval.Value) eval.Value {
	if p, ok := v.(*Promise); ok {
		return p.ForceOrGet(c)
	}
	return v
}
