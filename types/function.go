package types

import (
	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/eval"
)

type (
	// Callable is the value of anything that can be called. It is implemented by
	// *Closure and *Builtin only.
	Callable interface {
		eval.Value

		Formals() *Formals

		callable()
	}

	// Function is the compiled form of a function expression. All closures that are
	// created by evaluating the same function expression share the same Function.
	Function struct {
		expr     *ast.FunctionExpression
		formals  *Formals
		defaults []eval.Node
		body     eval.Node
	}

	// Closure is a Function paired with the frame in which it was created
	Closure struct {
		function  *Function
		enclosing eval.Frame
	}
)

// NewFunction creates a function. The defaults slice is indexed by formal and holds
// the compiled default value expressions. A formal without default has a nil entry.
func NewFunction(expr *ast.FunctionExpression, formals *Formals, defaults []eval.Node, body eval.Node) *Function {
	return &Function{expr, formals, defaults, body}
}

func (f *Function) Expression() *ast.FunctionExpression {
	return f.expr
}

func (f *Function) Formals() *Formals {
	return f.formals
}

func (f *Function) Body() eval.Node {
	return f.body
}

// Default returns the default value node of the given formal or nil
func (f *Function) Default(i int) eval.Node {
	if f.defaults == nil {
		return nil
	}
	return f.defaults[i]
}

// CreateFrame creates an activation frame for this function with the given frame as
// its parent
func (f *Function) CreateFrame(enclosing eval.Frame) eval.Frame {
	return enclosing.Child(f.formals.Names())
}

// Call creates a new frame below the enclosing frame, binds the slot-indexed values to
// the formals and executes the body. A nil value denotes an unbound formal. Unbound
// formals that have a default value receive a promise that evaluates the default in
// the new frame.
func (f *Function) Call(c eval.Context, enclosing eval.Frame, values []eval.Value) eval.Value {
	frame := f.CreateFrame(enclosing)
	for i, v := range values {
		if v == nil {
			if d := f.Default(i); d != nil {
				v = NewPromise(d, frame)
			} else {
				continue
			}
		}
		frame.Set(i, v)
	}
	return f.body.Execute(c, frame)
}

func (f *Function) String() string {
	return f.expr.String()
}

func NewClosure(function *Function, enclosing eval.Frame) *Closure {
	return &Closure{function, enclosing}
}

func (c *Closure) Function() *Function {
	return c.function
}

func (c *Closure) Enclosing() eval.Frame {
	return c.enclosing
}

func (c *Closure) Formals() *Formals {
	return c.function.formals
}

// CreateFrame creates a new activation frame below the enclosing frame of the closure
func (c *Closure) CreateFrame() eval.Frame {
	return c.function.CreateFrame(c.enclosing)
}

func (c *Closure) String() string {
	return c.function.String()
}

func (c *Closure) callable() {}
