package eval

import (
	"github.com/lyraproj/rcall/ast"
)

type (
	// Value is the common interface of all runtime values. The String method must
	// return a human readable rendering of the value that is suitable for diagnostics.
	Value interface {
		String() string
	}

	// Node is an executable node compiled from an ast.Expression. Nodes are shared by
	// all executions of the expression they were compiled from and must therefore be
	// safe for concurrent use.
	Node interface {
		// Execute evaluates the node in the given frame.
		Execute(c Context, f Frame) Value

		// AST returns the expression that the node was compiled from
		AST() ast.Expression
	}

	// Frame is an activation frame. Slots are addressed by index and correspond to the
	// formal parameters of the function that the frame was created for. Other variables
	// are addressed by name.
	Frame interface {
		// Get returns the value of the given slot or nil when the slot is unbound
		Get(slot int) Value

		// Set assigns a value to a slot
		Set(slot int, value Value)

		// Local searches this frame only for a variable with the given name. A formal
		// parameter that is unbound is found and has the value Missing.
		Local(name string) (value Value, found bool)

		// Lookup searches this frame and then its parents for a variable with the given
		// name
		Lookup(name string) (value Value, found bool)

		// Assign binds a variable with the given name in this frame
		Assign(name string, value Value)

		// Child creates a new frame for a function with the given formal parameter names.
		// The receiver becomes the parent (enclosing) frame of the new frame.
		Child(slotNames []string) Frame

		// Parent returns the enclosing frame or nil for the global frame
		Parent() Frame
	}

	// Context is the evaluation context that is passed to all executing nodes.
	Context interface {
		// ID returns the unique identifier of the context
		ID() string

		// Logger returns the logger used by this context
		Logger() Logger

		// Symbols returns the symbol table of this context
		Symbols() *SymbolTable

		// Specialize returns true when call sites are allowed to cache the outcome of
		// callee resolution and argument matching
		Specialize() bool
	}

	// Constant is implemented by nodes that always produce the same value. Such nodes
	// don't need a deferred value when they appear as call arguments.
	Constant interface {
		Node

		// Value returns the constant value
		Value() Value
	}

	missing struct{}
)

// Missing is the value of a formal parameter that has not been bound and that has no
// default value.
var Missing Value = missing{}

func (missing) String() string {
	return `<missing>`
}
