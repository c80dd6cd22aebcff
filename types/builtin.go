package types

import (
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/eval"
)

type (
	// ApplyFunc is the Go implementation of a builtin. The arguments are indexed by the
	// formals of the builtin and are already forced. The variadic formal holds a *Bundle
	// and an unbound formal is nil.
	ApplyFunc func(c eval.Context, call issue.Location, args []eval.Value) eval.Value

	// CallFactory creates specialized invocation nodes for a builtin
	CallFactory interface {
		// CreateInvocation returns a node that invokes the builtin with the given argument
		// names and argument nodes. An error with code eval.NotApplicable means that the
		// builtin cannot handle calls of this shape statically and that the caller must
		// fall back to a dynamic invocation.
		CreateInvocation(b *Builtin, call *ast.CallExpression, names []string, args []eval.Node) (eval.Node, error)
	}

	// Builtin is a callable implemented in Go. A builtin is identified by its pointer.
	Builtin struct {
		name    string
		formals *Formals
		apply   ApplyFunc
		factory CallFactory
	}

	// BuiltinLookup finds builtins by name
	BuiltinLookup interface {
		Lookup(name string) (*Builtin, bool)
	}
)

func NewBuiltin(name string, formals *Formals, apply ApplyFunc, factory CallFactory) *Builtin {
	return &Builtin{name, formals, apply, factory}
}

func (b *Builtin) Name() string {
	return b.name
}

func (b *Builtin) Formals() *Formals {
	return b.formals
}

// Apply calls the Go implementation with arguments that have been matched against the
// formals of the builtin
func (b *Builtin) Apply(c eval.Context, call issue.Location, args []eval.Value) eval.Value {
	return b.apply(c, call, args)
}

// CreateInvocation asks the factory of the builtin for an invocation node
func (b *Builtin) CreateInvocation(call *ast.CallExpression, names []string, args []eval.Node) (eval.Node, error) {
	if b.factory == nil {
		return nil, NotApplicable(b, call, names)
	}
	return b.factory.CreateInvocation(b, call, names, args)
}

func (b *Builtin) String() string {
	return `builtin(` + b.name + `)`
}

func (b *Builtin) callable() {}

// NotApplicable returns the error that a CallFactory returns when it cannot create a
// node for the given argument names
func NotApplicable(b *Builtin, call issue.Location, names []string) error {
	args := ``
	for i, n := range names {
		if i > 0 {
			args += `, `
		}
		if n == `` {
			args += `_`
		} else {
			args += n
		}
	}
	return eval.Error(call, eval.NotApplicable, issue.H{`name`: b.name, `arguments`: args})
}

// Describe returns a rendering of the value that is suitable for diagnostics. A promise
// is rendered as its source expression.
func Describe(v eval.Value) string {
	if v == nil {
		return ``
	}
	return v.String()
}
