package builtins

import (
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/dispatch"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/types"
)

type (
	// matchingFactory creates nodes that match the arguments against the formals of the
	// builtin once, when the node is created, and then evaluate all arguments eagerly on
	// each call.
	matchingFactory struct{}

	matchedCall struct {
		call    *ast.CallExpression
		builtin *types.Builtin
		layout  *dispatch.Layout
		args    []eval.Node
	}

	// unaryFactory creates nodes for builtins with the single formal "x". It is not
	// applicable to calls with more than one argument or with an argument that has
	// another name.
	unaryFactory func(c eval.Context, call issue.Location, x eval.Value) eval.Value

	unaryCall struct {
		call *ast.CallExpression
		arg  eval.Node
		fn   unaryFactory
	}
)

func (matchingFactory) CreateInvocation(b *types.Builtin, call *ast.CallExpression, names []string, args []eval.Node) (eval.Node, error) {
	layout, err := dispatch.ComputeLayout(call, names, b.Formals(), func(i int) string { return args[i].AST().String() })
	if err != nil {
		return nil, err
	}
	return &matchedCall{call, b, layout, args}, nil
}

func (n *matchedCall) AST() ast.Expression {
	return n.call
}

func (n *matchedCall) Execute(c eval.Context, f eval.Frame) eval.Value {
	values := make([]eval.Value, len(n.args))
	for i, a := range n.args {
		values[i] = types.Force(c, a.Execute(c, f))
	}
	return n.builtin.Apply(c, n.call, n.layout.Bind(values).Slots())
}

func (u unaryFactory) CreateInvocation(b *types.Builtin, call *ast.CallExpression, names []string, args []eval.Node) (eval.Node, error) {
	if len(args) != 1 || !(names[0] == `` || names[0] == `x`) {
		return nil, types.NotApplicable(b, call, names)
	}
	return &unaryCall{call, args[0], u}, nil
}

// apply adapts the unary function to a types.ApplyFunc
func (u unaryFactory) apply(c eval.Context, call issue.Location, args []eval.Value) eval.Value {
	return u(c, call, required(call, args, 0, `x`))
}

func (n *unaryCall) AST() ast.Expression {
	return n.call
}

func (n *unaryCall) Execute(c eval.Context, f eval.Frame) eval.Value {
	return n.fn(c, n.call, types.Force(c, n.arg.Execute(c, f)))
}

func required(call issue.Location, args []eval.Value, i int, name string) eval.Value {
	if v := args[i]; v != nil {
		return v
	}
	panic(eval.Error(call, eval.MissingArgument, issue.H{`name`: name}))
}
