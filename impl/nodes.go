package impl

import (
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/types"
)

type (
	constantNode struct {
		expr  *ast.Literal
		value eval.Value
	}

	variableNode struct {
		expr     *ast.Variable
		builtins types.BuiltinLookup
	}

	// functionVariableNode is a variable in callee position. The lookup skips variables
	// whose values are not callable.
	functionVariableNode struct {
		expr     *ast.Variable
		builtins types.BuiltinLookup
	}

	dotsNode struct {
		expr *ast.Variable
	}

	functionNode struct {
		expr     *ast.FunctionExpression
		function *types.Function
	}

	assignNode struct {
		expr  *ast.AssignmentExpression
		value eval.Node
	}

	blockNode struct {
		expr  *ast.BlockExpression
		nodes []eval.Node
	}
)

func (n *constantNode) AST() ast.Expression {
	return n.expr
}

func (n *constantNode) Execute(c eval.Context, f eval.Frame) eval.Value {
	return n.value
}

func (n *constantNode) Value() eval.Value {
	return n.value
}

func (n *variableNode) AST() ast.Expression {
	return n.expr
}

func (n *variableNode) Execute(c eval.Context, f eval.Frame) eval.Value {
	name := n.expr.Name()
	if v, ok := f.Lookup(name); ok {
		if v == eval.Missing {
			panic(eval.Error(n.expr, eval.MissingArgument, issue.H{`name`: name}))
		}
		return types.Force(c, v)
	}
	if b, ok := n.builtins.Lookup(name); ok {
		return b
	}
	panic(eval.Error(n.expr, eval.UnknownVariable, issue.H{`name`: name}))
}

func (n *functionVariableNode) AST() ast.Expression {
	return n.expr
}

func (n *functionVariableNode) Execute(c eval.Context, f eval.Frame) eval.Value {
	name := n.expr.Name()
	for s := f; s != nil; s = s.Parent() {
		if v, ok := s.Local(name); ok && v != eval.Missing {
			if cv, ok := types.Force(c, v).(types.Callable); ok {
				return cv
			}
		}
	}
	if b, ok := n.builtins.Lookup(name); ok {
		return b
	}
	panic(eval.Error(n.expr, eval.UnknownFunction, issue.H{`name`: name}))
}

func (n *dotsNode) AST() ast.Expression {
	return n.expr
}

func (n *dotsNode) Execute(c eval.Context, f eval.Frame) eval.Value {
	if v, ok := f.Lookup(ast.DotsName); ok {
		if b, ok := v.(*types.Bundle); ok {
			return b
		}
	}
	panic(eval.Error(n.expr, eval.DotsNotBound, issue.NO_ARGS))
}

func (n *functionNode) AST() ast.Expression {
	return n.expr
}

func (n *functionNode) Execute(c eval.Context, f eval.Frame) eval.Value {
	return types.NewClosure(n.function, f)
}

func (n *assignNode) AST() ast.Expression {
	return n.expr
}

func (n *assignNode) Execute(c eval.Context, f eval.Frame) eval.Value {
	v := types.Force(c, n.value.Execute(c, f))
	f.Assign(n.expr.Name(), v)
	return v
}

func (n *blockNode) AST() ast.Expression {
	return n.expr
}

func (n *blockNode) Execute(c eval.Context, f eval.Frame) eval.Value {
	var v eval.Value = types.Null
	for _, s := range n.nodes {
		v = s.Execute(c, f)
	}
	return v
}
