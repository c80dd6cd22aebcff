package impl

import (
	"sync"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/builtins"
	"github.com/lyraproj/rcall/dispatch"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/types"
)

// compiler turns expressions into nodes. Each expression is compiled once so that there
// is exactly one call site per call expression.
type compiler struct {
	lock     sync.Mutex
	symbols  *eval.SymbolTable
	registry *builtins.Registry
	arena    *dispatch.Arena
	nodes    map[ast.Expression]eval.Node
}

func newCompiler(symbols *eval.SymbolTable, registry *builtins.Registry, arena *dispatch.Arena) *compiler {
	return &compiler{symbols: symbols, registry: registry, arena: arena, nodes: make(map[ast.Expression]eval.Node, 64)}
}

func (cp *compiler) compile(expr ast.Expression) eval.Node {
	cp.lock.Lock()
	defer cp.lock.Unlock()
	return cp.node(expr)
}

func (cp *compiler) node(expr ast.Expression) eval.Node {
	if n, ok := cp.nodes[expr]; ok {
		return n
	}
	var n eval.Node
	switch expr := expr.(type) {
	case *ast.Literal:
		n = &constantNode{expr, types.WrapNative(expr.Value())}
	case *ast.Variable:
		if expr.IsDots() {
			n = &dotsNode{expr}
		} else {
			n = &variableNode{expr, cp.registry}
		}
	case *ast.CallExpression:
		n = cp.call(expr)
	case *ast.FunctionExpression:
		n = &functionNode{expr, cp.function(expr)}
	case *ast.AssignmentExpression:
		n = &assignNode{expr, cp.node(expr.Value())}
	case *ast.BlockExpression:
		stmts := expr.Statements()
		nodes := make([]eval.Node, len(stmts))
		for i, s := range stmts {
			nodes[i] = cp.node(s)
		}
		n = &blockNode{expr, nodes}
	default:
		panic(eval.Error(expr, eval.UnsupportedExpression, issue.H{`language`: `R`, `expression`: expr.String()}))
	}
	cp.nodes[expr] = n
	return n
}

func (cp *compiler) call(expr *ast.CallExpression) eval.Node {
	var callee eval.Node
	if v, ok := expr.Callee().(*ast.Variable); ok && !v.IsDots() {
		callee = &functionVariableNode{v, cp.registry}
	} else {
		callee = cp.node(expr.Callee())
	}
	args := expr.Arguments()
	argNodes := make([]eval.Node, len(args))
	for i, a := range args {
		argNodes[i] = cp.node(a.Value())
	}
	return dispatch.NewCallSite(expr, callee, argNodes, cp.symbols, cp.registry, cp.arena)
}

// function compiles a function expression. The names of the formals are marked as bound
// before the body is compiled since they shadow builtins with the same name.
func (cp *compiler) function(expr *ast.FunctionExpression) *types.Function {
	params := expr.Parameters()
	names := make([]string, len(params))
	var defaults []eval.Node
	for i, p := range params {
		names[i] = p.Name()
		cp.symbols.MarkBound(p.Name())
	}
	formals, err := types.NewFormals(expr, names...)
	if err != nil {
		panic(err)
	}
	for i, p := range params {
		if d := p.Value(); d != nil {
			if defaults == nil {
				defaults = make([]eval.Node, len(params))
			}
			defaults[i] = cp.node(d)
		}
	}
	return types.NewFunction(expr, formals, defaults, cp.node(expr.Body()))
}
