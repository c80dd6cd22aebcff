// Package pp2ast transforms Puppet source into the call expression tree of the evaluator.
package pp2ast

import (
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-parser/parser"
	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/eval"
)

type transformer struct {
	defined map[parser.Expression]bool

	// name of the captures-rest parameter in scope, empty when there is none
	rest string
}

// PuppetToAST parses the given Puppet source and transforms it into a call expression tree.
//
// The following constructs are recognized:
//
//	f(1, $x, *$rest, b => 2)   call with positional, spliced and named arguments
//	f(1) |$x| { $x }            call where the lambda is passed as a trailing argument
//	$x = expr                   assignment
//	function f($a, $b = 2, *$rest) { ... }
//	                            assignment of a function to the variable f
//
// The captures-rest parameter of a function or lambda becomes the variadic formal "..."
// and unfolding that parameter becomes a reference to it. Unfolding any other variable
// is not supported. All other Puppet constructs result
// in an EVAL_UNSUPPORTED_EXPRESSION error.
func PuppetToAST(filename string, content string) (expr ast.Expression, err error) {
	pe, err := parser.CreateParser().Parse(filename, content, false)
	if err != nil {
		return nil, eval.Error(nil, eval.ParseError, issue.H{`language`: `Puppet`, `detail`: err.Error()})
	}
	defer func() {
		if r := recover(); r != nil {
			if ri, ok := r.(issue.Reported); ok {
				err = ri
				return
			}
			panic(r)
		}
	}()
	t := &transformer{defined: make(map[parser.Expression]bool)}
	expr = t.transform(pe)
	return
}

func position(expr parser.Expression) ast.Position {
	return ast.At(expr.File(), expr.Line(), expr.Pos())
}

func unsupported(expr parser.Expression) issue.Reported {
	return eval.Error(expr, eval.UnsupportedExpression, issue.H{`language`: `Puppet`, `expression`: expr.String()})
}

func (t *transformer) transform(expr parser.Expression) ast.Expression {
	switch expr := expr.(type) {
	case *parser.Program:
		return t.program(expr)
	case *parser.BlockExpression:
		return t.block(position(expr), expr.Statements())
	case *parser.ParenthesizedExpression:
		return t.transform(expr.Expr())
	case *parser.LiteralInteger:
		return ast.NewLiteral(position(expr), expr.Int())
	case *parser.LiteralFloat:
		return ast.NewLiteral(position(expr), expr.Float())
	case *parser.LiteralString:
		return ast.NewLiteral(position(expr), expr.StringValue())
	case *parser.LiteralBoolean:
		return ast.NewLiteral(position(expr), expr.Bool())
	case *parser.LiteralUndef, *parser.Nop:
		return ast.NewLiteral(position(expr), nil)
	case *parser.VariableExpression:
		return ast.NewVariable(position(expr), variableName(expr))
	case *parser.UnfoldExpression:
		return t.unfold(expr)
	case *parser.AssignmentExpression:
		if v, ok := expr.Lhs().(*parser.VariableExpression); ok {
			return ast.NewAssignment(position(expr), variableName(v), t.transform(expr.Rhs()))
		}
	case *parser.CallNamedFunctionExpression:
		return t.call(expr)
	case *parser.FunctionDefinition:
		t.defined[expr] = true
		return ast.NewAssignment(position(expr), expr.Name(), t.function(expr, expr.Parameters(), expr.Body()))
	case *parser.LambdaExpression:
		return t.function(expr, expr.Parameters(), expr.Body())
	}
	panic(unsupported(expr))
}

// program makes the function definitions of the program precede its statements
func (t *transformer) program(expr *parser.Program) ast.Expression {
	var stmts []ast.Expression
	for _, d := range expr.Definitions() {
		if fd, ok := d.(*parser.FunctionDefinition); ok {
			stmts = append(stmts, t.transform(fd))
		}
	}
	body := expr.Body()
	if b, ok := body.(*parser.BlockExpression); ok {
		stmts = append(stmts, t.statements(b.Statements())...)
	} else if body != nil {
		stmts = append(stmts, t.statements([]parser.Expression{body})...)
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	return ast.NewBlock(position(expr), stmts...)
}

func (t *transformer) block(p ast.Position, stmts []parser.Expression) *ast.BlockExpression {
	return ast.NewBlock(p, t.statements(stmts)...)
}

func (t *transformer) statements(stmts []parser.Expression) []ast.Expression {
	result := make([]ast.Expression, 0, len(stmts))
	for _, s := range stmts {
		if _, ok := s.(*parser.Nop); ok {
			continue
		}
		if t.defined[s] {
			continue
		}
		result = append(result, t.transform(s))
	}
	return result
}

func (t *transformer) unfold(expr *parser.UnfoldExpression) ast.Expression {
	if v, ok := expr.Expr().(*parser.VariableExpression); ok && t.rest != `` && variableName(v) == t.rest {
		return ast.NewDots(position(expr))
	}
	panic(unsupported(expr))
}

// call transforms a function call. A trailing hash argument with keys that are names or
// strings provides the named arguments.
func (t *transformer) call(expr *parser.CallNamedFunctionExpression) ast.Expression {
	qn, ok := expr.Functor().(*parser.QualifiedName)
	if !ok {
		panic(unsupported(expr.Functor()))
	}
	pargs := expr.Arguments()
	var named []*parser.KeyedEntry
	if n := len(pargs); n > 0 {
		if h, ok := pargs[n-1].(*parser.LiteralHash); ok {
			if named, ok = namedEntries(h); ok {
				pargs = pargs[:n-1]
			}
		}
	}
	args := make([]*ast.Argument, 0, len(pargs)+len(named)+1)
	for _, a := range pargs {
		args = append(args, ast.NewArgument(``, t.transform(a)))
	}
	for _, ke := range named {
		name, _ := keyName(ke.Key())
		args = append(args, ast.NewArgument(name, t.transform(ke.Value())))
	}
	if l := expr.Lambda(); l != nil {
		args = append(args, ast.NewArgument(``, t.transform(l)))
	}
	return ast.NewCall(position(expr), ast.NewVariable(position(qn), qn.Name()), args...)
}

func (t *transformer) function(expr parser.Expression, params []parser.Expression, body parser.Expression) ast.Expression {
	defer func(rest string) { t.rest = rest }(t.rest)
	for _, pe := range params {
		if p, ok := pe.(*parser.Parameter); ok && (p.CapturesRest() || p.Name() == t.rest) {
			t.rest = ``
			if p.CapturesRest() {
				t.rest = p.Name()
			}
		}
	}

	ps := make([]*ast.Parameter, len(params))
	for i, pe := range params {
		p, ok := pe.(*parser.Parameter)
		if !ok {
			panic(unsupported(pe))
		}
		if p.CapturesRest() {
			ps[i] = ast.NewParameter(ast.DotsName, nil)
			continue
		}
		var dflt ast.Expression
		if v := p.Value(); v != nil {
			dflt = t.transform(v)
		}
		ps[i] = ast.NewParameter(p.Name(), dflt)
	}
	var b *ast.BlockExpression
	if bb, ok := body.(*parser.BlockExpression); ok {
		b = t.block(position(bb), bb.Statements())
	} else if body != nil {
		b = ast.NewBlock(position(body), t.transform(body))
	} else {
		b = ast.NewBlock(position(expr))
	}
	return ast.NewFunction(position(expr), ps, b)
}

func namedEntries(h *parser.LiteralHash) ([]*parser.KeyedEntry, bool) {
	pes := h.Entries()
	if len(pes) == 0 {
		return nil, false
	}
	entries := make([]*parser.KeyedEntry, len(pes))
	for i, pe := range pes {
		ke, ok := pe.(*parser.KeyedEntry)
		if !ok {
			return nil, false
		}
		if _, ok = keyName(ke.Key()); !ok {
			return nil, false
		}
		entries[i] = ke
	}
	return entries, true
}

func keyName(key parser.Expression) (string, bool) {
	switch key := key.(type) {
	case *parser.QualifiedName:
		return key.Name(), true
	case *parser.LiteralString:
		return key.StringValue(), true
	}
	return ``, false
}

func variableName(expr *parser.VariableExpression) string {
	if name, ok := expr.Name(); ok {
		return name
	}
	panic(unsupported(expr))
}
