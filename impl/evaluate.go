package impl

import (
	"context"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/types"
	"golang.org/x/sync/errgroup"
)

// TopEvaluate compiles the expression and evaluates it in the global frame. An issue
// raised during the evaluation is returned as an error.
func TopEvaluate(c EvaluationContext, expr ast.Expression) (result eval.Value, err issue.Reported) {
	defer func() {
		if r := recover(); r != nil {
			if ri, ok := r.(issue.Reported); ok {
				result = types.Null
				err = ri
				eval.Debug(c.Logger(), `%s: %s`, c.ID(), ri.Error())
			} else {
				panic(r)
			}
		}
	}()
	result = c.Compile(expr).Execute(c, c.Global())
	return
}

// EvaluateAll evaluates independent expressions in parallel. All expressions are compiled
// before the evaluation starts and share the call sites of the context. Each expression is
// evaluated by a fork of the context that is registered as the current context of the
// goroutine that performs the evaluation. The first issue that is raised cancels the
// evaluations that haven't started yet and is returned.
func EvaluateAll(c EvaluationContext, exprs []ast.Expression) ([]eval.Value, error) {
	nodes := make([]eval.Node, len(exprs))
	for i, expr := range exprs {
		n, err := compile(c, expr)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}

	results := make([]eval.Value, len(nodes))
	g, ctx := errgroup.WithContext(context.Background())
	for i, n := range nodes {
		i, n := i, n
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var err error
			DoWithContext(c.Fork(), func(fc EvaluationContext) {
				var ri issue.Reported
				if results[i], ri = evaluateCurrent(n); ri != nil {
					err = ri
				}
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func compile(c EvaluationContext, expr ast.Expression) (n eval.Node, err issue.Reported) {
	defer func() {
		if r := recover(); r != nil {
			if ri, ok := r.(issue.Reported); ok {
				err = ri
			} else {
				panic(r)
			}
		}
	}()
	return c.Compile(expr), nil
}

// evaluateCurrent executes a compiled node using the current context of the goroutine
func evaluateCurrent(n eval.Node) (result eval.Value, err issue.Reported) {
	c := CurrentContext()
	defer func() {
		if r := recover(); r != nil {
			if ri, ok := r.(issue.Reported); ok {
				result = types.Null
				err = ri
			} else {
				panic(r)
			}
		}
	}()
	return n.Execute(c, c.Global()), nil
}
