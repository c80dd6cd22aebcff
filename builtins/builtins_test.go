package builtins_test

import (
	"fmt"
	"testing"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/builtins"
	"github.com/lyraproj/rcall/dispatch"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/impl"
	"github.com/lyraproj/rcall/types"
	"github.com/lyraproj/semver/semver"
)

var p = ast.At(`builtins_test.go`, 1, 1)

func version(s string) semver.Version {
	v, err := semver.ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func ExampleRegistry_Names() {
	fmt.Println(builtins.NewStandardRegistry(version(`3.5.0`)).Names())
	fmt.Println(builtins.NewStandardRegistry(version(`3.0.0`)).Names())
	fmt.Println(builtins.NewStandardRegistry(version(`2.10.0`)).Names())
	// Output:
	// [abs c identity length lengths list paste paste0 sum]
	// [abs c identity length list paste paste0 sum]
	// [abs c identity length list paste sum]
}

func TestLookupHonorsVersion(t *testing.T) {
	r := builtins.NewStandardRegistry(version(`3.1.0`))
	if _, ok := r.Lookup(`lengths`); ok {
		t.Error(`lengths must not be available in 3.1.0`)
	}
	if b, ok := r.Lookup(`sum`); !ok || b.Name() != `sum` {
		t.Error(`expected sum to be available`)
	}
	if _, ok := r.Lookup(`frobnicate`); ok {
		t.Error(`did not expect frobnicate`)
	}
}

func TestRegisterRejectsBadRange(t *testing.T) {
	r := builtins.NewRegistry(version(`1.0.0`))
	err := r.Register(types.NewBuiltin(`f`, types.MustFormals(`x`), nil, nil), `not a range`)
	if !eval.IsIssue(err, eval.ConfigError) {
		t.Errorf(`expected %s, got %v`, eval.ConfigError, err)
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := builtins.NewRegistry(version(`1.0.0`))
	b1 := types.NewBuiltin(`f`, types.MustFormals(`x`), nil, nil)
	b2 := types.NewBuiltin(`f`, types.MustFormals(`y`), nil, nil)
	if err := r.Register(b1, `>=1.0.0`); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(b2, `>=1.0.0`); err != nil {
		t.Fatal(err)
	}
	if b, _ := r.Lookup(`f`); b != b2 {
		t.Error(`expected the second registration to win`)
	}
}

func lookup(t *testing.T, name string) *types.Builtin {
	t.Helper()
	b, ok := builtins.NewStandardRegistry(version(`3.5.0`)).Lookup(name)
	if !ok {
		t.Fatalf(`no builtin named %s`, name)
	}
	return b
}

func call(name string, names ...string) *ast.CallExpression {
	args := make([]*ast.Argument, len(names))
	for i, n := range names {
		args[i] = ast.NewArgument(n, ast.NewLiteral(p, 0))
	}
	return ast.NewCall(p, ast.NewVariable(p, name), args...)
}

func TestUnaryFactoryShapes(t *testing.T) {
	b := lookup(t, `abs`)
	for _, names := range [][]string{{``}, {`x`}} {
		if _, err := b.CreateInvocation(call(`abs`, names...), names, []eval.Node{nil}); err != nil {
			t.Errorf(`expected abs to be applicable to %v: %s`, names, err)
		}
	}
	for _, names := range [][]string{{}, {`y`}, {``, ``}} {
		_, err := b.CreateInvocation(call(`abs`, names...), names, make([]eval.Node, len(names)))
		if !eval.IsIssue(err, eval.NotApplicable) {
			t.Errorf(`expected %s for %v, got %v`, eval.NotApplicable, names, err)
		}
	}
}

func TestMatchingFactoryPropagatesMatchErrors(t *testing.T) {
	b := lookup(t, `length`)
	names := []string{``, ``}
	_, err := b.CreateInvocation(call(`length`, names...), names, []eval.Node{constant(1), constant(2)})
	if !eval.IsIssue(err, eval.UnusedArguments) {
		t.Errorf(`expected %s, got %v`, eval.UnusedArguments, err)
	}
}

type constantNode struct {
	value eval.Value
}

func constant(v interface{}) eval.Node {
	return &constantNode{types.WrapNative(v)}
}

func (n *constantNode) AST() ast.Expression {
	return ast.NewLiteral(p, 0)
}

func (n *constantNode) Execute(c eval.Context, f eval.Frame) eval.Value {
	return n.value
}

func apply(name string, actuals ...dispatch.Actual) (result eval.Value, err issue.Reported) {
	c := impl.NewContext(builtins.NewStandardRegistry(version(`3.5.0`)), eval.NewArrayLogger(eval.WARNING), true)
	b, _ := c.Builtins().Lookup(name)
	defer func() {
		if r := recover(); r != nil {
			err = r.(issue.Reported)
		}
	}()
	return dispatch.ApplyMatched(c, p, b, actuals), nil
}

func a(v interface{}) dispatch.Actual {
	if ev, ok := v.(eval.Value); ok {
		return dispatch.Actual{Value: ev}
	}
	return dispatch.Actual{Value: types.WrapNative(v)}
}

func n(name string, v interface{}) dispatch.Actual {
	return dispatch.Actual{Name: name, Value: a(v).Value}
}

func show(v eval.Value, err issue.Reported) {
	if err != nil {
		fmt.Println(err.Code())
	} else {
		fmt.Println(v)
	}
}

func ExampleNewStandardRegistry() {
	list := types.WrapList([]string{`a`, ``}, []eval.Value{types.WrapInteger(1), types.WrapString(`b`)})
	show(apply(`abs`, a(-3)))
	show(apply(`abs`, a(-2.5)))
	show(apply(`abs`, a(true)))
	show(apply(`abs`, a(`x`)))
	show(apply(`c`, a(1), a(nil), a(list), n(`z`, 2.5)))
	show(apply(`c`))
	show(apply(`identity`, n(`x`, `same`)))
	show(apply(`length`, a(list)))
	show(apply(`length`, a(nil)))
	show(apply(`lengths`, a(types.WrapList([]string{`p`, `q`}, []eval.Value{list, types.Null}))))
	show(apply(`list`, a(1), n(`k`, `v`)))
	show(apply(`paste`, a(`a`), a(1), a(list), a(nil), n(`sep`, `-`)))
	show(apply(`paste`, a(`a`), a(`b`)))
	show(apply(`paste`, a(`a`), n(`sep`, 1)))
	show(apply(`paste0`, a(`a`), a(true), a(2.5)))
	show(apply(`sum`, a(1), a(2), a(true)))
	show(apply(`sum`, a(1), a(0.5), n(`na.rm`, false)))
	show(apply(`sum`, a(1), n(`na.rm`, `yes`)))
	show(apply(`sum`, a(`1`)))
	show(apply(`length`))
	// Output:
	// 3
	// 2.5
	// 1
	// EVAL_ILLEGAL_ARGUMENT_TYPE
	// c(1, a = 1, "b", z = 2.5)
	// NULL
	// "same"
	// 2
	// 0
	// c(p = 2, q = 0)
	// list(1, k = "v")
	// "a-1-1-b"
	// "a b"
	// EVAL_ILLEGAL_ARGUMENT_TYPE
	// "aTRUE2.5"
	// 4
	// 1.5
	// EVAL_ILLEGAL_ARGUMENT_TYPE
	// EVAL_ILLEGAL_ARGUMENT_TYPE
	// EVAL_MISSING_ARGUMENT
}
