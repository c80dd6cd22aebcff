package types_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/builtins"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/impl"
	"github.com/lyraproj/rcall/types"
	"github.com/lyraproj/semver/semver"
)

var p = ast.At(`types_test.go`, 1, 1)

// countingNode yields its value and counts how many times it has been executed
type countingNode struct {
	value eval.Value
	count int32
}

func (n *countingNode) AST() ast.Expression {
	return ast.NewVariable(p, `counted`)
}

func (n *countingNode) Execute(c eval.Context, f eval.Frame) eval.Value {
	atomic.AddInt32(&n.count, 1)
	return n.value
}

// slotNode yields the value of a slot in the frame where it executes
type slotNode int

func (n slotNode) AST() ast.Expression {
	return ast.NewVariable(p, `slot`)
}

func (n slotNode) Execute(c eval.Context, f eval.Frame) eval.Value {
	return types.Force(c, f.Get(int(n)))
}

func newContext() impl.EvaluationContext {
	v, err := semver.ParseVersion(`3.5.0`)
	if err != nil {
		panic(err)
	}
	return impl.NewContext(builtins.NewStandardRegistry(v), eval.NewArrayLogger(eval.WARNING), true)
}

func TestFormalsRejectDuplicates(t *testing.T) {
	_, err := types.NewFormals(p, `a`, `b`, `a`)
	if !eval.IsIssue(err, eval.DuplicateFormal) {
		t.Errorf(`expected %s, got %v`, eval.DuplicateFormal, err)
	}
}

func TestFormalsRejectMultipleDots(t *testing.T) {
	_, err := types.NewFormals(p, `...`, `a`, `...`)
	if !eval.IsIssue(err, eval.MultipleDotsFormals) {
		t.Errorf(`expected %s, got %v`, eval.MultipleDotsFormals, err)
	}
}

func TestFormalsExactIndex(t *testing.T) {
	f := types.MustFormals(`a`, `...`, `b`)
	if f.ExactIndex(`b`) != 2 || f.ExactIndex(`c`) != -1 {
		t.Error(`unexpected exact index`)
	}
	if f.ExactIndex(`...`) != -1 {
		t.Error(`the variadic formal must not be found by name`)
	}
	if !f.HasDots() || f.DotsIndex() != 1 {
		t.Error(`expected dots at index 1`)
	}
	if types.MustFormals(`x`).HasDots() {
		t.Error(`did not expect dots`)
	}
}

func ExampleFormals_String() {
	fmt.Println(types.MustFormals(`x`, `...`, `na.rm`))
	// Output: (x, ..., na.rm)
}

func ExampleListValue_String() {
	fmt.Println(types.WrapList(nil, []eval.Value{types.WrapInteger(1), types.WrapString(`a`), types.Null}))
	fmt.Println(types.WrapVector([]string{`x`, ``}, []eval.Value{types.WrapFloat(1.5), types.True}))
	fmt.Println(types.NewBundle([]string{``, `b`}, []eval.Value{types.WrapInteger(1), types.WrapInteger(2)}))
	fmt.Println(types.NewBundle(nil, nil) == types.EmptyBundle)
	// Output:
	// list(1, "a", NULL)
	// c(x = 1.5, TRUE)
	// ...(1, b = 2)
	// true
}

func TestLength(t *testing.T) {
	if types.Length(types.Null) != 0 {
		t.Error(`NULL must have length 0`)
	}
	if types.Length(types.WrapInteger(7)) != 1 {
		t.Error(`a scalar must have length 1`)
	}
	if types.Length(types.WrapList(nil, []eval.Value{types.True, types.False})) != 2 {
		t.Error(`expected list length 2`)
	}
}

func TestPromiseIsMemoized(t *testing.T) {
	c := newContext()
	n := &countingNode{value: types.WrapInteger(42)}
	pr := types.NewPromise(n, c.Global())
	if pr.IsForced() {
		t.Fatal(`a new promise must not be forced`)
	}
	for i := 0; i < 3; i++ {
		if v := types.Force(c, pr); v != types.WrapInteger(42) {
			t.Fatalf(`expected 42, got %s`, v)
		}
	}
	if !pr.IsForced() || n.count != 1 {
		t.Errorf(`expected one evaluation, got %d`, n.count)
	}
}

func TestPromiseConcurrentForce(t *testing.T) {
	c := newContext()
	n := &countingNode{value: types.WrapString(`v`)}
	pr := types.NewPromise(n, c.Global())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v := pr.ForceOrGet(c); v != types.WrapString(`v`) {
				t.Errorf(`unexpected value %s`, v)
			}
		}()
	}
	wg.Wait()
	if !pr.IsForced() {
		t.Error(`expected the promise to be forced`)
	}
}

func TestForcePassesThroughValues(t *testing.T) {
	c := newContext()
	if types.Force(c, types.True) != types.True {
		t.Error(`expected the value itself`)
	}
}

func TestFunctionCallDefaults(t *testing.T) {
	c := newContext()
	formals := types.MustFormals(`a`, `b`)
	params := []*ast.Parameter{ast.NewParameter(`a`, nil), ast.NewParameter(`b`, ast.NewVariable(p, `a`))}
	expr := ast.NewFunction(p, params, ast.NewVariable(p, `b`))

	// the default of b is the value of a in the callee frame
	fn := types.NewFunction(expr, formals, []eval.Node{nil, slotNode(0)}, slotNode(1))
	if v := fn.Call(c, c.Global(), []eval.Value{types.WrapInteger(5), nil}); v != types.WrapInteger(5) {
		t.Errorf(`expected 5, got %s`, v)
	}
	if v := fn.Call(c, c.Global(), []eval.Value{types.WrapInteger(5), types.WrapInteger(6)}); v != types.WrapInteger(6) {
		t.Errorf(`expected 6, got %s`, v)
	}
}

func TestFunctionCallLeavesUnboundFormalsMissing(t *testing.T) {
	c := newContext()
	expr := ast.NewFunction(p, []*ast.Parameter{ast.NewParameter(`a`, nil)}, ast.NewVariable(p, `a`))
	var seen eval.Value
	body := &frameProbe{name: `a`, seen: &seen}
	fn := types.NewFunction(expr, types.MustFormals(`a`), nil, body)
	fn.Call(c, c.Global(), []eval.Value{nil})
	if seen != eval.Missing {
		t.Errorf(`expected <missing>, got %v`, seen)
	}
}

type frameProbe struct {
	name string
	seen *eval.Value
}

func (n *frameProbe) AST() ast.Expression {
	return ast.NewVariable(p, n.name)
}

func (n *frameProbe) Execute(c eval.Context, f eval.Frame) eval.Value {
	*n.seen, _ = f.Local(n.name)
	return types.Null
}

func TestClosure(t *testing.T) {
	c := newContext()
	expr := ast.NewFunction(p, []*ast.Parameter{ast.NewParameter(`x`, nil)}, ast.NewVariable(p, `x`))
	fn := types.NewFunction(expr, types.MustFormals(`x`), nil, slotNode(0))
	cl := types.NewClosure(fn, c.Global())
	if cl.Function() != fn || cl.Enclosing() != c.Global() {
		t.Error(`unexpected closure parts`)
	}
	if cl.CreateFrame().Parent() != c.Global() {
		t.Error(`expected the enclosing frame to be the parent`)
	}
	if s := cl.String(); s != `function(x) x` {
		t.Errorf(`unexpected rendering %s`, s)
	}
}

func TestNotApplicable(t *testing.T) {
	b := types.NewBuiltin(`abs`, types.MustFormals(`x`), nil, nil)
	_, err := b.CreateInvocation(ast.NewCall(p, ast.NewVariable(p, `abs`)), []string{``, `y`}, nil)
	if !eval.IsIssue(err, eval.NotApplicable) {
		t.Fatalf(`expected %s, got %v`, eval.NotApplicable, err)
	}
}

func ExampleBuiltin_String() {
	fmt.Println(types.NewBuiltin(`sum`, types.MustFormals(`...`, `na.rm`), nil, nil))
	// Output: builtin(sum)
}
