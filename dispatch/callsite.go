package dispatch

import (
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/types"
)

type (
	// CallSite is the executable node of a call expression. The specialization state of
	// the call site is kept in a slot of an Arena and is replaced as a whole each time
	// the call site observes a callee that its current state cannot handle.
	CallSite struct {
		call     *ast.CallExpression
		callee   eval.Node
		names    []string
		args     []eval.Node
		dotsArgs []int
		symbol   *eval.Symbol
		builtins types.BuiltinLookup
		arena    *Arena
		slot     int
	}

	// valueNode is an argument node of a dynamic builtin invocation. It yields a value
	// that has already been computed, or forces a promise.
	valueNode struct {
		expr  ast.Expression
		value eval.Value
	}
)

// NewCallSite creates the call site for the given call expression. The callee and args
// nodes are the compiled callee and argument expressions of the call. When the callee
// expression is a plain variable, its symbol is used to guard the SimpleBuiltin strategy.
func NewCallSite(call *ast.CallExpression, callee eval.Node, args []eval.Node, symbols *eval.SymbolTable, builtins types.BuiltinLookup, arena *Arena) *CallSite {
	callArgs := call.Arguments()
	names := make([]string, len(callArgs))
	for i, a := range callArgs {
		names[i] = a.Name()
	}
	var symbol *eval.Symbol
	if v, ok := call.Callee().(*ast.Variable); ok && !v.IsDots() {
		symbol = symbols.Intern(v.Name())
	}
	return &CallSite{
		call:     call,
		callee:   callee,
		names:    names,
		args:     args,
		dotsArgs: call.DotsArgs(),
		symbol:   symbol,
		builtins: builtins,
		arena:    arena,
		slot:     arena.Alloc(),
	}
}

func (s *CallSite) AST() ast.Expression {
	return s.call
}

// Strategy returns the strategy that the call site currently uses
func (s *CallSite) Strategy() Strategy {
	if len(s.dotsArgs) > 0 {
		return GenericDots
	}
	return s.arena.load(s.slot).strategy()
}

func (s *CallSite) Execute(c eval.Context, f eval.Frame) eval.Value {
	if len(s.dotsArgs) > 0 {
		return s.executeDots(c, f)
	}
	switch st := s.arena.load(s.slot).(type) {
	case *simpleBuiltinState:
		if st.symbol.Unbound() {
			return st.node.Execute(c, f)
		}
		// the name has been bound somewhere so the builtin might be shadowed
		return s.initialize(c, f, st, false)
	case *stableBuiltinState:
		callee := s.resolve(c, f)
		if callee == types.Callable(st.builtin) {
			return st.node.Execute(c, f)
		}
		return s.generic(c, f, callee, st, &genericState{})
	case *genericState:
		return s.generic(c, f, s.resolve(c, f), st, st)
	default:
		return s.initialize(c, f, st, true)
	}
}

func (s *CallSite) initialize(c eval.Context, f eval.Frame, from state, allowSimple bool) eval.Value {
	if allowSimple && s.symbol != nil && s.symbol.Unbound() {
		if b, ok := s.builtins.Lookup(s.symbol.Name()); ok {
			if node, err := b.CreateInvocation(s.call, s.names, s.args); err == nil {
				s.transition(c, from, &simpleBuiltinState{s.symbol, b, node})
				return node.Execute(c, f)
			}
		}
	}

	callee := s.resolve(c, f)
	if b, ok := callee.(*types.Builtin); ok {
		node, err := b.CreateInvocation(s.call, s.names, s.args)
		if err == nil {
			s.transition(c, from, &stableBuiltinState{b, node})
			return node.Execute(c, f)
		}
		if !eval.IsIssue(err, eval.NotApplicable) {
			panic(err)
		}
	}
	return s.generic(c, f, callee, from, &genericState{})
}

func (s *CallSite) generic(c eval.Context, f eval.Frame, callee types.Callable, from state, st *genericState) eval.Value {
	switch callee := callee.(type) {
	case *types.Closure:
		if callee == st.closure {
			return s.callClosure(c, f, st.function, st.layout, st.enclosing)
		}
		fn := callee.Function()
		layout := st.layout
		if fn != st.function {
			layout = s.computeLayout(fn.Formals())
		}
		s.transition(c, from, &genericState{
			closure:   callee,
			function:  fn,
			layout:    layout,
			enclosing: callee.Enclosing(),
			builtin:   st.builtin,
			node:      st.node})
		return s.callClosure(c, f, fn, layout, callee.Enclosing())

	case *types.Builtin:
		if callee == st.builtin {
			return st.node.Execute(c, f)
		}
		node, err := callee.CreateInvocation(s.call, s.names, s.args)
		if err != nil {
			if !eval.IsIssue(err, eval.NotApplicable) {
				panic(err)
			}
			node = &dynamicInvocation{s, callee}
		}
		s.transition(c, from, &genericState{
			closure:   st.closure,
			function:  st.function,
			layout:    st.layout,
			enclosing: st.enclosing,
			builtin:   callee,
			node:      node})
		return node.Execute(c, f)
	}
	panic(eval.Error(s.call, eval.NotFunction, issue.H{`value`: types.Describe(callee)}))
}

func (s *CallSite) transition(c eval.Context, from, to state) {
	if !c.Specialize() {
		return
	}
	s.arena.store(s.slot, to)
	if from.strategy() != to.strategy() {
		eval.Debug(c.Logger(), `%s: %s at %s:%d: %s -> %s`, c.ID(), s.call, s.call.File(), s.call.Line(), from.strategy(), to.strategy())
	}
}

func (s *CallSite) computeLayout(formals *types.Formals) *Layout {
	layout, err := ComputeLayout(s.call, s.names, formals, func(i int) string { return s.args[i].AST().String() })
	if err != nil {
		panic(err)
	}
	return layout
}

// promises creates the argument values of a closure call. Constants are passed as they
// are, all other arguments are deferred.
func (s *CallSite) promises(f eval.Frame) []eval.Value {
	values := make([]eval.Value, len(s.args))
	for i, a := range s.args {
		values[i] = promise(a, f)
	}
	return values
}

func promise(n eval.Node, f eval.Frame) eval.Value {
	if cn, ok := n.(eval.Constant); ok {
		return cn.Value()
	}
	return types.NewPromise(n, f)
}

func (s *CallSite) callClosure(c eval.Context, f eval.Frame, fn *types.Function, layout *Layout, enclosing eval.Frame) eval.Value {
	return fn.Call(c, enclosing, layout.Bind(s.promises(f)).Slots())
}

// resolve evaluates the callee expression
func (s *CallSite) resolve(c eval.Context, f eval.Frame) types.Callable {
	return ResolveCallee(c, f, s.callee, s.call)
}

// ResolveCallee evaluates the callee node in the given frame and returns the callable
// that it evaluates to. A value that isn't callable is an error.
func ResolveCallee(c eval.Context, f eval.Frame, callee eval.Node, call issue.Location) types.Callable {
	v := types.Force(c, callee.Execute(c, f))
	if cb, ok := v.(types.Callable); ok {
		return cb
	}
	panic(eval.Error(call, eval.NotFunction, issue.H{`value`: types.Describe(v)}))
}

func (s *CallSite) executeDots(c eval.Context, f eval.Frame) eval.Value {
	callee := s.resolve(c, f)

	bundles := make([]*types.Bundle, len(s.dotsArgs))
	for k, i := range s.dotsArgs {
		b, ok := s.args[i].Execute(c, f).(*types.Bundle)
		if !ok {
			panic(eval.Error(s.args[i].AST(), eval.DotsNotBound, issue.NO_ARGS))
		}
		bundles[k] = b
	}

	actuals := make([]Actual, len(s.args))
	next := 0
	for i, a := range s.args {
		if next < len(s.dotsArgs) && s.dotsArgs[next] == i {
			next++
			continue
		}
		actuals[i] = Actual{s.names[i], promise(a, f)}
	}
	actuals = Expand(actuals, s.dotsArgs, bundles)

	switch callee := callee.(type) {
	case *types.Closure:
		b, err := Match(s.call, actuals, callee.Formals())
		if err != nil {
			panic(err)
		}
		return callee.Function().Call(c, callee.Enclosing(), b.Slots())
	case *types.Builtin:
		return s.invokeDynamic(c, f, callee, actuals)
	}
	panic(eval.Error(s.call, eval.NotFunction, issue.H{`value`: types.Describe(callee)}))
}

// invokeDynamic asks the builtin for an invocation node for the given actuals and
// executes it. The node is not cached. When the builtin is not applicable to the shape
// of the actuals, the forced actuals are matched against the formals of the builtin
// and passed to its Go implementation.
func (s *CallSite) invokeDynamic(c eval.Context, f eval.Frame, b *types.Builtin, actuals []Actual) eval.Value {
	names := make([]string, len(actuals))
	nodes := make([]eval.Node, len(actuals))
	for i, a := range actuals {
		names[i] = a.Name
		var expr ast.Expression = s.call
		if p, ok := a.Value.(*types.Promise); ok {
			expr = p.Expression()
		}
		nodes[i] = &valueNode{expr, a.Value}
	}
	node, err := b.CreateInvocation(s.call, names, nodes)
	if err == nil {
		return node.Execute(c, f)
	}
	if !eval.IsIssue(err, eval.NotApplicable) {
		panic(err)
	}
	return ApplyMatched(c, s.call, b, actuals)
}

// ApplyMatched forces the actuals, matches them against the formals of the builtin and
// calls its Go implementation
func ApplyMatched(c eval.Context, call issue.Location, b *types.Builtin, actuals []Actual) eval.Value {
	forced := make([]Actual, len(actuals))
	for i, a := range actuals {
		forced[i] = Actual{a.Name, types.Force(c, a.Value)}
	}
	binding, err := Match(call, forced, b.Formals())
	if err != nil {
		panic(err)
	}
	return b.Apply(c, call, binding.Slots())
}

// dynamicInvocation is the cached node of a Generic call site whose builtin is not
// applicable to the argument shape of the call
type dynamicInvocation struct {
	site    *CallSite
	builtin *types.Builtin
}

func (d *dynamicInvocation) AST() ast.Expression {
	return d.site.call
}

func (d *dynamicInvocation) Execute(c eval.Context, f eval.Frame) eval.Value {
	s := d.site
	actuals := make([]Actual, len(s.args))
	for i, a := range s.args {
		actuals[i] = Actual{s.names[i], a.Execute(c, f)}
	}
	return ApplyMatched(c, s.call, d.builtin, actuals)
}

func (n *valueNode) AST() ast.Expression {
	return n.expr
}

func (n *valueNode) Execute(c eval.Context, f eval.Frame) eval.Value {
	return types.Force(c, n.value)
}
