package impl

import (
	"github.com/google/uuid"
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/ast"
	"github.com/lyraproj/rcall/builtins"
	"github.com/lyraproj/rcall/config"
	"github.com/lyraproj/rcall/dispatch"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/threadlocal"
)

// RcallContextKey is the key under which the current evaluation context is stored in
// the goroutine local storage
const RcallContextKey = `rcall.context`

type (
	// EvaluationContext is the context of an evaluation. All forks of a context share
	// builtins, symbols, global frame and compiled nodes. Each fork has its own id.
	EvaluationContext interface {
		eval.Context

		// Builtins returns the builtin registry
		Builtins() *builtins.Registry

		// Arena returns the arena that holds the state of all call sites
		Arena() *dispatch.Arena

		// Global returns the global frame
		Global() eval.Frame

		// Compile returns the node for the given expression. Compiling the same
		// expression twice yields the same node.
		Compile(expr ast.Expression) eval.Node

		// Fork returns a context with a new id that shares everything else with this context
		Fork() EvaluationContext
	}

	evalCtx struct {
		id         string
		logger     eval.Logger
		symbols    *eval.SymbolTable
		specialize bool
		registry   *builtins.Registry
		arena      *dispatch.Arena
		global     eval.Frame
		compiler   *compiler
	}
)

// NewContext creates a context that uses the given registry and logger. If specialize is
// false, call sites never change their strategy and resolve each call from scratch.
func NewContext(registry *builtins.Registry, logger eval.Logger, specialize bool) EvaluationContext {
	symbols := eval.NewSymbolTable()
	arena := dispatch.NewArena()
	return &evalCtx{
		id:         uuid.New().String(),
		logger:     logger,
		symbols:    symbols,
		specialize: specialize,
		registry:   registry,
		arena:      arena,
		global:     NewGlobalFrame(symbols),
		compiler:   newCompiler(symbols, registry, arena),
	}
}

// NewContextFromConfig creates a context with the standard builtins of the configured
// language version and a logger that writes on stdout and stderr
func NewContextFromConfig(cfg *config.Config) EvaluationContext {
	return NewContext(builtins.NewStandardRegistry(cfg.Version()), eval.NewStdLogger(cfg.Level()), cfg.Specialize)
}

// CurrentContext returns the context of the current goroutine. It panics if no context
// has been registered.
func CurrentContext() EvaluationContext {
	if ctx, ok := threadlocal.Get(RcallContextKey); ok {
		return ctx.(EvaluationContext)
	}
	panic(issue.NewReported(eval.NoCurrentContext, issue.SEVERITY_ERROR, issue.NO_ARGS, nil))
}

// DoWithContext registers the context as the current context of this goroutine, calls the
// actor, and then restores the previous context.
func DoWithContext(ctx EvaluationContext, actor func(EvaluationContext)) {
	if saveCtx, ok := threadlocal.Get(RcallContextKey); ok {
		defer func() {
			threadlocal.Set(RcallContextKey, saveCtx)
		}()
	} else {
		if !threadlocal.Initialized() {
			threadlocal.Init()
			defer threadlocal.Cleanup()
		}
		defer threadlocal.Delete(RcallContextKey)
	}
	threadlocal.Set(RcallContextKey, ctx)
	actor(ctx)
}

func (c *evalCtx) ID() string {
	return c.id
}

func (c *evalCtx) Logger() eval.Logger {
	return c.logger
}

func (c *evalCtx) Symbols() *eval.SymbolTable {
	return c.symbols
}

func (c *evalCtx) Specialize() bool {
	return c.specialize
}

func (c *evalCtx) Builtins() *builtins.Registry {
	return c.registry
}

func (c *evalCtx) Arena() *dispatch.Arena {
	return c.arena
}

func (c *evalCtx) Global() eval.Frame {
	return c.global
}

func (c *evalCtx) Compile(expr ast.Expression) eval.Node {
	return c.compiler.compile(expr)
}

func (c *evalCtx) Fork() EvaluationContext {
	clone := *c
	clone.id = uuid.New().String()
	return &clone
}
