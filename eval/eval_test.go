package eval_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/eval"
)

func ExampleArrayLogger() {
	logger := eval.NewArrayLogger(eval.INFO)
	eval.Debug(logger, `not recorded %d`, 1)
	eval.Info(logger, `call site %d`, 2)
	eval.Warning(logger, `call site %d`, 3)
	logger.LogIssue(eval.Error(nil, eval.UnknownFunction, issue.H{`name`: `frobnicate`}))
	fmt.Println(logger.Entries(eval.DEBUG))
	fmt.Println(logger.Entries(eval.INFO))
	fmt.Println(logger.Entries(eval.WARNING))
	fmt.Println(len(logger.Entries(eval.ERR)))
	// Output:
	// []
	// [call site 2]
	// [call site 3]
	// 1
}

func TestParseLogLevel(t *testing.T) {
	if l, ok := eval.ParseLogLevel(`notice`); !ok || l != eval.NOTICE {
		t.Errorf(`expected notice, got %s`, l)
	}
	if _, ok := eval.ParseLogLevel(`verbose`); ok {
		t.Error(`expected verbose to be rejected`)
	}
	if eval.DEBUG.Severity() >= eval.WARNING.Severity() {
		t.Error(`expected debug to be less severe than warning`)
	}
}

func TestEnabled(t *testing.T) {
	logger := eval.NewArrayLogger(eval.WARNING)
	if logger.Enabled(eval.NOTICE) {
		t.Error(`notice should not be enabled`)
	}
	if !logger.Enabled(eval.ERR) {
		t.Error(`err should be enabled`)
	}
}

func TestIsIssue(t *testing.T) {
	err := eval.Error(nil, eval.UnknownVariable, issue.H{`name`: `x`})
	if !eval.IsIssue(err, eval.UnknownVariable) {
		t.Error(`expected UnknownVariable`)
	}
	if eval.IsIssue(err, eval.UnknownFunction) {
		t.Error(`did not expect UnknownFunction`)
	}
	if eval.IsIssue(errors.New(`plain`), eval.UnknownVariable) {
		t.Error(`did not expect a plain error to be an issue`)
	}
}

func TestErrorMessage(t *testing.T) {
	err := eval.Error(nil, eval.UnusedArguments, issue.H{`arguments`: `z = 3`})
	if err.Code() != eval.UnusedArguments {
		t.Errorf(`expected %s, got %s`, eval.UnusedArguments, err.Code())
	}
	if !strings.Contains(err.Error(), `unused argument(s) (z = 3)`) {
		t.Errorf(`unexpected message %q`, err.Error())
	}
}

func TestSymbolVersion(t *testing.T) {
	st := eval.NewSymbolTable()
	s := st.Intern(`sum`)
	if st.Intern(`sum`) != s {
		t.Fatal(`expected the same symbol`)
	}
	if !s.Unbound() {
		t.Error(`expected a new symbol to be unbound`)
	}
	st.MarkBound(`sum`)
	if s.Unbound() || s.Version() != 1 {
		t.Errorf(`expected version 1, got %d`, s.Version())
	}
}

func TestSymbolConcurrentIntern(t *testing.T) {
	st := eval.NewSymbolTable()
	syms := make([]*eval.Symbol, 16)
	var wg sync.WaitGroup
	for i := range syms {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			syms[i] = st.Intern(`x`)
			syms[i].MarkBound()
		}(i)
	}
	wg.Wait()
	for _, s := range syms {
		if s != syms[0] {
			t.Fatal(`expected all goroutines to get the same symbol`)
		}
	}
	if v := syms[0].Version(); v != int64(len(syms)) {
		t.Errorf(`expected version %d, got %d`, len(syms), v)
	}
}

func ExampleMissing() {
	fmt.Println(eval.Missing)
	// Output: <missing>
}
