package pp2ast_test

import (
	"fmt"
	"testing"

	"github.com/lyraproj/rcall/builtins"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/impl"
	"github.com/lyraproj/rcall/pp2ast"
	"github.com/lyraproj/semver/semver"
)

const source = `
function f($a, *$rest) { sum($a, *$rest) }
$x = f(1, 2, 3)
paste('x', $x, sep => '=')
`

func ExamplePuppetToAST() {
	expr, err := pp2ast.PuppetToAST(`example.pp`, source)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(expr)
	// Output: { f <- function(a, ...) { sum(a, ...) }; x <- f(1, 2, 3); paste("x", x, sep = "=") }
}

func ExamplePuppetToAST_evaluate() {
	expr, err := pp2ast.PuppetToAST(`example.pp`, source)
	if err != nil {
		fmt.Println(err)
		return
	}
	v, _ := semver.ParseVersion(`3.5.0`)
	c := impl.NewContext(builtins.NewStandardRegistry(v), eval.NewArrayLogger(eval.WARNING), true)
	result, ri := impl.TopEvaluate(c, expr)
	if ri != nil {
		fmt.Println(ri)
		return
	}
	fmt.Println(result)
	// Output: "x=6"
}

func TestParseError(t *testing.T) {
	_, err := pp2ast.PuppetToAST(`bad.pp`, `f(1,`)
	if !eval.IsIssue(err, eval.ParseError) {
		t.Errorf(`expected %s, got %v`, eval.ParseError, err)
	}
}

func TestUnsupportedExpression(t *testing.T) {
	_, err := pp2ast.PuppetToAST(`unsupported.pp`, `$x = 1 + 2`)
	if !eval.IsIssue(err, eval.UnsupportedExpression) {
		t.Errorf(`expected %s, got %v`, eval.UnsupportedExpression, err)
	}
}

func TestLambdaIsTrailingArgument(t *testing.T) {
	expr, err := pp2ast.PuppetToAST(`lambda.pp`, `identity(1) |$x, $y = 2| { $y }`)
	if err != nil {
		t.Fatal(err)
	}
	expected := `identity(1, function(x, y = 2) { y })`
	if s := expr.String(); s != expected {
		t.Errorf(`expected %s, got %s`, expected, s)
	}
}

func TestHashArgumentWithNonNameKeys(t *testing.T) {
	_, err := pp2ast.PuppetToAST(`hash.pp`, `c(1, { 2 => 3 })`)
	if !eval.IsIssue(err, eval.UnsupportedExpression) {
		t.Errorf(`expected %s, got %v`, eval.UnsupportedExpression, err)
	}
}

func TestUnfoldOfOtherVariable(t *testing.T) {
	for _, src := range []string{
		"function f($a, *$rest) { $other = 10\n sum(*$other) }\nf(1, 2, 3)",
		"$x = 1\nsum(*$x)",
		"function f(*$rest) { identity(1) |*$more| { sum(*$rest) } }",
	} {
		_, err := pp2ast.PuppetToAST(`unfold.pp`, src)
		if !eval.IsIssue(err, eval.UnsupportedExpression) {
			t.Errorf(`%s: expected %s, got %v`, src, eval.UnsupportedExpression, err)
		}
	}
}

func TestUnfoldOfEnclosingRest(t *testing.T) {
	expr, err := pp2ast.PuppetToAST(`unfold.pp`, `function f(*$rest) { identity(1) |$x| { sum($x, *$rest) } }`)
	if err != nil {
		t.Fatal(err)
	}
	expected := `f <- function(...) { identity(1, function(x) { sum(x, ...) }) }`
	if s := expr.String(); s != expected {
		t.Errorf(`expected %s, got %s`, expected, s)
	}
}
