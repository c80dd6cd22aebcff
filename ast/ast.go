// Package ast contains the immutable expression tree that the evaluator compiles into
// executable nodes. Expressions are created once, never modified, and may be shared
// freely between goroutines.
package ast

import (
	"bytes"
	"strconv"
)

// DotsName is the name of the variadic formal parameter and of a reference to it
const DotsName = `...`

type (
	// Expression is implemented by all nodes in the tree. Each expression knows its
	// location in the source so that it can be used as an issue.Location.
	Expression interface {
		File() string
		Line() int
		Pos() int

		// ToString appends a source rendering of the expression to the buffer
		ToString(b *bytes.Buffer)

		String() string
	}

	// Position is the location of an expression. It is embedded in all expressions.
	Position struct {
		file string
		line int
		pos  int
	}

	Literal struct {
		Position
		value interface{}
	}

	Variable struct {
		Position
		name string
	}

	// Argument is an actual argument of a call. The name is empty for positional arguments.
	Argument struct {
		name  string
		value Expression
	}

	// Parameter is a formal parameter of a function. The value is the default value
	// expression or nil when the parameter has no default.
	Parameter struct {
		name  string
		value Expression
	}

	CallExpression struct {
		Position
		callee   Expression
		args     []*Argument
		dotsArgs []int
	}

	FunctionExpression struct {
		Position
		params []*Parameter
		body   Expression
	}

	AssignmentExpression struct {
		Position
		name  string
		value Expression
	}

	BlockExpression struct {
		Position
		statements []Expression
	}
)

// At returns the position with the given file, line, and position on line
func At(file string, line, pos int) Position {
	return Position{file, line, pos}
}

func (p Position) File() string {
	return p.file
}

func (p Position) Line() int {
	return p.line
}

func (p Position) Pos() int {
	return p.pos
}

// NewLiteral creates a literal. The value must be an int64, float64, string, bool, or nil
func NewLiteral(p Position, value interface{}) *Literal {
	switch v := value.(type) {
	case int:
		value = int64(v)
	case int64, float64, string, bool, nil:
	default:
		panic(`illegal literal value`)
	}
	return &Literal{p, value}
}

func (e *Literal) Value() interface{} {
	return e.value
}

func (e *Literal) ToString(b *bytes.Buffer) {
	switch v := e.value.(type) {
	case nil:
		b.WriteString(`NULL`)
	case bool:
		if v {
			b.WriteString(`TRUE`)
		} else {
			b.WriteString(`FALSE`)
		}
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		b.WriteString(strconv.Quote(v))
	}
}

func (e *Literal) String() string {
	return toString(e)
}

func NewVariable(p Position, name string) *Variable {
	return &Variable{p, name}
}

// NewDots creates a reference to the variadic parameter of the enclosing function
func NewDots(p Position) *Variable {
	return &Variable{p, DotsName}
}

func (e *Variable) Name() string {
	return e.name
}

// IsDots returns true if this variable is a reference to the variadic parameter
func (e *Variable) IsDots() bool {
	return e.name == DotsName
}

func (e *Variable) ToString(b *bytes.Buffer) {
	b.WriteString(e.name)
}

func (e *Variable) String() string {
	return toString(e)
}

func NewArgument(name string, value Expression) *Argument {
	return &Argument{name, value}
}

func (a *Argument) Name() string {
	return a.name
}

func (a *Argument) Value() Expression {
	return a.value
}

func (a *Argument) ToString(b *bytes.Buffer) {
	if a.name != `` {
		b.WriteString(a.name)
		b.WriteString(` = `)
	}
	a.value.ToString(b)
}

func NewParameter(name string, value Expression) *Parameter {
	return &Parameter{name, value}
}

func (p *Parameter) Name() string {
	return p.name
}

func (p *Parameter) Value() Expression {
	return p.value
}

// NewCall creates a call expression. The positions of the arguments that are references
// to the variadic parameter are determined here, once.
func NewCall(p Position, callee Expression, args ...*Argument) *CallExpression {
	var dotsArgs []int
	for i, a := range args {
		if v, ok := a.value.(*Variable); ok && v.IsDots() {
			dotsArgs = append(dotsArgs, i)
		}
	}
	return &CallExpression{p, callee, args, dotsArgs}
}

func (e *CallExpression) Callee() Expression {
	return e.callee
}

func (e *CallExpression) Arguments() []*Argument {
	return e.args
}

// DotsArgs returns the positions of the arguments that are references to the variadic
// parameter. The returned slice is empty when there are no such arguments and must not
// be modified.
func (e *CallExpression) DotsArgs() []int {
	return e.dotsArgs
}

func (e *CallExpression) ToString(b *bytes.Buffer) {
	e.callee.ToString(b)
	b.WriteByte('(')
	for i, a := range e.args {
		if i > 0 {
			b.WriteString(`, `)
		}
		a.ToString(b)
	}
	b.WriteByte(')')
}

func (e *CallExpression) String() string {
	return toString(e)
}

func NewFunction(p Position, params []*Parameter, body Expression) *FunctionExpression {
	return &FunctionExpression{p, params, body}
}

func (e *FunctionExpression) Parameters() []*Parameter {
	return e.params
}

func (e *FunctionExpression) Body() Expression {
	return e.body
}

func (e *FunctionExpression) ToString(b *bytes.Buffer) {
	b.WriteString(`function(`)
	for i, p := range e.params {
		if i > 0 {
			b.WriteString(`, `)
		}
		b.WriteString(p.name)
		if p.value != nil {
			b.WriteString(` = `)
			p.value.ToString(b)
		}
	}
	b.WriteString(`) `)
	e.body.ToString(b)
}

func (e *FunctionExpression) String() string {
	return toString(e)
}

func NewAssignment(p Position, name string, value Expression) *AssignmentExpression {
	return &AssignmentExpression{p, name, value}
}

func (e *AssignmentExpression) Name() string {
	return e.name
}

func (e *AssignmentExpression) Value() Expression {
	return e.value
}

func (e *AssignmentExpression) ToString(b *bytes.Buffer) {
	b.WriteString(e.name)
	b.WriteString(` <- `)
	e.value.ToString(b)
}

func (e *AssignmentExpression) String() string {
	return toString(e)
}

func NewBlock(p Position, statements ...Expression) *BlockExpression {
	return &BlockExpression{p, statements}
}

func (e *BlockExpression) Statements() []Expression {
	return e.statements
}

func (e *BlockExpression) ToString(b *bytes.Buffer) {
	b.WriteByte('{')
	for i, s := range e.statements {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteByte(' ')
		s.ToString(b)
	}
	b.WriteString(` }`)
}

func (e *BlockExpression) String() string {
	return toString(e)
}

func toString(e Expression) string {
	b := bytes.NewBufferString(``)
	e.ToString(b)
	return b.String()
}
