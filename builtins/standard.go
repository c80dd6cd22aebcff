package builtins

import (
	"math"
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/types"
	"github.com/lyraproj/semver/semver"
)

const sinceFirst = `>=1.0.0`

// NewStandardRegistry creates a registry with the standard builtins that are available
// in the given language version
func NewStandardRegistry(version semver.Version) *Registry {
	r := NewRegistry(version)
	for _, sb := range []struct {
		builtin   *types.Builtin
		available string
	}{
		{types.NewBuiltin(`abs`, types.MustFormals(`x`), unaryFactory(abs).apply, unaryFactory(abs)), sinceFirst},
		{types.NewBuiltin(`c`, types.MustFormals(`...`), combine, matchingFactory{}), sinceFirst},
		{types.NewBuiltin(`identity`, types.MustFormals(`x`), unaryFactory(identity).apply, unaryFactory(identity)), sinceFirst},
		{types.NewBuiltin(`length`, types.MustFormals(`x`), length, matchingFactory{}), sinceFirst},
		{types.NewBuiltin(`lengths`, types.MustFormals(`x`), lengths, matchingFactory{}), `>=3.2.0`},
		{types.NewBuiltin(`list`, types.MustFormals(`...`), list, matchingFactory{}), sinceFirst},
		{types.NewBuiltin(`paste`, types.MustFormals(`...`, `sep`), paste, matchingFactory{}), sinceFirst},
		{types.NewBuiltin(`paste0`, types.MustFormals(`...`), paste0, matchingFactory{}), `>=2.15.0`},
		{types.NewBuiltin(`sum`, types.MustFormals(`...`, `na.rm`), sum, matchingFactory{}), sinceFirst},
	} {
		if err := r.Register(sb.builtin, sb.available); err != nil {
			panic(err)
		}
	}
	return r
}

func illegalArgument(call issue.Location, function, name, expected string, actual eval.Value) issue.Reported {
	return eval.Error(call, eval.IllegalArgumentType, issue.H{
		`function`: function, `name`: name, `expected`: expected, `actual`: types.Describe(actual)})
}

func abs(c eval.Context, call issue.Location, x eval.Value) eval.Value {
	switch x := x.(type) {
	case types.IntegerValue:
		if x < 0 {
			return -x
		}
		return x
	case types.FloatValue:
		return types.WrapFloat(math.Abs(x.Float()))
	case types.LogicalValue:
		if x {
			return types.WrapInteger(1)
		}
		return types.WrapInteger(0)
	}
	panic(illegalArgument(call, `abs`, `x`, `numeric`, x))
}

func identity(c eval.Context, call issue.Location, x eval.Value) eval.Value {
	return x
}

func bundleArg(args []eval.Value, i int) *types.Bundle {
	if b, ok := args[i].(*types.Bundle); ok {
		return b
	}
	return types.EmptyBundle
}

func combine(c eval.Context, call issue.Location, args []eval.Value) eval.Value {
	dots := bundleArg(args, 0)
	var names []string
	values := make([]eval.Value, 0, dots.Len())
	add := func(n string, v eval.Value) {
		if n != `` && names == nil {
			names = make([]string, len(values), cap(values))
		}
		if names != nil {
			names = append(names, n)
		}
		values = append(values, v)
	}
	for i, v := range dots.Values() {
		switch v := v.(type) {
		case *types.ListValue:
			for k, e := range v.Values() {
				add(v.NameAt(k), e)
			}
		default:
			if v != types.Null {
				add(dots.Name(i), v)
			}
		}
	}
	if len(values) == 0 {
		return types.Null
	}
	return types.WrapVector(names, values)
}

func list(c eval.Context, call issue.Location, args []eval.Value) eval.Value {
	dots := bundleArg(args, 0)
	var names []string
	for _, n := range dots.Names() {
		if n != `` {
			names = dots.Names()
			break
		}
	}
	return types.WrapList(names, dots.Values())
}

func length(c eval.Context, call issue.Location, args []eval.Value) eval.Value {
	return types.WrapInteger(int64(types.Length(required(call, args, 0, `x`))))
}

func lengths(c eval.Context, call issue.Location, args []eval.Value) eval.Value {
	x := required(call, args, 0, `x`)
	l, ok := x.(*types.ListValue)
	if !ok {
		return types.WrapVector(nil, []eval.Value{types.WrapInteger(int64(types.Length(x)))})
	}
	values := make([]eval.Value, l.Len())
	var names []string
	for i, e := range l.Values() {
		values[i] = types.WrapInteger(int64(types.Length(e)))
		if n := l.NameAt(i); n != `` && names == nil {
			names = make([]string, l.Len())
		}
	}
	if names != nil {
		for i := range names {
			names[i] = l.NameAt(i)
		}
	}
	return types.WrapVector(names, values)
}

func sum(c eval.Context, call issue.Location, args []eval.Value) eval.Value {
	var isum int64
	fsum := 0.0
	float := false
	var add func(v eval.Value)
	add = func(v eval.Value) {
		switch v := v.(type) {
		case types.IntegerValue:
			isum += v.Int()
		case types.FloatValue:
			fsum += v.Float()
			float = true
		case types.LogicalValue:
			if v {
				isum++
			}
		case *types.ListValue:
			for _, e := range v.Values() {
				add(e)
			}
		default:
			if v != types.Null {
				panic(illegalArgument(call, `sum`, `...`, `numeric`, v))
			}
		}
	}
	for _, v := range bundleArg(args, 0).Values() {
		add(v)
	}
	if nr := args[1]; nr != nil {
		if _, ok := nr.(types.LogicalValue); !ok {
			panic(illegalArgument(call, `sum`, `na.rm`, `logical`, nr))
		}
	}
	if float {
		return types.WrapFloat(fsum + float64(isum))
	}
	return types.WrapInteger(isum)
}

func pieces(v eval.Value, into []string) []string {
	switch v := v.(type) {
	case types.StringValue:
		return append(into, string(v))
	case *types.ListValue:
		for _, e := range v.Values() {
			into = pieces(e, into)
		}
		return into
	default:
		if v == types.Null {
			return into
		}
		return append(into, v.String())
	}
}

func concat(dots *types.Bundle, sep string) eval.Value {
	ps := make([]string, 0, dots.Len())
	for _, v := range dots.Values() {
		ps = pieces(v, ps)
	}
	return types.WrapString(strings.Join(ps, sep))
}

func paste(c eval.Context, call issue.Location, args []eval.Value) eval.Value {
	sep := ` `
	if sv := args[1]; sv != nil {
		s, ok := sv.(types.StringValue)
		if !ok {
			panic(illegalArgument(call, `paste`, `sep`, `a character string`, sv))
		}
		sep = string(s)
	}
	return concat(bundleArg(args, 0), sep)
}

func paste0(c eval.Context, call issue.Location, args []eval.Value) eval.Value {
	return concat(bundleArg(args, 0), ``)
}
