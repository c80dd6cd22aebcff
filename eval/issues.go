package eval

import "github.com/lyraproj/issue/issue"

const (
	AmbiguousPartialMatch = `EVAL_AMBIGUOUS_PARTIAL_MATCH`
	ConfigError           = `EVAL_CONFIG_ERROR`
	DotsNotBound          = `EVAL_DOTS_NOT_BOUND`
	DuplicateBinding      = `EVAL_FORMAL_MATCHED_MULTIPLE`
	DuplicateFormal       = `EVAL_DUPLICATE_FORMAL`
	IllegalArgumentType   = `EVAL_ILLEGAL_ARGUMENT_TYPE`
	MissingArgument       = `EVAL_MISSING_ARGUMENT`
	MultipleDotsFormals   = `EVAL_MULTIPLE_DOTS_FORMALS`
	NoCurrentContext      = `EVAL_NO_CURRENT_CONTEXT`
	NotApplicable         = `EVAL_NOT_APPLICABLE`
	NotFunction           = `EVAL_NOT_FUNCTION`
	ParseError            = `EVAL_PARSE_ERROR`
	RecursivePromise      = `EVAL_RECURSIVE_PROMISE`
	UnknownFunction       = `EVAL_UNKNOWN_FUNCTION`
	UnknownVariable       = `EVAL_UNKNOWN_VARIABLE`
	UnsupportedExpression = `EVAL_UNSUPPORTED_EXPRESSION`
	UnusedArguments       = `EVAL_UNUSED_ARGUMENTS`
)

func init() {
	issue.Hard(AmbiguousPartialMatch, `%{detail}`)

	issue.Hard(ConfigError, `Unable to configure the evaluator: %{detail}`)

	issue.Hard(DotsNotBound, `'...' used in an incorrect context`)

	issue.Hard(DuplicateBinding, `formal argument "%{name}" matched by multiple actual arguments`)

	issue.Hard(DuplicateFormal, `repeated formal argument "%{name}"`)

	issue.Hard(IllegalArgumentType, `%{function}: expected argument '%{name}' to be %{expected}, got %{actual}`)

	issue.Hard(MissingArgument, `argument "%{name}" is missing, with no default`)

	issue.Hard(MultipleDotsFormals, `only one '...' formal argument is allowed, got %{count}`)

	issue.Hard(NoCurrentContext, `no evaluation context was active`)

	issue.Hard(NotApplicable, `builtin %{name} is not applicable to (%{arguments})`)

	issue.Hard(NotFunction, `attempt to apply non-function %{value}`)

	issue.Hard(ParseError, `Unable to parse %{language}: %{detail}`)

	issue.Hard(RecursivePromise, `promise %{expression} already under evaluation: recursive default argument reference or earlier problems?`)

	issue.Hard(UnknownFunction, `could not find function "%{name}"`)

	issue.Hard(UnknownVariable, `object '%{name}' not found`)

	issue.Hard(UnsupportedExpression, `%{language} expression %{expression} is not supported`)

	issue.Hard(UnusedArguments, `unused argument(s) (%{arguments})`)
}
