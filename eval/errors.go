package eval

import "github.com/lyraproj/issue/issue"

// Error creates an issue.Reported with severity error. The location may be nil.
func Error(location issue.Location, code issue.Code, args issue.H) issue.Reported {
	return issue.NewReported(code, issue.SEVERITY_ERROR, args, location)
}

// IsIssue returns true if err is an issue.Reported with the given code
func IsIssue(err error, code issue.Code) bool {
	if ri, ok := err.(issue.Reported); ok {
		return ri.Code() == code
	}
	return false
}
