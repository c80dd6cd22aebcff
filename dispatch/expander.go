package dispatch

import (
	"github.com/lyraproj/rcall/types"
)

// Expand replaces the actuals at the positions given by dotsArgs with the entries of the
// corresponding bundle. The bundle at index k replaces the actual at dotsArgs[k]. The
// relative order of all entries is retained and no value is forced.
func Expand(actuals []Actual, dotsArgs []int, bundles []*types.Bundle) []Actual {
	n := len(actuals) - len(dotsArgs)
	for _, b := range bundles {
		n += b.Len()
	}
	result := make([]Actual, 0, n)
	next := 0
	for i, a := range actuals {
		if next < len(dotsArgs) && dotsArgs[next] == i {
			b := bundles[next]
			for k, v := range b.Values() {
				result = append(result, Actual{b.Name(k), v})
			}
			next++
			continue
		}
		result = append(result, a)
	}
	return result
}
