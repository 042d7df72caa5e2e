// Package filter compiles gval boolean expressions used to narrow binary
// listings, in the list endpoint and the ops CLI.
package filter

import (
	"errors"
	"strings"

	"github.com/PaesslerAG/gval"
)

var errBadCall = errors.New("expression argument error")

func containsFunc(args ...any) (any, error) {
	if len(args) < 2 {
		return nil, errBadCall
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, errBadCall
	}
	substr, ok := args[1].(string)
	if !ok {
		return nil, errBadCall
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr)), nil
}

// Compile returns an evaluable for expr. In addition to the stock "Full"
// grammar it provides contains(s, substr), a case-insensitive substring
// search.
func Compile(expr string) (gval.Evaluable, error) {
	return gval.Full(gval.Function("contains", containsFunc)).NewEvaluable(expr)
}
