package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/cloudstub/cloudstub/pkg/logs"
)

// Env is the set of variables a filter expression can reference.
type Env struct {
	Timestamp     int64  `expr:"timestamp"`
	Message       string `expr:"message"`
	IngestionTime int64  `expr:"ingestionTime"`
}

// Compile turns a filter expression into an event predicate. The
// expression sees the fields of one event and must evaluate to a
// boolean, e.g.:
//
//	message contains "error" && timestamp > 1700000000000
//
// A malformed expression is a caller error reported at compile time;
// nothing is evaluated lazily at query time that could fail per event.
func Compile(src string) (func(logs.Event) bool, error) {
	program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return func(e logs.Event) bool {
		out, err := runProgram(program, Env{
			Timestamp:     e.Timestamp,
			Message:       e.Message,
			IngestionTime: e.IngestionTime,
		})
		if err != nil {
			return false
		}
		return out
	}, nil
}

func runProgram(program *vm.Program, env Env) (bool, error) {
	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression returned %T, want bool", out)
	}
	return b, nil
}
