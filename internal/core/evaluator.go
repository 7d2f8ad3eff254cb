package core

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// EvaluateCondition compiles and evaluates a string expression against the
// Session. Returns true if the condition is met (or empty), false otherwise.
func EvaluateCondition(condition string, sess *Session) (bool, error) {
	if condition == "" {
		return true, nil
	}

	// The session struct is the environment, so fields like Cluster,
	// Version and NodeCount can be referenced directly.
	program, err := expr.Compile(condition, expr.Env(sess))
	if err != nil {
		return false, fmt.Errorf("invalid condition '%s': %v", condition, err)
	}

	output, err := expr.Run(program, sess)
	if err != nil {
		return false, fmt.Errorf("evaluation failed: %v", err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("condition must return a boolean, got %T", output)
	}

	return result, nil
}
