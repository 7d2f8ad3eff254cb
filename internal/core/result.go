package core

// Result is the outcome of reconciling a single account.
type Result struct {
	Changed bool
	Message string
}

// SuccessChange builds a Result for an applied (or would-be-applied) change.
func SuccessChange(msg string) Result {
	return Result{Changed: true, Message: msg}
}

// SuccessNoChange builds a Result for an account already in its desired state.
func SuccessNoChange(msg string) Result {
	return Result{Changed: false, Message: msg}
}
