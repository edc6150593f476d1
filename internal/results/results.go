// Package results defines the outcome envelope service operations return.
// Success carries the payload to publish on a success topic, Failure the
// payload for a failure topic. Error is reserved for infrastructure faults
// the caller may want to retry.
package results

// OperationResult is the outcome of a service operation.
type OperationResult struct {
	Success any
	Failure any
	Error   error
}

// SuccessResult wraps a success payload.
func SuccessResult(payload any) OperationResult {
	return OperationResult{Success: payload}
}

// FailureResult wraps a domain failure payload.
func FailureResult(payload any) OperationResult {
	return OperationResult{Failure: payload}
}
