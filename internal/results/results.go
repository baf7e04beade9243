// Package results carries business outcomes between services and handlers.
// Handled business failures travel in Failure with a nil Go error; only
// infrastructure faults surface as errors.
package results

// OperationResult holds either a success or a failure payload.
type OperationResult struct {
	Success any
	Failure any
}

func (r OperationResult) IsSuccess() bool { return r.Success != nil }

func (r OperationResult) IsFailure() bool { return r.Failure != nil }
