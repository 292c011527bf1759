// Package results defines the OperationResult type service operations use to
// distinguish domain failures (a failure payload the caller can act on) from
// infrastructure errors (a plain error that aborts the operation).
package results

// OperationResult carries either a success payload or a failure payload.
// At most one of the two pointers is set.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a success payload.
func SuccessResult[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// FailureResult wraps a domain failure payload.
func FailureResult[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

func (r OperationResult[S, F]) IsSuccess() bool { return r.Success != nil }

func (r OperationResult[S, F]) IsFailure() bool { return r.Failure != nil }
