// Package result provides the tri-state wrapper used for asynchronous query results.
//
// A Result is either loading, a success carrying data, or an error carrying its
// cause. The zero value is a fourth, "absent" state meaning no query is active.
package result

import "fmt"

// Status classifies a Result.
type Status int

const (
	StatusNone    Status = iota // No query is active
	StatusLoading               // Query started, no data yet
	StatusSuccess               // Query completed with data
	StatusError                 // Query failed
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is an immutable query outcome.
type Result[T any] struct {
	status Status
	data   T
	err    error
}

// None returns the absent result.
func None[T any]() Result[T] {
	return Result[T]{}
}

// Loading returns a result for a query that has not produced data yet.
func Loading[T any]() Result[T] {
	return Result[T]{status: StatusLoading}
}

// Success returns a completed result carrying data.
func Success[T any](data T) Result[T] {
	return Result[T]{status: StatusSuccess, data: data}
}

// Failure returns a failed result carrying its cause.
func Failure[T any](err error) Result[T] {
	return Result[T]{status: StatusError, err: err}
}

func (r Result[T]) Status() Status {
	return r.status
}

// Data returns the success payload. The boolean is false for every other status.
func (r Result[T]) Data() (T, bool) {
	if r.status != StatusSuccess {
		var zero T
		return zero, false
	}
	return r.data, true
}

// Err returns the failure cause, or nil unless the status is StatusError.
func (r Result[T]) Err() error {
	if r.status != StatusError {
		return nil
	}
	return r.err
}

func (r Result[T]) IsPresent() bool { return r.status != StatusNone }
func (r Result[T]) IsLoading() bool { return r.status == StatusLoading }
func (r Result[T]) IsSuccess() bool { return r.status == StatusSuccess }
func (r Result[T]) IsError() bool   { return r.status == StatusError }

func (r Result[T]) String() string {
	switch r.status {
	case StatusSuccess:
		return fmt.Sprintf("success(%v)", r.data)
	case StatusError:
		return fmt.Sprintf("error(%v)", r.err)
	default:
		return r.status.String()
	}
}

// Map converts the payload of a successful result and passes every other
// state through unchanged.
func Map[A, B any](r Result[A], fn func(A) B) Result[B] {
	switch r.status {
	case StatusSuccess:
		return Success(fn(r.data))
	case StatusError:
		return Failure[B](r.err)
	case StatusLoading:
		return Loading[B]()
	default:
		return None[B]()
	}
}
