package handler

import "fmt"

// ResultStatus is how a command ended.
type ResultStatus uint8

const (
	// StatusOK means the document was changed or the command did its job.
	StatusOK ResultStatus = iota
	// StatusNoOp means nothing happened, usually because the input was
	// rejected. Message then carries the hint shown to the user.
	StatusNoOp
	// StatusError means the command failed.
	StatusError
	// StatusPending means a suggestion list is open and the host will
	// report the pick through a follow-up command.
	StatusPending
	// StatusCancelled means the command stopped on purpose, for example
	// after the user declined a confirmation.
	StatusCancelled
)

var statusNames = [...]string{
	StatusOK:        "ok",
	StatusNoOp:      "no-op",
	StatusError:     "error",
	StatusPending:   "pending",
	StatusCancelled: "cancelled",
}

func (s ResultStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Result is what a handler returns to the dispatcher.
type Result struct {
	Status  ResultStatus
	Error   error
	Message string

	// Data carries handler-specific values, such as an open suggestion
	// list or the number of selections touched.
	Data map[string]any
}

// IsOK reports whether the command succeeded.
func (r Result) IsOK() bool { return r.Status == StatusOK }

// IsError reports whether the command failed.
func (r Result) IsError() bool { return r.Status == StatusError }

func Success() Result { return Result{Status: StatusOK} }

func SuccessWithMessage(msg string) Result { return Result{Status: StatusOK, Message: msg} }

func NoOp() Result { return Result{Status: StatusNoOp} }

// NoOpWithMessage reports a rejected input with the hint text.
func NoOpWithMessage(msg string) Result { return Result{Status: StatusNoOp, Message: msg} }

func Error(err error) Result { return Result{Status: StatusError, Error: err} }

func Errorf(format string, args ...any) Result { return Error(fmt.Errorf(format, args...)) }

func Pending() Result { return Result{Status: StatusPending} }

func Cancelled() Result { return Result{Status: StatusCancelled} }

func CancelledWithMessage(msg string) Result { return Result{Status: StatusCancelled, Message: msg} }

// WithData returns a copy of r with key set. The map is copied so results
// built from a shared base do not alias.
func (r Result) WithData(key string, value any) Result {
	data := make(map[string]any, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

// GetData returns the value stored under key.
func (r Result) GetData(key string) (any, bool) {
	v, ok := r.Data[key]
	return v, ok
}
