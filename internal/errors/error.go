package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryReactivity Category = "reactivity"
	CategoryScheduler  Category = "scheduler"
	CategoryUsage      Category = "usage"
)

// LumosError is a structured error with a stable code, a category, and an
// optional wrapped cause.
type LumosError struct {
	// Code is a unique error identifier (e.g., "R001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *LumosError) Error() string {
	if e.Code != "" {
		if e.Wrapped != nil {
			return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Wrapped)
		}
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *LumosError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *LumosError) WithDetail(d string) *LumosError {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *LumosError) WithSuggestion(s string) *LumosError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *LumosError) Wrap(err error) *LumosError {
	e.Wrapped = err
	return e
}

// New creates a LumosError from a registered error code.
func New(code string) *LumosError {
	template, ok := registry[code]
	if !ok {
		return &LumosError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &LumosError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new LumosError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *LumosError {
	return &LumosError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a LumosError.
func FromError(err error, code string) *LumosError {
	if err == nil {
		return nil
	}
	if le, ok := err.(*LumosError); ok {
		return le
	}
	return New(code).Wrap(err)
}
