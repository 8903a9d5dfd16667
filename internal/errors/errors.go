// Package errors defines the failure taxonomy shared by helpdesk operations.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Category classifies a failure
type Category string

const (
	// CategoryOperation is a shell or backend command that exited non-zero
	CategoryOperation Category = "OPERATION"
	// CategoryFileMissing is an absent input file; callers remediate by seeding defaults
	CategoryFileMissing Category = "FILE_MISSING"
	// CategoryDelivery is a notification channel that could not be reached or refused the message
	CategoryDelivery Category = "DELIVERY"
	CategoryConfig   Category = "CONFIG"
	CategoryParse    Category = "PARSE"
)

// HelpdeskError is a categorized error with context
type HelpdeskError struct {
	Category   Category
	Component  string
	Operation  string
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *HelpdeskError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error
func (e *HelpdeskError) Unwrap() error {
	return e.Underlying
}

// New creates a categorized error without an underlying cause
func New(category Category, component, operation, message string) *HelpdeskError {
	return &HelpdeskError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
	}
}

// Wrap wraps err with category context. A nil err yields nil.
func Wrap(err error, category Category, component, operation, message string) error {
	if err == nil {
		return nil
	}
	return &HelpdeskError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    message,
		Underlying: err,
	}
}

// CategoryOf returns the category of the first HelpdeskError in err's chain.
func CategoryOf(err error) (Category, bool) {
	var he *HelpdeskError
	if stderrors.As(err, &he) {
		return he.Category, true
	}
	return "", false
}

// IsCategory reports whether err carries the given category.
func IsCategory(err error, category Category) bool {
	c, ok := CategoryOf(err)
	return ok && c == category
}
