package service

import "errors"

var (
	// ErrNotFound is the target for errors.Is checks against any
	// NotFoundError, regardless of resource.
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSetupKey    = errors.New("invalid setup key")
)

// NotFoundError names the missing resource so handlers can report
// "Product not found", "Order not found" and so on.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// RuleError is a business-rule violation. The message is safe to return
// to the client as a 400.
type RuleError struct {
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

func ruleErr(message string) error {
	return &RuleError{Message: message}
}
