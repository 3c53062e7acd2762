// internal/errors/errors.go
package appErrors

import "fmt"

// ValidationError signals invalid user input that must be corrected.
type ValidationError struct {
    Message string
}

func (e *ValidationError) Error() string {
    return e.Message
}

func NewValidationError(msg string) error {
    return &ValidationError{Message: msg}
}

// NotFoundError signals a referenced resource that does not exist.
type NotFoundError struct {
    Resource string
    ID       string
}

func (e *NotFoundError) Error() string {
    return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) error {
    return &NotFoundError{Resource: resource, ID: id}
}

// NoRecipientsError signals an empty active-subscriber set at dispatch time.
type NoRecipientsError struct{}

func (e *NoRecipientsError) Error() string {
    return "no active subscribers"
}

func NewNoRecipientsError() error {
    return &NoRecipientsError{}
}

// AllSendsFailedError signals that every individual send in a dispatch failed.
type AllSendsFailedError struct {
    Failed int
}

func (e *AllSendsFailedError) Error() string {
    return fmt.Sprintf("failed to send to all %d subscribers", e.Failed)
}

func NewAllSendsFailedError(failed int) error {
    return &AllSendsFailedError{Failed: failed}
}
