package errors

import (
	"fmt"
)

// DomainErrorType represents the category of domain error
type DomainErrorType string

const (
	// DomainValidationError indicates input validation failure
	DomainValidationError DomainErrorType = "VALIDATION_ERROR"

	// DomainConflictError indicates a conflict with existing state
	DomainConflictError DomainErrorType = "CONFLICT"
)

// DomainError represents a domain-specific error with rich context
type DomainError struct {
	Type    DomainErrorType        `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewDomainError creates a new domain error
func NewDomainError(errorType DomainErrorType, code string, message string) *DomainError {
	return &DomainError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	e.Details[key] = value
	return e
}

// Is checks if the error is of a specific type
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// Store failure kinds. Instances created by the constructors below carry a
// resource specific message and still match these through errors.Is.
var (
	ErrDuplicateEntity = NewDomainError(
		DomainConflictError,
		"DUPLICATE_ENTITY",
		"An entity with this natural key already exists",
	)

	ErrInvalidReference = NewDomainError(
		DomainValidationError,
		"INVALID_REFERENCE",
		"One or more referenced entities do not exist",
	)

	ErrInvalidIdentifier = NewDomainError(
		DomainValidationError,
		"INVALID_IDENTIFIER",
		"The identifier is not valid",
	)
)

// NewDuplicateEntityError reports a natural key collision, e.g.
// "Film with title A New Hope already exists".
func NewDuplicateEntityError(resource, field, value string) *DomainError {
	return NewDomainError(
		DomainConflictError,
		ErrDuplicateEntity.Code,
		fmt.Sprintf("%s with %s %s already exists", resource, field, value),
	).WithDetail("field", field)
}

// NewInvalidReferenceError reports peer ids that could not all be resolved.
func NewInvalidReferenceError(peers string) *DomainError {
	return NewDomainError(
		DomainValidationError,
		ErrInvalidReference.Code,
		fmt.Sprintf("One or more %s do not exist", peers),
	)
}

// NewInvalidIdentifierError reports an id that is not syntactically valid
// for the given resource.
func NewInvalidIdentifierError(id, resource string) *DomainError {
	return NewDomainError(
		DomainValidationError,
		ErrInvalidIdentifier.Code,
		fmt.Sprintf("%s is not a valid %s id.", id, resource),
	).WithDetail("id", id)
}
