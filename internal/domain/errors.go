package domain

import "fmt"

// ValidationSource records which trust boundary a validation failure crossed.
// Client input maps to 400, model output to 500.
type ValidationSource string

const (
	ValidationSourceInput ValidationSource = "input"
	ValidationSourceModel ValidationSource = "model"
)

// ValidationError reports a value that failed schema validation, naming the
// offending field or path.
type ValidationError struct {
	Source  ValidationSource
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed at %q: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// MissingFieldError builds a 400-shaped ValidationError for a required
// request field that was absent.
func MissingFieldError(field string) *ValidationError {
	return &ValidationError{
		Source:  ValidationSourceInput,
		Field:   field,
		Message: "required field is missing",
	}
}

// NotFoundError reports a lookup for an unknown conversation id.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("conversation %d not found", e.ID)
}

// UpstreamError reports a failed call to the external model API. Its detail
// is logged for operators; callers only ever see a generic message.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream model call failed during %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PolicyError reports a write that the conversation policy rejected.
type PolicyError struct {
	Decision string
	Reason   string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("rejected by policy (%s): %s", e.Decision, e.Reason)
}
