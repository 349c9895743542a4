package task

// Validation error codes. These describe caller-supplied input problems, so
// their messages are safe to return verbatim.
const (
	ErrMissingField         = "missing_field"
	ErrFieldTooLong         = "field_too_long"
	ErrUnsupportedMediaType = "unsupported_media_type"
	ErrUnknownTaskKind      = "unknown_task_kind"
)

type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func missing(msg string) *ValidationError {
	return &ValidationError{Code: ErrMissingField, Message: msg}
}
