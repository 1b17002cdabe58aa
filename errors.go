package formstate

import "errors"

// Usage errors. Validation failures are never reported through these; they
// are data carried in Errors.
var (
	// ErrUnknownField is returned when a handler references a field name the
	// form does not declare.
	ErrUnknownField = errors.New("unknown field")

	// ErrNilForm is returned when New is called without a form descriptor.
	ErrNilForm = errors.New("nil form")

	// ErrDuplicateField is returned when a form declares the same field twice.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrEmptyFieldName is returned when a form declares a field without a name.
	ErrEmptyFieldName = errors.New("empty field name")

	// ErrUnknownEventKind is returned for events without a recognised type.
	ErrUnknownEventKind = errors.New("unknown event kind")
)
