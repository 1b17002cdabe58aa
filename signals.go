package formstate

import "github.com/zoobzio/capitan"

// FormState lifecycle signals.
var (
	// FormMounted is emitted when a FormState is constructed.
	FormMounted = capitan.NewSignal(
		"formstate.form.mounted",
		"Form state constructed",
	)

	// FormReset is emitted when a FormState is re-initialised.
	FormReset = capitan.NewSignal(
		"formstate.form.reset",
		"Form state re-initialised",
	)

	// FormSubmitted is emitted when every field is forced touched by a submit.
	FormSubmitted = capitan.NewSignal(
		"formstate.form.submitted",
		"Form submitted",
	)
)

// Field interaction signals.
var (
	// FieldFocused is emitted when a field gains focus.
	FieldFocused = capitan.NewSignal(
		"formstate.field.focused",
		"Field focused",
	)

	// FieldBlurred is emitted when a field loses focus and becomes touched.
	FieldBlurred = capitan.NewSignal(
		"formstate.field.blurred",
		"Field blurred",
	)

	// FieldChanged is emitted when a field's value is edited.
	FieldChanged = capitan.NewSignal(
		"formstate.field.changed",
		"Field value changed",
	)
)

// Validation signals.
var (
	// FormValidated is emitted after the client validator has run.
	FormValidated = capitan.NewSignal(
		"formstate.form.validated",
		"Client validation pass completed",
	)

	// ServerErrorsSet is emitted when server errors are replaced wholesale.
	ServerErrorsSet = capitan.NewSignal(
		"formstate.server_errors.set",
		"Server errors replaced",
	)

	// ValidityChanged is emitted when the overall validity flag flips.
	ValidityChanged = capitan.NewSignal(
		"formstate.validity.changed",
		"Form validity changed",
	)
)
