package formstate

import "github.com/zoobzio/capitan"

// Field keys for FormState events.
var (
	// KeyFormID is the identity of the emitting FormState.
	KeyFormID = capitan.NewStringKey("form_id")

	// KeyForm is the form descriptor's name.
	KeyForm = capitan.NewStringKey("form")

	// KeyField is the name of the field an event concerns.
	KeyField = capitan.NewStringKey("field")

	// KeyValidity is "valid" or "invalid".
	KeyValidity = capitan.NewStringKey("validity")

	// KeyClientErrors is the number of client errors after a pass.
	KeyClientErrors = capitan.NewIntKey("client_errors")

	// KeyServerErrors is the number of server errors after a pass.
	KeyServerErrors = capitan.NewIntKey("server_errors")

	// KeyTouched is the number of fields passed to the validator.
	KeyTouched = capitan.NewIntKey("touched")

	// KeyDuration is the time spent inside the client validator.
	KeyDuration = capitan.NewDurationKey("duration")
)

func validity(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}
