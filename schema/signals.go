package schema

import "github.com/zoobzio/capitan"

// Loader lifecycle signals.
var (
	// LoaderStarted is emitted when a Loader begins watching.
	LoaderStarted = capitan.NewSignal(
		"formstate.schema.started",
		"Schema loader started",
	)

	// LoaderStopped is emitted when a Loader stops watching.
	LoaderStopped = capitan.NewSignal(
		"formstate.schema.stopped",
		"Schema loader stopped",
	)

	// LoaderStateChanged is emitted when a Loader transitions between states.
	LoaderStateChanged = capitan.NewSignal(
		"formstate.schema.state.changed",
		"Schema loader state transition",
	)
)

// Document processing signals.
var (
	// DocumentReceived is emitted when raw bytes arrive from the watcher.
	DocumentReceived = capitan.NewSignal(
		"formstate.schema.document.received",
		"Schema document received",
	)

	// DocumentRejected is emitted when a document fails to decode or build.
	DocumentRejected = capitan.NewSignal(
		"formstate.schema.document.rejected",
		"Schema document rejected",
	)

	// FormLoaded is emitted when a document is accepted and its form is current.
	FormLoaded = capitan.NewSignal(
		"formstate.schema.form.loaded",
		"Schema form loaded",
	)
)

// Field keys for Loader events.
var (
	// KeyState is the current state of the Loader.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyStage is where a document was rejected.
	KeyStage = capitan.NewStringKey("stage")

	// KeyError is the rejection reason.
	KeyError = capitan.NewStringKey("error")

	// KeyForm is the name of the loaded form.
	KeyForm = capitan.NewStringKey("form")

	// KeyFields is the number of fields in the loaded form.
	KeyFields = capitan.NewIntKey("fields")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")
)
