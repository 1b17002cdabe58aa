package formstate

import "sync/atomic"

// FormatFunc derives a display message for an error. It receives the form
// descriptor, the owning FormState and the field the error is attached to.
type FormatFunc func(err Error, form *Form, state *FormState, field *FieldState) string

// Config is the process-wide default configuration.
type Config struct {
	// ErrorMessageFormat, when set, fills Error.FormattedMessage on every
	// merge pass of FormStates created after Configure.
	ErrorMessageFormat FormatFunc
}

var current atomic.Pointer[Config]

// Configure installs the process-wide defaults. Call it during start-up or
// test setup; FormStates capture the formatter when they are created, so
// reconfiguring does not affect forms that already exist.
func Configure(cfg Config) {
	c := cfg
	current.Store(&c)
}

// CurrentConfig returns the process-wide defaults.
func CurrentConfig() Config {
	if c := current.Load(); c != nil {
		return *c
	}
	return Config{}
}
