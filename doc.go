// Package formstate provides a framework-agnostic form interaction engine.
//
// A FormState is built from a Form descriptor (an ordered set of fields plus a
// validation function). It tracks each field's interaction lifecycle, merges
// locally computed client errors with externally supplied server errors and
// exposes a View for a rendering layer after every handler call.
//
// # Field lifecycle
//
// Every field starts untouched and unfocused:
//
//   - FocusField: focused, no validation
//   - BlurField: unfocused and touched, then validated
//   - ChangeField: value updated, server errors for the field dropped, then validated
//   - SubmitForm: every field touched, then validated
//
// Touched never reverts except through Reset.
//
// # Partial validation
//
// The validator only ever sees touched fields. Errors are therefore never
// reported for fields the user has not interacted with, until a submit forces
// every field touched.
//
// # Error merging
//
// Each merge pass attaches client errors followed by server errors to every
// field. When a FormatFunc is in effect, each error gets a freshly computed
// FormattedMessage; stored errors are never modified, so repeated passes yield
// identical lists.
//
// # Validity
//
// The flag returned by handlers is true when no field has a client error.
// Server errors are displayed but never affect it. This is intentional: a
// caller wanting server-aware validity must inspect the field error lists.
//
// # Formatting
//
// A process-wide formatter is installed with Configure and captured by each
// FormState at construction. WithFormatter overrides it per instance:
//
//	formstate.Configure(formstate.Config{
//	    ErrorMessageFormat: func(err formstate.Error, form *formstate.Form, _ *formstate.FormState, field *formstate.FieldState) string {
//	        return fmt.Sprintf("%s: %s is %s", form.Name, field.Name(), err.Key)
//	    },
//	})
//
// # Example
//
//	form, _ := rules.Form("signup", rules.Set{
//	    {Name: "email", Rules: []rules.Rule{rules.Presence(), rules.Email()}},
//	    {Name: "password", Rules: []rules.Rule{rules.Presence(), rules.MinLength(8)}},
//	})
//
//	state, err := formstate.New(form, nil, nil)
//	if err != nil {
//	    return err
//	}
//
//	valid, err := state.ChangeField(ctx, "email", "someone@example.com")
//	valid = state.SubmitForm(ctx)
//	view := state.View()
//
// # Observability
//
// Handlers emit capitan signals (FormMounted, FieldBlurred, FormValidated,
// ValidityChanged and others) keyed by the FormState's ID. A MetricsProvider
// receives validator timing and validity transitions.
package formstate
