package formstate

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// FormState orchestrates the FieldStates of one mounted form. It decides
// when to run the client validator, merges client and server errors and
// derives the overall validity flag.
//
// A FormState is owned by a single caller. Every method runs to completion
// synchronously and none of them are safe for concurrent use.
type FormState struct {
	id      string
	form    *Form
	fields  map[string]*FieldState
	order   []*FieldState
	values  Values
	format  FormatFunc
	clock   clockz.Clock
	metrics MetricsProvider

	clientErrors Errors
	serverErrors Errors
	valid        bool
}

// Option configures a FormState at construction.
type Option func(*options)

type options struct {
	id        string
	format    FormatFunc
	formatSet bool
	clock     clockz.Clock
	metrics   MetricsProvider
}

// WithFormatter sets the error formatter for this FormState, overriding the
// process-wide default. Passing nil disables formatting.
func WithFormatter(fn FormatFunc) Option {
	return func(o *options) {
		o.format = fn
		o.formatSet = true
	}
}

// WithMetrics sets a metrics provider for validation callbacks.
func WithMetrics(provider MetricsProvider) Option {
	return func(o *options) {
		o.metrics = provider
	}
}

// WithID overrides the generated identity used in emitted events.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

// WithClock sets the clock used to time validator calls.
// Use this with clockz.FakeClock for deterministic metrics in tests.
func WithClock(clock clockz.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// New creates a FormState for form, seeding each declared field from
// initialValues ("" when absent) and recording serverErrors as given.
//
// No client validation runs at construction: the merge pass only applies
// server errors, so the returned FormState always starts valid.
func New(form *Form, initialValues Values, serverErrors Errors, opts ...Option) (*FormState, error) {
	return NewContext(context.Background(), form, initialValues, serverErrors, opts...)
}

// NewContext is New with a context for the emitted mount event.
func NewContext(ctx context.Context, form *Form, initialValues Values, serverErrors Errors, opts ...Option) (*FormState, error) {
	if form == nil {
		return nil, ErrNilForm
	}
	if err := form.check(); err != nil {
		return nil, fmt.Errorf("form %q: %w", form.Name, err)
	}

	o := options{clock: clockz.RealClock}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.formatSet {
		o.format = CurrentConfig().ErrorMessageFormat
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	s := &FormState{
		id:      o.id,
		form:    form,
		format:  o.format,
		clock:   o.clock,
		metrics: o.metrics,
	}
	s.init(initialValues, serverErrors)
	s.valid = s.updateErrors()

	capitan.Emit(ctx, FormMounted,
		KeyFormID.Field(s.id),
		KeyForm.Field(form.Name),
		KeyServerErrors.Field(s.serverErrors.Count()),
	)

	return s, nil
}

// init (re)creates every FieldState and clears both error sources.
func (s *FormState) init(initialValues Values, serverErrors Errors) {
	s.fields = make(map[string]*FieldState, len(s.form.Fields))
	s.order = make([]*FieldState, 0, len(s.form.Fields))
	s.values = make(Values, len(s.form.Fields))

	for _, field := range s.form.Fields {
		value := initialValues.Get(field.Name)
		fs := newFieldState(field.Name, value)
		s.fields[field.Name] = fs
		s.order = append(s.order, fs)
		s.values[field.Name] = value
	}

	s.clientErrors = Errors{}
	s.serverErrors = serverErrors.Clone()
}

// ID returns the identity attached to emitted events.
func (s *FormState) ID() string { return s.id }

// Form returns the descriptor this FormState was built from.
func (s *FormState) Form() *Form { return s.form }

// Field returns the FieldState for name.
func (s *FormState) Field(name string) (*FieldState, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Values returns a copy of the current values.
func (s *FormState) Values() Values { return s.values.Clone() }

// ClientErrors returns a copy of the last validator result.
func (s *FormState) ClientErrors() Errors { return s.clientErrors.Clone() }

// ServerErrors returns a copy of the externally supplied errors.
func (s *FormState) ServerErrors() Errors { return s.serverErrors.Clone() }

// Valid returns the validity computed by the last merge pass.
//
// Validity only reflects client errors. A field carrying server errors alone
// still counts as valid; callers that need server-aware validity must inspect
// the field error lists.
func (s *FormState) Valid() bool { return s.valid }

// View returns a snapshot of every field and value.
func (s *FormState) View() View {
	fields := make([]FieldView, len(s.order))
	for i, f := range s.order {
		fields[i] = f.view()
	}
	return View{
		ID:     s.id,
		Form:   s.form.Name,
		Fields: fields,
		Values: s.values.Clone(),
		Valid:  s.valid,
	}
}

func (s *FormState) lookup(name string) (*FieldState, error) {
	f, ok := s.fields[name]
	if !ok {
		return nil, fmt.Errorf("form %q: %w: %q", s.form.Name, ErrUnknownField, name)
	}
	return f, nil
}

// FocusField marks name as focused. No validation runs.
func (s *FormState) FocusField(ctx context.Context, name string) error {
	f, err := s.lookup(name)
	if err != nil {
		return err
	}
	f.Focus()
	capitan.Emit(ctx, FieldFocused,
		KeyFormID.Field(s.id),
		KeyField.Field(name),
	)
	return nil
}

// BlurField releases focus on name, marks it touched and runs a validation
// pass over the touched fields.
func (s *FormState) BlurField(ctx context.Context, name string) (bool, error) {
	f, err := s.lookup(name)
	if err != nil {
		return s.valid, err
	}
	f.Blur()
	capitan.Emit(ctx, FieldBlurred,
		KeyFormID.Field(s.id),
		KeyField.Field(name),
	)
	return s.Validate(ctx), nil
}

// ChangeField records a user edit of name and runs a validation pass.
// Any server errors for name are dropped first: they are considered stale
// once the user edits the field.
func (s *FormState) ChangeField(ctx context.Context, name, value string) (bool, error) {
	f, err := s.lookup(name)
	if err != nil {
		return s.valid, err
	}

	delete(s.serverErrors, name)
	f.Change(value)
	s.values[name] = value

	capitan.Emit(ctx, FieldChanged,
		KeyFormID.Field(s.id),
		KeyField.Field(name),
	)
	return s.Validate(ctx), nil
}

// SubmitForm forces every field touched and validates all of them.
func (s *FormState) SubmitForm(ctx context.Context) bool {
	for _, f := range s.order {
		f.Touch()
	}
	capitan.Emit(ctx, FormSubmitted,
		KeyFormID.Field(s.id),
		KeyForm.Field(s.form.Name),
	)
	return s.Validate(ctx)
}

// SetServerErrors replaces the server errors wholesale and runs a merge pass.
// The client validator is not re-run. A nil map clears all server errors.
func (s *FormState) SetServerErrors(ctx context.Context, errs Errors) bool {
	s.serverErrors = errs.Clone()
	capitan.Emit(ctx, ServerErrorsSet,
		KeyFormID.Field(s.id),
		KeyServerErrors.Field(s.serverErrors.Count()),
	)
	return s.UpdateErrors(ctx)
}

// UpdateValues sets every field's value programmatically. Fields missing
// from values are set to "". Touch state and errors are left alone and no
// validation runs.
func (s *FormState) UpdateValues(values Values) {
	for _, f := range s.order {
		v := values.Get(f.name)
		f.SetValue(v)
		s.values[f.name] = v
	}
}

// Reset re-initialises every field as if the form had just been mounted.
// This is the only operation that clears touched flags.
func (s *FormState) Reset(ctx context.Context, initialValues Values, serverErrors Errors) bool {
	s.init(initialValues, serverErrors)
	capitan.Emit(ctx, FormReset,
		KeyFormID.Field(s.id),
		KeyForm.Field(s.form.Name),
	)
	return s.UpdateErrors(ctx)
}

// Dispatch routes an event payload to the matching handler and returns the
// resulting validity. Focus events do not change validity.
func (s *FormState) Dispatch(ctx context.Context, e Event) (bool, error) {
	switch e.Kind {
	case EventFocus:
		return s.valid, s.FocusField(ctx, e.FieldName)
	case EventBlur:
		return s.BlurField(ctx, e.FieldName)
	case EventChange:
		return s.ChangeField(ctx, e.FieldName, e.FieldValue)
	case EventSubmit:
		return s.SubmitForm(ctx), nil
	default:
		return s.valid, fmt.Errorf("form %q: %w %d", s.form.Name, ErrUnknownEventKind, int(e.Kind))
	}
}

// Validate runs the client validator over the touched fields only, replaces
// the client errors with its result and runs a merge pass. Untouched fields
// are left out of the validator input entirely.
func (s *FormState) Validate(ctx context.Context) bool {
	input := make(Values)
	for _, f := range s.order {
		if f.touched {
			input[f.name] = s.values[f.name]
		}
	}

	start := s.clock.Now()
	s.clientErrors = s.form.validate(input).Clone()
	elapsed := s.clock.Since(start)

	if s.metrics != nil {
		s.metrics.OnValidate(len(input), elapsed)
	}
	capitan.Emit(ctx, FormValidated,
		KeyFormID.Field(s.id),
		KeyTouched.Field(len(input)),
		KeyClientErrors.Field(s.clientErrors.Count()),
		KeyDuration.Field(elapsed),
	)

	return s.UpdateErrors(ctx)
}

// UpdateErrors runs a merge pass: for every declared field, client errors
// followed by server errors are formatted and attached. The result is true
// only when no field has a client error; server errors are shown but never
// make the form invalid.
func (s *FormState) UpdateErrors(ctx context.Context) bool {
	prev := s.valid
	s.valid = s.updateErrors()

	if s.metrics != nil {
		s.metrics.OnMerge(s.valid)
	}
	if prev != s.valid {
		capitan.Emit(ctx, ValidityChanged,
			KeyFormID.Field(s.id),
			KeyValidity.Field(validity(s.valid)),
		)
		if s.metrics != nil {
			s.metrics.OnValidityChange(prev, s.valid)
		}
	}
	return s.valid
}

func (s *FormState) updateErrors() bool {
	valid := true

	for _, f := range s.order {
		client := s.clientErrors.Get(f.name)
		server := s.serverErrors.Get(f.name)
		if len(client) > 0 {
			valid = false
		}

		merged := make([]Error, 0, len(client)+len(server))
		merged = append(merged, client...)
		merged = append(merged, server...)

		// merged holds copies, so formatting never touches the stored sources.
		for i := range merged {
			if s.format != nil {
				merged[i].FormattedMessage = s.format(merged[i], s.form, s, f)
			} else {
				merged[i].FormattedMessage = ""
			}
		}

		f.SetErrors(merged)
	}

	return valid
}
