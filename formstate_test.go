package formstate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

// presence reports a blank error for every given field whose value is empty.
func presence(values Values) Errors {
	errs := Errors{}
	for name, value := range values {
		if value == "" {
			errs[name] = []Error{{Key: "blank", Message: "can't be blank"}}
		}
	}
	return errs
}

func newLoginForm(t *testing.T, validate ValidateFunc) *Form {
	t.Helper()
	form, err := NewForm("Form", validate, Field{Name: "email"}, Field{Name: "password"})
	if err != nil {
		t.Fatalf("NewForm failed: %v", err)
	}
	return form
}

func newLoginState(t *testing.T, values Values, server Errors, opts ...Option) *FormState {
	t.Helper()
	opts = append([]Option{WithFormatter(nil)}, opts...)
	s, err := New(newLoginForm(t, presence), values, server, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func mustField(t *testing.T, s *FormState, name string) *FieldState {
	t.Helper()
	f, ok := s.Field(name)
	if !ok {
		t.Fatalf("field %q not found", name)
	}
	return f
}

func TestNew_NilForm(t *testing.T) {
	_, err := New(nil, nil, nil)
	if !errors.Is(err, ErrNilForm) {
		t.Errorf("expected ErrNilForm, got %v", err)
	}
}

func TestNew_DuplicateField(t *testing.T) {
	form := &Form{Name: "dup", Fields: []Field{{Name: "a"}, {Name: "a"}}}
	_, err := New(form, nil, nil)
	if !errors.Is(err, ErrDuplicateField) {
		t.Errorf("expected ErrDuplicateField, got %v", err)
	}
}

func TestNew_FieldsStartUntouched(t *testing.T) {
	s := newLoginState(t, nil, nil)

	for _, name := range []string{"email", "password"} {
		f := mustField(t, s, name)
		if f.Touched() {
			t.Errorf("%s: expected untouched", name)
		}
		if f.Focused() {
			t.Errorf("%s: expected unfocused", name)
		}
	}
}

func TestNew_SeedsValues(t *testing.T) {
	s := newLoginState(t, Values{"email": "a@b.c", "unknown": "x"}, nil)

	if got := mustField(t, s, "email").Value(); got != "a@b.c" {
		t.Errorf("expected seeded email, got %q", got)
	}
	if got := mustField(t, s, "password").Value(); got != "" {
		t.Errorf("expected empty password, got %q", got)
	}

	values := s.Values()
	if len(values) != 2 {
		t.Errorf("expected only declared fields in values, got %v", values)
	}
	if values["password"] != "" {
		t.Errorf("expected empty default, got %q", values["password"])
	}
}

func TestNew_ValidWithoutClientValidation(t *testing.T) {
	s := newLoginState(t, nil, nil)

	if !s.Valid() {
		t.Error("expected valid after construction")
	}
	if s.ClientErrors().Count() != 0 {
		t.Error("expected no client errors after construction")
	}
}

func TestNew_AppliesServerErrors(t *testing.T) {
	s := newLoginState(t, nil, Errors{
		"email": {{Key: "taken", Message: "already taken"}},
	})

	want := []Error{{Key: "taken", Message: "already taken"}}
	if got := mustField(t, s, "email").Errors(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if !s.Valid() {
		t.Error("expected server errors not to affect validity")
	}
}

func TestNew_GeneratesID(t *testing.T) {
	a := newLoginState(t, nil, nil)
	b := newLoginState(t, nil, nil)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("expected distinct generated ids, got %q and %q", a.ID(), b.ID())
	}

	c := newLoginState(t, nil, nil, WithID("fixed"))
	if c.ID() != "fixed" {
		t.Errorf("expected 'fixed', got %q", c.ID())
	}
}

func TestFocusField(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, nil, Errors{"email": {{Key: "taken", Message: "already taken"}}})
	before := mustField(t, s, "email").Errors()

	if err := s.FocusField(ctx, "email"); err != nil {
		t.Fatalf("FocusField failed: %v", err)
	}

	f := mustField(t, s, "email")
	if !f.Focused() {
		t.Error("expected focused")
	}
	if f.Touched() {
		t.Error("focus must not touch the field")
	}
	if !reflect.DeepEqual(f.Errors(), before) {
		t.Errorf("focus must not change errors, got %+v", f.Errors())
	}
}

func TestFocusField_UnknownField(t *testing.T) {
	s := newLoginState(t, nil, nil)
	if err := s.FocusField(context.Background(), "nope"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestBlurField_TouchesAndValidates(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, nil, nil)

	_ = s.FocusField(ctx, "email")
	valid, err := s.BlurField(ctx, "email")
	if err != nil {
		t.Fatalf("BlurField failed: %v", err)
	}
	if valid {
		t.Error("expected blank email to be invalid once touched")
	}

	email := mustField(t, s, "email")
	if !email.Touched() || email.Focused() {
		t.Errorf("expected touched and unfocused, got touched=%v focused=%v", email.Touched(), email.Focused())
	}
	if errs := email.Errors(); len(errs) != 1 || errs[0].Key != "blank" {
		t.Errorf("expected blank error, got %+v", errs)
	}
	if errs := mustField(t, s, "password").Errors(); len(errs) != 0 {
		t.Errorf("expected untouched password to have no errors, got %+v", errs)
	}
}

func TestBlurField_UnknownField(t *testing.T) {
	s := newLoginState(t, nil, nil)
	if _, err := s.BlurField(context.Background(), "nope"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestValidate_OnlyTouchedFieldsReachValidator(t *testing.T) {
	ctx := context.Background()
	var seen []Values
	form := newLoginForm(t, func(v Values) Errors {
		seen = append(seen, v.Clone())
		return nil
	})
	s, err := New(form, Values{"email": "e", "password": "p"}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := s.BlurField(ctx, "password"); err != nil {
		t.Fatalf("BlurField failed: %v", err)
	}

	if len(seen) != 1 {
		t.Fatalf("expected one validator call, got %d", len(seen))
	}
	if !reflect.DeepEqual(seen[0], Values{"password": "p"}) {
		t.Errorf("expected only password, got %v", seen[0])
	}
}

func TestChangeField_DoesNotTouch(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, nil, nil)

	valid, err := s.ChangeField(ctx, "email", "")
	if err != nil {
		t.Fatalf("ChangeField failed: %v", err)
	}
	if !valid {
		t.Error("expected valid: the changed field is not touched yet")
	}
	if mustField(t, s, "email").Touched() {
		t.Error("change must not touch the field")
	}
}

func TestChangeField_UpdatesValue(t *testing.T) {
	s := newLoginState(t, nil, nil)

	if _, err := s.ChangeField(context.Background(), "email", "new@x.com"); err != nil {
		t.Fatalf("ChangeField failed: %v", err)
	}
	if got := s.Values()["email"]; got != "new@x.com" {
		t.Errorf("expected values.email updated, got %q", got)
	}
	if got := mustField(t, s, "email").Value(); got != "new@x.com" {
		t.Errorf("expected field value updated, got %q", got)
	}
}

func TestChangeField_ClearsServerErrors(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, nil, Errors{
		"email":    {{Key: "taken", Message: "already taken"}},
		"password": {{Key: "weak", Message: "is weak"}},
	})

	if _, err := s.ChangeField(ctx, "email", "new@x.com"); err != nil {
		t.Fatalf("ChangeField failed: %v", err)
	}

	if errs := mustField(t, s, "email").Errors(); len(errs) != 0 {
		t.Errorf("expected server error cleared, got %+v", errs)
	}
	if _, ok := s.ServerErrors()["email"]; ok {
		t.Error("expected server entry removed")
	}
	if errs := mustField(t, s, "password").Errors(); len(errs) != 1 {
		t.Errorf("expected other fields' server errors kept, got %+v", errs)
	}

	// Stays cleared across further passes until server errors are set again.
	s.SubmitForm(ctx)
	for _, e := range mustField(t, s, "email").Errors() {
		if e.Key == "taken" {
			t.Error("expected cleared server error not to return")
		}
	}
}

func TestChangeField_UnknownField(t *testing.T) {
	s := newLoginState(t, nil, nil)
	if _, err := s.ChangeField(context.Background(), "nope", "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if len(s.Values()) != 2 {
		t.Error("expected unknown field not to be added")
	}
}

func TestSubmitForm_TouchesAllAndValidatesAll(t *testing.T) {
	ctx := context.Background()
	var seen Values
	form := newLoginForm(t, func(v Values) Errors {
		seen = v.Clone()
		return presence(v)
	})
	s, err := New(form, nil, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if s.SubmitForm(ctx) {
		t.Error("expected invalid after submitting blank fields")
	}
	if !reflect.DeepEqual(seen, Values{"email": "", "password": ""}) {
		t.Errorf("expected all fields validated, got %v", seen)
	}
	for _, name := range []string{"email", "password"} {
		f := mustField(t, s, name)
		if !f.Touched() {
			t.Errorf("%s: expected touched after submit", name)
		}
	}

	want := []Error{{Key: "blank", Message: "can't be blank"}}
	if got := mustField(t, s, "email").Errors(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSubmitForm_Valid(t *testing.T) {
	s := newLoginState(t, Values{"email": "a@b.c", "password": "secret"}, nil)
	if !s.SubmitForm(context.Background()) {
		t.Error("expected filled form to be valid")
	}
}

func TestMergeOrder_ClientBeforeServer(t *testing.T) {
	ctx := context.Background()
	form := newLoginForm(t, func(v Values) Errors {
		if _, ok := v["email"]; !ok {
			return nil
		}
		return Errors{"email": {
			{Key: "c1", Message: "client one"},
			{Key: "c2", Message: "client two"},
		}}
	})
	s, err := New(form, nil, Errors{"email": {
		{Key: "s1", Message: "server one"},
		{Key: "s2", Message: "server two"},
	}}, WithFormatter(nil))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s.SubmitForm(ctx)

	var keys []string
	for _, e := range mustField(t, s, "email").Errors() {
		keys = append(keys, e.Key)
	}
	if !reflect.DeepEqual(keys, []string{"c1", "c2", "s1", "s2"}) {
		t.Errorf("expected client errors before server errors, got %v", keys)
	}
}

func TestValidity_IgnoresServerErrors(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, Values{"email": "a@b.c", "password": "p"}, nil)

	valid := s.SetServerErrors(ctx, Errors{"email": {{Key: "taken", Message: "already taken"}}})
	if !valid {
		t.Error("expected server errors alone to leave the form valid")
	}
	if !s.SubmitForm(ctx) {
		t.Error("expected valid submit despite server errors")
	}
	if len(mustField(t, s, "email").Errors()) != 1 {
		t.Error("expected server error to still be displayed")
	}
}

func TestSetServerErrors_DoesNotRevalidate(t *testing.T) {
	ctx := context.Background()
	calls := 0
	form := newLoginForm(t, func(v Values) Errors {
		calls++
		return presence(v)
	})
	s, err := New(form, nil, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s.SetServerErrors(ctx, Errors{"password": {{Key: "weak", Message: "is weak"}}})
	if calls != 0 {
		t.Errorf("expected validator not to run, ran %d times", calls)
	}
	if len(mustField(t, s, "password").Errors()) != 1 {
		t.Error("expected server error merged")
	}
}

func TestSetServerErrors_NilClears(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, nil, Errors{"email": {{Key: "taken", Message: "already taken"}}})

	s.SetServerErrors(ctx, nil)

	if len(mustField(t, s, "email").Errors()) != 0 {
		t.Error("expected nil to clear server errors")
	}
	if s.ServerErrors() == nil {
		t.Error("expected empty map, not nil")
	}
}

func TestSetServerErrors_KeepsClientErrors(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, nil, nil)
	s.SubmitForm(ctx)

	valid := s.SetServerErrors(ctx, Errors{"email": {{Key: "taken", Message: "already taken"}}})
	if valid {
		t.Error("expected client errors to keep the form invalid")
	}
	if got := mustField(t, s, "email").Errors(); len(got) != 2 || got[0].Key != "blank" || got[1].Key != "taken" {
		t.Errorf("expected [blank taken], got %+v", got)
	}
}

func TestUpdateValues(t *testing.T) {
	ctx := context.Background()
	calls := 0
	form := newLoginForm(t, func(v Values) Errors {
		calls++
		return nil
	})
	s, err := New(form, Values{"email": "old", "password": "old"}, Errors{"email": {{Key: "taken"}}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, _ = s.BlurField(ctx, "email")
	calls = 0

	s.UpdateValues(Values{"email": "new"})

	if calls != 0 {
		t.Error("expected no validation")
	}
	if got := mustField(t, s, "email").Value(); got != "new" {
		t.Errorf("expected 'new', got %q", got)
	}
	if got := mustField(t, s, "password").Value(); got != "" {
		t.Errorf("expected absent value to reset to empty, got %q", got)
	}
	if got := s.Values(); got["email"] != "new" || got["password"] != "" {
		t.Errorf("expected values in sync, got %v", got)
	}
	if !mustField(t, s, "email").Touched() {
		t.Error("expected touched to be preserved")
	}
	if len(s.ServerErrors()["email"]) != 1 {
		t.Error("expected server errors untouched")
	}
}

func TestReset_ClearsTouched(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, nil, nil)
	s.SubmitForm(ctx)

	valid := s.Reset(ctx, Values{"email": "x"}, Errors{"password": {{Key: "weak"}}})

	if !valid {
		t.Error("expected valid after reset")
	}
	for _, name := range []string{"email", "password"} {
		if mustField(t, s, name).Touched() {
			t.Errorf("%s: expected untouched after reset", name)
		}
	}
	if s.ClientErrors().Count() != 0 {
		t.Error("expected client errors cleared")
	}
	if len(mustField(t, s, "password").Errors()) != 1 {
		t.Error("expected new server errors applied")
	}
	if s.Values()["email"] != "x" {
		t.Error("expected reset values applied")
	}
}

func TestUpdateErrors_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, nil, Errors{"email": {{Key: "taken", Message: "already taken"}}},
		WithFormatter(func(err Error, form *Form, _ *FormState, field *FieldState) string {
			return fmt.Sprintf("%s: %s is %s", form.Name, field.Name(), err.Key)
		}))
	s.SubmitForm(ctx)

	first := mustField(t, s, "email").Errors()
	s.UpdateErrors(ctx)
	second := mustField(t, s, "email").Errors()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical lists, got %+v then %+v", first, second)
	}
}

func TestFormatter_NotConfigured(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, nil, Errors{"email": {{Key: "taken", Message: "already taken", FormattedMessage: "stale"}}})
	s.SubmitForm(ctx)

	for _, name := range []string{"email", "password"} {
		for _, e := range mustField(t, s, name).Errors() {
			if e.FormattedMessage != "" {
				t.Errorf("%s: expected no formatted message, got %q", name, e.FormattedMessage)
			}
		}
	}
}

func TestFormatter_AppliesToClientAndServer(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, nil, Errors{"email": {{Key: "taken", Message: "already taken"}}},
		WithFormatter(func(err Error, form *Form, _ *FormState, field *FieldState) string {
			return fmt.Sprintf("%s: %s is %s", form.Name, field.Name(), err.Key)
		}))
	s.SubmitForm(ctx)

	got := mustField(t, s, "email").Errors()
	want := []Error{
		{Key: "blank", Message: "can't be blank", FormattedMessage: "Form: email is blank"},
		{Key: "taken", Message: "already taken", FormattedMessage: "Form: email is taken"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestFormatter_DoesNotMutateStoredErrors(t *testing.T) {
	server := Errors{"email": {{Key: "taken", Message: "already taken"}}}
	s := newLoginState(t, nil, server,
		WithFormatter(func(err Error, _ *Form, _ *FormState, _ *FieldState) string {
			return "formatted " + err.Key
		}))

	if server["email"][0].FormattedMessage != "" {
		t.Error("expected caller's errors untouched")
	}
	if s.ServerErrors()["email"][0].FormattedMessage != "" {
		t.Error("expected stored server errors untouched")
	}
	if got := mustField(t, s, "email").Errors()[0].FormattedMessage; got != "formatted taken" {
		t.Errorf("expected formatted message on field, got %q", got)
	}
}

func TestFormatter_ProcessWideDefault(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })
	Configure(Config{
		ErrorMessageFormat: func(err Error, form *Form, _ *FormState, field *FieldState) string {
			return fmt.Sprintf("%s: %s is %s", form.Name, field.Name(), err.Key)
		},
	})

	s, err := New(newLoginForm(t, presence), nil, Errors{"email": {{Key: "taken", Message: "already taken"}}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := []Error{{Key: "taken", Message: "already taken", FormattedMessage: "Form: email is taken"}}
	if got := mustField(t, s, "email").Errors(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestFormatter_CapturedAtConstruction(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })
	Configure(Config{
		ErrorMessageFormat: func(Error, *Form, *FormState, *FieldState) string { return "first" },
	})
	s, err := New(newLoginForm(t, presence), nil, Errors{"email": {{Key: "taken"}}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	Configure(Config{
		ErrorMessageFormat: func(Error, *Form, *FormState, *FieldState) string { return "second" },
	})
	s.UpdateErrors(context.Background())

	if got := mustField(t, s, "email").Errors()[0].FormattedMessage; got != "first" {
		t.Errorf("expected captured formatter, got %q", got)
	}
}

func TestFormatter_ReceivesFormState(t *testing.T) {
	var got *FormState
	s := newLoginState(t, nil, Errors{"email": {{Key: "taken"}}},
		WithFormatter(func(_ Error, _ *Form, state *FormState, _ *FieldState) string {
			got = state
			return ""
		}))
	if got != s {
		t.Error("expected formatter to receive the owning FormState")
	}
}

func TestScenario_ServerErrorThenEdit(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, nil, Errors{"email": {{Key: "taken", Message: "already taken"}}})

	if !s.Valid() {
		t.Fatal("expected valid after construction")
	}

	if _, err := s.ChangeField(ctx, "email", "new@x.com"); err != nil {
		t.Fatalf("ChangeField failed: %v", err)
	}

	view := s.View()
	email, _ := view.Field("email")
	if len(email.Errors) != 0 {
		t.Errorf("expected no errors, got %+v", email.Errors)
	}
	if view.Values["email"] != "new@x.com" {
		t.Errorf("expected values.email = new@x.com, got %q", view.Values["email"])
	}
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	s := newLoginState(t, nil, nil)

	if _, err := s.Dispatch(ctx, Event{Kind: EventFocus, FieldName: "email"}); err != nil {
		t.Fatalf("focus failed: %v", err)
	}
	if !mustField(t, s, "email").Focused() {
		t.Error("expected focus to be routed")
	}

	if _, err := s.Dispatch(ctx, Event{Kind: EventChange, FieldName: "email", FieldValue: "a@b.c"}); err != nil {
		t.Fatalf("change failed: %v", err)
	}
	if s.Values()["email"] != "a@b.c" {
		t.Error("expected change to be routed")
	}

	valid, err := s.Dispatch(ctx, Event{Kind: EventBlur, FieldName: "email"})
	if err != nil {
		t.Fatalf("blur failed: %v", err)
	}
	if !valid || !mustField(t, s, "email").Touched() {
		t.Error("expected blur to be routed")
	}

	valid, err = s.Dispatch(ctx, Event{Kind: EventSubmit})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if valid {
		t.Error("expected blank password to fail on submit")
	}
}

func TestDispatch_UnknownKind(t *testing.T) {
	s := newLoginState(t, nil, nil)
	if _, err := s.Dispatch(context.Background(), Event{Kind: EventKind(42)}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestDispatch_MissingKind(t *testing.T) {
	s := newLoginState(t, nil, nil)
	_, err := s.Dispatch(context.Background(), Event{FieldName: "email"})
	if !errors.Is(err, ErrUnknownEventKind) {
		t.Errorf("expected ErrUnknownEventKind, got %v", err)
	}
	f, _ := s.Field("email")
	if f.Focused() {
		t.Error("expected an event without a kind to leave the field unfocused")
	}
}

func TestDispatch_UnknownField(t *testing.T) {
	s := newLoginState(t, nil, nil)
	_, err := s.Dispatch(context.Background(), Event{Kind: EventBlur, FieldName: "nope"})
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestNilValidator(t *testing.T) {
	form, err := NewForm("open", nil, Field{Name: "a"})
	if err != nil {
		t.Fatalf("NewForm failed: %v", err)
	}
	s, err := New(form, nil, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !s.SubmitForm(context.Background()) {
		t.Error("expected a form without validator to be valid")
	}
}

func TestValidator_ResultIsCopied(t *testing.T) {
	shared := Errors{"email": {{Key: "blank", Message: "can't be blank"}}}
	form := newLoginForm(t, func(Values) Errors { return shared })
	s, err := New(form, nil, nil, WithFormatter(func(Error, *Form, *FormState, *FieldState) string {
		return "x"
	}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s.SubmitForm(context.Background())

	if shared["email"][0].FormattedMessage != "" {
		t.Error("expected validator's result not to be mutated")
	}
}

type recordingMetrics struct {
	NoOpMetricsProvider
	validations []int
	merges      int
	flips       [][2]bool
	durations   []time.Duration
}

func (m *recordingMetrics) OnValidate(touched int, d time.Duration) {
	m.validations = append(m.validations, touched)
	m.durations = append(m.durations, d)
}

func (m *recordingMetrics) OnMerge(bool) { m.merges++ }

func (m *recordingMetrics) OnValidityChange(from, to bool) {
	m.flips = append(m.flips, [2]bool{from, to})
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	m := &recordingMetrics{}
	s := newLoginState(t, nil, nil, WithMetrics(m), WithClock(clockz.NewFakeClock()))

	_, _ = s.BlurField(ctx, "email")
	_, _ = s.ChangeField(ctx, "email", "a@b.c")
	s.SetServerErrors(ctx, nil)

	if !reflect.DeepEqual(m.validations, []int{1, 1}) {
		t.Errorf("expected two validations of one field, got %v", m.validations)
	}
	if m.merges != 3 {
		t.Errorf("expected 3 merges, got %d", m.merges)
	}
	if !reflect.DeepEqual(m.flips, [][2]bool{{true, false}, {false, true}}) {
		t.Errorf("unexpected validity flips %v", m.flips)
	}
	for _, d := range m.durations {
		if d != 0 {
			t.Errorf("expected zero duration on a fake clock, got %v", d)
		}
	}
}
