// Package testing provides test utilities and helpers for formstate testing.
package testing

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/formstate"
	"github.com/zoobzio/formstate/rules"
	"github.com/zoobzio/formstate/schema"
)

// LoginForm returns a form with required email and password fields, the
// canonical fixture for FormState tests.
func LoginForm(t *testing.T) *formstate.Form {
	t.Helper()
	form, err := rules.Form("Form", rules.Set{
		{Name: "email", Rules: []rules.Rule{rules.Presence()}},
		{Name: "password", Rules: []rules.Rule{rules.Presence()}},
	})
	if err != nil {
		t.Fatalf("failed to build login form: %v", err)
	}
	return form
}

// NewLoginState mounts LoginForm. Formatting is disabled unless an option
// enables it, so results do not depend on process-wide configuration.
func NewLoginState(t *testing.T, values formstate.Values, serverErrors formstate.Errors, opts ...formstate.Option) *formstate.FormState {
	t.Helper()
	opts = append([]formstate.Option{formstate.WithFormatter(nil)}, opts...)
	s, err := formstate.New(LoginForm(t), values, serverErrors, opts...)
	if err != nil {
		t.Fatalf("failed to mount login form: %v", err)
	}
	return s
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForState waits until the loader reaches the expected state or timeout occurs.
func WaitForState(t *testing.T, l *schema.Loader, expected schema.State, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return l.State() == expected
	})
}

// RequireField fails the test immediately if the form does not declare name.
func RequireField(t *testing.T, s *formstate.FormState, name string) *formstate.FieldState {
	t.Helper()
	f, ok := s.Field(name)
	if !ok {
		t.Fatalf("expected field %q to exist", name)
	}
	return f
}

// RequireValid fails the test if the last merge pass reported client errors.
func RequireValid(t *testing.T, s *formstate.FormState) {
	t.Helper()
	if !s.Valid() {
		t.Fatalf("expected form to be valid, client errors: %+v", s.ClientErrors())
	}
}

// RequireInvalid fails the test if the last merge pass reported no client errors.
func RequireInvalid(t *testing.T, s *formstate.FormState) {
	t.Helper()
	if s.Valid() {
		t.Fatal("expected form to be invalid")
	}
}

// RequireErrorKeys fails the test unless the field's merged errors carry
// exactly keys, in order.
func RequireErrorKeys(t *testing.T, s *formstate.FormState, field string, keys ...string) {
	t.Helper()
	got := []string{}
	for _, e := range RequireField(t, s, field).Errors() {
		got = append(got, e.Key)
	}
	if keys == nil {
		keys = []string{}
	}
	if !reflect.DeepEqual(got, keys) {
		t.Fatalf("field %q: expected error keys %v, got %v", field, keys, got)
	}
}

// RequireTouched fails the test unless every named field is touched.
func RequireTouched(t *testing.T, s *formstate.FormState, fields ...string) {
	t.Helper()
	for _, name := range fields {
		if !RequireField(t, s, name).Touched() {
			t.Fatalf("expected field %q to be touched", name)
		}
	}
}

// RequireUntouched fails the test if any named field is touched.
func RequireUntouched(t *testing.T, s *formstate.FormState, fields ...string) {
	t.Helper()
	for _, name := range fields {
		if RequireField(t, s, name).Touched() {
			t.Fatalf("expected field %q to be untouched", name)
		}
	}
}

// RecordingMetrics is a formstate.MetricsProvider that records every callback.
type RecordingMetrics struct {
	mu          sync.Mutex
	Validations []int
	Merges      []bool
	Flips       [][2]bool
}

// OnValidate implements formstate.MetricsProvider.
func (m *RecordingMetrics) OnValidate(touched int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Validations = append(m.Validations, touched)
}

// OnMerge implements formstate.MetricsProvider.
func (m *RecordingMetrics) OnMerge(valid bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Merges = append(m.Merges, valid)
}

// OnValidityChange implements formstate.MetricsProvider.
func (m *RecordingMetrics) OnValidityChange(from, to bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flips = append(m.Flips, [2]bool{from, to})
}

// Ensure RecordingMetrics implements formstate.MetricsProvider.
var _ formstate.MetricsProvider = (*RecordingMetrics)(nil)
