package formstate

// FieldState holds one field's value, attached errors and interaction flags.
//
// Touched is monotonic: it becomes true through Blur or Touch and is only
// cleared when the owning FormState is reset. Changing the value or focusing
// the field never marks it touched.
type FieldState struct {
	name    string
	value   string
	errors  []Error
	focused bool
	touched bool
}

func newFieldState(name, value string) *FieldState {
	return &FieldState{name: name, value: value}
}

// Name returns the field's identifier.
func (f *FieldState) Name() string { return f.name }

// Value returns the current value.
func (f *FieldState) Value() string { return f.value }

// Errors returns a copy of the attached errors, client errors first.
func (f *FieldState) Errors() []Error { return cloneErrors(f.errors) }

// Focused reports whether the field currently holds input focus.
func (f *FieldState) Focused() bool { return f.focused }

// Touched reports whether the field has been blurred or forced by a submit.
func (f *FieldState) Touched() bool { return f.touched }

// Focus marks the field as focused.
func (f *FieldState) Focus() {
	f.focused = true
}

// Blur releases focus and marks the field touched. The caller is expected to
// run a validation pass afterwards.
func (f *FieldState) Blur() {
	f.focused = false
	f.touched = true
}

// Change sets a user-entered value. Touched is left as is.
func (f *FieldState) Change(value string) {
	f.value = value
}

// Touch marks the field touched unconditionally.
func (f *FieldState) Touch() {
	f.touched = true
}

// SetErrors replaces the attached errors with a copy of list.
func (f *FieldState) SetErrors(list []Error) {
	f.errors = cloneErrors(list)
}

// SetValue replaces the value directly, for programmatic seeding and resets.
func (f *FieldState) SetValue(value string) {
	f.value = value
}
