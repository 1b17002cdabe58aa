package formstate

import "fmt"

// ValidateFunc computes client errors for the given values.
//
// Implementations must be pure and synchronous. They are called with only the
// touched fields, so they must tolerate missing names and should report
// errors only for fields present in values. Fields without errors may be
// omitted or mapped to an empty list.
type ValidateFunc func(values Values) Errors

// Field describes a declared form field. The engine only relies on Name;
// Label is carried for formatters and renderers.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Form is the schema descriptor a FormState is built from. Fields are kept in
// declaration order and must not change once a FormState uses the form.
type Form struct {
	Name     string
	Fields   []Field
	Validate ValidateFunc
}

// NewForm builds a Form after checking that every field has a unique,
// non-empty name.
func NewForm(name string, validate ValidateFunc, fields ...Field) (*Form, error) {
	f := &Form{Name: name, Fields: fields, Validate: validate}
	if err := f.check(); err != nil {
		return nil, err
	}
	return f, nil
}

// FieldNames returns the declared field names in order.
func (f *Form) FieldNames() []string {
	names := make([]string, len(f.Fields))
	for i, field := range f.Fields {
		names[i] = field.Name
	}
	return names
}

// HasField reports whether name is declared.
func (f *Form) HasField(name string) bool {
	_, ok := f.Lookup(name)
	return ok
}

// Lookup returns the declared field called name.
func (f *Form) Lookup(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// validate runs the form's validator. A nil validator never reports errors.
func (f *Form) validate(values Values) Errors {
	if f.Validate == nil {
		return Errors{}
	}
	errs := f.Validate(values)
	if errs == nil {
		return Errors{}
	}
	return errs
}

func (f *Form) check() error {
	seen := make(map[string]struct{}, len(f.Fields))
	for i, field := range f.Fields {
		if field.Name == "" {
			return fmt.Errorf("field %d: %w", i, ErrEmptyFieldName)
		}
		if _, ok := seen[field.Name]; ok {
			return fmt.Errorf("field %q: %w", field.Name, ErrDuplicateField)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}
