package rules

import (
	"github.com/zoobzio/formstate"
)

// FieldRules declares one field and the rules applied to it, in order.
type FieldRules struct {
	Name  string
	Label string
	Rules []Rule
}

// Set is an ordered list of field declarations.
type Set []FieldRules

// Validate checks the fields present in values and returns their errors in
// rule order. Fields absent from values are not checked, so the result is
// keyed only by fields the caller provided.
func (s Set) Validate(values formstate.Values) formstate.Errors {
	errs := formstate.Errors{}
	for _, field := range s {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		for _, rule := range field.Rules {
			if rule.check(value, values) {
				continue
			}
			errs[field.Name] = append(errs[field.Name], formstate.Error{
				Key:     rule.Key,
				Message: rule.Message,
			})
		}
	}
	return errs
}

// Fields returns the declared fields in order.
func (s Set) Fields() []formstate.Field {
	fields := make([]formstate.Field, len(s))
	for i, f := range s {
		fields[i] = formstate.Field{Name: f.Name, Label: f.Label}
	}
	return fields
}

// Form builds a form descriptor named name whose validator is s.
func Form(name string, s Set) (*formstate.Form, error) {
	return formstate.NewForm(name, s.Validate, s.Fields()...)
}
