package schema

import (
	"errors"
	"fmt"

	"github.com/zoobzio/formstate"
	"github.com/zoobzio/formstate/rules"
)

// FieldSpec declares one field and its rules in a schema document.
type FieldSpec struct {
	Name      string   `json:"name" yaml:"name"`
	Label     string   `json:"label,omitempty" yaml:"label,omitempty"`
	Presence  bool     `json:"presence,omitempty" yaml:"presence,omitempty"`
	Email     bool     `json:"email,omitempty" yaml:"email,omitempty"`
	URL       bool     `json:"url,omitempty" yaml:"url,omitempty"`
	Numeric   bool     `json:"numeric,omitempty" yaml:"numeric,omitempty"`
	MinLength int      `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength int      `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	OneOf     []string `json:"one_of,omitempty" yaml:"one_of,omitempty"`
	Confirms  string   `json:"confirms,omitempty" yaml:"confirms,omitempty"`
}

// Document is the serialized form of a form descriptor.
type Document struct {
	Name   string      `json:"name" yaml:"name"`
	Fields []FieldSpec `json:"fields" yaml:"fields"`
}

// Decode parses a schema document and checks it with Validate.
func Decode(codec formstate.Codec, data []byte) (Document, error) {
	var doc Document
	if err := codec.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("unmarshal failed: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, fmt.Errorf("validation failed: %w", err)
	}
	return doc, nil
}

// Validate checks that the document names a form, declares at least one
// field, and that every field is uniquely named with consistent rules.
func (d Document) Validate() error {
	if d.Name == "" {
		return errors.New("form name is required")
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("form %q declares no fields", d.Name)
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for i, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %d: %w", i, formstate.ErrEmptyFieldName)
		}
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("field %q: %w", f.Name, formstate.ErrDuplicateField)
		}
		seen[f.Name] = struct{}{}

		if f.MinLength < 0 || f.MaxLength < 0 {
			return fmt.Errorf("field %q: lengths must not be negative", f.Name)
		}
		if f.MaxLength > 0 && f.MinLength > f.MaxLength {
			return fmt.Errorf("field %q: min_length %d exceeds max_length %d", f.Name, f.MinLength, f.MaxLength)
		}
	}

	for _, f := range d.Fields {
		if f.Confirms == "" {
			continue
		}
		if f.Confirms == f.Name {
			return fmt.Errorf("field %q: cannot confirm itself", f.Name)
		}
		if _, ok := seen[f.Confirms]; !ok {
			return fmt.Errorf("field %q: confirms %w: %q", f.Name, formstate.ErrUnknownField, f.Confirms)
		}
	}

	return nil
}

// Rules converts the document into a rule set, one entry per field in order.
func (d Document) Rules() rules.Set {
	set := make(rules.Set, len(d.Fields))
	for i, f := range d.Fields {
		set[i] = rules.FieldRules{Name: f.Name, Label: f.Label, Rules: f.rules()}
	}
	return set
}

// Build returns the form descriptor described by the document.
func (d Document) Build() (*formstate.Form, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return rules.Form(d.Name, d.Rules())
}

func (f FieldSpec) rules() []rules.Rule {
	var rs []rules.Rule
	if f.Presence {
		rs = append(rs, rules.Presence())
	}
	if f.Email {
		rs = append(rs, rules.Email())
	}
	if f.URL {
		rs = append(rs, rules.URL())
	}
	if f.Numeric {
		rs = append(rs, rules.Numeric())
	}
	if f.MinLength > 0 {
		rs = append(rs, rules.MinLength(f.MinLength))
	}
	if f.MaxLength > 0 {
		rs = append(rs, rules.MaxLength(f.MaxLength))
	}
	if len(f.OneOf) > 0 {
		rs = append(rs, rules.OneOf(f.OneOf...))
	}
	if f.Confirms != "" {
		rs = append(rs, rules.Confirms(f.Confirms))
	}
	return rs
}
