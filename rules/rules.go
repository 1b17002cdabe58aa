// Package rules provides declarative field rules that compile into a
// formstate.ValidateFunc.
//
// Each rule is evaluated with go-playground/validator against the string
// value of one field. Presence is the only rule that judges blank values;
// every other rule passes when the value is empty, so a blank optional field
// is never reported as malformed.
package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. It is safe for concurrent use
// and caches parsed tags.
var validate = newValidator()

// tagOneOfList compares a value against the []string passed to VarWithValue.
// Unlike the built-in oneof tag, allowed values are never parsed out of a
// tag string, so quotes, spaces and tabs are matched literally.
const tagOneOfList = "oneof_list"

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(tagOneOfList, oneOfList); err != nil {
		panic(fmt.Sprintf("rules: register %s: %v", tagOneOfList, err))
	}
	return v
}

func oneOfList(fl validator.FieldLevel) bool {
	allowed, ok := fl.Parent().Interface().([]string)
	if !ok {
		return false
	}
	return slices.Contains(allowed, fl.Field().String())
}

// Error keys produced by the built-in rules.
const (
	KeyBlank        = "blank"
	KeyInvalid      = "invalid"
	KeyTooShort     = "too_short"
	KeyTooLong      = "too_long"
	KeyNotANumber   = "not_a_number"
	KeyInclusion    = "inclusion"
	KeyConfirmation = "confirmation"
)

// Rule is a single check applied to a field's value.
type Rule struct {
	// Name identifies the rule in schema documents and diagnostics.
	Name string

	// Key and Message populate the formstate.Error reported on failure.
	Key     string
	Message string

	tag       string
	other     string
	allowed   []string
	skipBlank bool
}

// Presence fails when the value is empty or whitespace only.
func Presence() Rule {
	return Rule{
		Name:    "presence",
		Key:     KeyBlank,
		Message: "can't be blank",
		tag:     "required",
	}
}

// Email fails when the value is not an email address.
func Email() Rule {
	return Rule{
		Name:      "email",
		Key:       KeyInvalid,
		Message:   "is invalid",
		tag:       "email",
		skipBlank: true,
	}
}

// URL fails when the value is not an absolute URL.
func URL() Rule {
	return Rule{
		Name:      "url",
		Key:       KeyInvalid,
		Message:   "is invalid",
		tag:       "url",
		skipBlank: true,
	}
}

// Numeric fails when the value is not a number.
func Numeric() Rule {
	return Rule{
		Name:      "numeric",
		Key:       KeyNotANumber,
		Message:   "is not a number",
		tag:       "numeric",
		skipBlank: true,
	}
}

// MinLength fails when the value has fewer than n characters.
func MinLength(n int) Rule {
	return Rule{
		Name:      "min_length",
		Key:       KeyTooShort,
		Message:   fmt.Sprintf("is too short (minimum is %d characters)", n),
		tag:       fmt.Sprintf("min=%d", n),
		skipBlank: true,
	}
}

// MaxLength fails when the value has more than n characters.
func MaxLength(n int) Rule {
	return Rule{
		Name:      "max_length",
		Key:       KeyTooLong,
		Message:   fmt.Sprintf("is too long (maximum is %d characters)", n),
		tag:       fmt.Sprintf("max=%d", n),
		skipBlank: true,
	}
}

// OneOf fails when the value is not one of allowed.
func OneOf(allowed ...string) Rule {
	return Rule{
		Name:      "one_of",
		Key:       KeyInclusion,
		Message:   "is not included in the list",
		tag:       tagOneOfList,
		allowed:   slices.Clone(allowed),
		skipBlank: true,
	}
}

// Confirms fails when the value differs from the value of field. The rule is
// skipped while field is absent from the validated values.
func Confirms(field string) Rule {
	return Rule{
		Name:    "confirms",
		Key:     KeyConfirmation,
		Message: "doesn't match " + humanize(field),
		tag:     "eqfield",
		other:   field,
	}
}

// check returns false when value violates r. Values holds every field the
// validator was given, for cross-field rules.
func (r Rule) check(value string, values map[string]string) bool {
	if r.skipBlank && value == "" {
		return true
	}
	if r.other != "" {
		other, ok := values[r.other]
		if !ok {
			return true
		}
		return validate.VarWithValue(value, other, r.tag) == nil
	}
	if r.tag == tagOneOfList {
		return validate.VarWithValue(value, r.allowed, r.tag) == nil
	}
	if r.tag == "required" {
		value = strings.TrimSpace(value)
	}
	return validate.Var(value, r.tag) == nil
}

func humanize(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
