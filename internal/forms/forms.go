// Package forms validates the booking form's fixed field set. Rules are pure:
// the validator returns structured results and never touches presentation.
package forms

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind tags a field with its validation rule.
type Kind string

const (
	RequiredText           Kind = "required-text"
	RequiredEmail          Kind = "required-email"
	RequiredDate           Kind = "required-date"
	RequiredPositiveNumber Kind = "required-positive-number"
)

// Field registers one named input.
type Field struct {
	ID   string
	Kind Kind
}

// Validator holds the registered field set. Construction fails on a malformed
// set; a bad registration is a configuration bug and should surface in tests,
// not at validation time.
type Validator struct {
	fields []Field
	kinds  map[string]Kind
}

// NewValidator builds a Validator over the given fields.
func NewValidator(fields ...Field) (*Validator, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("forms: no fields registered")
	}
	v := &Validator{kinds: make(map[string]Kind, len(fields))}
	for _, f := range fields {
		id := strings.TrimSpace(f.ID)
		if id == "" {
			return nil, fmt.Errorf("forms: field with empty identifier")
		}
		if _, dup := v.kinds[id]; dup {
			return nil, fmt.Errorf("forms: duplicate field %q", id)
		}
		switch f.Kind {
		case RequiredText, RequiredEmail, RequiredDate, RequiredPositiveNumber:
		default:
			return nil, fmt.Errorf("forms: field %q has unknown kind %q", id, f.Kind)
		}
		v.kinds[id] = f.Kind
		v.fields = append(v.fields, Field{ID: id, Kind: f.Kind})
	}
	return v, nil
}

// Fields returns the registered fields in registration order.
func (v *Validator) Fields() []Field {
	out := make([]Field, len(v.fields))
	copy(out, v.fields)
	return out
}

// ValidateField checks a single registered field's value. A nil result is a
// pass; a failing value yields a *validation.Error carrying the reason code.
// Referencing an unregistered field is a configuration error.
func (v *Validator) ValidateField(id, value string) error {
	kind, ok := v.kinds[id]
	if !ok {
		return fmt.Errorf("forms: unknown field %q", id)
	}
	return check(kind, value)
}

// Validate runs every registered field against values and returns nil when
// all pass, or validation.Errors keyed by the failing field identifiers.
// Fields absent from values are treated as empty.
func (v *Validator) Validate(values map[string]string) error {
	errs := validation.Errors{}
	for _, f := range v.fields {
		if err := check(f.Kind, values[f.ID]); err != nil {
			errs[f.ID] = err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FailingFields extracts the sorted failing field identifiers from a
// Validate result. A nil error yields nil.
func FailingFields(err error) []string {
	errs, ok := err.(validation.Errors)
	if !ok || len(errs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(errs))
	for id := range errs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// emailPattern wants exactly one @ with a non-empty local part and at least
// one dot-separated label after it. Intentionally loose beyond that.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func check(kind Kind, value string) error {
	trimmed := strings.TrimSpace(value)
	switch kind {
	case RequiredText, RequiredDate:
		if trimmed == "" {
			return errRequired
		}
	case RequiredEmail:
		if trimmed == "" {
			return errRequired
		}
		if value != trimmed || !emailPattern.MatchString(value) {
			return errEmail
		}
	case RequiredPositiveNumber:
		if trimmed == "" {
			return errRequired
		}
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || n <= 0 {
			return errPositive
		}
	}
	return nil
}

var (
	errRequired = validation.NewError("forms.field_required", "this field is required")
	errEmail    = validation.NewError("forms.email_invalid", "enter a valid email address")
	errPositive = validation.NewError("forms.number_not_positive", "enter a number greater than zero")
)
