// Package validation provides the construction gate for graph declarations.
//
// Shape failures are a distinct class from the findings returned by
// (*spec.GraphSpec).Validate: a declaration that fails the gate was never
// a well-formed graph, so structural validation is not attempted on it.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/flowspec/flowspec/internal/core/spec"
)

// validate is the shared instance with the flowspec tags registered.
var validate = validator.New()

// specIDPattern accepts identifiers safe for reports and storage keys.
var specIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister("spec_id", validateSpecID)
	mustRegister("edge_condition", validateEdgeCondition)
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

func validateSpecID(fl validator.FieldLevel) bool {
	return specIDPattern.MatchString(fl.Field().String())
}

func validateEdgeCondition(fl validator.FieldLevel) bool {
	return spec.EdgeCondition(fl.Field().String()).Known()
}

// CheckSpec rejects declarations that violate construction invariants:
// tag-level field constraints first, then relational shape (duplicate
// node and edge ids). A graph must pass CheckSpec before its Validate
// findings mean anything.
func CheckSpec(g *spec.GraphSpec) error {
	if g == nil {
		return spec.ErrNilGraphSpec
	}
	if err := validate.Struct(g); err != nil {
		return formatErrors(err)
	}
	return g.CheckShape()
}

// CheckStruct applies tag-level constraints to any annotated value.
func CheckStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return formatErrors(err)
	}
	return nil
}

// FieldError describes one violated constraint on one field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error returns the human-readable message
func (e FieldError) Error() string {
	return e.Message
}

// FieldErrors collects every violated constraint of one gate pass.
type FieldErrors []FieldError

// Error joins the individual messages
func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// formatErrors flattens validator output into FieldErrors with json
// field names. Non-validator errors pass through unchanged.
func formatErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Namespace(),
			Tag:     fe.Tag(),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", fe.Namespace(), fe.Param())
	case "spec_id":
		return fmt.Sprintf("%s is not a valid identifier", fe.Namespace())
	case "edge_condition":
		return fmt.Sprintf("%s must be one of %v", fe.Namespace(), spec.KnownConditions())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Namespace(), fe.Tag())
	}
}
