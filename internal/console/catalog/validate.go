package catalog

import (
	"github.com/go-playground/validator/v10"

	"github.com/reservat/provider-console/internal/common/apperrors"
)

var draftValidator *validator.Validate

// v returns the package validator, created on first use.
func v() *validator.Validate {
	if draftValidator == nil {
		draftValidator = validator.New(validator.WithRequiredStructEnabled())
	}
	return draftValidator
}

// wireFieldNames maps Draft struct fields to the backend field names reported
// in validation errors.
var wireFieldNames = map[string]string{
	"Name":        "nombre",
	"Description": "descripcion",
	"Price":       "precio",
	"Vertical":    "tipo_servicio",
}

// validateDraft applies the local input rules that no backend round trip can
// fix: non-empty name and description, positive price, known vertical.
// Violations are reported together, with the offending field names.
func validateDraft(d Draft) apperrors.Error {
	var ves apperrors.ValidationErrors

	if err := v().Struct(d); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				name := wireFieldNames[fe.StructField()]
				if name == "" {
					name = fe.StructField()
				}
				ves = append(ves, apperrors.ValidationError{
					Field:  name,
					Value:  fe.Value(),
					ErrStr: "failed rule " + fe.Tag(),
				})
			}
		} else {
			return ErrFieldValidation.Err(err)
		}
	}

	if !d.Vertical.Valid() {
		ves = append(ves, apperrors.ValidationError{
			Field:  "tipo_servicio",
			Value:  string(d.Vertical),
			ErrStr: "must be one of hotel, restaurante, tour",
		})
	}

	if len(ves) > 0 {
		return ErrFieldValidation.Err(ves)
	}
	return nil
}

// validatePatch checks only the fields the patch actually sets.
func validatePatch(p Patch) apperrors.Error {
	var ves apperrors.ValidationErrors

	if p.Name != nil && *p.Name == "" {
		ves = append(ves, apperrors.ValidationError{Field: "nombre", Value: *p.Name, ErrStr: "must not be empty"})
	}
	if p.Description != nil && *p.Description == "" {
		ves = append(ves, apperrors.ValidationError{Field: "descripcion", Value: *p.Description, ErrStr: "must not be empty"})
	}
	if p.Price != nil && *p.Price <= 0 {
		ves = append(ves, apperrors.ValidationError{Field: "precio", Value: *p.Price, ErrStr: "must be greater than zero"})
	}

	if len(ves) > 0 {
		return ErrFieldValidation.Err(ves)
	}
	return nil
}
