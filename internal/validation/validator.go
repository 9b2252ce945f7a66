// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

// Package validation wraps go-playground/validator v10 behind a shared,
// lazily built validator instance.
//
// Field names in messages follow the koanf or json tag of the field, so a
// config error reads "server.port must be at most 65535" style names and an
// API error reads "k must be at least 1" instead of Go field names.
//
// Custom tags:
//   - finite: a float that is neither NaN nor infinite
//
// Example usage:
//
//	type recommendQuery struct {
//	    K int `json:"k" validate:"min=1,max=1000"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// CodeValidationError is the API error code for failed validation.
const CodeValidationError = "VALIDATION_ERROR"

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule on one field.
type FieldError struct {
	Field   string      `json:"field"`
	Tag     string      `json:"tag"`
	Param   string      `json:"param,omitempty"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

// Error returns the human-readable message.
func (e FieldError) Error() string {
	return e.Message
}

// RequestValidationError collects every field that failed validation.
type RequestValidationError struct {
	Fields []FieldError
}

// Error joins all field messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}

	messages := make([]string, len(ve.Fields))
	for i, fe := range ve.Fields {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}

// APIError is the error body returned by the HTTP layer.
// Kept here rather than in the api package so config and loaders can share it.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts validation errors to a VALIDATION_ERROR API error.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.Fields) {
	case 0:
		return &APIError{Code: CodeValidationError, Message: "Validation failed"}
	case 1:
		fe := ve.Fields[0]
		return &APIError{
			Code:    CodeValidationError,
			Message: fe.Message,
			Details: map[string]interface{}{
				"field": fe.Field,
				"tag":   fe.Tag,
				"value": fe.Value,
			},
		}
	default:
		return &APIError{
			Code:    CodeValidationError,
			Message: ve.Error(),
			Details: map[string]interface{}{
				"fields": ve.Fields,
			},
		}
	}
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(tagName)

		if err := validate.RegisterValidation("finite", isFinite); err != nil {
			panic(fmt.Sprintf("register finite validator: %v", err))
		}
	})

	return validate
}

// tagName reports a field by its koanf key, then its json name, then its Go name.
func tagName(fld reflect.StructField) string {
	for _, key := range []string{"koanf", "json"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// isFinite rejects NaN and infinite floats.
func isFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// ValidateStruct validates s with the shared validator.
// Returns nil if validation passes.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}},
		}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			Field:   fieldPath(fe),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: translateError(fe),
		}
	}

	return &RequestValidationError{Fields: fields}
}

// fieldPath returns the dotted path of the field without the root struct name.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// messages maps tags to templates; %[1]s is the field and %[2]s the param.
var messages = map[string]string{
	"required":      "%[1]s is required",
	"finite":        "%[1]s must be a finite number",
	"oneof":         "%[1]s must be one of: %[2]s",
	"gte":           "%[1]s must be greater than or equal to %[2]s",
	"lte":           "%[1]s must be less than or equal to %[2]s",
	"gt":            "%[1]s must be greater than %[2]s",
	"lt":            "%[1]s must be less than %[2]s",
	"hostname_port": "%[1]s must be host:port",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fieldPath(fe)
	param := fe.Param()

	if template, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf(template, field, param)
	}

	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
