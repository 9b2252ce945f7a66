// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/ratecast/internal/validation"
)

// recommendQuery holds the parsed query string of a recommendation request.
type recommendQuery struct {
	K           int  `json:"k" validate:"min=1"`
	IncludeSeen bool `json:"include_seen"`
}

// parseRecommendQuery reads k and include_seen. A missing k uses defaultK.
func parseRecommendQuery(r *http.Request, defaultK int) (recommendQuery, *APIError) {
	q := recommendQuery{K: defaultK}
	values := r.URL.Query()

	if raw := strings.TrimSpace(values.Get("k")); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			return q, paramError("k", raw, "k must be an integer")
		}
		q.K = k
	}

	if raw := strings.TrimSpace(values.Get("include_seen")); raw != "" {
		includeSeen, err := strconv.ParseBool(raw)
		if err != nil {
			return q, paramError("include_seen", raw, "include_seen must be a boolean")
		}
		q.IncludeSeen = includeSeen
	}

	if apiErr := validateRequest(&q); apiErr != nil {
		return q, apiErr
	}
	return q, nil
}

// paramError builds a VALIDATION_ERROR for a query parameter that failed to parse.
func paramError(field, value, message string) *APIError {
	return &APIError{
		Code:    validation.CodeValidationError,
		Message: message,
		Details: map[string]interface{}{
			"field": field,
			"value": value,
		},
	}
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
//
// Example:
//
//	q := recommendQuery{K: getIntParam(r, "k", 5)}
//	if apiErr := validateRequest(&q); apiErr != nil {
//	    respondError(w, r, http.StatusBadRequest, apiErr, nil)
//	    return
//	}
func validateRequest(v interface{}) *APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}
