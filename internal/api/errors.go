// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Error codes used in models.APIError.
const (
	codeValidation         = "VALIDATION_ERROR"
	codeNotFound           = "NOT_FOUND"
	codeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	codeFeatureUnavailable = "FEATURE_UNAVAILABLE"
	codeRateLimited        = "RATE_LIMIT_EXCEEDED"
	codeTimeout            = "TIMEOUT"
	codeCancelled          = "REQUEST_CANCELLED"
	codeInternal           = "INTERNAL_ERROR"
)

// errorStatus maps a domain error to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, recommend.ErrFeatureUnavailable):
		return http.StatusServiceUnavailable, codeFeatureUnavailable
	case errors.Is(err, recommend.ErrUnknownGenre),
		errors.Is(err, catalog.ErrUnknownDataset),
		errors.Is(err, database.ErrFileNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, codeTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, codeCancelled
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
