// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

// Request structs carry query parameters through validation.ValidateStruct.
// Upper bounds come from configuration, so they sit in a sibling field that
// ltefield compares against.

// RecommendRequest is the query of the three recommendation endpoints.
type RecommendRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	K     int    `json:"k" validate:"min=1,ltefield=MaxK"`
	MaxK  int    `json:"-" validate:"-"`
}

// PopularRequest is the query of the popular endpoints.
type PopularRequest struct {
	Genre string `json:"genre" validate:"omitempty,max=64"`
	K     int    `json:"k" validate:"min=1,ltefield=MaxK"`
	MaxK  int    `json:"-" validate:"-"`
}

// DatasetRequest is the query of the dataset preview endpoint.
type DatasetRequest struct {
	Name     string `json:"name" validate:"required,max=64"`
	Limit    int    `json:"limit" validate:"min=1,ltefield=MaxLimit"`
	MaxLimit int    `json:"-" validate:"-"`
}
