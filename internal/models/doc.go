// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines the wire types shared by the HTTP API.

Every endpoint answers with an APIResponse envelope:

	{
	  "status": "success" | "error",
	  "data": ...,
	  "metadata": {"timestamp": "...", "query_time_ms": 12},
	  "error": {"code": "...", "message": "...", "details": {...}}
	}

Domain payloads (recommendation results, dataset previews) live in the
packages that produce them; this package only holds the envelope and the
health report, which aggregates several of those packages.

All types use snake_case JSON tags and are safe to marshal with
github.com/goccy/go-json.
*/
package models
