// Marquee - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services adapts Marquee components to suture's Serve(ctx) error
contract.

HTTPServerService wraps *http.Server. ListenAndServe runs in the
background and context cancellation triggers a graceful Shutdown.

BadgerGCService runs value-log GC on the badger resolution cache every
interval. Outcomes are counted in marquee_badger_gc_runs_total{result}.

Both implement fmt.Stringer so supervisor events name them.
*/
package services
