// Package io loads and writes waypoint graph documents.
//
// A graph source is either a local file path or an http(s) URL:
//
//	g, err := io.Load(ctx, "data/graph.json")
//	g, err := io.Load(ctx, "https://example.com/maps/france.json")
//
// Documents are decoded and validated by [graph.Parse]; any structural
// problem is reported as a MALFORMED_GRAPH error. A missing file yields
// FILE_NOT_FOUND, and remote fetch failures NETWORK_ERROR.
//
// Servers use [LoadOrEmpty], which never fails outright: on error it returns
// the empty graph together with the error, so the caller can log the problem
// and keep serving in degraded mode.
//
// Every load attempt is reported to the observability graph hooks.
package io
