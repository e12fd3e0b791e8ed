// Package health exposes aggregated target health over HTTP.
//
// A Checker reduces many targets' {live, ready} flags into the two boolean
// predicates the orchestrator serves: overall liveness is the logical AND of
// every target's live flag, overall readiness the AND of every ready flag.
// Nothing is cached; each request re-derives the answer.
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, set)
//
// The liveness endpoint answers 200/500, the readiness endpoint 200/503,
// both with empty bodies. /targets serves a JSON snapshot per target.
package health
