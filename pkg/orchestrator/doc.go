// Package orchestrator wires the source → normalize → match → mutate → mark
// pipeline into a single Fill call, with dependency injection friendly
// options for callers and tests that replace individual stages.
package orchestrator
