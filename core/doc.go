// Package core contains the form's UI-independent state and contracts.
//
// Allowed here:
// - the selection widget state machine (query, suggestions, bounded selection)
// - suggestion visibility rules (blur grace window, focus containment)
// - key registries, status messages and shared bar rendering
//
// Not allowed here:
// - network calls, persistence or configuration loading
// - concrete screen layout
package core
