// Package domain defines the core domain types and interfaces.
//
// Concept-oriented files (review.go, cache.go, errors.go) hold shared types and the
// contracts implemented by adapters. No implementation code, just contracts; interfaces
// live here so adapters and the app layer never import each other.
package domain
