// Package app provides the application service layer.
//
// Orchestrates the review use cases: input validation, result caching, analysis,
// best-effort persistence and dashboard statistics. Sits between HTTP handlers and
// domain repositories. Depends on domain interfaces, not concrete implementations.
package app
