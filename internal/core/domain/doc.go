// Package domain defines the core business entities for AgriVaani.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A normalised knowledge-base record (soil, crop, or scheme)
//   - SearchResult: A ranked retrieval hit for a query
//   - Classification: An intent classification with confidence and entities
//   - WeatherSnapshot: A point-in-time weather observation for a location
//   - Session: Caller-owned conversation state passed into the core
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
