package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorpusUnavailable indicates the static knowledge base is missing
	// or corrupt. Callers treat this as "index unavailable", not fatal.
	ErrCorpusUnavailable = errors.New("knowledge corpus unavailable")

	// ErrIndexUnavailable indicates the vector index is empty or unbuilt.
	// Retrieval degrades to a positional fallback.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrInvalidDimension indicates a vector does not match the index
	// dimension.
	ErrInvalidDimension = errors.New("invalid vector dimension")

	// ErrLLMUnavailable indicates the AI service is not configured or not
	// reachable. Classification and generation fall back to offline paths.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrWeatherUnavailable indicates the weather provider call was
	// unusable (timeout, non-2xx, malformed body). Callers fall back to
	// the cache, then the static default snapshot.
	ErrWeatherUnavailable = errors.New("weather provider unavailable")

	// ErrMalformedClassification indicates the AI service returned output
	// that does not parse as the expected strict JSON shape. Classification
	// falls through to the lexical fallback, never propagating this.
	ErrMalformedClassification = errors.New("malformed classification output")
)
