package domain

import "time"

// Answer is the structured result of the assistant's sole entry point.
// Answer is always valid: degraded paths lower Confidence and change the
// text, they never replace the result with an error.
type Answer struct {
	// Text is the response, in the requested language.
	Text string

	// Sources are human-readable references to the documents the answer
	// drew on, e.g. "Soil: alluvial".
	Sources []string

	// Confidence is in [0, 1]. 0.0 means the system had neither knowledge
	// base, cache, nor AI service to draw on.
	Confidence float64

	// Intent is the classified intent of the query.
	Intent Intent

	// Offline reports whether the answer was produced without the AI
	// service.
	Offline bool
}

// QueryLogEntry is one row of the append-only query log. Entries are
// created for every incoming query, updated at most once when a response
// becomes available, and never deleted - unprocessed rows are the offline
// backlog replayed when the AI service resumes.
type QueryLogEntry struct {
	// ID is the monotonically increasing log identifier.
	ID int64

	// QueryText is the raw user query.
	QueryText string

	// ResponseText is the answer, empty until one is attached.
	ResponseText string

	// Language is the query's language code.
	Language string

	// Intent is the classified intent, when known at append time.
	Intent string

	// Timestamp is when the query arrived.
	Timestamp time.Time

	// Processed reports whether a response has been attached.
	Processed bool
}
