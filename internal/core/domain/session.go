package domain

import "time"

// Exchange is one question/answer pair in a conversation.
type Exchange struct {
	// Query is the user's question.
	Query string

	// Response is the assistant's answer text.
	Response string

	// Language is the language the exchange happened in.
	Language string

	// Timestamp is when the exchange completed.
	Timestamp time.Time
}

// Session holds per-conversation state. The caller (CLI, UI, …) owns the
// session lifecycle: it creates one per user session, passes it into every
// Answer call, and discards it when the session ends. The core never keeps
// global conversation state.
type Session struct {
	// ID uniquely identifies the session.
	ID string

	// Language is the preferred response language code (e.g. "en", "hi").
	// When empty, the core detects it from the query text.
	Language string

	// Location is the user's city, used for weather lookups.
	Location string

	// SoilType is the user's soil type, when known.
	SoilType string

	// Crop is the user's current or planned crop, when known.
	Crop string

	// LandSize is the user's land size in hectares, free-form.
	LandSize string

	// History is the conversation so far, oldest first.
	History []Exchange
}

// Remember appends a completed exchange to the session history.
func (s *Session) Remember(query, response, language string) {
	s.History = append(s.History, Exchange{
		Query:     query,
		Response:  response,
		Language:  language,
		Timestamp: time.Now().UTC(),
	})
}

// Preferences is the persisted per-user profile.
type Preferences struct {
	// UserID identifies the user. Unique per row; a save for an existing
	// user replaces the prior profile.
	UserID string

	// Language is the preferred language code.
	Language string

	// Location is the user's city.
	Location string

	// CropPreferences are the user's preferred crops.
	CropPreferences []string

	// SoilType is the user's soil type.
	SoilType string

	// LandSize is the user's land size in hectares, free-form.
	LandSize string

	// UpdatedAt is when the profile was last saved.
	UpdatedAt time.Time
}
