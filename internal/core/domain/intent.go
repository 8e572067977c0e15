package domain

// Intent is the closed set of query categories the assistant understands.
type Intent string

// Available intents.
const (
	// IntentCropRecommendation covers what-to-grow and seed selection queries.
	IntentCropRecommendation Intent = "crop_recommendation"

	// IntentIrrigation covers watering, irrigation timing, and water management.
	IntentIrrigation Intent = "irrigation"

	// IntentGovernmentSchemes covers schemes, subsidies, loans, and insurance.
	IntentGovernmentSchemes Intent = "government_schemes"

	// IntentFertilizer covers fertilisers, soil nutrition, and soil health.
	IntentFertilizer Intent = "fertilizer"

	// IntentGeneral is the default for anything else.
	IntentGeneral Intent = "general"
)

// IsValid returns true if the intent is recognised.
func (i Intent) IsValid() bool {
	switch i {
	case IntentCropRecommendation, IntentIrrigation, IntentGovernmentSchemes,
		IntentFertilizer, IntentGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (i Intent) String() string {
	return string(i)
}

// RequiresWeather returns true if answering this intent needs the weather
// side channel.
func (i Intent) RequiresWeather() bool {
	return i == IntentIrrigation
}

// Classification is the result of intent classification.
type Classification struct {
	// Intent is the classified query category.
	Intent Intent

	// Confidence is in [0, 1]. The fallback classifier's neutral default
	// (for unmatched queries) is an arbitrary constant, not a measured
	// probability - callers must not treat it as one.
	Confidence float64

	// Entities are terms extracted from the query, when available.
	Entities []string
}
