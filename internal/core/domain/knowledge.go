package domain

// SoilProfile is the structured form of one soil type record.
type SoilProfile struct {
	// Name is the display name, e.g. "Alluvial Soil".
	Name string `json:"name"`

	// Characteristics holds pH range, drainage, and fertility.
	Characteristics SoilCharacteristics `json:"characteristics"`

	// SuitableCrops are crop keys that grow well in this soil.
	SuitableCrops []string `json:"suitable_crops"`

	// Fertilizer holds NPK requirement descriptions.
	Fertilizer FertilizerRecommendations `json:"fertilizer_recommendations"`

	// Regions are where this soil is found.
	Regions []string `json:"regions"`
}

// SoilCharacteristics describe a soil type.
type SoilCharacteristics struct {
	PHRange   string `json:"ph_range"`
	Drainage  string `json:"drainage"`
	Fertility string `json:"fertility"`
}

// FertilizerRecommendations hold per-nutrient requirement descriptions.
type FertilizerRecommendations struct {
	Nitrogen   string `json:"nitrogen"`
	Phosphorus string `json:"phosphorus"`
	Potassium  string `json:"potassium"`
}

// CropProfile is the structured form of one crop record.
type CropProfile struct {
	// Name is the display name, e.g. "Rice".
	Name string `json:"name"`

	// Season lists growing seasons (kharif, rabi, …).
	Season []string `json:"season"`

	// DurationDays is the crop cycle length.
	DurationDays int `json:"duration_days"`

	// WaterRequirement describes irrigation demand.
	WaterRequirement string `json:"water_requirement"`

	// SoilTypes are soil keys this crop suits.
	SoilTypes []string `json:"soil_types"`

	// PlantingMonths are calendar months (1-12) for planting.
	PlantingMonths []int `json:"planting_months"`

	// HarvestingMonths are calendar months (1-12) for harvest.
	HarvestingMonths []int `json:"harvesting_months"`
}

// Scheme is the structured form of one government scheme record.
type Scheme struct {
	// Name is the official scheme name.
	Name string `json:"name"`

	// Description summarises the scheme.
	Description string `json:"description"`

	// Benefits describes what the scheme provides.
	Benefits string `json:"benefits"`

	// Ministry is the administering ministry.
	Ministry string `json:"ministry"`

	// LaunchYear is when the scheme started.
	LaunchYear int `json:"launch_year"`

	// Eligibility lists eligibility criteria, when published.
	Eligibility []string `json:"eligibility,omitempty"`
}
