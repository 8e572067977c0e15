// Package file loads the static agricultural knowledge base from JSON
// files. A default corpus is embedded at compile time; a data directory can
// override it so users can extend the knowledge base without rebuilding.
package file

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
	"github.com/agrivaani-labs/agrivaani-cli/internal/logger"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// Knowledge file names, identical for the embedded and on-disk corpus.
const (
	soilFile    = "soil_data.json"
	cropFile    = "crop_data.json"
	schemesFile = "schemes_data.json"
)

//go:embed data/*.json
var defaultCorpus embed.FS

// CorpusStore reads soil, crop, and scheme records and flattens them into
// retrievable documents.
type CorpusStore struct {
	// dataDir overrides the embedded corpus when non-empty.
	dataDir string
}

// NewCorpusStore creates a corpus store. An empty dataDir uses the corpus
// embedded in the binary.
func NewCorpusStore(dataDir string) *CorpusStore {
	return &CorpusStore{dataDir: dataDir}
}

// soilData mirrors soil_data.json.
type soilData struct {
	SoilTypes map[string]domain.SoilProfile `json:"soil_types"`
}

// cropData mirrors crop_data.json.
type cropData struct {
	Crops map[string]domain.CropProfile `json:"crops"`
}

// schemesData mirrors schemes_data.json.
type schemesData struct {
	GovernmentSchemes map[string]domain.Scheme `json:"government_schemes"`
}

// Load returns all knowledge-base documents. The flattened content uses a
// fixed field order and categories are sorted within each type, so repeated
// loads of the same files produce byte-identical documents - cosine
// similarity is stable across index rebuilds.
//
// Any unreadable or malformed source degrades to an empty corpus: the
// fault is logged and callers treat the empty set as "index unavailable".
func (s *CorpusStore) Load(_ context.Context) ([]domain.Document, error) {
	soils, err := s.loadSoils()
	if err != nil {
		logger.Error("corpus: loading soil data: %v", err)
		return []domain.Document{}, nil
	}
	crops, err := s.loadCrops()
	if err != nil {
		logger.Error("corpus: loading crop data: %v", err)
		return []domain.Document{}, nil
	}
	schemes, err := s.loadSchemes()
	if err != nil {
		logger.Error("corpus: loading schemes data: %v", err)
		return []domain.Document{}, nil
	}

	docs := make([]domain.Document, 0, len(soils)+len(crops)+len(schemes))

	for _, key := range sortedKeys(soils) {
		docs = append(docs, soilDocument(key, soils[key]))
	}
	for _, key := range sortedKeys(crops) {
		docs = append(docs, cropDocument(key, crops[key]))
	}
	for _, key := range sortedKeys(schemes) {
		docs = append(docs, schemeDocument(key, schemes[key]))
	}

	logger.Info("corpus: loaded %d documents", len(docs))
	return docs, nil
}

// SoilProfile returns the structured record for a soil type key.
func (s *CorpusStore) SoilProfile(soilType string) (*domain.SoilProfile, error) {
	soils, err := s.loadSoils()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
	}
	profile, ok := soils[strings.ToLower(soilType)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &profile, nil
}

// CropProfile returns the structured record for a crop key.
func (s *CorpusStore) CropProfile(name string) (*domain.CropProfile, error) {
	crops, err := s.loadCrops()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
	}
	profile, ok := crops[strings.ToLower(name)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &profile, nil
}

// Schemes returns all government schemes keyed by scheme ID.
func (s *CorpusStore) Schemes() (map[string]domain.Scheme, error) {
	schemes, err := s.loadSchemes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
	}
	return schemes, nil
}

func (s *CorpusStore) loadSoils() (map[string]domain.SoilProfile, error) {
	var parsed soilData
	if err := s.readJSON(soilFile, &parsed); err != nil {
		return nil, err
	}
	return parsed.SoilTypes, nil
}

func (s *CorpusStore) loadCrops() (map[string]domain.CropProfile, error) {
	var parsed cropData
	if err := s.readJSON(cropFile, &parsed); err != nil {
		return nil, err
	}
	return parsed.Crops, nil
}

func (s *CorpusStore) loadSchemes() (map[string]domain.Scheme, error) {
	var parsed schemesData
	if err := s.readJSON(schemesFile, &parsed); err != nil {
		return nil, err
	}
	return parsed.GovernmentSchemes, nil
}

// readJSON reads a knowledge file from the data directory when configured,
// otherwise from the embedded corpus.
func (s *CorpusStore) readJSON(name string, out any) error {
	var (
		raw []byte
		err error
	)
	if s.dataDir != "" {
		raw, err = os.ReadFile(filepath.Join(s.dataDir, name))
	} else {
		raw, err = defaultCorpus.ReadFile("data/" + name)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// soilDocument flattens a soil record. Field order is fixed: changing it
// changes every soil embedding.
func soilDocument(key string, p domain.SoilProfile) domain.Document {
	var b strings.Builder
	b.WriteString("Soil Type: " + p.Name + ". ")
	b.WriteString("pH Range: " + p.Characteristics.PHRange + ". ")
	b.WriteString("Drainage: " + p.Characteristics.Drainage + ". ")
	b.WriteString("Fertility: " + p.Characteristics.Fertility + ". ")
	b.WriteString("Suitable crops: " + strings.Join(p.SuitableCrops, ", ") + ". ")
	b.WriteString("Nitrogen requirement: " + p.Fertilizer.Nitrogen + ". ")
	b.WriteString("Phosphorus requirement: " + p.Fertilizer.Phosphorus + ". ")
	b.WriteString("Potassium requirement: " + p.Fertilizer.Potassium + ". ")
	b.WriteString("Found in regions: " + strings.Join(p.Regions, ", ") + ".")

	return domain.Document{
		Content:  b.String(),
		Type:     domain.DocumentTypeSoil,
		Category: key,
		Source:   toSourceMap(p),
	}
}

// cropDocument flattens a crop record with the same fixed-order rule.
func cropDocument(key string, p domain.CropProfile) domain.Document {
	var b strings.Builder
	b.WriteString("Crop: " + p.Name + ". ")
	b.WriteString("Season: " + strings.Join(p.Season, ", ") + ". ")
	b.WriteString("Duration: " + strconv.Itoa(p.DurationDays) + " days. ")
	b.WriteString("Water requirement: " + p.WaterRequirement + ". ")
	b.WriteString("Suitable soil types: " + strings.Join(p.SoilTypes, ", ") + ". ")
	b.WriteString("Planting months: " + joinInts(p.PlantingMonths) + ". ")
	b.WriteString("Harvesting months: " + joinInts(p.HarvestingMonths) + ".")

	return domain.Document{
		Content:  b.String(),
		Type:     domain.DocumentTypeCrop,
		Category: key,
		Source:   toSourceMap(p),
	}
}

// schemeDocument flattens a scheme record with the same fixed-order rule.
func schemeDocument(key string, p domain.Scheme) domain.Document {
	var b strings.Builder
	b.WriteString("Government Scheme: " + p.Name + ". ")
	b.WriteString("Description: " + p.Description + ". ")
	b.WriteString("Benefits: " + p.Benefits + ". ")
	b.WriteString("Ministry: " + p.Ministry + ". ")
	b.WriteString("Launch Year: " + strconv.Itoa(p.LaunchYear) + ".")
	if len(p.Eligibility) > 0 {
		b.WriteString(" Eligibility criteria available.")
	}

	return domain.Document{
		Content:  b.String(),
		Type:     domain.DocumentTypeScheme,
		Category: key,
		Source:   toSourceMap(p),
	}
}

// toSourceMap keeps the original structured record on the document for
// downstream consumers (recommendation surface, scheme listing).
func toSourceMap(record any) map[string]any {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
