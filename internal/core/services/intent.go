package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
	"github.com/agrivaani-labs/agrivaani-cli/internal/logger"
)

// classifyPrompt asks the model for strict JSON. Anything else falls back
// to the lexical classifier.
const classifyPrompt = `Classify this agricultural query into one of these intents:
- crop_recommendation
- irrigation
- government_schemes
- fertilizer
- general

Query: %q

Respond with JSON only, no other text:
{"intent": "<intent>", "confidence": <0.0-1.0>, "entities": ["<term>", ...]}`

// Trigger terms per intent, English and Hindi. A query scores
// matches/len(set) for each intent and the best non-zero score wins.
var intentTriggers = map[domain.Intent][]string{
	domain.IntentCropRecommendation: {
		"crop", "seed", "plant", "grow", "cultivation", "farming", "harvest",
		"फसल", "बीज", "खेती", "उगाना", "बोना",
	},
	domain.IntentIrrigation: {
		"water", "irrigation", "watering", "rain", "drought", "moisture",
		"पानी", "सिंचाई", "बारिश", "सूखा",
	},
	domain.IntentGovernmentSchemes: {
		"scheme", "subsidy", "government", "loan", "insurance", "support",
		"योजना", "सब्सिडी", "सरकार", "लोन", "बीमा", "सहायता",
	},
	domain.IntentFertilizer: {
		"fertilizer", "manure", "nutrition", "nutrient", "soil health",
		"खाद", "उर्वरक", "पोषण",
	},
}

// IntentService classifies queries. The LLM path produces structured
// classifications; when the LLM is absent, errors, or returns something
// unparseable, the lexical fallback takes over. Classification never fails.
type IntentService struct {
	llm               driven.LLMService
	neutralConfidence float64
}

// NewIntentService creates an intent classifier. llm may be nil, in which
// case only the lexical fallback runs.
func NewIntentService(llm driven.LLMService, neutralConfidence float64) *IntentService {
	if neutralConfidence <= 0 {
		neutralConfidence = domain.DefaultAppSettings().Intent.NeutralConfidence
	}
	return &IntentService{
		llm:               llm,
		neutralConfidence: neutralConfidence,
	}
}

// Classify determines the query's intent. Always returns a valid
// Classification.
func (s *IntentService) Classify(ctx context.Context, query string) domain.Classification {
	if s.llm != nil {
		if c, ok := s.classifyLLM(ctx, query); ok {
			return c
		}
	}
	return s.classifyLexical(query)
}

// llmClassification mirrors the JSON the prompt requests.
type llmClassification struct {
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   []string `json:"entities"`
}

// classifyLLM asks the model and parses its reply. ok is false for any
// transport error or malformed reply; the caller then runs the fallback.
func (s *IntentService) classifyLLM(ctx context.Context, query string) (domain.Classification, bool) {
	reply, err := s.llm.Generate(ctx, fmt.Sprintf(classifyPrompt, query), driven.GenerateOptions{
		MaxTokens:   200,
		Temperature: 0.1,
	})
	if err != nil {
		logger.Debug("intent: LLM classification failed: %v", err)
		return domain.Classification{}, false
	}

	parsed, ok := parseClassification(reply)
	if !ok {
		logger.Debug("intent: malformed LLM classification, using fallback")
		return domain.Classification{}, false
	}
	return parsed, true
}

// parseClassification extracts a Classification from an LLM reply. Models
// sometimes wrap the JSON in prose or code fences, so the parser tolerates
// surrounding text but nothing inside the object itself.
func parseClassification(reply string) (domain.Classification, bool) {
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start < 0 || end <= start {
		return domain.Classification{}, false
	}

	var parsed llmClassification
	if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err != nil {
		return domain.Classification{}, false
	}

	intent := domain.Intent(parsed.Intent)
	if !intent.IsValid() {
		return domain.Classification{}, false
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		return domain.Classification{}, false
	}

	return domain.Classification{
		Intent:     intent,
		Confidence: parsed.Confidence,
		Entities:   parsed.Entities,
	}, true
}

// classifyLexical scores the query against each intent's trigger set. The
// score is matched terms over set size; the highest non-zero score wins and
// a no-match query is general with the neutral confidence.
func (s *IntentService) classifyLexical(query string) domain.Classification {
	lowered := strings.ToLower(query)

	best := domain.Classification{
		Intent:     domain.IntentGeneral,
		Confidence: 0,
	}
	for intent, triggers := range intentTriggers {
		matched := 0
		var entities []string
		for _, term := range triggers {
			if strings.Contains(lowered, term) {
				matched++
				entities = append(entities, term)
			}
		}
		if matched == 0 {
			continue
		}
		score := float64(matched) / float64(len(triggers))
		if score > best.Confidence ||
			(score == best.Confidence && intent < best.Intent) {
			best = domain.Classification{
				Intent:     intent,
				Confidence: score,
				Entities:   entities,
			}
		}
	}

	if best.Intent == domain.IntentGeneral {
		best.Confidence = s.neutralConfidence
	}
	return best
}

// DetectLanguage returns "hi" when the text contains Devanagari characters,
// "en" otherwise.
func DetectLanguage(text string) string {
	for _, r := range text {
		if unicode.Is(unicode.Devanagari, r) {
			return "hi"
		}
	}
	return "en"
}
