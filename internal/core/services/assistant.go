package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driving"
	"github.com/agrivaani-labs/agrivaani-cli/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// System prompts per language. The model answers in the query's language.
const (
	systemPromptEN = "You are an agricultural advisor helping Indian farmers. " +
		"Answer in clear, simple English using the provided context. " +
		"Be practical and specific. If the context does not cover the question, say so."

	systemPromptHI = "आप भारतीय किसानों की मदद करने वाले कृषि सलाहकार हैं। " +
		"दिए गए संदर्भ का उपयोग करके सरल हिंदी में उत्तर दें। " +
		"व्यावहारिक और specific सलाह दें।"
)

// Canned offline answers per intent, with fixed confidences reflecting how
// much a generic answer can be trusted for that intent.
var offlineAnswers = map[domain.Intent]struct {
	text       string
	confidence float64
}{
	domain.IntentIrrigation: {
		text:       "Monitor soil moisture. Water early morning or evening if soil is dry.",
		confidence: 0.7,
	},
	domain.IntentCropRecommendation: {
		text:       "Choose crops suited to your soil type and season. In kharif consider rice, cotton, or maize; in rabi consider wheat or mustard.",
		confidence: 0.6,
	},
	domain.IntentGovernmentSchemes: {
		text:       "Check PM-KISAN, Fasal Bima Yojana, and Soil Health Card schemes. Visit your nearest agriculture office or the scheme portals for enrolment.",
		confidence: 0.8,
	},
	domain.IntentFertilizer: {
		text:       "Get a soil test first. Apply balanced NPK based on the test report and supplement with organic manure.",
		confidence: 0.6,
	},
	domain.IntentGeneral: {
		text:       "Consult your local agriculture extension office for guidance specific to your farm.",
		confidence: 0.5,
	},
}

// AssistantService is the single entry point that strings classification,
// retrieval, the weather side channel, context assembly, and generation
// together. The LLM is optional; every other piece degrades independently,
// so Answer always produces a usable result.
type AssistantService struct {
	intents   *IntentService
	retrieval *RetrievalService
	weather   *WeatherService
	builder   *ContextBuilder
	llm       driven.LLMService
	corpus    driven.CorpusStore

	queryLog driven.QueryLog
	recCache driven.RecommendationCache

	sourceTopK  int
	contextTopK int
	recTTL      time.Duration
}

// NewAssistantService creates the assistant. llm, queryLog, and recCache
// may be nil; the corresponding behaviour is skipped.
func NewAssistantService(
	intents *IntentService,
	retrieval *RetrievalService,
	weather *WeatherService,
	builder *ContextBuilder,
	llm driven.LLMService,
	corpus driven.CorpusStore,
	queryLog driven.QueryLog,
	recCache driven.RecommendationCache,
	settings domain.AppSettings,
) *AssistantService {
	return &AssistantService{
		intents:     intents,
		retrieval:   retrieval,
		weather:     weather,
		builder:     builder,
		llm:         llm,
		corpus:      corpus,
		queryLog:    queryLog,
		recCache:    recCache,
		sourceTopK:  settings.Retrieval.SourceTopK,
		contextTopK: settings.Retrieval.ContextTopK,
		recTTL:      settings.Cache.RecommendationTTL,
	}
}

// Answer processes one query end to end. It never fails outright: degraded
// paths return a lower-confidence, offline-flavoured Answer. The returned
// error is reserved for context cancellation.
func (s *AssistantService) Answer(ctx context.Context, session *domain.Session, query string) (domain.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Answer{
			Text:       "Please ask a question about crops, irrigation, fertilizers, or government schemes.",
			Confidence: 0,
			Intent:     domain.IntentGeneral,
			Offline:    s.llm == nil,
		}, nil
	}

	language := session.Language
	if language == "" {
		language = DetectLanguage(query)
	}

	classification := s.intents.Classify(ctx, query)
	logger.Debug("assistant: intent %s (%.2f)", classification.Intent, classification.Confidence)

	logID := s.logQuery(ctx, query, language, classification.Intent)

	results, err := s.retrieval.Search(ctx, query, s.contextTopK)
	if err != nil {
		logger.Warn("assistant: retrieval failed: %v", err)
		results = nil
	}

	var snapshot *domain.WeatherSnapshot
	var advice *domain.IrrigationAdvice
	if classification.Intent.RequiresWeather() && s.weather != nil {
		w := s.weather.Current(ctx, s.location(session))
		a := Advise(w)
		snapshot, advice = &w, &a
	}

	answer := s.generate(ctx, session, query, language, classification, results, snapshot, advice)
	answer.Intent = classification.Intent
	answer.Sources = s.sources(results)

	// Only live answers settle the log entry. Offline answers leave the
	// entry unprocessed so the backlog replay can produce a real one later.
	if logID != 0 && !answer.Offline && answer.Text != "" {
		if err := s.queryLog.AttachResponse(ctx, logID, answer.Text); err != nil {
			logger.Warn("assistant: attaching response to log entry %d: %v", logID, err)
		}
	}

	session.Remember(query, answer.Text, language)
	return answer, nil
}

// generate produces the answer text, preferring the live model, then the
// recommendation cache, then the canned offline answers.
func (s *AssistantService) generate(
	ctx context.Context,
	session *domain.Session,
	query, language string,
	classification domain.Classification,
	results []domain.SearchResult,
	snapshot *domain.WeatherSnapshot,
	advice *domain.IrrigationAdvice,
) domain.Answer {
	if s.llm != nil {
		text, err := s.generateLive(ctx, query, language, results, snapshot, advice)
		if err == nil {
			s.cacheRecommendation(ctx, session, classification.Intent, text)
			return domain.Answer{
				Text:       text,
				Confidence: liveConfidence(classification, results),
				Offline:    false,
			}
		}
		logger.Warn("assistant: generation failed, serving offline answer: %v", err)
	}

	return s.offlineAnswer(ctx, session, classification.Intent, results, advice)
}

// generateLive builds the prompt context and asks the model.
func (s *AssistantService) generateLive(
	ctx context.Context,
	query, language string,
	results []domain.SearchResult,
	snapshot *domain.WeatherSnapshot,
	advice *domain.IrrigationAdvice,
) (string, error) {
	system := systemPromptEN
	if language == "hi" {
		system = systemPromptHI
	}

	promptContext := s.builder.Build(results, snapshot, advice)
	messages := []driven.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: promptContext + "\nQuestion: " + query},
	}

	text, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return strings.TrimSpace(text), nil
}

// offlineAnswer serves the best available answer without the model: a
// cached recommendation when one is fresh, otherwise the canned answer for
// the intent. With no knowledge base either, confidence drops to zero.
func (s *AssistantService) offlineAnswer(
	ctx context.Context,
	session *domain.Session,
	intent domain.Intent,
	results []domain.SearchResult,
	advice *domain.IrrigationAdvice,
) domain.Answer {
	if s.recCache != nil {
		var cached string
		err := s.recCache.Get(ctx, s.recommendationKey(session, intent), &cached)
		if err == nil && cached != "" {
			return domain.Answer{Text: cached, Confidence: 0.6, Offline: true}
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("assistant: recommendation cache read: %v", err)
		}
	}

	canned := offlineAnswers[intent]
	if canned.text == "" {
		canned = offlineAnswers[domain.IntentGeneral]
	}

	text := canned.text
	confidence := canned.confidence

	// The rule engine's advice is more specific than the canned line.
	if intent == domain.IntentIrrigation && advice != nil {
		text = advice.Recommendation
	}

	// When the session names a soil type, the knowledge base can answer a
	// crop question directly.
	if intent == domain.IntentCropRecommendation {
		if soilText := s.soilCropAnswer(session); soilText != "" {
			text = soilText
		}
	}

	if len(results) == 0 && s.retrieval.Size() == 0 {
		// Nothing to ground on at all: no model, no cache hit, no corpus.
		return domain.Answer{
			Text:       "The assistant is offline and no local knowledge is available. Your question has been saved and will be answered when the service is back.",
			Confidence: 0,
			Offline:    true,
		}
	}

	return domain.Answer{Text: text, Confidence: confidence, Offline: true}
}

// ProcessBacklog replays unprocessed queries oldest first once the model is
// reachable. Entries that still fail stay unprocessed for the next run.
func (s *AssistantService) ProcessBacklog(ctx context.Context) (int, error) {
	if s.llm == nil {
		return 0, domain.ErrLLMUnavailable
	}
	if s.queryLog == nil {
		return 0, nil
	}

	if err := s.llm.Ping(ctx); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	backlog, err := s.queryLog.ListUnprocessed(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing backlog: %w", err)
	}

	processed := 0
	for _, entry := range backlog {
		results, err := s.retrieval.Search(ctx, entry.QueryText, s.contextTopK)
		if err != nil {
			logger.Warn("backlog: retrieval for entry %d: %v", entry.ID, err)
			results = nil
		}

		text, err := s.generateLive(ctx, entry.QueryText, entry.Language, results, nil, nil)
		if err != nil {
			logger.Warn("backlog: generation for entry %d: %v", entry.ID, err)
			continue
		}

		if err := s.queryLog.AttachResponse(ctx, entry.ID, text); err != nil {
			logger.Warn("backlog: attaching response to entry %d: %v", entry.ID, err)
			continue
		}
		processed++
	}

	logger.Info("backlog: processed %d of %d entries", processed, len(backlog))
	return processed, nil
}

// soilCropAnswer builds a crop recommendation from the structured soil
// record, or returns "" when the session has no usable soil type.
func (s *AssistantService) soilCropAnswer(session *domain.Session) string {
	if s.corpus == nil || session.SoilType == "" {
		return ""
	}
	profile, err := s.corpus.SoilProfile(session.SoilType)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("assistant: soil lookup: %v", err)
		}
		return ""
	}
	if len(profile.SuitableCrops) == 0 {
		return ""
	}
	return fmt.Sprintf("For %s, suitable crops include: %s.",
		profile.Name, strings.Join(profile.SuitableCrops, ", "))
}

// logQuery appends to the query log, returning 0 when logging is disabled
// or fails. A log fault never blocks answering.
func (s *AssistantService) logQuery(ctx context.Context, query, language string, intent domain.Intent) int64 {
	if s.queryLog == nil {
		return 0
	}
	id, err := s.queryLog.Append(ctx, query, language, intent.String())
	if err != nil {
		logger.Warn("assistant: logging query: %v", err)
		return 0
	}
	return id
}

// cacheRecommendation stores a successful answer for offline reuse.
func (s *AssistantService) cacheRecommendation(ctx context.Context, session *domain.Session, intent domain.Intent, text string) {
	if s.recCache == nil {
		return
	}
	if err := s.recCache.Put(ctx, s.recommendationKey(session, intent), text, s.recTTL); err != nil {
		logger.Warn("assistant: caching recommendation: %v", err)
	}
}

// recommendationKey composes the offline cache key from intent and the
// session's farm profile.
func (s *AssistantService) recommendationKey(session *domain.Session, intent domain.Intent) string {
	return strings.Join([]string{
		intent.String(),
		strings.ToLower(session.Location),
		strings.ToLower(session.Crop),
	}, ":")
}

// sources returns the top source references, deduplicated, at most
// sourceTopK entries.
func (s *AssistantService) sources(results []domain.SearchResult) []string {
	if len(results) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var refs []string
	for _, result := range results {
		if len(refs) >= s.sourceTopK {
			break
		}
		ref := result.Document.Ref()
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	return refs
}

// location returns the session location, defaulting to Delhi so weather is
// always resolvable.
func (s *AssistantService) location(session *domain.Session) string {
	if session.Location != "" {
		return session.Location
	}
	return "Delhi"
}

// liveConfidence scores a successful live answer from the classification
// confidence and whether retrieval produced grounding material.
func liveConfidence(classification domain.Classification, results []domain.SearchResult) float64 {
	confidence := 0.9
	if classification.Confidence < 0.5 {
		confidence = 0.8
	}
	if len(results) == 0 {
		confidence -= 0.2
	}
	return confidence
}
