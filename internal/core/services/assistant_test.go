package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/embedding/lexical"
	"github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/storage/memory"
	"github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/vectorindex/flat"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
)

// assistantFixture wires an assistant with in-memory storage and scripted
// external services.
type assistantFixture struct {
	svc      *AssistantService
	llm      *fakeLLM
	corpus   *fakeCorpus
	queryLog *memory.QueryLog
	recCache *memory.RecommendationCache
	provider *fakeWeatherProvider
}

// newAssistant builds the fixture. llm may be nil for offline scenarios.
func newAssistant(t *testing.T, llm *fakeLLM) *assistantFixture {
	t.Helper()

	settings := domain.DefaultAppSettings()
	embedder := lexical.NewEmbeddingService(lexical.DefaultDimensions)
	index := flat.NewIndex(lexical.DefaultDimensions)
	corpus := &fakeCorpus{docs: testDocs()}
	retrieval := NewRetrievalService(corpus, embedder, index, settings.Retrieval.ContextTopK)
	require.NoError(t, retrieval.Rebuild(context.Background()))

	provider := &fakeWeatherProvider{
		snapshot: domain.WeatherSnapshot{Temperature: 36, Humidity: 35, Source: domain.WeatherSourceAPI},
	}
	weather := NewWeatherService(provider, memory.NewWeatherCache(), time.Hour)

	queryLog := memory.NewQueryLog()
	recCache := memory.NewRecommendationCache()

	// A typed nil pointer in the interface would defeat the service's
	// nil checks, so only assign when a fake is provided.
	var llmService driven.LLMService
	if llm != nil {
		llmService = llm
	}

	intents := NewIntentService(llmService, settings.Intent.NeutralConfidence)
	svc := NewAssistantService(
		intents, retrieval, weather, NewContextBuilder(settings.Context.MaxLength),
		llmService, corpus, queryLog, recCache, settings,
	)

	return &assistantFixture{
		svc:      svc,
		llm:      llm,
		corpus:   corpus,
		queryLog: queryLog,
		recCache: recCache,
		provider: provider,
	}
}

func TestAnswer_LivePath(t *testing.T) {
	llm := &fakeLLM{
		generateReply: `{"intent": "crop_recommendation", "confidence": 0.9, "entities": ["rice"]}`,
		chatReply:     "Rice suits alluvial soil in the kharif season.",
	}
	f := newAssistant(t, llm)
	session := &domain.Session{ID: "s1"}

	answer, err := f.svc.Answer(context.Background(), session, "what should I grow on alluvial soil")
	require.NoError(t, err)

	assert.Equal(t, "Rice suits alluvial soil in the kharif season.", answer.Text)
	assert.Equal(t, domain.IntentCropRecommendation, answer.Intent)
	assert.False(t, answer.Offline)
	assert.NotEmpty(t, answer.Sources)
	assert.LessOrEqual(t, len(answer.Sources), 3)
	assert.Greater(t, answer.Confidence, 0.5)

	// Live answers settle the log entry and land in the session history.
	backlog, err := f.queryLog.ListUnprocessed(context.Background())
	require.NoError(t, err)
	assert.Empty(t, backlog)
	require.Len(t, session.History, 1)
	assert.Equal(t, answer.Text, session.History[0].Response)
}

func TestAnswer_OfflineCannedAnswers(t *testing.T) {
	tests := []struct {
		query      string
		intent     domain.Intent
		confidence float64
	}{
		{"which government subsidy can I get", domain.IntentGovernmentSchemes, 0.8},
		{"which seed should I plant", domain.IntentCropRecommendation, 0.6},
		{"hello", domain.IntentGeneral, 0.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			f := newAssistant(t, nil)
			session := &domain.Session{ID: "s1"}

			answer, err := f.svc.Answer(context.Background(), session, tt.query)
			require.NoError(t, err)

			assert.True(t, answer.Offline)
			assert.Equal(t, tt.intent, answer.Intent)
			assert.Equal(t, tt.confidence, answer.Confidence)
			assert.NotEmpty(t, answer.Text)
		})
	}
}

func TestAnswer_OfflineIrrigationUsesRuleEngine(t *testing.T) {
	f := newAssistant(t, nil)
	session := &domain.Session{ID: "s1", Location: "Delhi"}

	// Provider snapshot is hot and dry, so the rule engine recommends
	// immediate irrigation and that text wins over the canned line.
	answer, err := f.svc.Answer(context.Background(), session, "should I water my field today")
	require.NoError(t, err)

	assert.True(t, answer.Offline)
	assert.Equal(t, domain.IntentIrrigation, answer.Intent)
	assert.Contains(t, answer.Text, "Immediate irrigation")
	assert.Equal(t, 0.7, answer.Confidence)
	assert.Equal(t, 1, f.provider.calls)
}

func TestAnswer_OfflineLeavesBacklogEntry(t *testing.T) {
	f := newAssistant(t, nil)
	session := &domain.Session{ID: "s1"}
	ctx := context.Background()

	_, err := f.svc.Answer(ctx, session, "which crop for black soil")
	require.NoError(t, err)

	backlog, err := f.queryLog.ListUnprocessed(ctx)
	require.NoError(t, err)
	require.Len(t, backlog, 1)
	assert.Equal(t, "which crop for black soil", backlog[0].QueryText)
}

func TestAnswer_OfflineCropAnswerUsesSoilProfile(t *testing.T) {
	f := newAssistant(t, nil)
	f.corpus.soils = map[string]*domain.SoilProfile{
		"alluvial": {
			Name:          "Alluvial Soil",
			SuitableCrops: []string{"rice", "wheat", "sugarcane"},
		},
	}
	session := &domain.Session{ID: "s1", SoilType: "alluvial"}

	answer, err := f.svc.Answer(context.Background(), session, "which seed should I plant")
	require.NoError(t, err)

	assert.True(t, answer.Offline)
	assert.Equal(t, domain.IntentCropRecommendation, answer.Intent)
	assert.Equal(t, "For Alluvial Soil, suitable crops include: rice, wheat, sugarcane.", answer.Text)
}

func TestAnswer_OfflinePrefersCachedRecommendation(t *testing.T) {
	f := newAssistant(t, nil)
	session := &domain.Session{ID: "s1", Location: "Jaipur", Crop: "wheat"}
	ctx := context.Background()

	require.NoError(t, f.recCache.Put(ctx, "crop_recommendation:jaipur:wheat",
		"Wheat does well here; sow by mid-November.", 24*time.Hour))

	answer, err := f.svc.Answer(ctx, session, "which seed should I plant")
	require.NoError(t, err)

	assert.True(t, answer.Offline)
	assert.Equal(t, "Wheat does well here; sow by mid-November.", answer.Text)
}

func TestAnswer_LLMFailureDegradesToOffline(t *testing.T) {
	f := newAssistant(t, &fakeLLM{err: errFakeUnavailable})
	session := &domain.Session{ID: "s1"}

	answer, err := f.svc.Answer(context.Background(), session, "which seed should I plant")
	require.NoError(t, err)

	assert.True(t, answer.Offline)
	assert.Equal(t, domain.IntentCropRecommendation, answer.Intent)
	assert.Equal(t, 0.6, answer.Confidence)
}

func TestAnswer_EmptyQuery(t *testing.T) {
	f := newAssistant(t, nil)

	answer, err := f.svc.Answer(context.Background(), &domain.Session{}, "   ")
	require.NoError(t, err)

	assert.Zero(t, answer.Confidence)
	assert.Equal(t, domain.IntentGeneral, answer.Intent)
	assert.NotEmpty(t, answer.Text)
}

func TestAnswer_HindiQueryGetsHindiSystemPrompt(t *testing.T) {
	llm := &fakeLLM{
		generateReply: `{"intent": "irrigation", "confidence": 0.9, "entities": []}`,
		chatReply:     "सुबह जल्दी सिंचाई करें।",
	}
	f := newAssistant(t, llm)
	session := &domain.Session{ID: "s1", Location: "Delhi"}

	_, err := f.svc.Answer(context.Background(), session, "मुझे सिंचाई कब करनी चाहिए")
	require.NoError(t, err)

	require.NotEmpty(t, llm.chatCalls)
	messages := llm.chatCalls[0]
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, systemPromptHI, messages[0].Content)
	assert.Contains(t, messages[1].Content, "Relevant agricultural information:")
}

func TestAnswer_TotalAbsenceHasZeroConfidence(t *testing.T) {
	settings := domain.DefaultAppSettings()
	embedder := lexical.NewEmbeddingService(lexical.DefaultDimensions)
	index := flat.NewIndex(lexical.DefaultDimensions)
	retrieval := NewRetrievalService(&fakeCorpus{}, embedder, index, 5)
	require.NoError(t, retrieval.Rebuild(context.Background()))

	svc := NewAssistantService(
		NewIntentService(nil, 0.5), retrieval,
		NewWeatherService(nil, nil, time.Hour),
		NewContextBuilder(settings.Context.MaxLength),
		nil, nil, nil, nil, settings,
	)

	answer, err := svc.Answer(context.Background(), &domain.Session{}, "which crop should I grow")
	require.NoError(t, err)

	assert.True(t, answer.Offline)
	assert.Zero(t, answer.Confidence)
	assert.NotEmpty(t, answer.Text)
}

func TestProcessBacklog_ReplaysOldestFirst(t *testing.T) {
	llm := &fakeLLM{
		generateReply: `{"intent": "general", "confidence": 0.5, "entities": []}`,
		chatReply:     "Here is your answer.",
	}
	f := newAssistant(t, llm)
	ctx := context.Background()

	_, err := f.queryLog.Append(ctx, "first question", "en", "general")
	require.NoError(t, err)
	_, err = f.queryLog.Append(ctx, "second question", "hi", "irrigation")
	require.NoError(t, err)

	processed, err := f.svc.ProcessBacklog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	backlog, err := f.queryLog.ListUnprocessed(ctx)
	require.NoError(t, err)
	assert.Empty(t, backlog)
}

func TestProcessBacklog_PingFailureAborts(t *testing.T) {
	llm := &fakeLLM{pingErr: errFakeUnavailable}
	f := newAssistant(t, llm)
	ctx := context.Background()

	_, err := f.queryLog.Append(ctx, "question", "en", "")
	require.NoError(t, err)

	_, err = f.svc.ProcessBacklog(ctx)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)

	backlog, err := f.queryLog.ListUnprocessed(ctx)
	require.NoError(t, err)
	assert.Len(t, backlog, 1)
}

func TestProcessBacklog_NoLLM(t *testing.T) {
	f := newAssistant(t, nil)

	_, err := f.svc.ProcessBacklog(context.Background())
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
