package services

import (
	"context"
	"errors"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
)

// fakeCorpus is a CorpusStore serving a fixed document set and, optionally,
// structured soil records.
type fakeCorpus struct {
	docs  []domain.Document
	soils map[string]*domain.SoilProfile
	err   error
}

func (c *fakeCorpus) Load(_ context.Context) ([]domain.Document, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.docs, nil
}

func (c *fakeCorpus) SoilProfile(soilType string) (*domain.SoilProfile, error) {
	if profile, ok := c.soils[soilType]; ok {
		return profile, nil
	}
	return nil, domain.ErrNotFound
}

func (c *fakeCorpus) CropProfile(string) (*domain.CropProfile, error) {
	return nil, domain.ErrNotFound
}

func (c *fakeCorpus) Schemes() (map[string]domain.Scheme, error) {
	return map[string]domain.Scheme{}, nil
}

// fakeLLM is an LLMService returning scripted replies.
type fakeLLM struct {
	generateReply string
	chatReply     string
	err           error
	pingErr       error

	generateCalls []string
	chatCalls     [][]driven.ChatMessage
}

func (l *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	l.generateCalls = append(l.generateCalls, prompt)
	if l.err != nil {
		return "", l.err
	}
	return l.generateReply, nil
}

func (l *fakeLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	l.chatCalls = append(l.chatCalls, messages)
	if l.err != nil {
		return "", l.err
	}
	return l.chatReply, nil
}

func (l *fakeLLM) ModelName() string { return "fake-model" }

func (l *fakeLLM) Ping(_ context.Context) error { return l.pingErr }

func (l *fakeLLM) Close() error { return nil }

// fakeWeatherProvider is a WeatherProvider returning a fixed snapshot.
type fakeWeatherProvider struct {
	snapshot domain.WeatherSnapshot
	err      error
	calls    int
}

func (p *fakeWeatherProvider) Fetch(_ context.Context, _ string) (domain.WeatherSnapshot, error) {
	p.calls++
	if p.err != nil {
		return domain.WeatherSnapshot{}, p.err
	}
	return p.snapshot, nil
}

func (p *fakeWeatherProvider) Forecast(_ context.Context, _ string) ([]domain.ForecastPeriod, error) {
	if p.err != nil {
		return nil, p.err
	}
	return nil, nil
}

var errFakeUnavailable = errors.New("service unavailable")

// testDocs is a small corpus used across service tests.
func testDocs() []domain.Document {
	return []domain.Document{
		{
			Content:  "Soil Type: Alluvial Soil. pH Range: 6.5-7.5. Suitable crops: rice, wheat.",
			Type:     domain.DocumentTypeSoil,
			Category: "alluvial",
		},
		{
			Content:  "Crop: Rice. Season: kharif. Water requirement: high.",
			Type:     domain.DocumentTypeCrop,
			Category: "rice",
		},
		{
			Content:  "Government Scheme: PM-KISAN. Income support for farmers.",
			Type:     domain.DocumentTypeScheme,
			Category: "pm_kisan",
		},
	}
}
