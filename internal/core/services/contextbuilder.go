package services

import (
	"fmt"
	"strings"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
)

// contextHeader opens every assembled context block.
const contextHeader = "Relevant agricultural information:\n\n"

// ContextBuilder assembles retrieved documents, and for irrigation queries
// the weather summary, into a bounded prompt context.
type ContextBuilder struct {
	maxLength int
}

// NewContextBuilder creates a context builder with the given character
// budget. A non-positive budget uses the default.
func NewContextBuilder(maxLength int) *ContextBuilder {
	if maxLength <= 0 {
		maxLength = domain.DefaultAppSettings().Context.MaxLength
	}
	return &ContextBuilder{maxLength: maxLength}
}

// Build assembles the prompt context. Documents are appended as whole lines
// in rank order until the next line would overflow the budget; a document
// is never truncated mid-line. weather and advice are nil for non-irrigation
// queries.
func (b *ContextBuilder) Build(results []domain.SearchResult, weather *domain.WeatherSnapshot, advice *domain.IrrigationAdvice) string {
	var sb strings.Builder
	sb.WriteString(contextHeader)

	for _, result := range results {
		line := "- " + result.Document.Content + "\n"
		if sb.Len()+len(line) > b.maxLength {
			break
		}
		sb.WriteString(line)
	}

	if weather != nil {
		summary := weatherSummary(*weather, advice)
		if sb.Len()+len(summary) <= b.maxLength {
			sb.WriteString(summary)
		}
	}

	return sb.String()
}

// weatherSummary renders the weather side channel for irrigation contexts.
func weatherSummary(w domain.WeatherSnapshot, advice *domain.IrrigationAdvice) string {
	var sb strings.Builder
	sb.WriteString("\nCurrent weather conditions:\n")
	fmt.Fprintf(&sb, "- Temperature: %.1f°C\n", w.Temperature)
	fmt.Fprintf(&sb, "- Humidity: %.0f%%\n", w.Humidity)
	fmt.Fprintf(&sb, "- Rainfall (last hour): %.1f mm\n", w.Rainfall)
	fmt.Fprintf(&sb, "- Conditions: %s\n", w.Description)
	if advice != nil {
		fmt.Fprintf(&sb, "- Irrigation advice: %s\n", advice.Recommendation)
	}
	return sb.String()
}
