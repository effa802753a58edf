package ai

import (
	"context"

	"safariops/internal/domain"
)

// OverviewDay is one resolved itinerary day as seen by the narrative
// generator. It is the same day list that feeds the pricing engine; the
// generator has zero influence on totals.
type OverviewDay struct {
	RouteName        string
	RouteDescription string
	Place            string
	Accommodation    string
}

// OverviewRequest carries everything the generator may use.
type OverviewRequest struct {
	Title      string
	ClientName string
	Pax        domain.PartyComposition
	Days       []OverviewDay
}

// Generator produces the client-facing itinerary overview text. This
// interface allows swapping providers (Gemini, OpenAI, ...) and keeps a
// deterministic fallback for tests and offline runs.
type Generator interface {
	// GenerateOverview returns a free-text summary, at most MaxOverviewLen
	// characters. Implementations must not fail the surrounding save: on
	// provider errors callers substitute FallbackText.
	GenerateOverview(ctx context.Context, req OverviewRequest) (string, error)

	// Close releases provider resources.
	Close()
}

// NewGenerator picks the Gemini provider when a key is configured and the
// deterministic fallback otherwise.
func NewGenerator(ctx context.Context, apiKey string) Generator {
	if apiKey == "" {
		return FallbackGenerator{}
	}
	gen, err := NewGeminiGenerator(ctx, apiKey)
	if err != nil {
		return FallbackGenerator{}
	}
	return gen
}
