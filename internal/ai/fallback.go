package ai

import (
	"context"
	"fmt"
)

// FallbackGenerator produces the deterministic template overview. Used when
// no provider is configured or the provider fails; the narrative field is
// always populated, possibly with reduced quality.
type FallbackGenerator struct{}

func (FallbackGenerator) GenerateOverview(_ context.Context, req OverviewRequest) (string, error) {
	return FallbackText(req), nil
}

func (FallbackGenerator) Close() {}

// FallbackText builds the overview from title, day count and pax only.
func FallbackText(req OverviewRequest) string {
	title := req.Title
	if title == "" {
		title = "Your safari plan"
	}

	dayCount := "several"
	if len(req.Days) > 0 {
		dayCount = fmt.Sprintf("%d", len(req.Days))
	}

	children := ""
	if req.Pax.Children > 0 {
		children = fmt.Sprintf(" and %d children", req.Pax.Children)
	}

	return fmt.Sprintf(
		"%s covers %s day(s) with private guiding, comfortable stays, and balanced pacing. Guests: %d adults%s. Expect scenic drives, lodge overnights, and a clear day-by-day flow tailored to your preferences.",
		title, dayCount, req.Pax.Adults, children,
	)
}
