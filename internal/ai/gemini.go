package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// MaxOverviewLen caps the stored narrative regardless of provider output.
const MaxOverviewLen = 750

const systemPrompt = "You are a concise travel copywriter. Summarize itineraries in under 200 words, neutral tone, clear English."

// GeminiGenerator implements Generator using Google's Gemini models.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiGenerator initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")
	model.SetTemperature(0.4)

	return &GeminiGenerator{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (g *GeminiGenerator) Close() {
	g.client.Close()
}

// GenerateOverview asks the model for the itinerary summary. Errors are
// returned so the caller can substitute FallbackText; they never abort a
// save.
func (g *GeminiGenerator) GenerateOverview(ctx context.Context, req OverviewRequest) (string, error) {
	prompt := fmt.Sprintf("%s\n\n%s", systemPrompt, buildPrompt(req))

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}

	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return Truncate(text, MaxOverviewLen), nil
}

// buildPrompt outlines the itinerary for the model. Only the first 8 days
// are listed; longer trips are summarized from the outline.
func buildPrompt(req OverviewRequest) string {
	title := req.Title
	if title == "" {
		title = "Itinerary"
	}

	days := req.Days
	if len(days) > 8 {
		days = days[:8]
	}
	lines := make([]string, 0, len(days))
	for i, d := range days {
		routeName := d.RouteName
		if routeName == "" {
			routeName = "TBD"
		}
		stay := ""
		if d.Accommodation != "" {
			stay = " (Stay: " + d.Accommodation
			if d.Place != "" {
				stay += ", " + d.Place
			}
			stay += ")"
		}
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("Day %d: %s - %s%s", i+1, routeName, d.RouteDescription, stay)))
	}
	outline := strings.Join(lines, "\n")
	if outline == "" {
		outline = "Days are to be confirmed."
	}

	parts := []string{"Title: " + title}
	if req.ClientName != "" {
		parts = append(parts, "Client: "+req.ClientName)
	}
	parts = append(parts,
		fmt.Sprintf("Guests: adults %d, children %d.", req.Pax.Adults, req.Pax.Children),
		"Outline:",
		outline,
		"Write in <=200 words.",
	)
	return strings.Join(parts, "\n")
}

// Truncate hard-caps text at n characters.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
