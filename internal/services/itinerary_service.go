package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"safariops/internal/ai"
	"safariops/internal/domain"
	"safariops/internal/domain/models"
	"safariops/internal/repositories"
	"safariops/internal/utils"
)

// narrativeTimeout bounds the external text-generation call; on expiry the
// deterministic fallback is stored instead and the save proceeds.
const narrativeTimeout = 10 * time.Second

// ItineraryInput is the full save/update payload.
type ItineraryInput struct {
	Title          string        `json:"title"`
	ClientName     string        `json:"clientName"`
	StartDate      string        `json:"startDate"`
	Adults         int           `json:"adults"`
	Children       int           `json:"children"`
	ProfitPercent  float64       `json:"profitPercent"`
	InclusionsText string        `json:"inclusionsText"`
	ExclusionsText string        `json:"exclusionsText"`
	Notes          string        `json:"notes"`
	Days           []DayInputRow `json:"days"`
}

// ItineraryService freezes priced quotes into persisted itineraries.
type ItineraryService struct {
	Quote         QuoteService
	ItineraryRepo repositories.ItineraryRepository
	Narrator      ai.Generator
	RequestID     string
}

func (s ItineraryService) pax(in ItineraryInput) domain.PartyComposition {
	pax := domain.PartyComposition{Adults: in.Adults, Children: in.Children}
	if pax.Adults < 0 {
		pax.Adults = 0
	}
	if pax.Children < 0 {
		pax.Children = 0
	}
	return pax
}

// Preview prices the input without persisting anything (step-1 review).
func (s ItineraryService) Preview(in ItineraryInput) (Quote, error) {
	return s.Quote.Build(in.Days, s.pax(in), in.ProfitPercent)
}

// Create validates, prices, narrates and persists a new itinerary. Totals,
// profit and narrative are frozen at this point.
func (s ItineraryService) Create(ctx context.Context, in ItineraryInput) (models.Itinerary, error) {
	var out models.Itinerary

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return out, domain.ValidationError{Field: "title", Msg: "is required"}
	}

	quote, err := s.Quote.Build(in.Days, s.pax(in), in.ProfitPercent)
	if err != nil {
		return out, err
	}

	overview := s.narrate(ctx, title, in.ClientName, quote)

	it := s.assemble(in, title, quote, overview)
	id, err := s.ItineraryRepo.Create(it)
	if err != nil {
		return out, err
	}

	utils.LogEvent(s.RequestID, "itinerary", "create", "id="+strconv.FormatInt(id, 10))
	return s.ItineraryRepo.GetByID(id)
}

// Update re-prices and overwrites an existing itinerary. An existing
// narrative is kept; one is generated only when the stored text is empty.
func (s ItineraryService) Update(ctx context.Context, id int64, in ItineraryInput) (models.Itinerary, error) {
	var out models.Itinerary

	existing, err := s.ItineraryRepo.GetByID(id)
	if err != nil {
		return out, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return out, domain.ValidationError{Field: "title", Msg: "is required"}
	}

	quote, err := s.Quote.Build(in.Days, s.pax(in), in.ProfitPercent)
	if err != nil {
		return out, err
	}

	overview := strings.TrimSpace(existing.Overview)
	if overview == "" {
		overview = s.narrate(ctx, title, in.ClientName, quote)
	}

	it := s.assemble(in, title, quote, overview)
	it.ID = id
	if err := s.ItineraryRepo.Update(it); err != nil {
		return out, err
	}

	utils.LogEvent(s.RequestID, "itinerary", "update", "id="+strconv.FormatInt(id, 10))
	return s.ItineraryRepo.GetByID(id)
}

func (s ItineraryService) assemble(in ItineraryInput, title string, quote Quote, overview string) models.Itinerary {
	days := make([]models.ItineraryDay, 0, len(quote.Days))
	for i, d := range quote.Days {
		days = append(days, models.ItineraryDay{
			Position:      i + 1,
			Day:           d.Selection.Day,
			RouteID:       d.Route.ID,
			RouteName:     d.Route.Name,
			Accommodation: d.Selection.Accommodation,
		})
	}

	// normalize the date when it parses; keep free text otherwise
	startDate := strings.TrimSpace(in.StartDate)
	if t, err := utils.ParseDate(startDate); err == nil {
		startDate = utils.FormatDate(t)
	}

	return models.Itinerary{
		Title:      title,
		ClientName: strings.TrimSpace(in.ClientName),
		StartDate:  startDate,
		Pax:        quote.Pax,
		Days:       days,
		Totals:     quote.Totals,
		Profit:     quote.Profit,
		Inclusions: utils.TextAreaToList(in.InclusionsText),
		Exclusions: utils.TextAreaToList(in.ExclusionsText),
		Overview:   overview,
		Notes:      strings.TrimSpace(in.Notes),
	}
}

// narrate builds the overview from the same resolved day list that fed the
// aggregator. Provider failure degrades to the deterministic template; it
// never fails or delays the save beyond the timeout.
func (s ItineraryService) narrate(ctx context.Context, title, clientName string, quote Quote) string {
	req := ai.OverviewRequest{
		Title:      title,
		ClientName: strings.TrimSpace(clientName),
		Pax:        quote.Pax,
		Days:       make([]ai.OverviewDay, 0, len(quote.Days)),
	}
	for _, d := range quote.Days {
		place := d.Route.Destination
		if place == "" {
			place = d.Route.Origin
		}
		acc := d.Selection.Accommodation.Name
		if acc == "N/A" || acc == "Not found" {
			acc = ""
		}
		req.Days = append(req.Days, ai.OverviewDay{
			RouteName:        d.Route.Name,
			RouteDescription: d.Route.Description,
			Place:            place,
			Accommodation:    acc,
		})
	}

	if s.Narrator == nil {
		return ai.FallbackText(req)
	}

	nctx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()

	text, err := s.Narrator.GenerateOverview(nctx, req)
	if err != nil || strings.TrimSpace(text) == "" {
		utils.LogEvent(s.RequestID, "itinerary", "narrative_fallback", "provider unavailable")
		return ai.FallbackText(req)
	}
	return ai.Truncate(strings.TrimSpace(text), ai.MaxOverviewLen)
}
