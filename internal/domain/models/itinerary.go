package models

import "safariops/internal/domain"

// ItineraryDay is one persisted day row. The accommodation snapshot was
// copied at save time; later catalog edits never change it.
type ItineraryDay struct {
	Position      int                          `json:"position"`
	Day           int                          `json:"day"`
	RouteID       int64                        `json:"routeId"`
	RouteName     string                       `json:"routeName"`
	Accommodation domain.AccommodationSnapshot `json:"accommodation"`
}

// Itinerary is a saved, priced quote. Totals, profit and narrative are
// frozen at create/update time.
type Itinerary struct {
	ID         int64                   `json:"id"`
	Title      string                  `json:"title"`
	ClientName string                  `json:"clientName,omitempty"`
	StartDate  string                  `json:"startDate,omitempty"`
	Pax        domain.PartyComposition `json:"pax"`
	Days       []ItineraryDay          `json:"days"`
	Totals     domain.ItineraryTotals  `json:"totals"`
	Profit     domain.ProfitOverlay    `json:"profit"`
	Inclusions []string                `json:"inclusions"`
	Exclusions []string                `json:"exclusions"`
	Overview   string                  `json:"overview"`
	Notes      string                  `json:"notes,omitempty"`
	CreatedAt  string                  `json:"createdAt,omitempty"`
	UpdatedAt  string                  `json:"updatedAt,omitempty"`
}

// ItinerarySummary is the list-view projection.
type ItinerarySummary struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	ClientName      string  `json:"clientName,omitempty"`
	StartDate       string  `json:"startDate,omitempty"`
	DayCount        int     `json:"dayCount"`
	Grand           float64 `json:"grand"`
	GrandWithProfit float64 `json:"grandWithProfit"`
	CreatedAt       string  `json:"createdAt,omitempty"`
}
