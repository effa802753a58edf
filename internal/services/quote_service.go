package services

import (
	"sort"
	"strconv"

	"safariops/internal/domain"
	"safariops/internal/domain/models"
	"safariops/internal/repositories"
	"safariops/internal/utils"
)

// DayInputRow is one already-paired pricing request row. The presentation
// boundary pairs any parallel form arrays before this layer; the service
// never sees raw indexed fields.
type DayInputRow struct {
	Day             int    `json:"day"`
	RouteID         int64  `json:"routeId"`
	AccommodationID int64  `json:"accommodationId"`
	AdultPrice      string `json:"adultPrice"`
	ChildPrice      string `json:"childPrice"`
}

// ResolvedDay pairs an engine day selection with the catalog records it was
// resolved from, for review screens and the narrative outline.
type ResolvedDay struct {
	Selection domain.DaySelection
	Route     models.Route
}

// DayFees is the per-day breakdown shown on the review step.
type DayFees struct {
	Vehicle       float64 `json:"vehicle"`
	Transit       float64 `json:"transit"`
	ParkAdults    float64 `json:"parkAdults"`
	ParkChildren  float64 `json:"parkChildren"`
	ParkTotal     float64 `json:"parkTotal"`
	Accommodation float64 `json:"accommodation"`
	AdultUnit     float64 `json:"adultUnit"`
	ChildUnit     float64 `json:"childUnit"`
}

// DayView is one review row.
type DayView struct {
	Index             int     `json:"index"`
	Day               int     `json:"day"`
	RouteID           int64   `json:"routeId"`
	RouteName         string  `json:"routeName"`
	RouteDescription  string  `json:"routeDescription,omitempty"`
	AccommodationName string  `json:"accommodationName"`
	Fees              DayFees `json:"fees"`
	Total             float64 `json:"total"`
}

// Quote is a fully priced, not-yet-persisted itinerary.
type Quote struct {
	Days      []ResolvedDay
	Routes    []domain.RouteFeeSchedule
	Pax       domain.PartyComposition
	Totals    domain.ItineraryTotals
	DayTotals []domain.DayTotal
	Profit    domain.ProfitOverlay
	Views     []DayView
}

// QuoteService normalizes day rows against catalog snapshots and prices
// them. Catalogs are fetched once per call; the engine itself is pure.
type QuoteService struct {
	RouteRepo           repositories.RouteRepository
	AccommodationRepo   repositories.AccommodationRepository
	RequestID           string
	FetchRoutes         func(ids []int64) ([]models.Route, error)
	FetchAccommodations func(ids []int64) ([]models.Accommodation, error)
}

func (s QuoteService) fetchRoutes(ids []int64) ([]models.Route, error) {
	if s.FetchRoutes != nil {
		return s.FetchRoutes(ids)
	}
	return s.RouteRepo.GetByIDs(ids)
}

func (s QuoteService) fetchAccommodations(ids []int64) ([]models.Accommodation, error) {
	if s.FetchAccommodations != nil {
		return s.FetchAccommodations(ids)
	}
	return s.AccommodationRepo.GetByIDs(ids)
}

// Build resolves rows and prices the result. Rows without a route reference
// are dropped silently (incomplete UI rows). Unresolved accommodations
// degrade to a sentinel with zero price. If no row resolves to a valid
// route, a validation error is returned and nothing is computed.
func (s QuoteService) Build(rows []DayInputRow, pax domain.PartyComposition, profitPercent float64) (Quote, error) {
	var q Quote

	kept := make([]DayInputRow, 0, len(rows))
	for i, row := range rows {
		if row.RouteID <= 0 {
			continue
		}
		if row.Day <= 0 {
			row.Day = i + 1
		}
		kept = append(kept, row)
	}
	if len(kept) == 0 {
		return q, domain.ValidationError{Field: "days", Msg: "at least one day with a valid route is required"}
	}

	routeIDs := make([]int64, 0, len(kept))
	accIDs := make([]int64, 0, len(kept))
	for _, row := range kept {
		routeIDs = append(routeIDs, row.RouteID)
		if row.AccommodationID > 0 {
			accIDs = append(accIDs, row.AccommodationID)
		}
	}

	routes, err := s.fetchRoutes(routeIDs)
	if err != nil {
		return q, err
	}
	accommodations, err := s.fetchAccommodations(accIDs)
	if err != nil {
		return q, err
	}

	routeByID := make(map[int64]models.Route, len(routes))
	for _, rt := range routes {
		routeByID[rt.ID] = rt
	}
	accByID := make(map[int64]models.Accommodation, len(accommodations))
	for _, acc := range accommodations {
		accByID[acc.ID] = acc
	}

	resolved := make([]ResolvedDay, 0, len(kept))
	for _, row := range kept {
		route, ok := routeByID[row.RouteID]
		if !ok {
			continue
		}
		resolved = append(resolved, ResolvedDay{
			Selection: domain.DaySelection{
				Day:           row.Day,
				RouteID:       route.ID,
				Accommodation: resolveAccommodation(row, accByID),
			},
			Route: route,
		})
	}
	if len(resolved) == 0 {
		return q, domain.ValidationError{Field: "days", Msg: "selected routes were not found"}
	}

	// Stable: ties keep input order.
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Selection.Day < resolved[j].Selection.Day
	})

	q.Days = resolved
	q.Routes = repositories.FeeSchedules(routes)

	q.Pax = pax
	selections := make([]domain.DaySelection, 0, len(resolved))
	for _, d := range resolved {
		selections = append(selections, d.Selection)
	}
	q.Totals, q.DayTotals = domain.ComputeItineraryTotals(q.Routes, selections, pax)
	q.Profit = domain.ApplyProfit(q.Totals, profitPercent)
	q.Views = buildDayViews(resolved, pax)

	utils.LogEvent(s.RequestID, "quote", "build",
		"days="+strconv.Itoa(len(resolved))+" grand="+utils.FormatMoney(q.Totals.Grand))
	return q, nil
}

// resolveAccommodation applies the sentinel rules: "N/A" when no reference,
// "Not found" when the reference does not resolve. Per-day price overrides
// take precedence over catalog prices.
func resolveAccommodation(row DayInputRow, accByID map[int64]models.Accommodation) domain.AccommodationSnapshot {
	name := "N/A"
	var catalog *models.Accommodation
	if row.AccommodationID > 0 {
		if acc, ok := accByID[row.AccommodationID]; ok {
			catalog = &acc
			name = acc.Name
		} else {
			name = "Not found"
		}
	}

	adult := utils.ParseAmount(row.AdultPrice)
	child := utils.ParseAmount(row.ChildPrice)
	if adult > 0 || child > 0 {
		return domain.AccommodationSnapshot{
			Name:       name,
			PaxSplit:   true,
			AdultPrice: adult,
			ChildPrice: child,
		}
	}

	if catalog != nil {
		snap := catalog.Snapshot()
		snap.Name = name
		return snap
	}
	return domain.AccommodationSnapshot{Name: name}
}

func buildDayViews(resolved []ResolvedDay, pax domain.PartyComposition) []DayView {
	views := make([]DayView, 0, len(resolved))
	for i, d := range resolved {
		schedule := d.Route.FeeSchedule()
		acc := d.Selection.Accommodation

		fees := DayFees{
			Vehicle:       schedule.VehicleFee,
			Transit:       schedule.TransitFee,
			ParkAdults:    schedule.Park.Adult,
			ParkChildren:  schedule.Park.Child,
			ParkTotal:     schedule.Park.Total(pax),
			Accommodation: acc.Total(pax),
			AdultUnit:     acc.AdultPrice,
			ChildUnit:     acc.ChildPrice,
		}

		views = append(views, DayView{
			Index:             i + 1,
			Day:               d.Selection.Day,
			RouteID:           d.Route.ID,
			RouteName:         d.Route.Name,
			RouteDescription:  d.Route.Description,
			AccommodationName: acc.Name,
			Fees:              fees,
			Total:             fees.Accommodation + fees.Vehicle + fees.ParkTotal + fees.Transit,
		})
	}
	return views
}
