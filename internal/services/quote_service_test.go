package services

import (
	"math"
	"testing"

	"safariops/internal/domain"
	"safariops/internal/domain/models"
)

func fptr(v float64) *float64 { return &v }

func testRoutes() []models.Route {
	return []models.Route{
		{
			ID:           1,
			Name:         "Arusha to Tarangire",
			Description:  "Game drive en route",
			Origin:       "Arusha",
			Destination:  "Tarangire",
			VehicleFee:   200,
			ParkFeeAdult: fptr(30),
			ParkFeeChild: fptr(10),
			TransitFee:   50,
		},
		{
			ID:          2,
			Name:        "Tarangire to Serengeti",
			Origin:      "Tarangire",
			Destination: "Serengeti",
			VehicleFee:  250,
			ParkFee:     fptr(83),
			TransitFee:  0,
		},
	}
}

func quoteServiceWith(routes []models.Route, accs []models.Accommodation) QuoteService {
	// mimic GetByIDs: return only requested records, each at most once
	return QuoteService{
		FetchRoutes: func(ids []int64) ([]models.Route, error) {
			want := map[int64]bool{}
			for _, id := range ids {
				want[id] = true
			}
			out := []models.Route{}
			for _, rt := range routes {
				if want[rt.ID] {
					out = append(out, rt)
				}
			}
			return out, nil
		},
		FetchAccommodations: func(ids []int64) ([]models.Accommodation, error) {
			want := map[int64]bool{}
			for _, id := range ids {
				want[id] = true
			}
			out := []models.Accommodation{}
			for _, acc := range accs {
				if want[acc.ID] {
					out = append(out, acc)
				}
			}
			return out, nil
		},
	}
}

func TestQuoteBuildDropsBlankRowsAndSorts(t *testing.T) {
	svc := quoteServiceWith(testRoutes(), nil)

	rows := []DayInputRow{
		{Day: 2, RouteID: 2},
		{Day: 0, RouteID: 0}, // blank UI row, dropped
		{Day: 1, RouteID: 1},
	}
	q, err := svc.Build(rows, domain.PartyComposition{Adults: 2, Children: 1}, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(q.Days) != 2 {
		t.Fatalf("expected 2 resolved days, got %d", len(q.Days))
	}
	if q.Days[0].Selection.Day != 1 || q.Days[1].Selection.Day != 2 {
		t.Fatalf("days not sorted: %d, %d", q.Days[0].Selection.Day, q.Days[1].Selection.Day)
	}
}

func TestQuoteBuildDefaultsMissingDayNumbers(t *testing.T) {
	svc := quoteServiceWith(testRoutes(), nil)

	rows := []DayInputRow{
		{RouteID: 1},
		{RouteID: 2},
	}
	q, err := svc.Build(rows, domain.PartyComposition{Adults: 1}, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if q.Days[0].Selection.Day != 1 || q.Days[1].Selection.Day != 2 {
		t.Fatalf("expected positional day numbers, got %d and %d",
			q.Days[0].Selection.Day, q.Days[1].Selection.Day)
	}
}

func TestQuoteBuildRejectsEmptySelection(t *testing.T) {
	svc := quoteServiceWith(nil, nil)

	_, err := svc.Build([]DayInputRow{{RouteID: 0}, {RouteID: -3}}, domain.PartyComposition{Adults: 2}, 0)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQuoteBuildRejectsUnresolvableRoutes(t *testing.T) {
	svc := quoteServiceWith(nil, nil) // catalog returns nothing

	_, err := svc.Build([]DayInputRow{{Day: 1, RouteID: 99}}, domain.PartyComposition{Adults: 2}, 0)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown routes, got %v", err)
	}
}

func TestQuoteAccommodationSentinels(t *testing.T) {
	svc := quoteServiceWith(testRoutes(), []models.Accommodation{
		{ID: 5, Name: "Seronera Lodge", Price: 100, ConcessionFee: 20},
	})

	rows := []DayInputRow{
		{Day: 1, RouteID: 1},                       // no reference
		{Day: 2, RouteID: 2, AccommodationID: 404}, // dangling reference
		{Day: 3, RouteID: 1, AccommodationID: 5},   // resolves
	}
	q, err := svc.Build(rows, domain.PartyComposition{Adults: 2, Children: 1}, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := q.Days[0].Selection.Accommodation.Name; got != "N/A" {
		t.Fatalf("expected N/A sentinel, got %q", got)
	}
	if got := q.Days[1].Selection.Accommodation.Name; got != "Not found" {
		t.Fatalf("expected Not found sentinel, got %q", got)
	}
	if got := q.Days[1].Selection.Accommodation.Total(q.Pax); got != 0 {
		t.Fatalf("dangling accommodation should cost 0, got %v", got)
	}
	if got := q.Days[2].Selection.Accommodation.Name; got != "Seronera Lodge" {
		t.Fatalf("expected catalog name, got %q", got)
	}
	if got := q.Days[2].Selection.Accommodation.Total(q.Pax); got != 120 {
		t.Fatalf("expected flat price 100 + concession 20, got %v", got)
	}
}

func TestQuoteOverridePricesBeatCatalog(t *testing.T) {
	svc := quoteServiceWith(testRoutes(), []models.Accommodation{
		{ID: 5, Name: "Seronera Lodge", Price: 999},
	})

	rows := []DayInputRow{
		{Day: 1, RouteID: 1, AccommodationID: 5, AdultPrice: "50", ChildPrice: "20"},
	}
	pax := domain.PartyComposition{Adults: 2, Children: 1}
	q, err := svc.Build(rows, pax, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	acc := q.Days[0].Selection.Accommodation
	if !acc.PaxSplit {
		t.Fatalf("override prices should force pax-split pricing")
	}
	if got := acc.Total(pax); got != 120 { // 50*2 + 20*1
		t.Fatalf("expected override total 120, got %v", got)
	}
	if acc.Name != "Seronera Lodge" {
		t.Fatalf("override should keep catalog name, got %q", acc.Name)
	}
}

func TestQuoteTotalsAndProfit(t *testing.T) {
	svc := quoteServiceWith(testRoutes(), nil)

	rows := []DayInputRow{
		{Day: 1, RouteID: 1},
		{Day: 2, RouteID: 2},
	}
	pax := domain.PartyComposition{Adults: 2, Children: 1}
	q, err := svc.Build(rows, pax, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// route 1: vehicle 200, transit 50, park 30*2+10*1 = 70
	// route 2: vehicle 250, transit 0, park flat 83
	if q.Totals.Vehicle != 450 || q.Totals.Transit != 50 || q.Totals.Park != 153 {
		t.Fatalf("unexpected category totals: %+v", q.Totals)
	}
	if q.Totals.Grand != 653 {
		t.Fatalf("expected grand 653, got %v", q.Totals.Grand)
	}
	if math.Abs(q.Profit.Amount-65.3) > 1e-9 {
		t.Fatalf("expected 10%% profit 65.3, got %v", q.Profit.Amount)
	}
	if math.Abs(q.Profit.GrandWithProfit-718.3) > 1e-9 {
		t.Fatalf("expected grand with profit 718.3, got %v", q.Profit.GrandWithProfit)
	}

	if len(q.Views) != 2 {
		t.Fatalf("expected 2 review rows, got %d", len(q.Views))
	}
	if q.Views[0].Total != 320 || q.Views[1].Total != 333 {
		t.Fatalf("unexpected day totals: %v, %v", q.Views[0].Total, q.Views[1].Total)
	}
}

func TestQuoteDuplicateRouteKeptPerDay(t *testing.T) {
	svc := quoteServiceWith(testRoutes(), nil)

	rows := []DayInputRow{
		{Day: 1, RouteID: 2},
		{Day: 2, RouteID: 2},
	}
	q, err := svc.Build(rows, domain.PartyComposition{Adults: 1}, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(q.Routes) != 1 {
		t.Fatalf("fee schedules should be deduplicated, got %d", len(q.Routes))
	}
	// vehicle 250 + park 83, twice
	if q.Totals.Grand != 666 {
		t.Fatalf("both days should be charged, got grand %v", q.Totals.Grand)
	}
}
