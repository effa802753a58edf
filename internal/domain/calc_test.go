package domain

import (
	"math"
	"testing"
)

func sampleRoutes() []RouteFeeSchedule {
	return []RouteFeeSchedule{
		{ID: 1, Name: "Arusha to Tarangire", VehicleFee: 200, Park: PerPersonParkFee(60, 30), TransitFee: 20},
		{ID: 2, Name: "Tarangire to Serengeti", VehicleFee: 250, Park: FlatParkFee(83), TransitFee: 40},
	}
}

func TestComputeItineraryTotalsGrandIsSumOfCategories(t *testing.T) {
	days := []DaySelection{
		{Day: 1, RouteID: 1, Accommodation: AccommodationSnapshot{Name: "Tarangire Lodge", PaxSplit: true, AdultPrice: 200, ChildPrice: 100}},
		{Day: 2, RouteID: 2, Accommodation: AccommodationSnapshot{Name: "Serengeti Camp", Price: 350, ConcessionFee: 25}},
	}
	totals, dayTotals := ComputeItineraryTotals(sampleRoutes(), days, PartyComposition{Adults: 2, Children: 1})

	want := totals.Accommodation + totals.Vehicle + totals.Park + totals.Transit
	if totals.Grand != want {
		t.Fatalf("grand %v != category sum %v", totals.Grand, want)
	}
	if len(dayTotals) != 2 {
		t.Fatalf("expected 2 day totals, got %d", len(dayTotals))
	}
	var sum float64
	for _, d := range dayTotals {
		sum += d.Total
	}
	if sum != totals.Grand {
		t.Fatalf("day totals sum %v != grand %v", sum, totals.Grand)
	}
}

func TestComputeItineraryTotalsSplitVsFlatParkFee(t *testing.T) {
	pax := PartyComposition{Adults: 2, Children: 1}
	days := []DaySelection{
		{Day: 1, RouteID: 1},
		{Day: 2, RouteID: 2},
	}
	totals, _ := ComputeItineraryTotals(sampleRoutes(), days, pax)

	// split: 60*2 + 30*1 = 150; flat: 83 regardless of pax
	if totals.Park != 150+83 {
		t.Fatalf("park total = %v, want 233", totals.Park)
	}

	// a present-but-zero split fee still means per-person mode
	zeroSplit := []RouteFeeSchedule{{ID: 3, Name: "Ngorongoro Crater", Park: PerPersonParkFee(0, 0)}}
	totals, _ = ComputeItineraryTotals(zeroSplit, []DaySelection{{Day: 1, RouteID: 3}}, pax)
	if totals.Park != 0 {
		t.Fatalf("zero split park total = %v, want 0", totals.Park)
	}
}

func TestComputeItineraryTotalsUnknownRouteSkipped(t *testing.T) {
	days := []DaySelection{
		{Day: 1, RouteID: 99, Accommodation: AccommodationSnapshot{Price: 500}},
		{Day: 2, RouteID: 2},
	}
	totals, dayTotals := ComputeItineraryTotals(sampleRoutes(), days, PartyComposition{Adults: 2})

	if len(dayTotals) != 1 {
		t.Fatalf("expected 1 resolved day, got %d", len(dayTotals))
	}
	if totals.Accommodation != 0 {
		t.Fatalf("skipped day leaked accommodation cost: %v", totals.Accommodation)
	}
	if totals.Grand != 250+83+40 {
		t.Fatalf("grand = %v, want 373", totals.Grand)
	}
}

func TestComputeItineraryTotalsMissingAccommodationContributesZero(t *testing.T) {
	days := []DaySelection{
		{Day: 1, RouteID: 1, Accommodation: AccommodationSnapshot{Name: "Not found"}},
	}
	totals, _ := ComputeItineraryTotals(sampleRoutes(), days, PartyComposition{Adults: 2})
	if totals.Accommodation != 0 {
		t.Fatalf("unresolved accommodation should cost 0, got %v", totals.Accommodation)
	}
}

func TestComputeItineraryTotalsIdempotent(t *testing.T) {
	days := []DaySelection{
		{Day: 1, RouteID: 1, Accommodation: AccommodationSnapshot{PaxSplit: true, AdultPrice: 150, ChildPrice: 75}},
		{Day: 2, RouteID: 2, Accommodation: AccommodationSnapshot{Price: 300, ConcessionFee: 10}},
	}
	pax := PartyComposition{Adults: 3, Children: 2}

	first, _ := ComputeItineraryTotals(sampleRoutes(), days, pax)
	second, _ := ComputeItineraryTotals(sampleRoutes(), days, pax)
	if first != second {
		t.Fatalf("totals differ across identical calls: %+v vs %+v", first, second)
	}
}

func TestComputeItineraryTotalsOrderInvariantAggregate(t *testing.T) {
	days := []DaySelection{
		{Day: 1, RouteID: 1, Accommodation: AccommodationSnapshot{PaxSplit: true, AdultPrice: 200, ChildPrice: 100}},
		{Day: 2, RouteID: 2, Accommodation: AccommodationSnapshot{Price: 350}},
		{Day: 3, RouteID: 1, Accommodation: AccommodationSnapshot{Price: 120, ConcessionFee: 30}},
	}
	permuted := []DaySelection{days[2], days[0], days[1]}
	pax := PartyComposition{Adults: 2, Children: 1}

	a, _ := ComputeItineraryTotals(sampleRoutes(), days, pax)
	b, _ := ComputeItineraryTotals(sampleRoutes(), permuted, pax)
	if a != b {
		t.Fatalf("aggregate changed under permutation: %+v vs %+v", a, b)
	}
}

func TestComputeItineraryTotalsNegativePaxTreatedAsZero(t *testing.T) {
	days := []DaySelection{{Day: 1, RouteID: 1, Accommodation: AccommodationSnapshot{PaxSplit: true, AdultPrice: 200, ChildPrice: 100}}}
	totals, _ := ComputeItineraryTotals(sampleRoutes(), days, PartyComposition{Adults: -2, Children: -1})
	if totals.Accommodation != 0 || totals.Park != 0 {
		t.Fatalf("negative pax should not scale fees: %+v", totals)
	}
}

func TestApplyProfitClamping(t *testing.T) {
	totals := ItineraryTotals{Grand: 1000}

	cases := []struct {
		name    string
		percent float64
		wantPct float64
		wantAmt float64
	}{
		{"in range", 10, 10, 100},
		{"negative", -5, 0, 0},
		{"above 100", 150, 100, 1000},
		{"NaN", math.NaN(), 0, 0},
		{"positive Inf", math.Inf(1), 0, 0},
		{"negative Inf", math.Inf(-1), 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			overlay := ApplyProfit(totals, tc.percent)
			if overlay.Percent != tc.wantPct {
				t.Fatalf("percent = %v, want %v", overlay.Percent, tc.wantPct)
			}
			if overlay.Amount != tc.wantAmt {
				t.Fatalf("amount = %v, want %v", overlay.Amount, tc.wantAmt)
			}
			if overlay.GrandWithProfit != totals.Grand+tc.wantAmt {
				t.Fatalf("grandWithProfit = %v, want %v", overlay.GrandWithProfit, totals.Grand+tc.wantAmt)
			}
		})
	}

	if totals.Grand != 1000 {
		t.Fatalf("ApplyProfit mutated base totals: %v", totals.Grand)
	}
}

func TestEndToEndScenario(t *testing.T) {
	routes := []RouteFeeSchedule{{ID: 1, Name: "Lake Manyara", VehicleFee: 0, Park: PerPersonParkFee(60, 30), TransitFee: 0}}
	days := []DaySelection{{Day: 1, RouteID: 1, Accommodation: AccommodationSnapshot{PaxSplit: true, AdultPrice: 200, ChildPrice: 100}}}

	totals, _ := ComputeItineraryTotals(routes, days, PartyComposition{Adults: 2, Children: 0})
	if totals.Accommodation != 400 || totals.Vehicle != 0 || totals.Park != 120 || totals.Transit != 0 {
		t.Fatalf("unexpected category totals: %+v", totals)
	}
	if totals.Grand != 520 {
		t.Fatalf("grand = %v, want 520", totals.Grand)
	}

	overlay := ApplyProfit(totals, 10)
	if overlay.Amount != 52 {
		t.Fatalf("profit amount = %v, want 52", overlay.Amount)
	}
	if overlay.GrandWithProfit != 572 {
		t.Fatalf("grandWithProfit = %v, want 572", overlay.GrandWithProfit)
	}
}
