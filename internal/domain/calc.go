package domain

import "math"

// ParkFeeMode distinguishes the two park-fee generations in the catalog.
type ParkFeeMode int

const (
	// ParkFeeFlat is the legacy shape: one amount per day regardless of pax.
	ParkFeeFlat ParkFeeMode = iota
	// ParkFeePerPerson is the current shape: adult/child rates scaled by pax.
	ParkFeePerPerson
)

// ParkFee is decided once at catalog load; the aggregator never re-inspects
// raw columns. A per-person fee with zero rates is still per-person.
type ParkFee struct {
	Mode  ParkFeeMode
	Flat  float64
	Adult float64
	Child float64
}

func FlatParkFee(amount float64) ParkFee {
	return ParkFee{Mode: ParkFeeFlat, Flat: amount}
}

func PerPersonParkFee(adult, child float64) ParkFee {
	return ParkFee{Mode: ParkFeePerPerson, Adult: adult, Child: child}
}

// Total returns the park contribution for one day.
func (f ParkFee) Total(pax PartyComposition) float64 {
	if f.Mode == ParkFeePerPerson {
		return f.Adult*float64(pax.Adults) + f.Child*float64(pax.Children)
	}
	return f.Flat
}

// RouteFeeSchedule is the immutable fee record for one travel segment.
type RouteFeeSchedule struct {
	ID          int64
	Name        string
	Description string
	Origin      string
	Destination string
	VehicleFee  float64
	Park        ParkFee
	TransitFee  float64
}

// AccommodationSnapshot is the lodging line item frozen onto an itinerary
// day. Exactly one price branch applies: pax-split when PaxSplit is set,
// otherwise flat nightly price plus concession fee.
type AccommodationSnapshot struct {
	Name          string  `json:"name"`
	PaxSplit      bool    `json:"paxSplit"`
	AdultPrice    float64 `json:"adultPrice"`
	ChildPrice    float64 `json:"childPrice"`
	Price         float64 `json:"price"`
	ConcessionFee float64 `json:"concessionFee"`
}

// Total returns the accommodation contribution for one day.
func (a AccommodationSnapshot) Total(pax PartyComposition) float64 {
	if a.PaxSplit {
		return a.AdultPrice*float64(pax.Adults) + a.ChildPrice*float64(pax.Children)
	}
	return a.Price + a.ConcessionFee
}

// DaySelection is one resolved row of an itinerary.
type DaySelection struct {
	Day           int                   `json:"day"`
	RouteID       int64                 `json:"routeId"`
	Accommodation AccommodationSnapshot `json:"accommodation"`
}

// PartyComposition scales per-person fees.
type PartyComposition struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

func (p PartyComposition) normalized() PartyComposition {
	if p.Adults < 0 {
		p.Adults = 0
	}
	if p.Children < 0 {
		p.Children = 0
	}
	return p
}

type ItineraryTotals struct {
	Accommodation float64 `json:"accommodation"`
	Vehicle       float64 `json:"vehicle"`
	Park          float64 `json:"park"`
	Transit       float64 `json:"transit"`
	Grand         float64 `json:"grand"`
}

// DayTotal is per-day diagnostics for review screens; not part of the
// persisted aggregate.
type DayTotal struct {
	Index     int     `json:"index"`
	Day       int     `json:"day"`
	RouteName string  `json:"routeName"`
	Total     float64 `json:"total"`
}

// ComputeItineraryTotals sums accommodation, vehicle, park and transit fees
// over the selected days. Days referencing an unknown route are skipped;
// referential integrity is the normalizer's job, not the aggregator's.
func ComputeItineraryTotals(routes []RouteFeeSchedule, days []DaySelection, pax PartyComposition) (ItineraryTotals, []DayTotal) {
	pax = pax.normalized()

	byID := make(map[int64]RouteFeeSchedule, len(routes))
	for _, r := range routes {
		byID[r.ID] = r
	}

	var totals ItineraryTotals
	dayTotals := make([]DayTotal, 0, len(days))

	for i, d := range days {
		route, ok := byID[d.RouteID]
		if !ok {
			continue
		}

		acc := d.Accommodation.Total(pax)
		vehicle := route.VehicleFee
		park := route.Park.Total(pax)
		transit := route.TransitFee

		totals.Accommodation += acc
		totals.Vehicle += vehicle
		totals.Park += park
		totals.Transit += transit

		dayTotals = append(dayTotals, DayTotal{
			Index:     i + 1,
			Day:       d.Day,
			RouteName: route.Name,
			Total:     acc + vehicle + park + transit,
		})
	}

	totals.Grand = totals.Accommodation + totals.Vehicle + totals.Park + totals.Transit
	return totals, dayTotals
}

// ProfitOverlay is the markup applied on top of the operating cost. The base
// totals stay untouched; both figures remain visible to callers.
type ProfitOverlay struct {
	Percent         float64 `json:"percent"`
	Amount          float64 `json:"amount"`
	GrandWithProfit float64 `json:"grandWithProfit"`
}

// NormalizePercent clamps a profit percentage into [0,100].
// Non-finite input is treated as 0, never rejected.
func NormalizePercent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

// ApplyProfit computes the markup overlay for the given totals.
func ApplyProfit(totals ItineraryTotals, percent float64) ProfitOverlay {
	pct := NormalizePercent(percent)
	amount := totals.Grand * pct / 100
	return ProfitOverlay{
		Percent:         pct,
		Amount:          amount,
		GrandWithProfit: totals.Grand + amount,
	}
}
