package models

import "safariops/internal/domain"

// Route is the catalog record behind a RouteFeeSchedule. Park fees come in
// two generations: legacy flat ParkFee, or split ParkFeeAdult/ParkFeeChild.
// Nil pointers mean the column is absent or NULL for this row; the
// repository maps presence to the engine's tagged variant.
type Route struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Origin       string   `json:"origin,omitempty"`
	Destination  string   `json:"destination,omitempty"`
	Day          int      `json:"day"`
	VehicleFee   float64  `json:"vehicleFee"`
	ParkFee      *float64 `json:"parkFee,omitempty"`
	ParkFeeAdult *float64 `json:"parkFeeAdult,omitempty"`
	ParkFeeChild *float64 `json:"parkFeeChild,omitempty"`
	TransitFee   float64  `json:"transitFee"`
}

// HasSplitParkFee reports whether this record carries the current
// per-person generation. Presence decides, not value.
func (r Route) HasSplitParkFee() bool {
	return r.ParkFeeAdult != nil || r.ParkFeeChild != nil
}

// FeeSchedule maps the raw record to the engine's fee shape. The park-fee
// generation is decided here, once, so the aggregator never sees raw
// columns.
func (r Route) FeeSchedule() domain.RouteFeeSchedule {
	park := domain.FlatParkFee(deref(r.ParkFee))
	if r.HasSplitParkFee() {
		park = domain.PerPersonParkFee(deref(r.ParkFeeAdult), deref(r.ParkFeeChild))
	}
	return domain.RouteFeeSchedule{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Origin:      r.Origin,
		Destination: r.Destination,
		VehicleFee:  r.VehicleFee,
		Park:        park,
		TransitFee:  r.TransitFee,
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
