package models

import "safariops/internal/domain"

// Accommodation is a lodging catalog record. AdultPrice/ChildPrice are the
// current pax-split generation; Price+ConcessionFee is the legacy flat one.
type Accommodation struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Place         string   `json:"place"`
	IsLuxury      bool     `json:"isLuxury"`
	Price         float64  `json:"price"`
	ConcessionFee float64  `json:"concessionFee"`
	AdultPrice    *float64 `json:"adultPrice,omitempty"`
	ChildPrice    *float64 `json:"childPrice,omitempty"`
}

// HasSplitPrice reports whether the pax-split generation applies.
func (a Accommodation) HasSplitPrice() bool {
	return a.AdultPrice != nil || a.ChildPrice != nil
}

// Snapshot freezes this record into an itinerary day line item.
func (a Accommodation) Snapshot() domain.AccommodationSnapshot {
	if a.HasSplitPrice() {
		return domain.AccommodationSnapshot{
			Name:       a.Name,
			PaxSplit:   true,
			AdultPrice: deref(a.AdultPrice),
			ChildPrice: deref(a.ChildPrice),
		}
	}
	return domain.AccommodationSnapshot{
		Name:          a.Name,
		Price:         a.Price,
		ConcessionFee: a.ConcessionFee,
	}
}
