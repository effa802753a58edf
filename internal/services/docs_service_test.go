package services

import (
	"bytes"
	"strings"
	"testing"

	"safariops/internal/domain"
	"safariops/internal/domain/models"
)

func sampleItinerary() models.Itinerary {
	return models.Itinerary{
		ID:         7,
		Title:      "Northern Circuit 4 Days",
		ClientName: "Jane Doe",
		StartDate:  "2026-09-01",
		Pax:        domain.PartyComposition{Adults: 2, Children: 1},
		Days: []models.ItineraryDay{
			{Position: 1, Day: 1, RouteID: 1, RouteName: "Arusha to Tarangire",
				Accommodation: domain.AccommodationSnapshot{Name: "Tarangire Camp", Price: 100}},
			{Position: 2, Day: 2, RouteID: 2, RouteName: "Tarangire to Serengeti",
				Accommodation: domain.AccommodationSnapshot{Name: "N/A"}},
		},
		Totals: domain.ItineraryTotals{Accommodation: 300, Vehicle: 450, Park: 153, Transit: 50, Grand: 953},
		Profit: domain.ProfitOverlay{Percent: 10, Amount: 95.3, GrandWithProfit: 1048.3},
	}
}

func TestGenerateQuotePDF(t *testing.T) {
	svc := DocsService{
		Loader: func(id int64) (models.Itinerary, error) {
			if id != 7 {
				t.Fatalf("unexpected id %d", id)
			}
			return sampleItinerary(), nil
		},
	}

	pdfBytes, filename, err := svc.GenerateQuote(7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if !strings.HasPrefix(filename, "QUOTE_7_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
	if strings.ContainsAny(filename, " /\\") {
		t.Fatalf("filename must be shell safe, got %q", filename)
	}
}

func TestGenerateQuotePropagatesLoadError(t *testing.T) {
	svc := DocsService{
		Loader: func(int64) (models.Itinerary, error) {
			return models.Itinerary{}, domain.NotFoundError{Resource: "itinerary"}
		},
	}

	_, _, err := svc.GenerateQuote(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	cases := map[string]string{
		"":                        "itinerary",
		"   ":                     "itinerary",
		"Serengeti & Ngorongoro!": "Serengeti__Ngorongoro",
		"4 Days-Classic":          "4_Days_Classic",
	}
	for in, want := range cases {
		if got := safeFilenamePart(in); got != want {
			t.Fatalf("safeFilenamePart(%q) = %q, want %q", in, got, want)
		}
	}
}
