package services

import (
	"bytes"
	"fmt"
	"strings"

	"safariops/internal/domain/models"
	"safariops/internal/repositories"
	"safariops/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the printable client quote for a saved itinerary.
type DocsService struct {
	ItineraryRepo repositories.ItineraryRepository
	RequestID     string
	Loader        func(int64) (models.Itinerary, error)
}

// Defaults shown on the document when the itinerary carries no custom
// lists; wording matches the agency's standard offer.
var defaultInclusions = []string{
	"Private 4x4 Land Cruiser with pop-up roof, unlimited mileage.",
	"Professional English-speaking safari guide throughout the trip.",
	"Accommodation as listed per day with full-board meals.",
	"All park and conservation entry fees for listed destinations.",
	"Airport pickup and drop-off plus bottled drinking water on drives.",
	"24/7 ground support and emergency assistance team.",
	"Domestic flight segments specified in the itinerary (if applicable).",
}

var defaultExclusions = []string{
	"International flights to/from Tanzania.",
	"Entry visas, travel insurance, and personal medical coverage.",
	"Alcoholic beverages and lodge extras not listed as included.",
	"Extra accommodation nights beyond the confirmed itinerary.",
	"Tips and gratuities for guides, drivers, and lodge staff.",
	"Personal expenses such as laundry, souvenirs, and phone calls.",
}

// GenerateQuote renders the PDF for one itinerary.
func (s DocsService) GenerateQuote(itineraryID int64) ([]byte, string, error) {
	it, err := s.load(itineraryID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_quote", fmt.Sprintf("itinerary_id=%d", itineraryID))
	return buildQuotePDF(it)
}

func (s DocsService) load(id int64) (models.Itinerary, error) {
	if s.Loader != nil {
		return s.Loader(id)
	}
	return s.ItineraryRepo.GetByID(id)
}

func buildQuotePDF(it models.Itinerary) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Safari Quote", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SAFARI ITINERARY")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, it.Title, "", "", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	if it.ClientName != "" {
		pdf.Cell(0, 7, "Prepared for: "+it.ClientName)
		pdf.Ln(7)
	}
	if it.StartDate != "" {
		pdf.Cell(0, 7, "Start date: "+it.StartDate)
		pdf.Ln(7)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Guests: %d adults, %d children", it.Pax.Adults, it.Pax.Children))
	pdf.Ln(10)

	if strings.TrimSpace(it.Overview) != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Overview")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, it.Overview, "", "", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Day by day")
	pdf.Ln(8)
	for _, d := range it.Days {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, fmt.Sprintf("Day %d: %s", d.Day, safe(d.RouteName, "TBD")))
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, "Stay: "+safe(d.Accommodation.Name, "N/A"))
		pdf.Ln(8)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Pricing")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	rows := []struct {
		label  string
		amount float64
	}{
		{"Accommodation", it.Totals.Accommodation},
		{"Vehicle", it.Totals.Vehicle},
		{"Park fees", it.Totals.Park},
		{"Transit", it.Totals.Transit},
	}
	for _, row := range rows {
		pdf.Cell(0, 6, fmt.Sprintf("%-16s %s", row.label, utils.FormatUSD(row.amount)))
		pdf.Ln(6)
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Operating total: "+utils.FormatUSD(it.Totals.Grand))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Quote total (incl. %.0f%% margin): %s",
		it.Profit.Percent, utils.FormatUSD(it.Totals.Grand+it.Profit.Amount)))
	pdf.Ln(10)

	inclusions := it.Inclusions
	if len(inclusions) == 0 {
		inclusions = defaultInclusions
	}
	exclusions := it.Exclusions
	if len(exclusions) == 0 {
		exclusions = defaultExclusions
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Included")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range inclusions {
		pdf.MultiCell(0, 5, "- "+line, "", "", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Not included")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range exclusions {
		pdf.MultiCell(0, 5, "- "+line, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("QUOTE_%d_%s.pdf", it.ID, safeFilenamePart(it.Title))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "itinerary"
	}
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			out.WriteRune('_')
		}
	}
	if out.Len() == 0 {
		return "itinerary"
	}
	return out.String()
}
