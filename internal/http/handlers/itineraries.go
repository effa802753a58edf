package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"safariops/internal/http/middleware"
	"safariops/internal/repositories"
	"safariops/internal/services"
	"safariops/internal/utils"

	"github.com/gin-gonic/gin"
)

func itineraryService(c *gin.Context) services.ItineraryService {
	rid := middleware.GetRequestID(c)
	return services.ItineraryService{
		Quote:     services.QuoteService{RequestID: rid},
		Narrator:  getNarrator(),
		RequestID: rid,
	}
}

func quoteResponse(q services.Quote) gin.H {
	return gin.H{
		"pax":       q.Pax,
		"days":      q.Views,
		"dayTotals": q.DayTotals,
		"totals":    q.Totals,
		"profit":    q.Profit,
	}
}

// POST /api/itineraries/quote
//
// Prices the day rows without saving anything; the review step before a
// create or update.
func QuoteItinerary(c *gin.Context) {
	var in services.ItineraryInput
	if !BindJSONOrError(c, &in) {
		return
	}

	quote, err := itineraryService(c).Preview(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteResponse(quote))
}

// GET /api/itineraries
func ListItineraries(c *gin.Context) {
	repo := repositories.ItineraryRepository{}
	list, err := repo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/itineraries
func CreateItinerary(c *gin.Context) {
	var in services.ItineraryInput
	if !BindJSONOrError(c, &in) {
		return
	}

	it, err := itineraryService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// GET /api/itineraries/:id
func GetItinerary(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	repo := repositories.ItineraryRepository{}
	it, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// PUT /api/itineraries/:id
func UpdateItinerary(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in services.ItineraryInput
	if !BindJSONOrError(c, &in) {
		return
	}

	it, err := itineraryService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// DELETE /api/itineraries/:id
func DeleteItinerary(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	repo := repositories.ItineraryRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "itinerary deleted"})
}

// GET /api/itineraries/:id/quote-pdf
func ItineraryQuotePDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateQuote(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/reports/sales?year=2026
func SalesReport(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	if year <= 0 {
		year = utils.NowUTC().Year()
	}

	repo := repositories.ItineraryRepository{}
	report, err := repo.SalesByMonth(year)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "months": report})
}
