package handlers

import (
	"net/http"
	"strings"

	"safariops/internal/domain/models"
	"safariops/internal/http/middleware"
	"safariops/internal/repositories"
	"safariops/internal/utils"

	"github.com/gin-gonic/gin"
)

type accommodationPayload struct {
	Name          string   `json:"name" binding:"required"`
	Place         string   `json:"place"`
	IsLuxury      bool     `json:"isLuxury"`
	Price         float64  `json:"price"`
	ConcessionFee float64  `json:"concessionFee"`
	AdultPrice    *float64 `json:"adultPrice"`
	ChildPrice    *float64 `json:"childPrice"`
}

func (p accommodationPayload) toModel() models.Accommodation {
	return models.Accommodation{
		Name:          strings.TrimSpace(p.Name),
		Place:         strings.TrimSpace(p.Place),
		IsLuxury:      p.IsLuxury,
		Price:         p.Price,
		ConcessionFee: p.ConcessionFee,
		AdultPrice:    p.AdultPrice,
		ChildPrice:    p.ChildPrice,
	}
}

// GET /api/catalog/accommodations?q=lodge&page=1&limit=50
func ListAccommodations(c *gin.Context) {
	page, limit := pageParams(c)
	repo := repositories.AccommodationRepository{}
	list, err := repo.List(strings.TrimSpace(c.Query("q")), page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/catalog/accommodations
func CreateAccommodation(c *gin.Context) {
	var payload accommodationPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	acc := payload.toModel()
	if acc.Name == "" {
		RespondError(c, http.StatusBadRequest, "name is required", nil)
		return
	}

	repo := repositories.AccommodationRepository{}
	id, err := repo.Create(acc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	acc.ID = id
	utils.LogEvent(middleware.GetRequestID(c), "accommodations", "create", acc.Name)
	c.JSON(http.StatusCreated, acc)
}

// PUT /api/catalog/accommodations/:id
func UpdateAccommodation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload accommodationPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	acc := payload.toModel()
	if acc.Name == "" {
		RespondError(c, http.StatusBadRequest, "name is required", nil)
		return
	}

	repo := repositories.AccommodationRepository{}
	if err := repo.Update(id, acc); err != nil {
		RespondDomainError(c, err)
		return
	}
	acc.ID = id
	c.JSON(http.StatusOK, acc)
}

// DELETE /api/catalog/accommodations/:id
func DeleteAccommodation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	repo := repositories.AccommodationRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "accommodation deleted"})
}
