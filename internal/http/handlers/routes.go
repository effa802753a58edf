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

type routePayload struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	Day          int      `json:"day"`
	VehicleFee   float64  `json:"vehicleFee"`
	ParkFee      *float64 `json:"parkFee"`
	ParkFeeAdult *float64 `json:"parkFeeAdult"`
	ParkFeeChild *float64 `json:"parkFeeChild"`
	TransitFee   float64  `json:"transitFee"`
}

func (p routePayload) toModel() models.Route {
	return models.Route{
		Name:         strings.TrimSpace(p.Name),
		Description:  strings.TrimSpace(p.Description),
		Origin:       strings.TrimSpace(p.Origin),
		Destination:  strings.TrimSpace(p.Destination),
		Day:          p.Day,
		VehicleFee:   p.VehicleFee,
		ParkFee:      p.ParkFee,
		ParkFeeAdult: p.ParkFeeAdult,
		ParkFeeChild: p.ParkFeeChild,
		TransitFee:   p.TransitFee,
	}
}

// GET /api/catalog/routes?q=serengeti&page=1&limit=50
func ListRoutes(c *gin.Context) {
	page, limit := pageParams(c)
	repo := repositories.RouteRepository{}
	list, err := repo.List(strings.TrimSpace(c.Query("q")), page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/catalog/routes
func CreateRoute(c *gin.Context) {
	var payload routePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	rt := payload.toModel()
	if rt.Name == "" {
		RespondError(c, http.StatusBadRequest, "name is required", nil)
		return
	}

	repo := repositories.RouteRepository{}
	id, err := repo.Create(rt)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rt.ID = id
	utils.LogEvent(middleware.GetRequestID(c), "routes", "create", rt.Name)
	c.JSON(http.StatusCreated, rt)
}

// PUT /api/catalog/routes/:id
func UpdateRoute(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload routePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	rt := payload.toModel()
	if rt.Name == "" {
		RespondError(c, http.StatusBadRequest, "name is required", nil)
		return
	}

	repo := repositories.RouteRepository{}
	if err := repo.Update(id, rt); err != nil {
		RespondDomainError(c, err)
		return
	}
	rt.ID = id
	c.JSON(http.StatusOK, rt)
}

// DELETE /api/catalog/routes/:id
func DeleteRoute(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	repo := repositories.RouteRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route deleted"})
}
