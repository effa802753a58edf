package api

import (
	"log"
	stdhttp "net/http"
	"os"
	"strings"
	"time"

	"safariops/internal/ai"
	intconfig "safariops/internal/config"
	h "safariops/internal/http/handlers"
	"safariops/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func corsConfig() cors.Config {
	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func NewRouter(env intconfig.Env, narrator ai.Generator) *gin.Engine {
	middleware.SetJWTSecret(env.JWTSecret)
	h.SetNarrator(narrator)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), cors.New(corsConfig()))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes-map", h.RoutesMap)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth())

		// Catalogs: anyone signed in may read, only admin/owner may edit.
		catalog := authed.Group("/catalog")
		catalog.GET("/routes", h.ListRoutes)
		catalog.GET("/accommodations", h.ListAccommodations)

		editors := catalog.Group("")
		editors.Use(middleware.RequireRoles("admin", "owner"))
		editors.POST("/routes", h.CreateRoute)
		editors.PUT("/routes/:id", h.UpdateRoute)
		editors.DELETE("/routes/:id", h.DeleteRoute)
		editors.POST("/accommodations", h.CreateAccommodation)
		editors.PUT("/accommodations/:id", h.UpdateAccommodation)
		editors.DELETE("/accommodations/:id", h.DeleteAccommodation)

		// Itineraries
		itineraries := authed.Group("/itineraries")
		itineraries.POST("/quote", h.QuoteItinerary)
		itineraries.GET("", h.ListItineraries)
		itineraries.POST("", h.CreateItinerary)
		itineraries.GET("/:id", h.GetItinerary)
		itineraries.PUT("/:id", h.UpdateItinerary)
		itineraries.DELETE("/:id", h.DeleteItinerary)
		itineraries.GET("/:id/quote-pdf", h.ItineraryQuotePDF)

		// Reports
		reports := authed.Group("/reports")
		reports.GET("/sales", h.SalesReport)
	}

	h.SetRouter(r)
	return r
}
