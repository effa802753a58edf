package handlers

import (
	"net/http"
	"sync"

	"safariops/internal/ai"
	intconfig "safariops/internal/config"
	intdb "safariops/internal/db"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine

	narratorMu sync.RWMutex
	narrator   ai.Generator
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes-map).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

// SetNarrator installs the overview generator used when saving itineraries.
func SetNarrator(g ai.Generator) {
	narratorMu.Lock()
	defer narratorMu.Unlock()
	narrator = g
}

func getNarrator() ai.Generator {
	narratorMu.RLock()
	defer narratorMu.RUnlock()
	return narrator
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "safari ops backend running"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not reachable: " + err.Error()})
		return
	}
	var count int
	err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "database connection OK",
		"users_in_db":       count,
		"itineraries_table": intdb.HasTable(intconfig.DB, "itineraries"),
	})
}

// RoutesMap lists every registered HTTP route; handy when wiring clients.
func RoutesMap(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
