package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coopuertos-backend/internal/database"
	"coopuertos-backend/internal/models"
)

type HealthHandler struct {
	dbClient *database.DatabaseClient
}

func NewHealthHandler(dbClient *database.DatabaseClient) *HealthHandler {
	return &HealthHandler{
		dbClient: dbClient,
	}
}

// Check godoc
// @Summary     Health check
// @Description Returns the health status of the API and database connectivity
// @Tags        health
// @Accept      json
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response := models.HealthResponse{
		Status:   "ok",
		Database: "ok",
	}
	// The process is alive either way; a broken DB shows up in the body, not
	// the status code, so liveness probes keep passing during an outage.
	if err := h.dbClient.Ping(); err != nil {
		response.Database = "unreachable"
	}
	c.JSON(http.StatusOK, response)
}
