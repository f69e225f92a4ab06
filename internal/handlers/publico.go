package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coopuertos-backend/internal/database"
	"coopuertos-backend/internal/models"
)

// PublicoHandler serves the unauthenticated lookup the carnet QR codes
// point at.
type PublicoHandler struct {
	dbClient *database.DatabaseClient
}

func NewPublicoHandler(dbClient *database.DatabaseClient) *PublicoHandler {
	return &PublicoHandler{
		dbClient: dbClient,
	}
}

// Ver godoc
// @Summary     Public driver lookup
// @Description Returns the card data for a driver; this is the URL encoded in the carnet QR code.
// @Tags        publico
// @Produce     json
// @Param       conductor_id path string true "Conductor ID (UUID)"
// @Success     200 {object} models.ConductorPublicoResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /v/{conductor_id} [get]
func (h *PublicoHandler) Ver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("conductor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid conductor id"})
		return
	}

	conductor, err := h.dbClient.GetConductor(id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "conductor not found"})
		return
	}

	c.JSON(http.StatusOK, models.ConductorPublicoResponse{
		Nombres:       conductor.Nombres,
		Apellidos:     conductor.Apellidos,
		Cedula:        conductor.Cedula,
		TipoSangre:    conductor.TipoSangre.String,
		NumeroInterno: conductor.NumeroInterno.String,
		Placa:         conductor.Placa.String,
		Activo:        conductor.Activo,
	})
}
