package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coopuertos-backend/internal/database"
	"coopuertos-backend/internal/models"
	"coopuertos-backend/internal/template"
)

type PlantillasHandler struct {
	dbClient *database.DatabaseClient
}

func NewPlantillasHandler(dbClient *database.DatabaseClient) *PlantillasHandler {
	return &PlantillasHandler{
		dbClient: dbClient,
	}
}

// List godoc
// @Summary     List card templates
// @Tags        plantillas
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.PlantillasResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /plantillas [get]
func (h *PlantillasHandler) List(c *gin.Context) {
	plantillas, err := h.dbClient.ListPlantillas()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list plantillas",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.PlantillaResponse, len(plantillas))
	for i, p := range plantillas {
		responses[i] = plantillaResponse(&p)
	}

	c.JSON(http.StatusOK, models.PlantillasResponse{Plantillas: responses})
}

// Create godoc
// @Summary     Create a card template
// @Description Stores a template: background image path plus the field-placement map. The map is validated by parsing it into typed field specs.
// @Tags        plantillas
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CrearPlantillaRequest true "Template definition"
// @Success     201 {object} models.PlantillaResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /plantillas [post]
func (h *PlantillasHandler) Create(c *gin.Context) {
	var req models.CrearPlantillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	// Reject placement maps the renderer would choke on later.
	if _, err := template.ParseCampos(req.Campos); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid campos",
			Message: err.Error(),
		})
		return
	}

	plantilla, err := h.dbClient.CreatePlantilla(req.Nombre, req.FondoPath, false, req.Campos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create plantilla",
			Message: err.Error(),
		})
		return
	}

	if req.Activa {
		if err := h.dbClient.ActivarPlantilla(plantilla.ID); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to activate plantilla",
				Message: err.Error(),
			})
			return
		}
		plantilla.Activa = true
	}

	c.JSON(http.StatusCreated, plantillaResponse(plantilla))
}

// Activar godoc
// @Summary     Activate a template
// @Description Makes this the single active template; every other template is deactivated in the same transaction.
// @Tags        plantillas
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Template ID (UUID)"
// @Success     200 {object} models.PlantillaResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /plantillas/{id}/activar [put]
func (h *PlantillasHandler) Activar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid plantilla id"})
		return
	}

	if err := h.dbClient.ActivarPlantilla(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "plantilla not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to activate plantilla",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id.String(), "activa": true})
}

func plantillaResponse(p *models.Plantilla) models.PlantillaResponse {
	var campos any
	if len(p.Campos) > 0 {
		_ = json.Unmarshal(p.Campos, &campos)
	}
	return models.PlantillaResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		FondoPath: p.FondoPath,
		Activa:    p.Activa,
		Campos:    campos,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
