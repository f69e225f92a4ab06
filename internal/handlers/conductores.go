package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coopuertos-backend/internal/database"
	"coopuertos-backend/internal/models"
)

type ConductoresHandler struct {
	dbClient *database.DatabaseClient
}

func NewConductoresHandler(dbClient *database.DatabaseClient) *ConductoresHandler {
	return &ConductoresHandler{
		dbClient: dbClient,
	}
}

// List godoc
// @Summary     List drivers
// @Description Returns every driver with the plate of their active vehicle assignment, if any.
// @Tags        conductores
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ConductoresResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /conductores [get]
func (h *ConductoresHandler) List(c *gin.Context) {
	conductores, err := h.dbClient.GetConductores()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list conductores",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.ConductorResponse, len(conductores))
	for i, conductor := range conductores {
		responses[i] = models.ConductorResponse{
			ID:            conductor.ID.String(),
			Nombres:       conductor.Nombres,
			Apellidos:     conductor.Apellidos,
			Cedula:        conductor.Cedula,
			TipoSangre:    conductor.TipoSangre.String,
			NumeroInterno: conductor.NumeroInterno.String,
			Placa:         conductor.Placa.String,
			TieneFoto:     conductor.Foto.Valid && conductor.Foto.String != "",
			Activo:        conductor.Activo,
		}
	}

	c.JSON(http.StatusOK, models.ConductoresResponse{Conductores: responses})
}

// SubirFoto godoc
// @Summary     Upload a driver photo
// @Description Stores the uploaded image as a data URI on the driver record, the encoding the card renderer consumes.
// @Tags        conductores
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Conductor ID (UUID)"
// @Param       foto formData file true "Photo (JPEG or PNG, max 5MB)"
// @Success     200 {object} models.SubirFotoResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /conductores/{id}/foto [post]
func (h *ConductoresHandler) SubirFoto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid conductor id"})
		return
	}

	if _, err := h.dbClient.GetConductor(id); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "conductor not found",
			Message: err.Error(),
		})
		return
	}

	fileHeader, err := c.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "missing foto file",
			Message: err.Error(),
		})
		return
	}
	if fileHeader.Size > 5<<20 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "foto exceeds 5MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to open upload",
			Message: err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to read upload",
			Message: err.Error(),
		})
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "unsupported file type",
			Message: contentType,
		})
		return
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	if err := h.dbClient.UpdateConductorFoto(id, dataURI); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to store foto",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SubirFotoResponse{
		ConductorID: id.String(),
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
	})
}
