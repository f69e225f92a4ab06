package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coopuertos-backend/internal/models"
	"coopuertos-backend/internal/render"
)

type FuentesHandler struct {
	fonts *render.FontRegistry
}

func NewFuentesHandler(fonts *render.FontRegistry) *FuentesHandler {
	return &FuentesHandler{
		fonts: fonts,
	}
}

// List godoc
// @Summary     List available font families
// @Description Returns the font families a template's fontFamily may reference.
// @Tags        fuentes
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.FuentesResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /fuentes [get]
func (h *FuentesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, models.FuentesResponse{
		Fuentes: h.fonts.Families(),
	})
}
