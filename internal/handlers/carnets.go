package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coopuertos-backend/internal/carnet"
	"coopuertos-backend/internal/database"
	"coopuertos-backend/internal/models"
)

type CarnetsHandler struct {
	dbClient  *database.DatabaseClient
	generator *carnet.Generator
}

func NewCarnetsHandler(dbClient *database.DatabaseClient, generator *carnet.Generator) *CarnetsHandler {
	return &CarnetsHandler{
		dbClient:  dbClient,
		generator: generator,
	}
}

// Generar godoc
// @Summary     Start a batch carnet generation
// @Description Creates a generation session and schedules the batch in the background. Poll the session for progress; download the zip archive once the session completes.
// @Tags        carnets
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerarCarnetsRequest true "Driver selection: explicit ids or todos=true"
// @Success     202 {object} models.GenerarCarnetsResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /carnets/generar [post]
func (h *CarnetsHandler) Generar(c *gin.Context) {
	var req models.GenerarCarnetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if !req.Todos && len(req.ConductorIDs) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "no conductores selected",
		})
		return
	}

	conductorIDs := make([]uuid.UUID, 0, len(req.ConductorIDs))
	for _, raw := range req.ConductorIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid conductor id",
				Message: raw,
			})
			return
		}
		conductorIDs = append(conductorIDs, id)
	}

	session, err := h.dbClient.CreateSession(uuid.New())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create session",
			Message: err.Error(),
		})
		return
	}

	// Snapshot the response before handing the record to the generator; the
	// tracker owns every field of the session from that point on.
	sessionID := session.ID.String()
	status := string(session.Status)

	// Fire and forget; the session record is the only channel back.
	go h.generator.Run(session, conductorIDs, req.Todos)

	c.JSON(http.StatusAccepted, models.GenerarCarnetsResponse{
		SessionID: sessionID,
		Status:    status,
	})
}

// Progreso godoc
// @Summary     Poll generation progress
// @Description Returns the session's progress record, including the capped log and derived elapsed/ETA metrics.
// @Tags        carnets
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       session_id path string true "Session ID (UUID)"
// @Success     200 {object} models.ProgresoResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /carnets/progreso/{session_id} [get]
func (h *CarnetsHandler) Progreso(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid session id"})
		return
	}

	session, err := h.dbClient.GetSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "session not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, progresoResponse(session))
}

// Descargar godoc
// @Summary     Download the generated archive
// @Description Streams the zip archive of a completed session. 404 until the session reaches a completed state.
// @Tags        carnets
// @Produce     application/zip
// @Security    Bearer
// @Param       session_id path string true "Session ID (UUID)"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /carnets/descargar/{session_id} [get]
func (h *CarnetsHandler) Descargar(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid session id"})
		return
	}

	session, err := h.dbClient.GetSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "session not found",
			Message: err.Error(),
		})
		return
	}

	switch session.Status {
	case models.SessionCompleted, models.SessionCompletedWithErrors:
	default:
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "archive not available",
			Message: fmt.Sprintf("session status is %s", session.Status),
		})
		return
	}

	if !session.ArchivePath.Valid {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "archive not available"})
		return
	}
	if _, err := os.Stat(session.ArchivePath.String); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "archive not available",
			Message: "archive file no longer exists",
		})
		return
	}

	c.FileAttachment(session.ArchivePath.String, fmt.Sprintf("carnets_%s.zip", session.ID))
}

func progresoResponse(session *models.CarnetSession) models.ProgresoResponse {
	now := time.Now()
	resp := models.ProgresoResponse{
		SessionID:      session.ID.String(),
		Status:         string(session.Status),
		Total:          session.Total,
		Processed:      session.Processed,
		SuccessCount:   session.SuccessCount,
		ErrorCount:     session.ErrorCount,
		LogEntries:     session.LogEntries,
		ElapsedSeconds: carnet.Elapsed(session, now).Seconds(),
		EtaSeconds:     carnet.EstimatedRemaining(session, now).Seconds(),
	}
	if resp.LogEntries == nil {
		resp.LogEntries = []models.LogEntry{}
	}
	if session.ArchivePath.Valid {
		resp.ArchivePath = session.ArchivePath.String
	}
	if session.ErrorMessage.Valid {
		resp.ErrorMessage = session.ErrorMessage.String
	}
	if session.StartedAt.Valid {
		t := session.StartedAt.Time
		resp.StartedAt = &t
	}
	if session.CompletedAt.Valid {
		t := session.CompletedAt.Time
		resp.CompletedAt = &t
	}
	return resp
}
