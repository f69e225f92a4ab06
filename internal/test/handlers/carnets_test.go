package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopuertos-backend/internal/carnet"
	"coopuertos-backend/internal/database"
	"coopuertos-backend/internal/handlers"
	"coopuertos-backend/internal/models"
)

// stubRepo makes the background generator fail fast (no active template), so
// handler tests never depend on the pipeline itself.
type stubRepo struct{}

func (stubRepo) UpdateSession(*models.CarnetSession) error                    { return nil }
func (stubRepo) GetPlantillasActivas() ([]models.Plantilla, error)            { return nil, nil }
func (stubRepo) GetConductores() ([]models.Conductor, error)                  { return nil, nil }
func (stubRepo) GetConductoresPorIDs([]uuid.UUID) ([]models.Conductor, error) { return nil, nil }

var sessionCols = []string{
	"id", "status", "total", "processed", "success_count", "error_count",
	"log_entries", "archive_path", "error_message", "started_at", "completed_at",
	"created_at", "updated_at",
}

func newCarnetsRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	client := database.NewDatabaseClientFromDB(db)
	generator := carnet.NewGenerator(stubRepo{}, nil, nil, 1)
	handler := handlers.NewCarnetsHandler(client, generator)

	router := gin.New()
	router.POST("/carnets/generar", handler.Generar)
	router.GET("/carnets/progreso/:session_id", handler.Progreso)
	router.GET("/carnets/descargar/:session_id", handler.Descargar)
	return router, mock
}

func TestGenerar_NoSelection(t *testing.T) {
	router, _ := newCarnetsRouter(t)

	body := bytes.NewBufferString(`{"conductor_ids": [], "todos": false}`)
	req, _ := http.NewRequest("POST", "/carnets/generar", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no conductores selected")
}

func TestGenerar_InvalidConductorID(t *testing.T) {
	router, _ := newCarnetsRouter(t)

	body := bytes.NewBufferString(`{"conductor_ids": ["not-a-uuid"]}`)
	req, _ := http.NewRequest("POST", "/carnets/generar", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid conductor id")
}

func TestGenerar_Accepted(t *testing.T) {
	router, mock := newCarnetsRouter(t)

	now := time.Now()
	rows := sqlmock.NewRows(sessionCols).
		AddRow(uuid.New(), string(models.SessionPending), 0, 0, 0, 0, []byte(`[]`), nil, nil, nil, nil, now, now)
	mock.ExpectQuery("INSERT INTO carnet_sessions").WillReturnRows(rows)

	body := bytes.NewBufferString(`{"todos": true}`)
	req, _ := http.NewRequest("POST", "/carnets/generar", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp models.GenerarCarnetsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, string(models.SessionPending), resp.Status)
}

// The 202 body must be built from values captured before the background run
// starts; the tracker owns the session record from that point and mutates it
// concurrently (with stubRepo the run fails immediately, so the racing write
// lands while the handler is still responding). Run under -race.
func TestGenerar_ResponseStableWhileBatchRuns(t *testing.T) {
	router, mock := newCarnetsRouter(t)

	for i := 0; i < 50; i++ {
		now := time.Now()
		rows := sqlmock.NewRows(sessionCols).
			AddRow(uuid.New(), string(models.SessionPending), 0, 0, 0, 0, []byte(`[]`), nil, nil, nil, nil, now, now)
		mock.ExpectQuery("INSERT INTO carnet_sessions").WillReturnRows(rows)

		body := bytes.NewBufferString(`{"todos": true}`)
		req, _ := http.NewRequest("POST", "/carnets/generar", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusAccepted, w.Code)

		var resp models.GenerarCarnetsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(models.SessionPending), resp.Status)
	}
}

func TestProgreso_InvalidID(t *testing.T) {
	router, _ := newCarnetsRouter(t)

	req, _ := http.NewRequest("GET", "/carnets/progreso/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgreso_NotFound(t *testing.T) {
	router, mock := newCarnetsRouter(t)

	id := uuid.New()
	mock.ExpectQuery("FROM carnet_sessions").WithArgs(id).WillReturnError(os.ErrNotExist)

	req, _ := http.NewRequest("GET", "/carnets/progreso/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProgreso_Running(t *testing.T) {
	router, mock := newCarnetsRouter(t)

	id := uuid.New()
	now := time.Now()
	started := now.Add(-20 * time.Second)
	logs, err := json.Marshal([]models.LogEntry{
		{Timestamp: started, Level: models.LogInfo, Message: "generación iniciada"},
	})
	require.NoError(t, err)

	rows := sqlmock.NewRows(sessionCols).
		AddRow(id, string(models.SessionRunning), 10, 4, 3, 1, logs, nil, nil, started, nil, started, now)
	mock.ExpectQuery("FROM carnet_sessions").WithArgs(id).WillReturnRows(rows)

	req, _ := http.NewRequest("GET", "/carnets/progreso/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ProgresoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id.String(), resp.SessionID)
	assert.Equal(t, string(models.SessionRunning), resp.Status)
	assert.Equal(t, 10, resp.Total)
	assert.Equal(t, 4, resp.Processed)
	assert.Len(t, resp.LogEntries, 1)
	assert.Greater(t, resp.ElapsedSeconds, 0.0)
	assert.Greater(t, resp.EtaSeconds, 0.0)
}

func TestDescargar_RunningSessionIs404(t *testing.T) {
	router, mock := newCarnetsRouter(t)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows(sessionCols).
		AddRow(id, string(models.SessionRunning), 10, 4, 3, 1, []byte(`[]`), nil, nil, now, nil, now, now)
	mock.ExpectQuery("FROM carnet_sessions").WithArgs(id).WillReturnRows(rows)

	req, _ := http.NewRequest("GET", "/carnets/descargar/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "archive not available")
}

func TestDescargar_MissingArchiveFileIs404(t *testing.T) {
	router, mock := newCarnetsRouter(t)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows(sessionCols).
		AddRow(id, string(models.SessionCompleted), 2, 2, 2, 0, []byte(`[]`), "/no/existe.zip", nil, now, now, now, now)
	mock.ExpectQuery("FROM carnet_sessions").WithArgs(id).WillReturnRows(rows)

	req, _ := http.NewRequest("GET", "/carnets/descargar/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no longer exists")
}

func TestDescargar_CompletedSession(t *testing.T) {
	router, mock := newCarnetsRouter(t)

	archivePath := filepath.Join(t.TempDir(), "archivo.zip")
	require.NoError(t, os.WriteFile(archivePath, []byte("PK\x03\x04"), 0o644))

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows(sessionCols).
		AddRow(id, string(models.SessionCompletedWithErrors), 2, 2, 1, 1, []byte(`[]`), archivePath, nil, now, now, now, now)
	mock.ExpectQuery("FROM carnet_sessions").WithArgs(id).WillReturnRows(rows)

	req, _ := http.NewRequest("GET", "/carnets/descargar/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "carnets_"+id.String()+".zip")
}
