package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"coopuertos-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// NewDatabaseClientFromDB wraps an existing handle; used by tests to inject
// a sqlmock-backed *sql.DB.
func NewDatabaseClientFromDB(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db}
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

// Ping reports whether the database is reachable right now.
func (d *DatabaseClient) Ping() error {
	return d.db.Ping()
}

const conductorColumns = `c.id, c.nombres, c.apellidos, c.cedula, c.tipo_sangre, c.numero_interno, c.foto, v.placa, c.activo, c.created_at, c.updated_at`

const conductorJoin = `
	FROM conductores c
	LEFT JOIN asignaciones a ON a.conductor_id = c.id AND a.activa
	LEFT JOIN vehiculos v ON v.id = a.vehiculo_id`

func scanConductor(row interface{ Scan(...any) error }) (*models.Conductor, error) {
	var c models.Conductor
	err := row.Scan(
		&c.ID, &c.Nombres, &c.Apellidos, &c.Cedula, &c.TipoSangre,
		&c.NumeroInterno, &c.Foto, &c.Placa, &c.Activo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (d *DatabaseClient) GetConductores() ([]models.Conductor, error) {
	rows, err := d.db.Query(`
		SELECT ` + conductorColumns + conductorJoin + `
		ORDER BY c.apellidos, c.nombres
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list conductores: %w", err)
	}
	defer rows.Close()

	var conductores []models.Conductor
	for rows.Next() {
		c, err := scanConductor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conductor: %w", err)
		}
		conductores = append(conductores, *c)
	}

	return conductores, rows.Err()
}

func (d *DatabaseClient) GetConductoresPorIDs(ids []uuid.UUID) ([]models.Conductor, error) {
	rows, err := d.db.Query(`
		SELECT `+conductorColumns+conductorJoin+`
		WHERE c.id = ANY($1)
		ORDER BY c.apellidos, c.nombres
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list conductores by ids: %w", err)
	}
	defer rows.Close()

	var conductores []models.Conductor
	for rows.Next() {
		c, err := scanConductor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conductor: %w", err)
		}
		conductores = append(conductores, *c)
	}

	return conductores, rows.Err()
}

func (d *DatabaseClient) GetConductor(id uuid.UUID) (*models.Conductor, error) {
	row := d.db.QueryRow(`
		SELECT `+conductorColumns+conductorJoin+`
		WHERE c.id = $1
	`, id)

	c, err := scanConductor(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get conductor: %w", err)
	}
	return c, nil
}

func (d *DatabaseClient) UpdateConductorFoto(id uuid.UUID, foto string) error {
	_, err := d.db.Exec(`
		UPDATE conductores
		SET foto = $1, updated_at = NOW()
		WHERE id = $2
	`, foto, id)
	return err
}

func (d *DatabaseClient) ListPlantillas() ([]models.Plantilla, error) {
	rows, err := d.db.Query(`
		SELECT id, nombre, fondo_path, activa, campos, created_at, updated_at
		FROM plantillas
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plantillas: %w", err)
	}
	defer rows.Close()

	var plantillas []models.Plantilla
	for rows.Next() {
		var p models.Plantilla
		var campos []byte
		if err := rows.Scan(&p.ID, &p.Nombre, &p.FondoPath, &p.Activa, &campos, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plantilla: %w", err)
		}
		p.Campos = campos
		plantillas = append(plantillas, p)
	}

	return plantillas, rows.Err()
}

func (d *DatabaseClient) CreatePlantilla(nombre, fondoPath string, activa bool, campos json.RawMessage) (*models.Plantilla, error) {
	var p models.Plantilla
	var stored []byte
	err := d.db.QueryRow(`
		INSERT INTO plantillas (nombre, fondo_path, activa, campos)
		VALUES ($1, $2, $3, $4)
		RETURNING id, nombre, fondo_path, activa, campos, created_at, updated_at
	`, nombre, fondoPath, activa, []byte(campos)).Scan(
		&p.ID, &p.Nombre, &p.FondoPath, &p.Activa, &stored, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create plantilla: %w", err)
	}
	p.Campos = stored

	return &p, nil
}

// ActivarPlantilla activates one template and deactivates every other in a
// single transaction, so readers never observe two active templates.
func (d *DatabaseClient) ActivarPlantilla(id uuid.UUID) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(`UPDATE plantillas SET activa = FALSE, updated_at = NOW() WHERE activa`); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to deactivate plantillas: %w", err)
	}

	res, err := tx.Exec(`UPDATE plantillas SET activa = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to activate plantilla: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (d *DatabaseClient) GetPlantillasActivas() ([]models.Plantilla, error) {
	rows, err := d.db.Query(`
		SELECT id, nombre, fondo_path, activa, campos, created_at, updated_at
		FROM plantillas
		WHERE activa
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get active plantillas: %w", err)
	}
	defer rows.Close()

	var plantillas []models.Plantilla
	for rows.Next() {
		var p models.Plantilla
		var campos []byte
		if err := rows.Scan(&p.ID, &p.Nombre, &p.FondoPath, &p.Activa, &campos, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plantilla: %w", err)
		}
		p.Campos = campos
		plantillas = append(plantillas, p)
	}

	return plantillas, rows.Err()
}

const sessionColumns = `id, status, total, processed, success_count, error_count, log_entries, archive_path, error_message, started_at, completed_at, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (*models.CarnetSession, error) {
	var s models.CarnetSession
	var logs []byte
	err := row.Scan(
		&s.ID, &s.Status, &s.Total, &s.Processed, &s.SuccessCount, &s.ErrorCount,
		&logs, &s.ArchivePath, &s.ErrorMessage, &s.StartedAt, &s.CompletedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(logs) > 0 {
		if err := json.Unmarshal(logs, &s.LogEntries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal log entries: %w", err)
		}
	}
	return &s, nil
}

func (d *DatabaseClient) CreateSession(id uuid.UUID) (*models.CarnetSession, error) {
	row := d.db.QueryRow(`
		INSERT INTO carnet_sessions (id, status, log_entries)
		VALUES ($1, $2, '[]')
		RETURNING `+sessionColumns+`
	`, id, models.SessionPending)

	s, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s, nil
}

func (d *DatabaseClient) GetSession(id uuid.UUID) (*models.CarnetSession, error) {
	row := d.db.QueryRow(`
		SELECT `+sessionColumns+`
		FROM carnet_sessions
		WHERE id = $1
	`, id)

	s, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

func (d *DatabaseClient) UpdateSession(s *models.CarnetSession) error {
	logs, err := json.Marshal(s.LogEntries)
	if err != nil {
		return fmt.Errorf("failed to marshal log entries: %w", err)
	}

	_, err = d.db.Exec(`
		UPDATE carnet_sessions
		SET status = $1, total = $2, processed = $3, success_count = $4,
		    error_count = $5, log_entries = $6, archive_path = $7,
		    error_message = $8, started_at = $9, completed_at = $10,
		    updated_at = NOW()
		WHERE id = $11
	`, s.Status, s.Total, s.Processed, s.SuccessCount, s.ErrorCount, logs,
		s.ArchivePath, s.ErrorMessage, s.StartedAt, s.CompletedAt, s.ID)
	return err
}

// FailInterruptedSessions marks every non-terminal session as failed. Called
// once at startup: a batch that was in flight when the process died cannot be
// resumed, but its record must stay pollable.
func (d *DatabaseClient) FailInterruptedSessions(message string) (int64, error) {
	res, err := d.db.Exec(`
		UPDATE carnet_sessions
		SET status = $1, error_message = $2, completed_at = NOW(), updated_at = NOW()
		WHERE status IN ($3, $4)
	`, models.SessionFailed, message, models.SessionPending, models.SessionRunning)
	if err != nil {
		return 0, fmt.Errorf("failed to mark interrupted sessions: %w", err)
	}
	return res.RowsAffected()
}
