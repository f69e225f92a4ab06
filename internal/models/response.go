package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type GenerarCarnetsResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

type ProgresoResponse struct {
	SessionID      string     `json:"session_id"`
	Status         string     `json:"status"`
	Total          int        `json:"total"`
	Processed      int        `json:"processed"`
	SuccessCount   int        `json:"success_count"`
	ErrorCount     int        `json:"error_count"`
	LogEntries     []LogEntry `json:"log_entries"`
	ArchivePath    string     `json:"archive_path,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	ElapsedSeconds float64    `json:"elapsed_seconds"`
	EtaSeconds     float64    `json:"eta_seconds"`
}

type PlantillaResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	FondoPath string    `json:"fondo_path"`
	Activa    bool      `json:"activa"`
	Campos    any       `json:"campos"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PlantillasResponse struct {
	Plantillas []PlantillaResponse `json:"plantillas"`
}

type ConductorResponse struct {
	ID            string `json:"id"`
	Nombres       string `json:"nombres"`
	Apellidos     string `json:"apellidos"`
	Cedula        string `json:"cedula"`
	TipoSangre    string `json:"tipo_sangre,omitempty"`
	NumeroInterno string `json:"numero_interno,omitempty"`
	Placa         string `json:"placa,omitempty"`
	TieneFoto     bool   `json:"tiene_foto"`
	Activo        bool   `json:"activo"`
}

type ConductoresResponse struct {
	Conductores []ConductorResponse `json:"conductores"`
}

// ConductorPublicoResponse is what the QR lookup URL returns; it carries no
// photo and no internal identifiers beyond the card data itself.
type ConductorPublicoResponse struct {
	Nombres       string `json:"nombres"`
	Apellidos     string `json:"apellidos"`
	Cedula        string `json:"cedula"`
	TipoSangre    string `json:"tipo_sangre,omitempty"`
	NumeroInterno string `json:"numero_interno,omitempty"`
	Placa         string `json:"placa,omitempty"`
	Activo        bool   `json:"activo"`
}

type FuentesResponse struct {
	Fuentes []string `json:"fuentes"`
}

type SubirFotoResponse struct {
	ConductorID string `json:"conductor_id"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
}
