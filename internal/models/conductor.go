package models

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Conductor is a driver row. Placa comes from the active vehicle assignment
// (LEFT JOIN), not from a column on the conductores table.
type Conductor struct {
	ID            uuid.UUID
	Nombres       string
	Apellidos     string
	Cedula        string
	TipoSangre    sql.NullString
	NumeroInterno sql.NullString
	Foto          sql.NullString
	Placa         sql.NullString
	Activo        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c *Conductor) NombreCompleto() string {
	return strings.TrimSpace(c.Nombres + " " + c.Apellidos)
}

type Vehiculo struct {
	ID        uuid.UUID
	Placa     string
	Marca     sql.NullString
	Modelo    sql.NullString
	CreatedAt time.Time
}

type Asignacion struct {
	ID          uuid.UUID
	ConductorID uuid.UUID
	VehiculoID  uuid.UUID
	Activa      bool
	CreatedAt   time.Time
}
