package models

import "encoding/json"

type GenerarCarnetsRequest struct {
	// ConductorIDs selects specific drivers; ignored when Todos is true.
	ConductorIDs []string `json:"conductor_ids,omitempty"`
	// Todos selects every driver.
	Todos bool `json:"todos,omitempty" example:"true"`
}

type CrearPlantillaRequest struct {
	Nombre    string          `json:"nombre" binding:"required"`
	FondoPath string          `json:"fondo_path" binding:"required"`
	Activa    bool            `json:"activa"`
	Campos    json.RawMessage `json:"campos" binding:"required"`
}
