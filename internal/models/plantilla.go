package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Plantilla is a card template: a background image plus a JSON map of
// field name -> placement descriptor. Campos is parsed into typed field
// specs by the template package; it is stored verbatim here.
type Plantilla struct {
	ID        uuid.UUID
	Nombre    string
	FondoPath string
	Activa    bool
	Campos    json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}
