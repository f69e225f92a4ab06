// Package template turns the stored JSON field-placement map of a card
// template into typed field specs. Discrimination happens once, at load
// time: "foto" and "qr_code" are image-type fields, everything else is a
// text field resolved against driver attributes at render time.
package template

import (
	"encoding/json"
	"fmt"
	"sort"
)

const (
	FieldFoto = "foto"
	FieldQR   = "qr_code"
)

type TextField struct {
	X          int
	Y          int
	FontSize   int
	FontFamily string
	FontStyle  string
	Color      string
	Centered   bool
	Active     bool
}

type PhotoField struct {
	X      int
	Y      int
	Size   int
	Active bool
}

type QRField struct {
	X      int
	Y      int
	Size   int
	Active bool
}

// FieldSpec is one of TextField, PhotoField, QRField.
type FieldSpec interface {
	IsActive() bool
}

func (f TextField) IsActive() bool  { return f.Active }
func (f PhotoField) IsActive() bool { return f.Active }
func (f QRField) IsActive() bool    { return f.Active }

type Field struct {
	Name string
	Spec FieldSpec
}

// rawField mirrors one placement descriptor as stored in plantillas.campos.
type rawField struct {
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Active     *bool  `json:"active"`
	Centered   bool   `json:"centered"`
	FontSize   int    `json:"fontSize"`
	FontStyle  string `json:"fontStyle"`
	FontFamily string `json:"fontFamily"`
	Color      string `json:"color"`
	Size       int    `json:"size"`
}

const (
	defaultFontSize  = 16
	defaultFotoSize  = 200
	defaultQRSize    = 150
	defaultTextColor = "#000000"
)

// ParseCampos decodes a placement map. Unknown keys become text fields;
// a missing "active" defaults to true so legacy maps keep rendering.
// Fields come back sorted by name so iteration order is stable.
func ParseCampos(data []byte) ([]Field, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("el mapa de campos está vacío")
	}

	var raw map[string]rawField
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("mapa de campos inválido: %w", err)
	}

	fields := make([]Field, 0, len(raw))
	for name, rf := range raw {
		active := true
		if rf.Active != nil {
			active = *rf.Active
		}

		var spec FieldSpec
		switch name {
		case FieldFoto:
			size := rf.Size
			if size <= 0 {
				size = defaultFotoSize
			}
			spec = PhotoField{X: rf.X, Y: rf.Y, Size: size, Active: active}
		case FieldQR:
			size := rf.Size
			if size <= 0 {
				size = defaultQRSize
			}
			spec = QRField{X: rf.X, Y: rf.Y, Size: size, Active: active}
		default:
			fontSize := rf.FontSize
			if fontSize <= 0 {
				fontSize = defaultFontSize
			}
			color := rf.Color
			if color == "" {
				color = defaultTextColor
			}
			spec = TextField{
				X:          rf.X,
				Y:          rf.Y,
				FontSize:   fontSize,
				FontFamily: rf.FontFamily,
				FontStyle:  rf.FontStyle,
				Color:      color,
				Centered:   rf.Centered,
				Active:     active,
			}
		}
		fields = append(fields, Field{Name: name, Spec: spec})
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields, nil
}
