// Package render composites one carnet image per (conductor, plantilla)
// pair: photo, QR code and text fields drawn onto the template background.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"coopuertos-backend/internal/models"
	"coopuertos-backend/internal/template"
)

type Renderer struct {
	fonts         *FontRegistry
	lookupBaseURL string
}

func NewRenderer(fonts *FontRegistry, lookupBaseURL string) *Renderer {
	return &Renderer{
		fonts:         fonts,
		lookupBaseURL: strings.TrimRight(lookupBaseURL, "/"),
	}
}

// Result is one rendered card plus any field-level warnings that did not
// prevent the card from rendering.
type Result struct {
	Image    *image.NRGBA
	Warnings []string
}

// Render draws every active field of the template onto a copy of the
// background. Calls are independent: the template fields and background are
// read-only, so renders for different conductores may run concurrently.
func (r *Renderer) Render(fondo image.Image, campos []template.Field, c *models.Conductor) (*Result, error) {
	if fondo == nil {
		return nil, errors.New("template background is nil")
	}

	canvas := imaging.Clone(fondo)
	var warnings []string

	for _, f := range campos {
		if !f.Spec.IsActive() {
			continue
		}

		switch spec := f.Spec.(type) {
		case template.PhotoField:
			if !c.Foto.Valid || c.Foto.String == "" {
				continue
			}
			foto, err := DecodeFotoDataURI(c.Foto.String)
			if err != nil {
				if errors.Is(err, ErrNotDataURI) {
					warnings = append(warnings, fmt.Sprintf("campo %q omitido: la foto no es un data URI", f.Name))
					continue
				}
				return nil, fmt.Errorf("foto de %s: %w", c.Cedula, err)
			}
			thumb := imaging.Fill(foto, spec.Size, spec.Size, imaging.Center, imaging.Lanczos)
			canvas = imaging.Paste(canvas, thumb, image.Pt(spec.X, spec.Y))

		case template.QRField:
			qr, err := r.generateQR(c, spec.Size)
			if err != nil {
				return nil, fmt.Errorf("qr de %s: %w", c.Cedula, err)
			}
			canvas = imaging.Paste(canvas, qr, image.Pt(spec.X, spec.Y))

		case template.TextField:
			value, known := textValue(c, f.Name)
			if !known {
				warnings = append(warnings, fmt.Sprintf("campo %q no corresponde a ningún atributo del conductor", f.Name))
			}
			if value == "" {
				continue
			}
			if err := r.drawText(canvas, spec, value); err != nil {
				return nil, fmt.Errorf("texto %q de %s: %w", f.Name, c.Cedula, err)
			}
		}
	}

	return &Result{Image: canvas, Warnings: warnings}, nil
}

// LookupURL is the stable public reference the QR encodes.
func (r *Renderer) LookupURL(c *models.Conductor) string {
	return fmt.Sprintf("%s/v/%s", r.lookupBaseURL, c.ID)
}

func (r *Renderer) generateQR(c *models.Conductor, size int) (image.Image, error) {
	pngBytes, err := qrcode.Encode(r.LookupURL(c), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode qr png: %w", err)
	}
	return img, nil
}

func (r *Renderer) drawText(canvas *image.NRGBA, spec template.TextField, value string) error {
	face, err := r.fonts.Face(spec.FontFamily, spec.FontStyle, spec.FontSize)
	if err != nil {
		return err
	}
	defer face.Close()

	col, err := parseHexColor(spec.Color)
	if err != nil {
		return err
	}

	d := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(col),
		Face: face,
	}

	// (x, y) addresses the top-left of the text box; the drawer wants the
	// baseline. Centered fields center around x instead of starting at it.
	x := fixed.I(spec.X)
	if spec.Centered {
		x -= d.MeasureString(value) / 2
	}
	d.Dot = fixed.Point26_6{X: x, Y: fixed.I(spec.Y) + face.Metrics().Ascent}
	d.DrawString(value)
	return nil
}

// textValue resolves a template field name to a conductor attribute. Unknown
// names render as empty with a warning upstream.
func textValue(c *models.Conductor, name string) (string, bool) {
	switch name {
	case "nombres":
		return c.Nombres, true
	case "apellidos":
		return c.Apellidos, true
	case "nombre_completo":
		return c.NombreCompleto(), true
	case "cedula":
		return c.Cedula, true
	case "tipo_sangre":
		return c.TipoSangre.String, true
	case "numero_interno":
		return c.NumeroInterno.String, true
	case "placa":
		return c.Placa.String, true
	default:
		return "", false
	}
}

func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
