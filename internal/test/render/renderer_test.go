package render_test

import (
	"bytes"
	"database/sql"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopuertos-backend/internal/models"
	"coopuertos-backend/internal/render"
	"coopuertos-backend/internal/template"
)

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	fonts, err := render.LoadFontRegistry(t.TempDir())
	require.NoError(t, err)
	return render.NewRenderer(fonts, "http://localhost:8080")
}

func testFondo() image.Image {
	return imaging.New(400, 250, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
}

func testConductor() *models.Conductor {
	return &models.Conductor{
		ID:        uuid.New(),
		Nombres:   "Juan",
		Apellidos: "Pérez",
		Cedula:    "123456789",
		Activo:    true,
	}
}

func fotoDataURI(t *testing.T) string {
	t.Helper()
	img := imaging.New(10, 10, color.NRGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func parseCampos(t *testing.T, data string) []template.Field {
	t.Helper()
	fields, err := template.ParseCampos([]byte(data))
	require.NoError(t, err)
	return fields
}

func imagesEqual(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for y := a.Bounds().Min.Y; y < a.Bounds().Max.Y; y++ {
		for x := a.Bounds().Min.X; x < a.Bounds().Max.X; x++ {
			ar, ag, ab, aa := a.At(x, y).RGBA()
			br, bg, bb, ba := b.At(x, y).RGBA()
			if ar != br || ag != bg || ab != bb || aa != ba {
				return false
			}
		}
	}
	return true
}

func TestRender_TextOnly_PhotoFieldInactive(t *testing.T) {
	r := newRenderer(t)
	fondo := testFondo()
	campos := parseCampos(t, `{
		"nombres": {"x": 40, "y": 40, "active": true, "fontSize": 20},
		"foto": {"x": 10, "y": 10, "active": false, "size": 100}
	}`)

	conductor := testConductor()
	conductor.Foto = sql.NullString{String: fotoDataURI(t), Valid: true}

	result, err := r.Render(fondo, campos, conductor)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, fondo.Bounds(), result.Image.Bounds())

	// Text was drawn.
	assert.False(t, imagesEqual(fondo, result.Image))

	// The inactive photo field contributed nothing: rendering the same
	// conductor without a photo yields the identical image.
	sinFoto := testConductor()
	sinFoto.ID = conductor.ID
	resultSinFoto, err := r.Render(fondo, campos, sinFoto)
	require.NoError(t, err)
	assert.True(t, imagesEqual(result.Image, resultSinFoto.Image))
}

func TestRender_PhotoComposited(t *testing.T) {
	r := newRenderer(t)
	fondo := testFondo()
	campos := parseCampos(t, `{"foto": {"x": 10, "y": 10, "active": true, "size": 50}}`)

	conductor := testConductor()
	conductor.Foto = sql.NullString{String: fotoDataURI(t), Valid: true}

	result, err := r.Render(fondo, campos, conductor)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	// The red test photo lands at (10, 10).
	c := result.Image.NRGBAAt(15, 15)
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(0x00), c.G)
}

func TestRender_PlainStringPhotoSkippedWithWarning(t *testing.T) {
	r := newRenderer(t)
	fondo := testFondo()
	campos := parseCampos(t, `{"foto": {"x": 10, "y": 10, "active": true, "size": 50}}`)

	conductor := testConductor()
	conductor.Foto = sql.NullString{String: "/uploads/fotos/viejo.jpg", Valid: true}

	result, err := r.Render(fondo, campos, conductor)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "data URI")
	assert.True(t, imagesEqual(fondo, result.Image))
}

func TestRender_MissingPhotoSkippedSilently(t *testing.T) {
	r := newRenderer(t)
	fondo := testFondo()
	campos := parseCampos(t, `{"foto": {"x": 10, "y": 10, "active": true, "size": 50}}`)

	result, err := r.Render(fondo, campos, testConductor())
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.True(t, imagesEqual(fondo, result.Image))
}

func TestRender_CorruptPhotoFails(t *testing.T) {
	r := newRenderer(t)
	fondo := testFondo()
	campos := parseCampos(t, `{"foto": {"x": 10, "y": 10, "active": true, "size": 50}}`)

	conductor := testConductor()
	conductor.Foto = sql.NullString{String: "data:image/png;base64,!!!not-base64!!!", Valid: true}

	_, err := r.Render(fondo, campos, conductor)
	assert.Error(t, err)
}

func TestRender_QRComposited(t *testing.T) {
	r := newRenderer(t)
	fondo := testFondo()
	campos := parseCampos(t, `{"qr_code": {"x": 250, "y": 100, "active": true, "size": 100}}`)

	result, err := r.Render(fondo, campos, testConductor())
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.False(t, imagesEqual(fondo, result.Image))
}

func TestRender_UnknownTextFieldWarns(t *testing.T) {
	r := newRenderer(t)
	fondo := testFondo()
	campos := parseCampos(t, `{"campo_magico": {"x": 10, "y": 10, "active": true}}`)

	result, err := r.Render(fondo, campos, testConductor())
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "campo_magico")
	assert.True(t, imagesEqual(fondo, result.Image))
}

func TestRender_CenteredTextDiffersFromLeftAligned(t *testing.T) {
	r := newRenderer(t)
	fondo := testFondo()
	left := parseCampos(t, `{"nombres": {"x": 200, "y": 100, "active": true, "fontSize": 20}}`)
	centered := parseCampos(t, `{"nombres": {"x": 200, "y": 100, "active": true, "fontSize": 20, "centered": true}}`)

	conductor := testConductor()
	resultLeft, err := r.Render(fondo, left, conductor)
	require.NoError(t, err)
	resultCentered, err := r.Render(fondo, centered, conductor)
	require.NoError(t, err)

	assert.False(t, imagesEqual(resultLeft.Image, resultCentered.Image))
}

func TestLookupURL(t *testing.T) {
	r := newRenderer(t)
	conductor := testConductor()
	assert.Equal(t, "http://localhost:8080/v/"+conductor.ID.String(), r.LookupURL(conductor))
}

func TestDecodeFotoDataURI_NotDataURI(t *testing.T) {
	_, err := render.DecodeFotoDataURI("/some/path.jpg")
	assert.ErrorIs(t, err, render.ErrNotDataURI)
}
