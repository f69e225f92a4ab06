package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrNotDataURI marks photo values that are non-empty but not data URIs
// (typically stale file paths). Callers skip the field with a warning
// instead of failing the whole card.
var ErrNotDataURI = errors.New("photo value is not a data URI")

// DecodeFotoDataURI decodes a "data:image/...;base64," payload into an image.
func DecodeFotoDataURI(value string) (image.Image, error) {
	if !strings.HasPrefix(value, "data:image/") {
		return nil, ErrNotDataURI
	}

	idx := strings.Index(value, ";base64,")
	if idx < 0 {
		return nil, ErrNotDataURI
	}

	raw, err := base64.StdEncoding.DecodeString(value[idx+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo base64: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo image: %w", err)
	}
	return img, nil
}
