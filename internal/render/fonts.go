package render

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontRegistry maps template font families to parsed fonts. Families come
// from .ttf/.otf files in the fonts directory, keyed by lowercased base name.
// The bundled Go fonts back any family a template names that is not on disk.
//
// The registry is read-only after LoadFontRegistry. Face builds a fresh
// font.Face per call because faces cache glyph state and are not safe for
// concurrent drawing.
type FontRegistry struct {
	fonts map[string]*sfnt.Font

	fallbackRegular *sfnt.Font
	fallbackBold    *sfnt.Font
	fallbackItalic  *sfnt.Font
}

func LoadFontRegistry(dir string) (*FontRegistry, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse builtin regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse builtin bold font: %w", err)
	}
	italic, err := opentype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse builtin italic font: %w", err)
	}

	r := &FontRegistry{
		fonts:           make(map[string]*sfnt.Font),
		fallbackRegular: regular,
		fallbackBold:    bold,
		fallbackItalic:  italic,
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("failed to read fonts directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Warning: failed to read font %s: %v", entry.Name(), err)
			continue
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			log.Printf("Warning: failed to parse font %s: %v", entry.Name(), err)
			continue
		}

		family := strings.ToLower(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		r.fonts[family] = parsed
	}

	return r, nil
}

// Face returns a sized face for the requested family/style, falling back to
// the bundled Go fonts when the family is unknown.
func (r *FontRegistry) Face(family, style string, size int) (font.Face, error) {
	if size <= 0 {
		size = 16
	}
	style = strings.ToLower(style)

	f := r.lookup(strings.ToLower(family), style)
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build font face %q/%q: %w", family, style, err)
	}
	return face, nil
}

func (r *FontRegistry) lookup(family, style string) *sfnt.Font {
	if family != "" {
		// A style-specific file like "arial-bold.ttf" wins over "arial.ttf".
		if style != "" && style != "normal" {
			if f, ok := r.fonts[family+"-"+style]; ok {
				return f
			}
		}
		if f, ok := r.fonts[family]; ok {
			return f
		}
	}

	switch style {
	case "bold":
		return r.fallbackBold
	case "italic":
		return r.fallbackItalic
	default:
		return r.fallbackRegular
	}
}

// Families lists every loadable family, builtin fallbacks included.
func (r *FontRegistry) Families() []string {
	families := []string{"go", "go-bold", "go-italic"}
	for name := range r.fonts {
		families = append(families, name)
	}
	sort.Strings(families)
	return families
}
