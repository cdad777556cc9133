// Package ui holds the shared look of the game: fonts, palette, text helpers
// and the ebitenui panels used for choices and debug tooling.
//
// Nothing here is constructed until first use, so packages that import ui
// can be tested without a graphics context.
package ui

import (
	"bytes"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// FontKind selects one of the embedded font families.
type FontKind int

const (
	Mono FontKind = iota
	Sans
	Bold
)

var (
	fontOnce    sync.Once
	fontSources map[FontKind]*text.GoTextFaceSource

	faceMu    sync.Mutex
	faceCache = map[faceKey]text.Face{}
)

type faceKey struct {
	kind FontKind
	size float64
}

func loadFonts() {
	fontSources = make(map[FontKind]*text.GoTextFaceSource, 3)
	for kind, ttf := range map[FontKind][]byte{Mono: gomono.TTF, Sans: goregular.TTF, Bold: gobold.TTF} {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			slog.Warn("ui: font load failed, using basic font", "kind", kind, "error", err)
			continue
		}
		fontSources[kind] = src
	}
}

// Face returns a cached face of the given family and size. If the family
// failed to load, the basic bitmap font is returned instead.
func Face(kind FontKind, size float64) text.Face {
	fontOnce.Do(loadFonts)

	key := faceKey{kind: kind, size: size}
	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faceCache[key]; ok {
		return f
	}
	var f text.Face
	if src, ok := fontSources[kind]; ok {
		f = &text.GoTextFace{Source: src, Size: size}
	} else {
		f = Basic()
	}
	faceCache[key] = f
	return f
}

// Basic is the 7x13 bitmap face, used where a retro terminal look is wanted.
func Basic() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}
