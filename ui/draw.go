package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/save/common"
)

var (
	Background = color.NRGBA{R: 0x05, G: 0x06, B: 0x08, A: 0xff}
	Phosphor   = color.NRGBA{R: 0x7c, G: 0xf2, B: 0x9c, A: 0xff}
	Corporate  = color.NRGBA{R: 0xe8, G: 0xec, B: 0xf1, A: 0xff}
	Muted      = color.NRGBA{R: 0x80, G: 0x86, B: 0x90, A: 0xff}
	Warning    = color.NRGBA{R: 0xff, G: 0xb0, B: 0x3b, A: 0xff}
	Blood      = color.NRGBA{R: 0xc8, G: 0x1e, B: 0x2a, A: 0xff}
	Accent     = color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
)

// DrawText draws s with its top-left corner at (x, y).
func DrawText(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = lineHeight(face)
	text.Draw(dst, s, face, op)
}

// DrawCentered draws s horizontally centred on the base layout at y.
func DrawCentered(dst *ebiten.Image, s string, face text.Face, y float64, clr color.Color) {
	w, _ := text.Measure(s, face, lineHeight(face))
	DrawText(dst, s, face, (common.BaseWidth-w)/2, y, clr)
}

// DrawLines draws lines top to bottom starting at (x, y) and returns the y
// just below the last line.
func DrawLines(dst *ebiten.Image, lines []string, face text.Face, x, y float64, clr color.Color) float64 {
	lh := lineHeight(face)
	for _, l := range lines {
		DrawText(dst, l, face, x, y, clr)
		y += lh * float64(strings.Count(l, "\n")+1)
	}
	return y
}

// Fill paints the whole screen.
func Fill(dst *ebiten.Image, clr color.Color) {
	dst.Fill(clr)
}

// Box draws a filled rectangle with an optional outline.
func Box(dst *ebiten.Image, x, y, w, h float64, fill, outline color.Color) {
	if fill != nil {
		vector.FillRect(dst, float32(x), float32(y), float32(w), float32(h), fill, false)
	}
	if outline != nil {
		vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 2, outline, false)
	}
}

// Dot draws a filled circle centred on (x, y).
func Dot(dst *ebiten.Image, x, y, r float64, clr color.Color) {
	vector.FillCircle(dst, float32(x), float32(y), float32(r), clr, true)
}

// Bar draws a horizontal gauge filled to ratio (0..1).
func Bar(dst *ebiten.Image, x, y, w, h, ratio float64, fill color.Color) {
	ratio = common.Clamp(ratio, 0, 1)
	Box(dst, x, y, w, h, nil, Muted)
	if ratio > 0 {
		Box(dst, x+2, y+2, (w-4)*ratio, h-4, fill, nil)
	}
}

// Typewriter returns the first n runes of s.
func Typewriter(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if n >= len(r) {
		return s
	}
	return string(r[:n])
}

func lineHeight(face text.Face) float64 {
	if face == nil {
		return 16
	}
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}
