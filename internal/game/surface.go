package game

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// screenSurface draws the rule onto the frame's screen image.
type screenSurface struct {
	dst   *ebiten.Image
	font  *text.GoTextFaceSource
	faces map[float64]*text.GoTextFace
}

func newScreenSurface() (*screenSurface, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}
	return &screenSurface{font: src, faces: map[float64]*text.GoTextFace{}}, nil
}

func (s *screenSurface) FillRect(x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func (s *screenSurface) Line(x0, y0, x1, y1, width float64, clr color.Color) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

func (s *screenSurface) Text(str string, x, y, size float64, clr color.Color) {
	face := s.face(size)
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	// text/v2 positions the top of the line box, not the baseline
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(s.dst, str, face, op)
}

func (s *screenSurface) face(size float64) *text.GoTextFace {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: s.font, Size: size}
	s.faces[size] = f
	return f
}
