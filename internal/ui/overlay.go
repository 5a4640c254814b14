//go:build ebiten

package ui

import (
	"image/color"

	"toruslife/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional visuals on top of the grid: cells that changed in
// the last generation (D) and cell boundaries (G).
type Overlay struct {
	rows, cols int
	scale      int
	showDiff   bool
	showLines  bool

	prev, cur []bool
	changed   int
	diffImg   *ebiten.Image
	diffBuf   []byte
	dirty     bool

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay for a rows×cols grid drawn at scale.
func NewOverlay(rows, cols, scale int) *Overlay {
	o := &Overlay{rows: rows, cols: cols, scale: max(scale, 1), showDiff: true}
	o.diffImg = ebiten.NewImage(cols, rows)
	o.diffBuf = make([]byte, 4*rows*cols)
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Push records a newly committed mask; the previous one becomes the diff base.
func (o *Overlay) Push(mask []bool) {
	o.prev, o.cur = o.cur, append(o.cur[:0:0], mask...)
	o.dirty = true
}

// Changed returns how many cells differed between the last two masks.
func (o *Overlay) Changed() int { return o.changed }

// Update handles the toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.showDiff = !o.showDiff
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showLines = !o.showLines
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.dirty {
		o.changed = render.FillDiffRGBA(o.diffBuf, o.prev, o.cur)
		o.diffImg.WritePixels(o.diffBuf)
		o.dirty = false
	}
	if o.showDiff && o.changed > 0 {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(o.scale), float64(o.scale))
		screen.DrawImage(o.diffImg, op)
	}
	if o.showLines && o.scale >= 4 {
		o.drawLines(screen)
	}
}

func (o *Overlay) drawLines(screen *ebiten.Image) {
	line := color.RGBA{R: 40, G: 40, B: 48, A: 255}
	w, h := o.cols*o.scale, o.rows*o.scale
	for c := 1; c < o.cols; c++ {
		o.fillRect(screen, float64(c*o.scale), 0, 1, float64(h), line)
	}
	for r := 1; r < o.rows; r++ {
		o.fillRect(screen, 0, float64(r*o.scale), float64(w), 1, line)
	}
}

func (o *Overlay) fillRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
