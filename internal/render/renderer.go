//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads alive masks into a single image, one pixel per cell.
type GridPainter struct {
	rows, cols int
	img        *ebiten.Image
	buf        []byte
}

// NewGridPainter allocates a painter for a rows×cols grid.
func NewGridPainter(rows, cols int) *GridPainter {
	return &GridPainter{
		rows: rows,
		cols: cols,
		img:  ebiten.NewImage(cols, rows),
		buf:  make([]byte, 4*rows*cols),
	}
}

// Blit uploads mask and draws it scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, mask []bool, on, off color.Color, scale int) {
	if len(mask) != gp.rows*gp.cols {
		return
	}
	FillMaskRGBA(gp.buf, mask, on, off)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the grid dimensions.
func (gp *GridPainter) Size() (rows, cols int) { return gp.rows, gp.cols }
