// Package render converts automaton grids into RGBA pixel buffers.
package render

import "image/color"

// Diff palette entries.
var (
	BornColor = color.RGBA{R: 80, G: 220, B: 120, A: 160}
	DiedColor = color.RGBA{R: 230, G: 70, B: 60, A: 160}
)

// FillMaskRGBA converts an alive mask into RGBA pixels in buf, which must
// hold 4*len(mask) bytes.
func FillMaskRGBA(buf []byte, mask []bool, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, alive := range mask {
		base := i * 4
		if alive {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// FillDiffRGBA paints cells that came alive with BornColor and cells that
// died with DiedColor; unchanged cells are transparent. It returns the number
// of changed cells. Mismatched masks leave buf cleared.
func FillDiffRGBA(buf []byte, prev, cur []bool) int {
	for i := range buf {
		buf[i] = 0
	}
	if len(prev) != len(cur) {
		return 0
	}
	changed := 0
	for i := range cur {
		if prev[i] == cur[i] {
			continue
		}
		col := DiedColor
		if cur[i] {
			col = BornColor
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
		changed++
	}
	return changed
}
