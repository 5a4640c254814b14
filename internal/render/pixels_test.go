package render

import (
	"image/color"
	"testing"
)

func TestFillMaskRGBA(t *testing.T) {
	buf := make([]byte, 8)
	FillMaskRGBA(buf, []bool{true, false}, color.White, color.Black)
	want := []byte{255, 255, 255, 255, 0, 0, 0, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf = %v, want %v", buf, want)
		}
	}
}

func TestFillDiffRGBA(t *testing.T) {
	buf := make([]byte, 12)
	for i := range buf {
		buf[i] = 9
	}
	changed := FillDiffRGBA(buf, []bool{false, true, true}, []bool{true, false, true})
	if changed != 2 {
		t.Fatalf("changed = %d", changed)
	}
	if buf[0] != BornColor.R || buf[3] != BornColor.A {
		t.Fatalf("born pixel = %v", buf[0:4])
	}
	if buf[4] != DiedColor.R || buf[7] != DiedColor.A {
		t.Fatalf("died pixel = %v", buf[4:8])
	}
	for _, b := range buf[8:] {
		if b != 0 {
			t.Fatalf("unchanged pixel not cleared: %v", buf[8:])
		}
	}
}

func TestFillDiffRGBAMismatchedMasks(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	if FillDiffRGBA(buf, []bool{true}, []bool{true, false}) != 0 {
		t.Fatal("mismatched masks should report no change")
	}
	for _, b := range buf {
		if b != 0 {
			t.Fatal("buffer should be cleared")
		}
	}
}
