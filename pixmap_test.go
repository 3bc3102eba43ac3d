package kaleido

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	intImage "github.com/gogpu/kaleido/internal/image"
)

// Verify at compile time that Pixmap implements image.Image.
var _ image.Image = (*Pixmap)(nil)

func TestPixmap_SetGetPixel(t *testing.T) {
	pm := NewPixmap(4, 3)
	pm.SetPixel(2, 1, RGB(1, 0.5, 0))

	i := (1*4 + 2) * 4
	data := pm.Data()
	if data[i] != 255 || data[i+1] != 128 || data[i+2] != 0 || data[i+3] != 255 {
		t.Errorf("raw data = %v", data[i:i+4])
	}
	if got := pm.At(2, 1); got != (color.NRGBA{R: 255, G: 128, A: 255}) {
		t.Errorf("At() = %v", got)
	}
	if got := pm.GetPixel(2, 1); got.R != 1 || got.A != 1 {
		t.Errorf("GetPixel() = %+v", got)
	}
}

func TestPixmap_OutOfBounds(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.Clear(White)
	for _, p := range []image.Point{{-1, 0}, {2, 0}, {0, -1}, {0, 2}} {
		pm.SetPixel(p.X, p.Y, Black)
		if got := pm.GetPixel(p.X, p.Y); got != Transparent {
			t.Errorf("GetPixel(%v) = %+v, want transparent", p, got)
		}
	}
	for i, v := range pm.Data() {
		if v != 255 {
			t.Fatalf("out-of-bounds write modified byte %d", i)
		}
	}
}

func TestPixmap_ViewSharesMemory(t *testing.T) {
	pm := NewPixmap(3, 2)
	v := pm.view()
	v.SetNRGBA(1, 1, color.NRGBA{R: 9, G: 8, B: 7, A: 6})
	if got := pm.At(1, 1); got != (color.NRGBA{R: 9, G: 8, B: 7, A: 6}) {
		t.Errorf("view write not visible: %v", got)
	}

	img := pm.ToImage()
	img.SetNRGBA(0, 0, color.NRGBA{A: 255})
	if pm.Data()[3] != 0 {
		t.Error("ToImage shares memory with the pixmap")
	}
}

func TestPixmap_FromImageClone(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	src.SetNRGBA(6, 6, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	pm := FromImage(src)
	if pm.Width() != 3 || pm.Height() != 2 {
		t.Fatalf("size = %dx%d", pm.Width(), pm.Height())
	}
	clone := pm.Clone()
	pm.Clear(Black)
	if got := clone.At(1, 1); got != (color.NRGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("clone At(1, 1) = %v", got)
	}
}

func TestPixmap_Save(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Clear(RGB(0, 0, 1))
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := pm.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	img, err := intImage.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if got := img.At(3, 3); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("saved pixel = %v", got)
	}
}
