package image

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewImageBuf(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       error
	}{
		{"valid", 10, 20, nil},
		{"zero width", 0, 10, ErrInvalidDimensions},
		{"negative height", 10, -1, ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := NewImageBuf(tt.width, tt.height)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewImageBuf error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if buf.Width() != tt.width || buf.Height() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", buf.Width(), buf.Height(), tt.width, tt.height)
			}
			if buf.ByteSize() != tt.width*tt.height*4 {
				t.Errorf("ByteSize() = %d", buf.ByteSize())
			}
		})
	}
}

func TestImageBuf_SetGetRGBA(t *testing.T) {
	buf, _ := NewImageBuf(3, 2)
	if err := buf.SetRGBA(2, 1, 10, 20, 30, 40); err != nil {
		t.Fatalf("SetRGBA failed: %v", err)
	}
	if r, g, b, a := buf.GetRGBA(2, 1); r != 10 || g != 20 || b != 30 || a != 40 {
		t.Errorf("GetRGBA = (%d,%d,%d,%d)", r, g, b, a)
	}
	if got := buf.At(2, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("At = %v", got)
	}
	if err := buf.SetRGBA(3, 0, 1, 1, 1, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetRGBA out of bounds error = %v", err)
	}
	if r, g, b, a := buf.GetRGBA(-1, 0); r|g|b|a != 0 {
		t.Error("GetRGBA out of bounds should return zero")
	}
	if buf.RowBytes(2) != nil || len(buf.RowBytes(1)) != 12 {
		t.Error("unexpected RowBytes")
	}
}

func TestImageBuf_CloneIsDeep(t *testing.T) {
	buf, _ := NewImageBuf(2, 2)
	buf.Fill(color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	clone := buf.Clone()
	_ = buf.SetRGBA(0, 0, 9, 9, 9, 9)
	if got := clone.At(0, 0); got != (color.NRGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("clone changed with original: %v", got)
	}
}

func TestImageBuf_AverageColor(t *testing.T) {
	buf, _ := NewImageBuf(2, 1)
	_ = buf.SetRGBA(0, 0, 0, 0, 0, 255)
	_ = buf.SetRGBA(1, 0, 255, 100, 51, 255)
	want := color.NRGBA{R: 128, G: 50, B: 26, A: 255}
	if got := buf.AverageColor(); got != want {
		t.Errorf("AverageColor() = %v, want %v", got, want)
	}
}

func TestFromStdImage(t *testing.T) {
	t.Run("nrgba sub image", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		src.SetNRGBA(2, 3, color.NRGBA{R: 200, G: 100, B: 50, A: 25})
		sub := src.SubImage(image.Rect(1, 2, 4, 4))

		buf := FromStdImage(sub)
		if buf.Width() != 3 || buf.Height() != 2 {
			t.Fatalf("size = %dx%d, want 3x2", buf.Width(), buf.Height())
		}
		if got := buf.At(1, 1); got != (color.NRGBA{R: 200, G: 100, B: 50, A: 25}) {
			t.Errorf("At(1, 1) = %v", got)
		}
	})

	t.Run("premultiplied source", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 1, 1))
		src.SetRGBA(0, 0, color.RGBA{R: 64, A: 128})
		got := FromStdImage(src).At(0, 0)
		if got.R < 127 || got.R > 128 || got.A != 128 {
			t.Errorf("un-premultiplied color = %v, want R≈127 A=128", got)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		buf, _ := NewImageBuf(3, 3)
		_ = buf.SetRGBA(1, 2, 7, 8, 9, 10)
		back := FromStdImage(buf.ToStdImage())
		if back.At(1, 2) != buf.At(1, 2) {
			t.Errorf("round trip changed pixel: %v", back.At(1, 2))
		}
	})
}
