package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/kaleido"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want command
	}{
		{"", command{}},
		{"   ", command{}},
		{"# comment", command{}},
		{"show", command{name: "show", args: []string{}}},
		{"  ZOOM 2 ", command{name: "zoom", args: []string{"2"}}},
		{"pan 0.5\t-1", command{name: "pan", args: []string{"0.5", "-1"}}},
		{"set k 5", command{name: "set", args: []string{"k", "5"}}},
	}
	for _, tt := range tests {
		got := parseCommand(tt.line)
		if got.name != tt.want.name || !slices.Equal(got.args, tt.want.args) {
			t.Errorf("parseCommand(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

// writeTestImage writes a w×h PNG filled with c and returns its path.
func writeTestImage(t *testing.T, w, h int, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestSession(t *testing.T, w, h int) (*session, *bytes.Buffer) {
	t.Helper()
	r, err := kaleido.NewRenderer(w, h)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	t.Cleanup(r.Close)
	var out bytes.Buffer
	s := newSession(r, message.NewPrinter(language.English), &out)
	s.fitView()
	return s, &out
}

func TestSessionExec_Errors(t *testing.T) {
	s, _ := newTestSession(t, 8, 8)

	tests := []struct {
		line string
		want error
	}{
		{"quit", errQuit},
		{"exit", errQuit},
		{"zoom", errUsage},
		{"zoom x", errUsage},
		{"pan 1", errUsage},
		{"size 4 y", errUsage},
		{"render a b", errUsage},
		{"geometry nope", kaleido.ErrUnknownGeometry},
		{"size 0 4", kaleido.ErrInvalidSize},
	}
	for _, tt := range tests {
		if err := s.exec(tt.line); !errors.Is(err, tt.want) {
			t.Errorf("exec(%q) = %v, want %v", tt.line, err, tt.want)
		}
	}

	for _, line := range []string{"frob", "set nope 1", "set k x", "set mode sideways", "set radius -1", "zoom 0", "interp smooth"} {
		if err := s.exec(line); err == nil {
			t.Errorf("exec(%q) succeeded, want an error", line)
		}
	}
}

func TestSessionExec_View(t *testing.T) {
	s, _ := newTestSession(t, 9, 9)
	centre := s.r.View().Apply(s.centre())
	scale := s.r.View().Scale

	for _, line := range []string{"zoom 2", "rotate 90"} {
		if err := s.exec(line); err != nil {
			t.Fatalf("exec(%q) failed: %v", line, err)
		}
	}
	v := s.r.View()
	if math.Abs(v.Scale-scale/2) > 1e-12 {
		t.Errorf("scale = %v, want %v", v.Scale, scale/2)
	}
	if math.Abs(v.Angle-math.Pi/2) > 1e-12 {
		t.Errorf("angle = %v, want π/2", v.Angle)
	}
	if got := v.Apply(s.centre()); got.Sub(centre).Length() > 1e-12 {
		t.Errorf("canvas centre moved from %v to %v", centre, got)
	}

	if err := s.exec("pan 0.5 -1"); err != nil {
		t.Fatal(err)
	}
	if got := s.r.View().Apply(s.centre()); got.Sub(centre.Add(kaleido.Pt(0.5, -1))).Length() > 1e-12 {
		t.Errorf("after pan centre maps to %v", got)
	}

	if err := s.exec("size 12 6"); err != nil {
		t.Fatal(err)
	}
	if w, h := s.r.Size(); w != 12 || h != 6 {
		t.Errorf("size = %dx%d, want 12x6", w, h)
	}
	if want := kaleido.FitView(12, 6, 1); s.r.View() != want {
		t.Errorf("view after size = %+v, want %+v", s.r.View(), want)
	}
}

func TestSessionExec_Set(t *testing.T) {
	s, _ := newTestSession(t, 8, 8)
	if err := s.exec("geometry kaleidoscope"); err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"set k 5", "set m 4", "set iterations 50", "set mirror false", "set zpow 2.5", "set constant 1+2i", "set mode outside-in"} {
		if err := s.exec(line); err != nil {
			t.Fatalf("exec(%q) failed: %v", line, err)
		}
	}

	want := kaleido.Kaleidoscope{K: 5, M: 4, N: 2, MaxIterations: 50}
	if got := s.r.Geometry(); got != want {
		t.Errorf("geometry = %+v, want %+v", got, want)
	}
	p := s.params
	if p.Mirror || p.ZPow != 2.5 || p.Constant != complex(1, 2) || p.Mode != kaleido.OutsideIn {
		t.Errorf("params = %+v", p)
	}
}

func TestSessionRender(t *testing.T) {
	s, out := newTestSession(t, 16, 16)
	input := writeTestImage(t, 32, 32, color.NRGBA{R: 200, G: 50, B: 10, A: 255})
	dir := t.TempDir()
	frame := filepath.Join(dir, "frame.png")
	hist := filepath.Join(dir, "hist.png")

	for _, line := range []string{
		"load " + input,
		"load " + input,
		"geometry kaleidoscope",
		"set hist " + hist,
		"interp cubic",
		"render " + frame,
	} {
		if err := s.exec(line); err != nil {
			t.Fatalf("exec(%q) failed: %v", line, err)
		}
	}

	for _, path := range []string{frame, hist} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s not written: %v", path, err)
		}
	}
	if cs := s.images.Stats(); cs.Len != 1 || cs.Hits != 1 {
		t.Errorf("image cache = %+v, want 1 entry and 1 hit", cs)
	}
	text := out.String()
	if !strings.Contains(text, "kaleidoscope 16x16") || !strings.Contains(text, "wrote "+frame) {
		t.Errorf("unexpected summary:\n%s", text)
	}

	out.Reset()
	s.show()
	if !strings.Contains(out.String(), "geometry   kaleidoscope") {
		t.Errorf("show output:\n%s", out.String())
	}
}

func TestSessionRender_ConfigurationError(t *testing.T) {
	s, _ := newTestSession(t, 8, 8)
	if err := s.exec("load " + writeTestImage(t, 8, 8, color.NRGBA{A: 255})); err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"geometry bulatov", "set k 2", "set m 2"} {
		if err := s.exec(line); err != nil {
			t.Fatalf("exec(%q) failed: %v", line, err)
		}
	}
	if err := s.exec("render"); !errors.Is(err, kaleido.ErrNotHyperbolic) {
		t.Errorf("render error = %v, want ErrNotHyperbolic", err)
	}
}

func TestRun_RequiresInput(t *testing.T) {
	if err := run([]string{"-width", "4", "-height", "4"}); err == nil {
		t.Error("run without -in succeeded")
	}
	if err := run([]string{"-geometry", "nope"}); !errors.Is(err, kaleido.ErrUnknownGeometry) {
		t.Errorf("run error = %v, want ErrUnknownGeometry", err)
	}
}

func TestRun_OneShot(t *testing.T) {
	input := writeTestImage(t, 16, 16, color.NRGBA{G: 255, A: 255})
	out := filepath.Join(t.TempDir(), "out.jpg")
	err := run([]string{
		"-in", input, "-out", out,
		"-width", "20", "-height", "10",
		"-geometry", "dihedral", "-order", "6",
		"-supersample", "2", "-workers", "2",
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	img, err := kaleido.LoadImage(out)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if img.Width() != 20 || img.Height() != 10 {
		t.Errorf("output = %dx%d, want 20x10", img.Width(), img.Height())
	}
}
