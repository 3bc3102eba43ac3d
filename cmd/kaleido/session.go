package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/message"

	"github.com/gogpu/kaleido"
	"github.com/gogpu/kaleido/internal/cache"
	"github.com/gogpu/kaleido/internal/stats"
)

// imageCacheSize bounds the number of decoded input images kept by a
// session.
const imageCacheSize = 8

var errUsage = errors.New("usage")

// session holds the mutable state shared by the one-shot driver and the
// REPL.
type session struct {
	r        *kaleido.Renderer
	params   kaleido.Params
	geometry string
	radius   float64

	input    string
	maxInput int
	images   *cache.Cache[string, *kaleido.ImageBuf]

	out  string
	hist string

	printer *message.Printer
	w       io.Writer
}

func newSession(r *kaleido.Renderer, p *message.Printer, w io.Writer) *session {
	return &session{
		r:        r,
		params:   kaleido.DefaultParams(),
		geometry: "identity",
		radius:   1,
		images:   cache.New[string, *kaleido.ImageBuf](imageCacheSize),
		printer:  p,
		w:        w,
	}
}

// load makes path the input image. Decoded images are cached, so
// switching back to an earlier input does not decode it again.
func (s *session) load(path string) error {
	img, err := s.images.GetOrLoad(path, func() (*kaleido.ImageBuf, error) {
		return kaleido.LoadImageMax(path, s.maxInput)
	})
	if err != nil {
		return err
	}
	s.input = path
	s.r.SetInput(img)
	return nil
}

// setGeometry selects the geometry map by name using the current
// parameters.
func (s *session) setGeometry(name string) error {
	m, err := kaleido.NewGeometry(name, s.params)
	if err != nil {
		return err
	}
	s.geometry = name
	s.r.SetGeometry(m)
	return nil
}

// fitView recentres the view on the canvas.
func (s *session) fitView() {
	w, h := s.r.Size()
	s.r.SetView(kaleido.FitView(w, h, s.radius))
}

// centre returns the canvas centre in pixel coordinates.
func (s *session) centre() kaleido.Point {
	w, h := s.r.Size()
	return kaleido.Pt(float64(w-1)/2, float64(h-1)/2)
}

func (s *session) zoom(factor float64) error {
	if factor <= 0 || math.IsInf(factor, 0) || math.IsNaN(factor) {
		return fmt.Errorf("zoom factor must be positive, got %v", factor)
	}
	v := s.r.View()
	v.ScaleAround(s.centre(), 1/factor)
	s.r.SetView(v)
	return nil
}

func (s *session) rotate(degrees float64) {
	v := s.r.View()
	v.RotateAround(s.centre(), degrees*math.Pi/180)
	s.r.SetView(v)
}

func (s *session) pan(dx, dy float64) {
	v := s.r.View()
	v.Shift(dx, dy)
	s.r.SetView(v)
}

// set changes one named parameter. Geometry parameters rebuild the
// current map.
func (s *session) set(name, value string) error {
	switch name {
	case "k", "m", "n", "order", "periods", "iterations":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		switch name {
		case "k":
			s.params.K = v
		case "m":
			s.params.M = v
		case "n":
			s.params.N = v
		case "order":
			s.params.Order = v
		case "periods":
			s.params.Periods = v
		case "iterations":
			s.params.MaxIterations = v
		}
	case "zpow", "amplitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if name == "zpow" {
			s.params.ZPow = v
		} else {
			s.params.Amplitude = v
		}
	case "constant":
		v, err := strconv.ParseComplex(value, 128)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		s.params.Constant = v
	case "mirror":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		s.params.Mirror = v
	case "mode":
		switch value {
		case "inside-out":
			s.params.Mode = kaleido.InsideOut
		case "outside-in":
			s.params.Mode = kaleido.OutsideIn
		default:
			return fmt.Errorf("mode: want inside-out or outside-in, got %q", value)
		}
	case "radius":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if v <= 0 {
			return fmt.Errorf("radius must be positive, got %v", v)
		}
		s.radius = v
		s.fitView()
		return nil
	case "shade":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		s.r.SetParityShade(v)
		return nil
	case "background", "off":
		c, err := kaleido.ParseHex(value)
		if err != nil {
			return err
		}
		if name == "background" {
			s.r.SetBackground(c)
		} else {
			s.r.SetOffColor(c)
		}
		return nil
	case "out":
		s.out = value
		return nil
	case "hist":
		s.hist = value
		return nil
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	return s.setGeometry(s.geometry)
}

// render draws a frame, writes it to path (or the session output) and
// prints a summary.
func (s *session) render(path string) error {
	if path == "" {
		path = s.out
	}
	pm, err := s.r.Render()
	if err != nil {
		return err
	}
	if path != "" {
		if err := pm.Save(path); err != nil {
			return err
		}
	}

	g := s.r.Grid()
	valid, outOfDomain, diverged := g.StatusCounts()
	s.printer.Fprintf(s.w, "%s %dx%d: %d valid, %d out of domain, %d diverged\n",
		s.r.Geometry().Name(), pm.Width(), pm.Height(), valid, outOfDomain, diverged)
	if path != "" {
		s.printer.Fprintf(s.w, "wrote %s\n", path)
	}

	if s.hist != "" {
		counts := stats.Histogram(g.Structure)
		title := fmt.Sprintf("%s structure codes", s.r.Geometry().Name())
		if err := stats.Save(s.hist, counts, title); err != nil {
			if errors.Is(err, stats.ErrEmpty) {
				kaleido.Logger().Warn("kaleido: histogram skipped", "reason", err)
				return nil
			}
			return err
		}
		s.printer.Fprintf(s.w, "wrote %s (%d active samples)\n", s.hist, counts.Active())
	}
	return nil
}

// show prints the current configuration.
func (s *session) show() {
	w, h := s.r.Size()
	v := s.r.View()
	p := s.params
	st := s.r.Stats()
	s.printer.Fprintf(s.w, "size       %dx%d\n", w, h)
	s.printer.Fprintf(s.w, "input      %s\n", orNone(s.input))
	s.printer.Fprintf(s.w, "geometry   %s\n", s.geometry)
	s.printer.Fprintf(s.w, "params     k=%d m=%d n=%d order=%d periods=%d zpow=%g mirror=%t\n",
		p.K, p.M, p.N, p.Order, p.Periods, p.ZPow, p.Mirror)
	s.printer.Fprintf(s.w, "view       shift=(%.4f, %.4f) scale=%.6f angle=%.2f°\n",
		v.ShiftX, v.ShiftY, v.Scale, v.Angle*180/math.Pi)
	s.printer.Fprintf(s.w, "output     %s\n", orNone(s.out))
	s.printer.Fprintf(s.w, "renders    %d resizes, %d maps, %d samples\n", st.Resizes, st.Maps, st.Samples)
	cs := s.images.Stats()
	s.printer.Fprintf(s.w, "images     %d cached, %.0f%% hits\n", cs.Len, cs.HitRate*100)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}
