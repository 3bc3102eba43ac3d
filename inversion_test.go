package kaleido

import (
	"errors"
	"math"
	"testing"
)

func TestCircle_Invert(t *testing.T) {
	c := Circle{Center: Pt(1, 1), Radius: 2}
	tests := []struct {
		name string
		p    Point
		want Point
	}{
		{"inside", Pt(2, 1), Pt(5, 1)},
		{"outside", Pt(1, -7), Pt(1, 0.5)},
		{"on circle", Pt(1, 3), Pt(1, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Invert(tt.p)
			if !ok {
				t.Fatal("Invert reported the center")
			}
			if got.Sub(tt.want).Length() > 1e-12 {
				t.Errorf("Invert(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestCircle_InvertIsInvolution(t *testing.T) {
	c := Circle{Center: Pt(-0.5, 2), Radius: 1.5}
	for _, p := range []Point{{0, 0}, {3, 4}, {-0.5, 2.1}, {10, -10}} {
		q, _ := c.Invert(p)
		back, _ := c.Invert(q)
		if back.Sub(p).Length() > 1e-9 {
			t.Errorf("Invert(Invert(%v)) = %v", p, back)
		}
	}
}

func TestCircle_InvertCenter(t *testing.T) {
	c := Circle{Center: Pt(3, 4), Radius: 1}
	got, ok := c.Invert(c.Center)
	if ok {
		t.Error("Invert(center) reported success")
	}
	if !math.IsInf(got.X, 1) || !math.IsInf(got.Y, 1) {
		t.Errorf("Invert(center) = %v, want +Inf", got)
	}
}

func TestCircleInversion_Modes(t *testing.T) {
	unit := Circle{Radius: 1}

	in := mapPoint(t, CircleInversion{Circle: unit, Mode: InsideOut}, 0.5, 0)
	if in.X != 2 || in.Structure != 1 || in.Lyapunov != 4 {
		t.Errorf("InsideOut inside = %+v, want X=2 Structure=1 Lyapunov=4", in)
	}
	out := mapPoint(t, CircleInversion{Circle: unit, Mode: InsideOut}, 0, 3)
	if out.Y != 3 || out.Structure != 0 || out.Lyapunov != 1 {
		t.Errorf("InsideOut outside = %+v, want unchanged", out)
	}

	in = mapPoint(t, CircleInversion{Circle: unit, Mode: OutsideIn}, 0, -4)
	if in.Y != -0.25 || in.Structure != 1 {
		t.Errorf("OutsideIn outside = %+v, want Y=-0.25 Structure=1", in)
	}
	out = mapPoint(t, CircleInversion{Circle: unit, Mode: OutsideIn}, 0.5, 0.5)
	if out.X != 0.5 || out.Structure != 0 {
		t.Errorf("OutsideIn inside = %+v, want unchanged", out)
	}
}

func TestCircleInversion_CenterDiverges(t *testing.T) {
	s := mapPoint(t, CircleInversion{Circle: Circle{Center: Pt(1, 2), Radius: 1}}, 1, 2)
	if !math.IsInf(s.X, 1) || !math.IsInf(s.Y, 1) {
		t.Errorf("center mapped to (%v, %v), want +Inf", s.X, s.Y)
	}
}

func TestCircleInversion_InvalidParameters(t *testing.T) {
	tests := []CircleInversion{
		{Circle: Circle{Radius: 0}},
		{Circle: Circle{Radius: -1}},
		{Circle: Circle{Radius: math.NaN()}},
		{Circle: Circle{Radius: math.Inf(1)}},
		{Circle: Circle{Radius: 1}, Mode: 7},
	}
	for _, c := range tests {
		if _, err := c.Prepare(); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Prepare(%+v) error = %v, want ErrInvalidParameter", c, err)
		}
	}
}

func TestInversionMode_String(t *testing.T) {
	if InsideOut.String() != "InsideOut" || OutsideIn.String() != "OutsideIn" {
		t.Error("unexpected mode names")
	}
	if InversionMode(9).String() != "Unknown" {
		t.Error("invalid mode should be Unknown")
	}
}
