package kaleido

import "math"

// Transform is a similarity transformation: rotation and uniform scaling
// followed by a shift.
//
//	x' = Scale*cos(Angle)*x - Scale*sin(Angle)*y + ShiftX
//	y' = Scale*sin(Angle)*x + Scale*cos(Angle)*y + ShiftY
//
// The products Scale*cos(Angle) and Scale*sin(Angle) are cached. The methods
// keep the cache current; code that assigns Scale or Angle directly must call
// UpdateScaleAngle afterwards.
//
// The Renderer uses two transforms: the view transform from output pixel
// indices to map space, and the image transform from map space to input
// image pixels.
type Transform struct {
	ShiftX, ShiftY float64
	Scale          float64
	Angle          float64

	cosAngleScale float64
	sinAngleScale float64
}

// NewTransform creates a transform with the given shift, scale and rotation
// angle (radians).
func NewTransform(shiftX, shiftY, scale, angle float64) Transform {
	t := Transform{ShiftX: shiftX, ShiftY: shiftY, Scale: scale, Angle: angle}
	t.UpdateScaleAngle()
	return t
}

// IdentityTransform returns the transform that leaves every point unchanged.
func IdentityTransform() Transform {
	return NewTransform(0, 0, 1, 0)
}

// UpdateScaleAngle recomputes the cached trigonometric products.
func (t *Transform) UpdateScaleAngle() {
	t.cosAngleScale = t.Scale * math.Cos(t.Angle)
	t.sinAngleScale = t.Scale * math.Sin(t.Angle)
}

// CosAngleScale returns the cached Scale*cos(Angle).
func (t Transform) CosAngleScale() float64 { return t.cosAngleScale }

// SinAngleScale returns the cached Scale*sin(Angle).
func (t Transform) SinAngleScale() float64 { return t.sinAngleScale }

// Apply rotates and scales p, then translates it.
func (t Transform) Apply(p Point) Point {
	x, y := t.ApplyXY(p.X, p.Y)
	return Point{X: x, Y: y}
}

// ApplyXY is Apply on separate coordinates, for per-pixel loops.
func (t Transform) ApplyXY(x, y float64) (float64, float64) {
	return t.cosAngleScale*x - t.sinAngleScale*y + t.ShiftX,
		t.sinAngleScale*x + t.cosAngleScale*y + t.ShiftY
}

// Inverse undoes Apply: it removes the shift, then rotates by -Angle and
// scales by 1/Scale. Scale must not be zero.
func (t Transform) Inverse(p Point) Point {
	x, y := t.InverseXY(p.X, p.Y)
	return Point{X: x, Y: y}
}

// InverseXY is Inverse on separate coordinates.
func (t Transform) InverseXY(x, y float64) (float64, float64) {
	dx := x - t.ShiftX
	dy := y - t.ShiftY
	inv := 1 / (t.Scale * t.Scale)
	return (t.cosAngleScale*dx + t.sinAngleScale*dy) * inv,
		(-t.sinAngleScale*dx + t.cosAngleScale*dy) * inv
}

// SetScale sets the scale factor.
func (t *Transform) SetScale(scale float64) {
	t.Scale = scale
	t.UpdateScaleAngle()
}

// SetAngle sets the rotation angle in radians.
func (t *Transform) SetAngle(angle float64) {
	t.Angle = angle
	t.UpdateScaleAngle()
}

// ChangeScale multiplies the scale by factor.
func (t *Transform) ChangeScale(factor float64) {
	t.SetScale(t.Scale * factor)
}

// ChangeAngle adds delta radians to the rotation angle.
func (t *Transform) ChangeAngle(delta float64) {
	t.SetAngle(t.Angle + delta)
}

// Shift moves the image of every point by (dx, dy).
func (t *Transform) Shift(dx, dy float64) {
	t.ShiftX += dx
	t.ShiftY += dy
}

// ScaleAround multiplies the scale by factor while keeping Apply(p) fixed.
func (t *Transform) ScaleAround(p Point, factor float64) {
	before := t.Apply(p)
	t.ChangeScale(factor)
	t.fix(p, before)
}

// RotateAround adds delta radians to the angle while keeping Apply(p) fixed.
func (t *Transform) RotateAround(p Point, delta float64) {
	before := t.Apply(p)
	t.ChangeAngle(delta)
	t.fix(p, before)
}

// fix adjusts the shift so that p maps to target again.
func (t *Transform) fix(p, target Point) {
	after := t.Apply(p)
	t.ShiftX += target.X - after.X
	t.ShiftY += target.Y - after.Y
}

// FitView returns a view transform for a width x height canvas that maps the
// canvas centre to the map-space origin and makes the shorter canvas side
// span 2*radius map units. Pixel rows grow downwards, as on screen.
func FitView(width, height int, radius float64) Transform {
	scale := 2 * radius / float64(min(width, height))
	return NewTransform(
		-scale*float64(width-1)/2,
		-scale*float64(height-1)/2,
		scale, 0)
}

// FitImage returns an image transform that maps the map-space unit disc onto
// the circle inscribed in a width x height image.
func FitImage(width, height int) Transform {
	return NewTransform(
		float64(width)/2,
		float64(height)/2,
		float64(min(width, height))/2, 0)
}
