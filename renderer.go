package kaleido

import (
	"errors"
	"fmt"
	"math"
	"time"

	xdraw "golang.org/x/image/draw"

	intImage "github.com/gogpu/kaleido/internal/image"
	"github.com/gogpu/kaleido/internal/parallel"
)

// ErrNoInput is returned by Render before an input image has been set.
var ErrNoInput = errors.New("kaleido: no input image")

// dirtyFlags records which pipeline stages must run on the next Render.
// A higher stage implies every lower one.
type dirtyFlags uint8

const (
	imageDirty dirtyFlags = 1 << iota // resample the input image
	mapDirty                          // refill and remap the grid
	sizeDirty                         // reallocate the grid and pixmap
)

// mark sets f and every lower flag.
func (d *dirtyFlags) mark(f dirtyFlags) {
	*d |= f | (f - 1)
}

// Stats counts how many times each pipeline stage has run.
type Stats struct {
	Resizes int
	Maps    int
	Samples int
}

// Renderer drives the pipeline
//
//	pixel grid → view transform → geometry map → image transform → sampler
//
// and caches the intermediate grid: changing only the image side (input,
// image transform, interpolation, colours) resamples the mapped grid
// without running the geometry map again.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	width, height int
	opts          rendererOptions
	pool          *parallel.WorkerPool

	grid   *Grid
	frame  *Pixmap // grid-sized, differs from pixmap when supersampling
	pixmap *Pixmap

	view        Transform
	imageT      Transform
	geometry    GeometryMap
	input       *ImageBuf
	interp      InterpolationMode
	offColor    RGBA
	background  RGBA
	parityShade float64

	dirty dirtyFlags
	stats Stats
}

// NewRenderer creates a renderer for width × height output pixels. The view
// initially fits the unit disc into the canvas and the geometry map is
// Identity.
func NewRenderer(width, height int, opts ...RendererOption) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{
		width:      width,
		height:     height,
		opts:       o,
		pixmap:     NewPixmap(width, height),
		view:       FitView(width, height, 1),
		imageT:     IdentityTransform(),
		geometry:   Identity{},
		interp:     o.interp,
		background: o.background,
	}
	if o.offColor != nil {
		r.offColor = *o.offColor
	}
	if o.parallel {
		r.pool = parallel.NewWorkerPool(o.workers)
	}
	r.dirty.mark(sizeDirty)
	return r, nil
}

// Close releases the worker pool. The renderer stays usable and renders
// sequentially afterwards.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Close()
		r.pool = nil
	}
}

// Size returns the output dimensions.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// SetSize changes the output dimensions. The view is kept as is; use
// FitView to recentre it.
func (r *Renderer) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == r.width && height == r.height {
		return nil
	}
	r.width, r.height = width, height
	r.dirty.mark(sizeDirty)
	return nil
}

// Geometry returns the current geometry map.
func (r *Renderer) Geometry() GeometryMap {
	return r.geometry
}

// SetGeometry sets the geometry map. nil selects Identity. The map is
// validated by the next Render.
func (r *Renderer) SetGeometry(m GeometryMap) {
	if m == nil {
		m = Identity{}
	}
	r.geometry = m
	r.dirty.mark(mapDirty)
}

// View returns the transform from output pixels to map space.
func (r *Renderer) View() Transform {
	return r.view
}

// SetView sets the transform from output pixels to map space.
func (r *Renderer) SetView(t Transform) {
	t.UpdateScaleAngle()
	r.view = t
	r.dirty.mark(mapDirty)
}

// Input returns the input image, or nil.
func (r *Renderer) Input() *ImageBuf {
	return r.input
}

// SetInput sets the input image and fits the unit disc into it. Unless an
// off colour was configured, samples off the image take its average colour.
func (r *Renderer) SetInput(img *ImageBuf) {
	r.input = img
	if img != nil {
		r.imageT = FitImage(img.Width(), img.Height())
		if r.opts.offColor == nil {
			r.offColor = fromNRGBA(img.AverageColor())
		}
	}
	r.dirty.mark(imageDirty)
}

// ImageTransform returns the transform from map space to input pixels.
func (r *Renderer) ImageTransform() Transform {
	return r.imageT
}

// SetImageTransform sets the transform from map space to input pixels.
func (r *Renderer) SetImageTransform(t Transform) {
	t.UpdateScaleAngle()
	r.imageT = t
	r.dirty.mark(imageDirty)
}

// SetInterpolation sets the sampling mode.
func (r *Renderer) SetInterpolation(mode InterpolationMode) {
	r.interp = mode
	r.dirty.mark(imageDirty)
}

// SetOffColor sets the colour of samples that fall off the input image.
func (r *Renderer) SetOffColor(c RGBA) {
	r.offColor = c
	r.opts.offColor = &c
	r.dirty.mark(imageDirty)
}

// SetBackground sets the colour of out-of-domain and diverged samples.
func (r *Renderer) SetBackground(c RGBA) {
	r.background = c
	r.dirty.mark(imageDirty)
}

// SetParityShade darkens samples with an odd structure code by the given
// fraction in [0, 1], which makes the two-colouring of a kaleidoscope
// tiling visible. 0 disables shading.
func (r *Renderer) SetParityShade(f float64) {
	r.parityShade = math.Max(0, math.Min(1, f))
	r.dirty.mark(imageDirty)
}

// Stats reports how many times each stage has run.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Grid returns the mapped grid of the last successful Render, or nil. With
// supersampling it is larger than the output.
func (r *Renderer) Grid() *Grid {
	return r.grid
}

// Pixmap returns the last rendered frame.
func (r *Renderer) Pixmap() *Pixmap {
	return r.pixmap
}

// Render runs the dirty stages and returns the frame. The returned pixmap
// is owned by the renderer and overwritten by later renders.
//
// A configuration error, such as a geometry map that fails to prepare,
// returns the previous frame together with the error; neither the grid
// nor the frame is touched and the stages stay dirty.
func (r *Renderer) Render() (*Pixmap, error) {
	if r.dirty == 0 {
		return r.pixmap, nil
	}
	if r.input == nil {
		return r.pixmap, ErrNoInput
	}

	var kernel Kernel
	if r.dirty&mapDirty != 0 {
		k, err := prepare(r.geometry)
		if err != nil {
			return r.pixmap, fmt.Errorf("kaleido: render: %w", err)
		}
		kernel = k
	}

	start := time.Now()
	f := r.opts.supersample
	gw, gh := r.width*f, r.height*f

	if r.dirty&sizeDirty != 0 {
		if err := r.resize(gw, gh); err != nil {
			return r.pixmap, err
		}
		r.stats.Resizes++
	}

	if r.dirty&mapDirty != 0 {
		view := r.gridView()
		r.forEachBand(gh, func(rowStart, rowEnd int) {
			r.grid.fillRows(view, 0, rowStart, rowEnd)
			applyRange(r.grid, kernel, rowStart*gw, rowEnd*gw)
		})
		r.stats.Maps++
	}

	r.forEachBand(gh, func(rowStart, rowEnd int) {
		r.sampleRange(rowStart*gw, rowEnd*gw)
	})
	if f > 1 {
		dst := r.pixmap.view()
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), r.frame.view(), r.frame.Bounds(), xdraw.Src, nil)
	}
	r.stats.Samples++

	Logger().Debug("kaleido: rendered",
		"geometry", r.geometry.Name(),
		"size", fmt.Sprintf("%dx%d", r.width, r.height),
		"supersample", f,
		"remapped", r.dirty&mapDirty != 0,
		"elapsed", time.Since(start))
	r.dirty = 0
	return r.pixmap, nil
}

// resize reallocates the grid and the frames for a gw × gh grid.
func (r *Renderer) resize(gw, gh int) error {
	if r.grid == nil {
		g, err := NewGrid(gw, gh)
		if err != nil {
			return err
		}
		r.grid = g
	} else if _, err := r.grid.Resize(gw, gh); err != nil {
		return err
	}

	if r.pixmap.Width() != r.width || r.pixmap.Height() != r.height {
		r.pixmap = NewPixmap(r.width, r.height)
	}
	if gw == r.width && gh == r.height {
		r.frame = r.pixmap
	} else if r.frame == nil || r.frame == r.pixmap || r.frame.Width() != gw || r.frame.Height() != gh {
		r.frame = NewPixmap(gw, gh)
	}
	return nil
}

// gridView is the view as seen from the grid. With supersampling factor f
// grid pixel (i, j) sits at output pixel ((i+0.5)/f - 0.5, (j+0.5)/f - 0.5),
// so the f×f grid pixels of one output pixel are centred on it.
func (r *Renderer) gridView() Transform {
	f := float64(r.opts.supersample)
	if f == 1 {
		return r.view
	}
	c := 0.5/f - 0.5
	shift := r.view.Apply(Pt(c, c))
	return NewTransform(shift.X, shift.Y, r.view.Scale/f, r.view.Angle)
}

func (r *Renderer) forEachBand(rows int, fn func(rowStart, rowEnd int)) {
	r.pool.ForEachBand(rows, r.pool.BandSize(rows), fn)
}

// sampleRange colours grid samples [start, end) into the frame.
func (r *Renderer) sampleRange(start, end int) {
	g := r.grid
	data := r.frame.data
	background := r.background.NRGBA()
	off := r.offColor.NRGBA()
	shade := 1 - r.parityShade

	for i := start; i < end; i++ {
		c := background
		if g.Status(i) == StatusValid {
			x, y := r.imageT.ApplyXY(g.X[i], g.Y[i])
			var ok bool
			if c, ok = intImage.Sample(r.input, x, y, r.interp); !ok {
				c = off
			}
			if shade < 1 && g.Structure[i]&1 == 1 {
				c.R = uint8(float64(c.R)*shade + 0.5)
				c.G = uint8(float64(c.G)*shade + 0.5)
				c.B = uint8(float64(c.B)*shade + 0.5)
			}
		}
		j := i * 4
		data[j+0] = c.R
		data[j+1] = c.G
		data[j+2] = c.B
		data[j+3] = c.A
	}
}
