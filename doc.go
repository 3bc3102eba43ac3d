// Package kaleido renders kaleidoscope and fractal imagery by warping an
// input image through a non-linear coordinate map.
//
// # Pipeline
//
// Every output pixel passes through
//
//	pixel grid → view Transform → GeometryMap → image Transform → sampler
//
// The view transform takes pixel coordinates to map space, where the
// geometry maps work on the unit disc. The image transform takes map space
// to input pixels, and the sampler reads the input image with nearest,
// bilinear or bicubic interpolation.
//
// # Quick Start
//
//	img, err := kaleido.LoadImage("input.jpg")
//	if err != nil {
//		return err
//	}
//	r, err := kaleido.NewRenderer(800, 800, kaleido.WithSupersample(2))
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	r.SetInput(img)
//	r.SetGeometry(kaleido.Kaleidoscope{K: 5, M: 4, N: 2})
//	pm, err := r.Render()
//	if err != nil {
//		return err
//	}
//	return pm.Save("output.png")
//
// # Geometry maps
//
// A GeometryMap is a value struct holding the parameters of one map.
// Prepare validates them and returns a Kernel that rewrites one Sample in
// place. Available maps are Identity, Dihedral, CircleInversion,
// Kaleidoscope (triangle groups on the sphere, the plane and the Poincaré
// disc), Bulatov (hyperbolic band), Singularity, Exponential and Compose.
// NewGeometry selects a map by name.
//
// Points a map cannot handle are not errors. They are marked in the Grid:
// StructureInvalid for points outside the domain and +Inf coordinates for
// points that diverge. The Renderer paints both with the background colour.
//
// # Incremental rendering
//
// Renderer keeps the mapped grid between frames. Changing the image side
// (input, image transform, interpolation, colours) resamples the grid
// without running the geometry map again; changing the view or the
// geometry remaps the grid; changing the size reallocates it.
package kaleido
