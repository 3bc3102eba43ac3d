package kaleido

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	r, err := kaleido.NewRenderer(800, 600,
//		kaleido.WithWorkers(0),
//		kaleido.WithSupersample(2),
//		kaleido.WithInterpolation(kaleido.InterpBicubic),
//	)
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	workers     int
	parallel    bool
	supersample int
	interp      InterpolationMode
	background  RGBA
	offColor    *RGBA
}

// defaultOptions returns the default renderer options: sequential,
// no supersampling, nearest sampling, transparent background and the input
// image's average colour off the image.
func defaultOptions() rendererOptions {
	return rendererOptions{
		supersample: 1,
		interp:      InterpNearest,
		background:  Transparent,
	}
}

// WithWorkers runs the map and sample stages on a pool of n goroutines
// over row bands. n <= 0 uses GOMAXPROCS. The output is identical to a
// sequential render.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
		o.parallel = true
	}
}

// WithSupersample renders a grid f times larger in each direction and
// downsamples it to the output size. Values below 1 are treated as 1.
func WithSupersample(f int) RendererOption {
	return func(o *rendererOptions) {
		o.supersample = max(1, f)
	}
}

// WithInterpolation sets the initial sampling mode.
func WithInterpolation(mode InterpolationMode) RendererOption {
	return func(o *rendererOptions) {
		o.interp = mode
	}
}

// WithBackground sets the colour of samples that the geometry map marks
// out of domain or diverged.
func WithBackground(c RGBA) RendererOption {
	return func(o *rendererOptions) {
		o.background = c
	}
}

// WithOffColor sets the colour of samples that fall off the input image.
// Without it the input image's average colour is used.
func WithOffColor(c RGBA) RendererOption {
	return func(o *rendererOptions) {
		o.offColor = &c
	}
}
