// Command kaleido renders kaleidoscope and fractal images from an input
// image.
//
// A one-shot render:
//
//	kaleido -in photo.jpg -out tiling.png -geometry kaleidoscope -k 5 -m 4 -n 2
//
// With -i the command starts an interactive session instead; type help at
// the prompt for the commands.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/kaleido"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "kaleido: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("kaleido", flag.ContinueOnError)
	var (
		in          = fs.String("in", "", "input image (png, jpeg, gif, bmp, tiff, webp)")
		out         = fs.String("out", "kaleido.png", "output image, png or jpeg by extension")
		width       = fs.Int("width", 800, "output width")
		height      = fs.Int("height", 800, "output height")
		geometry    = fs.String("geometry", "kaleidoscope", "geometry map; join names with + to compose")
		k           = fs.Int("k", 7, "first triangle angle is pi/k")
		m           = fs.Int("m", 3, "second triangle angle is pi/m")
		n           = fs.Int("n", 2, "third triangle angle is pi/n")
		order       = fs.Int("order", 1, "rotational order of dihedral, singularity and exponential maps")
		zpow        = fs.Float64("zpow", 1, "power of z in singularity and exponential maps")
		radius      = fs.Float64("radius", 1, "map-space radius of the shorter canvas side")
		interp      = fs.String("interp", "linear", "interpolation: nearest, linear or cubic")
		supersample = fs.Int("supersample", 1, "supersampling factor")
		workers     = fs.Int("workers", 0, "worker goroutines, 0 for GOMAXPROCS, negative for sequential")
		maxInput    = fs.Int("maxinput", 2048, "downscale inputs whose longer edge exceeds this, 0 to disable")
		hist        = fs.String("hist", "", "write a structure code histogram PNG to this path")
		verbose     = fs.Bool("v", false, "debug logging")
		interactive = fs.Bool("i", false, "start an interactive session")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	kaleido.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	mode, err := kaleido.ParseInterpolation(*interp)
	if err != nil {
		return err
	}
	opts := []kaleido.RendererOption{
		kaleido.WithInterpolation(mode),
		kaleido.WithSupersample(*supersample),
	}
	if *workers >= 0 {
		opts = append(opts, kaleido.WithWorkers(*workers))
	}
	r, err := kaleido.NewRenderer(*width, *height, opts...)
	if err != nil {
		return err
	}
	defer r.Close()

	s := newSession(r, message.NewPrinter(language.English), os.Stdout)
	s.params.K, s.params.M, s.params.N = *k, *m, *n
	s.params.Order = *order
	s.params.ZPow = *zpow
	s.radius = *radius
	s.maxInput = *maxInput
	s.out = *out
	s.hist = *hist
	s.fitView()
	if err := s.setGeometry(*geometry); err != nil {
		return err
	}
	if *in != "" {
		if err := s.load(*in); err != nil {
			return err
		}
	}

	if *interactive {
		return runREPL(s)
	}
	if *in == "" {
		return errors.New("-in is required without -i")
	}
	return s.render("")
}
