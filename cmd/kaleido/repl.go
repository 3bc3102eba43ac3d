package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/gogpu/kaleido"
)

// errQuit ends the REPL loop.
var errQuit = errors.New("quit")

// setParams are the names accepted by the set command.
var setParams = []string{
	"amplitude", "background", "constant", "hist", "iterations", "k", "m",
	"mirror", "mode", "n", "off", "order", "out", "periods", "radius",
	"shade", "zpow",
}

const replHelp = `commands:
  set <param> <value>   change a parameter (tab completes names)
  geometry <name>       select a map; join names with + to compose
  zoom <factor>         zoom in around the canvas centre
  rotate <degrees>      rotate the view around the canvas centre
  pan <dx> <dy>         move the view in map units
  fit                   recentre the view
  interp <mode>         nearest, linear or cubic
  size <w> <h>          resize the canvas and refit the view
  load <path>           load an input image
  render [path]         render and write the frame
  show                  print the current configuration
  help                  print this help
  quit                  leave
`

// command is one parsed REPL line.
type command struct {
	name string
	args []string
}

// parseCommand splits line into a command name and its arguments. Blank
// lines and lines starting with # yield an empty name.
func parseCommand(line string) command {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return command{}
	}
	fields := strings.Fields(line)
	return command{name: strings.ToLower(fields[0]), args: fields[1:]}
}

func (c command) want(n int, usage string) error {
	if len(c.args) != n {
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
	return nil
}

func (c command) floats(usage string) ([]float64, error) {
	vs := make([]float64, len(c.args))
	for i, a := range c.args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errUsage, usage)
		}
		vs[i] = v
	}
	return vs, nil
}

// exec runs one command line against the session. It returns errQuit for
// quit and exit.
func (s *session) exec(line string) error {
	c := parseCommand(line)
	switch c.name {
	case "":
		return nil
	case "quit", "exit":
		return errQuit
	case "help":
		_, err := io.WriteString(s.w, replHelp)
		return err
	case "show":
		s.show()
		return nil
	case "set":
		if err := c.want(2, "set <param> <value>"); err != nil {
			return err
		}
		return s.set(strings.ToLower(c.args[0]), c.args[1])
	case "geometry":
		if err := c.want(1, "geometry <name>"); err != nil {
			return err
		}
		return s.setGeometry(c.args[0])
	case "zoom":
		if err := c.want(1, "zoom <factor>"); err != nil {
			return err
		}
		v, err := c.floats("zoom <factor>")
		if err != nil {
			return err
		}
		return s.zoom(v[0])
	case "rotate":
		if err := c.want(1, "rotate <degrees>"); err != nil {
			return err
		}
		v, err := c.floats("rotate <degrees>")
		if err != nil {
			return err
		}
		s.rotate(v[0])
		return nil
	case "pan":
		if err := c.want(2, "pan <dx> <dy>"); err != nil {
			return err
		}
		v, err := c.floats("pan <dx> <dy>")
		if err != nil {
			return err
		}
		s.pan(v[0], v[1])
		return nil
	case "fit":
		s.fitView()
		return nil
	case "interp":
		if err := c.want(1, "interp <mode>"); err != nil {
			return err
		}
		mode, err := kaleido.ParseInterpolation(c.args[0])
		if err != nil {
			return err
		}
		s.r.SetInterpolation(mode)
		return nil
	case "size":
		if err := c.want(2, "size <w> <h>"); err != nil {
			return err
		}
		w, errW := strconv.Atoi(c.args[0])
		h, errH := strconv.Atoi(c.args[1])
		if errW != nil || errH != nil {
			return fmt.Errorf("%w: size <w> <h>", errUsage)
		}
		if err := s.r.SetSize(w, h); err != nil {
			return err
		}
		s.fitView()
		return nil
	case "load":
		if err := c.want(1, "load <path>"); err != nil {
			return err
		}
		return s.load(c.args[0])
	case "render":
		if len(c.args) > 1 {
			return fmt.Errorf("%w: render [path]", errUsage)
		}
		var path string
		if len(c.args) == 1 {
			path = c.args[0]
		}
		return s.render(path)
	default:
		return fmt.Errorf("unknown command %q, try help", c.name)
	}
}

// completer offers command names, geometry names, parameter names and
// interpolation modes.
func completer() *readline.PrefixCompleter {
	geometries := make([]readline.PrefixCompleterInterface, 0, len(kaleido.GeometryNames()))
	for _, name := range kaleido.GeometryNames() {
		geometries = append(geometries, readline.PcItem(name))
	}
	params := make([]readline.PrefixCompleterInterface, 0, len(setParams))
	for _, name := range setParams {
		params = append(params, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("set", params...),
		readline.PcItem("geometry", geometries...),
		readline.PcItem("zoom"),
		readline.PcItem("rotate"),
		readline.PcItem("pan"),
		readline.PcItem("fit"),
		readline.PcItem("interp",
			readline.PcItem("nearest"),
			readline.PcItem("linear"),
			readline.PcItem("cubic"),
		),
		readline.PcItem("size"),
		readline.PcItem("load"),
		readline.PcItem("render"),
		readline.PcItem("show"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// runREPL reads commands until quit, EOF or an interrupt on an empty line.
// Command errors are reported and the loop continues.
func runREPL(s *session) error {
	history, err := os.CreateTemp("", "kaleido-history")
	if err != nil {
		return err
	}
	history.Close()
	defer os.Remove(history.Name())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "kaleido> ",
		HistoryFile:       history.Name(),
		AutoComplete:      completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	s.w = rl.Stdout()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		if err := s.exec(line); errors.Is(err, errQuit) {
			return nil
		} else if err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
	}
}
