package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/MobRulesGames/memory"
	"github.com/caffeine-storm/shipyard/base"
	"github.com/caffeine-storm/shipyard/game"
	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/logging"
	"github.com/caffeine-storm/shipyard/pathfind"
	"github.com/caffeine-storm/shipyard/registry"
)

type options struct {
	datadir string
	level   string
	path    string
	walk    string
	steps   int
	watch   bool
	verbose bool
	logfile string
}

func parseFlags(argv []string, errOut io.Writer) (*options, error) {
	var opts options
	fs := flag.NewFlagSet(filepath.Base(argv[0]), flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&opts.datadir, "data", "data", "directory holding def registries")
	fs.StringVar(&opts.level, "level", "", "level file to load (.json, .yaml or .yml)")
	fs.StringVar(&opts.path, "path", "", "show a path between two cells, e.g. 0,0:7,4")
	fs.StringVar(&opts.walk, "walk", "", "walk a crew member to a cell, e.g. mate=7,4")
	fs.IntVar(&opts.steps, "steps", 0, "steps to simulate after -walk; 0 means until everyone stops")
	fs.BoolVar(&opts.watch, "watch", false, "redraw whenever the level or its defs change")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	fs.StringVar(&opts.logfile, "log", "", "write logs to this file instead of stderr")
	if err := fs.Parse(argv[1:]); err != nil {
		return nil, err
	}
	if opts.level == "" {
		return nil, fmt.Errorf("-level is required")
	}
	return &opts, nil
}

func parseCoord(s string) (grid.Coord, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return grid.Coord{}, fmt.Errorf("bad cell %q, want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Coord{}, fmt.Errorf("bad cell %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Coord{}, fmt.Errorf("bad cell %q: %w", s, err)
	}
	return grid.Coord{X: x, Y: y}, nil
}

func parseSegment(s string) (grid.Coord, grid.Coord, error) {
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return grid.Coord{}, grid.Coord{}, fmt.Errorf("bad path %q, want x,y:x,y", s)
	}
	start, err := parseCoord(from)
	if err != nil {
		return grid.Coord{}, grid.Coord{}, err
	}
	end, err := parseCoord(to)
	if err != nil {
		return grid.Coord{}, grid.Coord{}, err
	}
	return start, end, nil
}

// Loads the defs and level named by opts, then draws the result to out.
func run(opts *options, out io.Writer) error {
	if err := registry.LoadAllRegistries(opts.datadir); err != nil {
		return err
	}
	def, err := game.LoadLevel(opts.level)
	if err != nil {
		return err
	}
	g, err := game.MakeGame(def)
	if err != nil {
		return err
	}

	var overlay pathfind.Path
	if opts.path != "" {
		start, end, err := parseSegment(opts.path)
		if err != nil {
			return err
		}
		overlay, err = g.Paths.FindPath(start, end)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "path %v -> %v: %v, %d steps\n", start, end, overlay.Status, len(overlay.Steps))
	}

	if opts.walk != "" {
		if err := walk(g, opts, out); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "%s\n%s", def.Name, g.RenderPath(overlay))
	return nil
}

func walk(g *game.Game, opts *options, out io.Writer) error {
	name, target, ok := strings.Cut(opts.walk, "=")
	if !ok {
		return fmt.Errorf("bad walk %q, want name=x,y", opts.walk)
	}
	id, ok := g.CrewID(name)
	if !ok {
		return fmt.Errorf("no crew member %q (have %v)", name, g.Crew())
	}
	end, err := parseCoord(target)
	if err != nil {
		return err
	}
	path, err := g.Walk(id, end)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s -> %v: %v\n", name, end, path.Status)

	limit := opts.steps
	if limit <= 0 {
		limit = g.Grid.Width() * g.Grid.Height()
	}
	taken := 0
	for ; taken < limit && g.Walking(id) > 0; taken++ {
		g.Step()
	}
	pos, _ := g.Position(id)
	fmt.Fprintf(out, "%s at %v after %d steps\n", name, pos, taken)
	return nil
}

func watch(opts *options, out io.Writer) error {
	w, err := registry.Watch(filepath.Join(opts.datadir, "buildings"), filepath.Dir(opts.level))
	if err != nil {
		return err
	}
	defer w.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		w.Close()
	}()

	w.Run(func(string) {
		// Each change gets a fresh game; nothing from the last one is reused.
		if err := run(opts, out); err != nil {
			logging.Error("reload failed", "err", err)
		}
	})
	return nil
}

func onPanic(recoveredValue interface{}) {
	stack := debug.Stack()
	logging.Error("PANIC", "val", recoveredValue, "stack", stack)
	fmt.Fprintf(os.Stderr, "PANIC: %v\n%s\n", recoveredValue, stack)
}

func Main(argv []string) int {
	opts, err := parseFlags(argv, os.Stderr)
	if err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
		}
		return 2
	}

	if opts.verbose {
		logging.SetLogLevel(slog.LevelDebug)
	}
	if opts.logfile != "" {
		f, err := os.Create(opts.logfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "couldn't create log file %q: %v\n", opts.logfile, err)
			return 1
		}
		defer f.Close()
		defer logging.Redirect(f)()
	}
	if err := base.SetDatadir(opts.datadir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	defer func() {
		if r := recover(); r != nil {
			onPanic(r)
			panic(r)
		}
	}()

	err = run(opts, os.Stdout)
	if err == nil && opts.watch {
		err = watch(opts, os.Stdout)
	}
	logging.Debug("memory", "allocations", memory.TotalAllocations())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
