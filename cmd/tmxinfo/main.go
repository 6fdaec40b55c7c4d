package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"
	"go.uber.org/zap"

	"github.com/jacoelho/tmx"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tmxinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemaPath := fs.String("schema", "", "validate the map against an XSD schema file first")
	gidArg := fs.String("gid", "", "print the tileset that owns this global tile id")
	debug := fs.Bool("debug", false, "log skipped elements and external files to stderr")
	cpuProfilePath := fs.String("cpuprofile", "", "write CPU profile to file")
	memProfilePath := fs.String("memprofile", "", "write memory profile to file")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [--schema <map.xsd>] [--gid N] [--debug] <map.tmx>\n\n", os.Args[0]),
			writeln(stderr, "Prints a summary of a Tiled TMX map."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		if err := writeln(stderr, "error: exactly one map file argument is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}
	mapPath := remaining[0]

	var gid tmx.Gid
	if *gidArg != "" {
		n, err := strconv.ParseUint(*gidArg, 10, 32)
		if err != nil {
			if writeErr := writef(stderr, "error: invalid --gid %q\n", *gidArg); writeErr != nil {
				return 1
			}
			return 2
		}
		gid = tmx.Gid(n)
	}

	if *cpuProfilePath != "" {
		stopCPUProfile, err := startCPUProfile(*cpuProfilePath)
		if err != nil {
			if writeErr := writef(stderr, "error starting CPU profile: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		defer func() {
			if err := stopCPUProfile(); err != nil {
				_ = writef(stderr, "error stopping CPU profile: %v\n", err)
			}
		}()
	}

	if *memProfilePath != "" {
		defer func() {
			if err := writeMemProfile(*memProfilePath); err != nil {
				_ = writef(stderr, "error writing memory profile: %v\n", err)
			}
		}()
	}

	opts := tmx.NewParseOptions()
	if *debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			if writeErr := writef(stderr, "error creating logger: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		defer func() { _ = logger.Sync() }()
		opts = opts.WithLogger(logger)
	}
	if *schemaPath != "" {
		schema, err := xsd.LoadFile(*schemaPath)
		if err != nil {
			if writeErr := writef(stderr, "error loading schema: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		opts = opts.WithSchema(schema)
	}

	m, err := tmx.ParseFileWithOptions(mapPath, opts)
	if err != nil {
		if violations, ok := xsderrors.AsValidations(err); ok {
			for _, v := range violations {
				if writeErr := writeln(stderr, v.Error()); writeErr != nil {
					return 1
				}
			}
			if writeErr := writef(stderr, "%s fails to validate\n", mapPath); writeErr != nil {
				return 1
			}
			return 1
		}
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}

	if *gidArg != "" {
		return printOwner(stdout, stderr, m, gid)
	}
	if err := printSummary(stdout, m); err != nil {
		return 1
	}
	return 0
}

func printOwner(stdout, stderr io.Writer, m *tmx.Map, gid tmx.Gid) int {
	ts := m.TilesetByGID(gid)
	if ts == nil {
		if writeErr := writef(stderr, "gid %d: no tileset\n", gid); writeErr != nil {
			return 1
		}
		return 1
	}
	local, _ := ts.LocalID(gid)
	if err := writef(stdout, "gid %d: tileset %q local id %d\n", gid, ts.Name, local); err != nil {
		return 1
	}
	return 0
}

func printSummary(w io.Writer, m *tmx.Map) error {
	size := "finite"
	if m.Infinite {
		size = "infinite"
	}
	err := errors.Join(
		writef(w, "map %s\n", m.Source),
		writef(w, "  version %s, %s, %dx%d tiles of %dx%d px, %s\n",
			m.Version, m.Orientation, m.Width, m.Height, m.TileWidth, m.TileHeight, size),
	)
	if err != nil {
		return err
	}
	for _, ts := range m.Tilesets {
		last := uint64(ts.FirstGID) + uint64(ts.TileCount)
		if ts.TileCount > 0 {
			last--
		}
		if err := writef(w, "  tileset %q gids %d-%d\n", ts.Name, ts.FirstGID, last); err != nil {
			return err
		}
	}
	for _, entry := range layerSummary(m) {
		if err := writef(w, "  layer %d %s %q\n", entry.index, entry.kind, entry.name); err != nil {
			return err
		}
	}
	return nil
}

type layerEntry struct {
	kind  string
	name  string
	index uint32
}

// layerSummary lists every layer kind in z-order.
func layerSummary(m *tmx.Map) []layerEntry {
	n := len(m.Layers) + len(m.ImageLayers) + len(m.ObjectGroups)
	entries := make([]layerEntry, n)
	for _, l := range m.Layers {
		entries[l.LayerIndex] = layerEntry{kind: "tiles", name: l.Name, index: l.LayerIndex}
	}
	for _, l := range m.ImageLayers {
		entries[l.LayerIndex] = layerEntry{kind: "image", name: l.Name, index: l.LayerIndex}
	}
	for _, g := range m.ObjectGroups {
		if g.LayerIndex != nil {
			entries[*g.LayerIndex] = layerEntry{kind: "objects", name: g.Name, index: *g.LayerIndex}
		}
	}
	return entries
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, fmt.Errorf("start cpu profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return nil, fmt.Errorf("start cpu profile %s: %w", path, err)
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile %s: %w", path, err)
		}
		return nil
	}, nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("write mem profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("write mem profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
