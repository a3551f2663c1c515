package dlist

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bradleyjkemp/memviz"
	"golang.org/x/term"

	"github.com/clktmr/n64hle/hle/backend/ebitenraster"
	"github.com/clktmr/n64hle/hle/gbi"
	"github.com/clktmr/n64hle/hle/renderer"
	"github.com/clktmr/n64hle/logger"
	"github.com/clktmr/n64hle/rcp/rdram"
	"github.com/clktmr/n64hle/rom"
	"github.com/clktmr/n64hle/statsview"
)

const usageString = `Run a graphics task from a RAM dump.

The dump is in console byte order. The task is an OSTask structure at the
address given by -task.

Usage: %s [flags] <ramdump>

`

var (
	flags = flag.NewFlagSet("dlist", flag.ExitOnError)

	task     = flags.Uint("task", 0, "address of the OSTask structure")
	prefs    = flags.String("prefs", "", "session preferences, e.g. \"host::640x480; upscale::2\"")
	romfile  = flags.String("rom", "", "cartridge image to take the game name from")
	repeat   = flags.Int("n", 1, "number of times to run the task")
	echo     = flags.Bool("log", false, "echo the session log")
	batches  = flags.Bool("batches", false, "print every batch handed to the rasterizer")
	vizfile  = flags.String("memviz", "", "write a graphviz dump of the session state to file")
	stats    = flags.Bool("statsview", false, "launch the runtime stats server")
	window   = flags.Bool("window", false, "draw the task in a window until closed")
	maxLines = flags.Int("loglen", 1000, "number of log entries kept")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "dlist")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() != 1 {
		log.Println("expected one argument")
		flags.Usage()
		os.Exit(1)
	}

	if *stats {
		if !statsview.Available() {
			log.Fatalln("statsview not available, build with -tags statsview")
		}
		statsview.Launch(os.Stderr)
	}

	b, err := os.ReadFile(flags.Arg(0))
	if err != nil {
		log.Fatalln(err)
	}
	mem := rdram.New(max(len(b), rdram.Size4MB))
	mem.WriteAt(b, 0)

	opts, err := gbi.ParsePrefs(*prefs)
	if err != nil {
		log.Fatalln(err)
	}

	l := logger.NewLogger(*maxLines)
	if *echo {
		l.SetEcho(echoWriter(os.Stdout))
	}
	opts = append(opts, gbi.Logger(l))

	if *romfile != "" {
		r, err := rom.Open(*romfile)
		if err != nil {
			log.Fatalln(err)
		}
		opts = append(opts, gbi.GameName(r.Header.Title))
	}
	var raster *ebitenraster.Raster
	switch {
	case *window:
		raster = ebitenraster.New(nil)
		opts = append(opts, gbi.Rasterizer(raster))
	case *batches:
		opts = append(opts, gbi.Rasterizer(renderer.RasterizerFunc(printBatch)))
	}

	s := gbi.New(mem, opts...)
	t, err := gbi.ReadTask(mem, uint32(*task))
	if err != nil {
		log.Fatalln(err)
	}

	if *window {
		if err := runWindow(s, raster, t); err != nil {
			log.Fatalln(err)
		}
		return
	}

	var st renderer.Stats
	for range max(*repeat, 1) {
		st = s.ProcessDisplayList(t)
	}

	info := s.Info()
	fmt.Printf("microcode  %v (%s)\n", info.Dialect, info.Version)
	fmt.Printf("commands   %d\n", s.Executed())
	fmt.Printf("triangles  %d (%d clipped)\n", st.TrisRendered, st.TrisClipped)
	fmt.Printf("rectangles %d\n", st.Rects)
	fmt.Printf("batches    %d\n", st.Batches)

	if *vizfile != "" {
		if err := dumpState(*vizfile, s); err != nil {
			log.Fatalln(err)
		}
	}
}

// echoWriter colours the log if w is a terminal.
func echoWriter(w *os.File) io.Writer {
	if term.IsTerminal(int(w.Fd())) {
		return logger.NewColorizer(w)
	}
	return w
}

func printBatch(b renderer.Batch) {
	fmt.Printf("batch %s: %d vertices tile %d textured %v depth %v/%v decal %v scissor %v\n",
		b.Mode, b.Count(), b.State.Tile, b.State.Textured, b.DepthTest, b.DepthWrite, b.Decal, b.State.Scissor)
}

// state is the part of a session worth looking at in a graph.
type state struct {
	Info         gbi.Info
	Stats        renderer.Stats
	TnL          renderer.TnL
	GeometryMode uint32
	OtherMode    uint64
	Tiles        [8]gbi.Tile
}

func dumpState(name string, s *gbi.Session) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	return saveState(f, s)
}

// saveState writes the graph of s to w and closes it. memviz drops write
// errors, the ones reported on close are returned.
func saveState(w io.WriteCloser, s *gbi.Session) error {
	st := state{
		Info:         s.Info(),
		Stats:        s.Renderer.Stats(),
		TnL:          s.Renderer.TnL(),
		GeometryMode: s.GeometryMode(),
		OtherMode:    uint64(s.Renderer.OtherMode()),
	}
	st.Info.Table = nil
	for i := range st.Tiles {
		st.Tiles[i] = s.Tile(i)
	}
	memviz.Map(w, &st)
	return w.Close()
}
