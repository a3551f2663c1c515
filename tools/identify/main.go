package identify

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/clktmr/n64hle/hle/gbi"
	"github.com/clktmr/n64hle/logger"
	"github.com/clktmr/n64hle/rcp/rdram"
	"github.com/clktmr/n64hle/rcp/rsp/ucode"
)

const usageString = `Identify the graphics dialect of RSP microcode.

The file is a microcode image as written by 'ucode', or with -dump a RAM
dump in console byte order holding the microcode at the given addresses.

Usage: %s [flags] <file>

`

var (
	flags = flag.NewFlagSet("identify", flag.ExitOnError)

	dump     = flags.Bool("dump", false, "file is a RAM dump")
	codeBase = flags.Uint("code", 0, "address of the code segment in the dump")
	codeSize = flags.Uint("codesize", 0x1000, "size of the code segment")
	dataBase = flags.Uint("data", 0, "address of the data segment in the dump")
	dataSize = flags.Uint("datasize", 0x800, "size of the data segment")
	verbose  = flags.Bool("v", false, "print the dispatch table")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "identify")
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

	f, err := os.Open(flags.Arg(0))
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	var info gbi.Info
	if *dump {
		info, err = fromDump(f)
	} else {
		info, err = fromImage(f)
	}
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Printf("dialect  %v\n", info.Dialect)
	fmt.Printf("base     %v\n", info.Base)
	fmt.Printf("stride   %d\n", info.Stride)
	fmt.Printf("hash     0x%08x\n", info.Hash)
	fmt.Printf("version  %s\n", info.Version)
	if *verbose {
		for op, inst := range info.Table {
			if inst.Name == "G_Unknown" {
				continue
			}
			fmt.Printf("  0x%02x %s\n", op, inst.Name)
		}
	}
}

func fromImage(f *os.File) (gbi.Info, error) {
	uc, err := ucode.Load(f)
	if err != nil {
		return gbi.Info{}, err
	}
	d := uc.Detect()
	if !d.Found {
		log.Printf("warning: no version string found, assuming %v", d.Dialect)
	}
	table := gbi.Build(d.Dialect, d.Base, logger.Central())
	return gbi.Info{
		Dialect: d.Dialect,
		Base:    d.Base,
		Stride:  d.Stride,
		Hash:    d.Hash,
		Version: d.Version,
		Table:   &table,
	}, nil
}

func fromDump(f *os.File) (gbi.Info, error) {
	b, err := io.ReadAll(f)
	if err != nil {
		return gbi.Info{}, err
	}
	mem := rdram.New(len(b))
	mem.WriteAt(b, 0)

	l := logger.NewLogger(100)
	l.SetEcho(logger.NewColorizer(os.Stderr))
	s := gbi.New(mem, gbi.Logger(l))
	return s.Identify(uint32(*codeBase), uint32(*codeSize), uint32(*dataBase), uint32(*dataSize)), nil
}
