package ucode

import (
	"debug/elf"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/clktmr/n64hle/rcp/rsp/ucode"
)

const usageString = `RSP microcode packer.

Packs the text and data sections of an elf file into a microcode image
readable by 'identify'.

Usage: %s [flags] <elffile>

`

var (
	flags = flag.NewFlagSet("ucode", flag.ExitOnError)

	name    = flags.String("name", "", "microcode name, defaults to the file name")
	entry   = flags.Uint("entry", 0x1000, "initial RSP PC")
	outfile = flags.String("o", "", "output file, defaults to <elffile>.ucode")

	infile string
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "ucode")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() == 1 {
		infile = flags.Arg(0)
	} else {
		log.Println("expected one argument")
		flags.Usage()
		os.Exit(1)
	}

	base, _ := strings.CutSuffix(infile, ".elf")
	if *outfile == "" {
		*outfile = base + ".ucode"
	}
	if *name == "" {
		*name = filepath.Base(base)
	}

	elffile, err := elf.Open(infile)
	if err != nil {
		log.Fatalln(err)
	}
	defer elffile.Close()

	var text, data []byte
	for _, s := range elffile.Sections {
		if s.Type != elf.SHT_PROGBITS || s.Flags&elf.SHF_ALLOC == 0 {
			continue
		}

		b, err := io.ReadAll(io.NewSectionReader(s, 0x0, min(int64(s.Size), 0x1000)))
		if err != nil {
			log.Fatalln(err)
		}
		switch {
		case s.Flags&elf.SHF_EXECINSTR != 0:
			text = append(text, b...)
		default:
			data = append(data, b...)
		}
	}

	uc := ucode.NewUCode(*name, uint32(*entry), text, data)
	f, err := os.Create(*outfile)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()
	if err := uc.Store(f); err != nil {
		log.Fatalln(err)
	}

	d := uc.Detect()
	log.Printf("%s: %d bytes text, %d bytes data, %v", *outfile, len(uc.Text), len(uc.Data), d.Dialect)
}
