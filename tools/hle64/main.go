package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clktmr/n64hle/tools/dlist"
	"github.com/clktmr/n64hle/tools/identify"
	"github.com/clktmr/n64hle/tools/ucode"
)

const usageString = `hle64 inspects Nintendo64 graphics microcode and display lists.

Usage:

	%s <command> [arguments]

The commands are:

	identify  identify the dialect of a microcode
	ucode     pack RSP microcode from an elf file
	dlist     run a graphics task from a RAM dump
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "identify":
		identify.Main(flag.Args())
	case "ucode":
		ucode.Main(flag.Args())
	case "dlist":
		dlist.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
