// Completion: 100% - CLI interface complete, all flags working
//go:build linux && amd64

package main

import (
	"flag"
	"fmt"
	"os"
)

// jitbf compiles Brainfuck straight to x86_64 machine code in an mmap'd
// buffer and runs it in-process. No files are written; the only output
// is whatever the program prints, plus an optional disassembly dump.

func usage() {
	prog := os.Args[0]
	fmt.Fprintf(os.Stderr,
		"Usage: %s [options] <file.bf>\n"+
			"       %s [options] -e '<brainfuck code>'\n"+
			"\n"+
			"Options:\n"+
			"  -v        Verbose mode: show generated machine code disassembly\n"+
			"  -e CODE   Execute inline code instead of reading a file\n"+
			"  -version  Show version and exit\n",
		prog, prog)
}

func main() {
	verbose := flag.Bool("v", VerboseMode, "show generated machine code disassembly")
	inline := flag.String("e", "", "execute inline code instead of reading a file")
	version := flag.Bool("version", false, "show version and exit")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Println(versionString)
		return
	}

	var src []byte
	switch {
	case *inline != "" && flag.NArg() > 0:
		fmt.Fprintln(os.Stderr, "error: cannot use both -e and a filename")
		os.Exit(1)
	case *inline != "":
		src = []byte(*inline)
	case flag.NArg() == 1:
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		src = data
	default:
		usage()
		os.Exit(1)
	}

	VerboseMode = *verbose

	if err := run(src, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "%s error: %v\n", Categorize(err), err)
		os.Exit(1)
	}
}

// run drives the pipeline: validate, allocate, compile, dump, execute.
// Both buffers are released on every path out.
func run(src []byte, verbose bool) error {
	cfg := NewConfig()

	if err := ValidateLoops(src, cfg.MaxNesting); err != nil {
		return err
	}

	code, err := NewCodeBuffer(cfg.CodeSize)
	if err != nil {
		return err
	}
	defer code.Release()

	tape, err := NewTape(cfg.TapeSize)
	if err != nil {
		return err
	}
	defer tape.Release()

	var log *DisasmLog
	if verbose {
		log = &DisasmLog{}
	}
	out := NewOut(code.Writable(), log)
	if err := Compile(src, out, cfg); err != nil {
		return err
	}

	if verbose {
		fmt.Printf("code buffer: %#x (%d bytes used of %d)\n", code.Addr(), out.Len(), cfg.CodeSize)
		fmt.Printf("tape:        %#x (%d bytes)\n\n", tape.Addr(), cfg.TapeSize)
		log.Fprint(os.Stdout, out.Bytes())
	}

	return Run(code, tape)
}
