// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ezrec/subleq/cpu"
	"github.com/ezrec/subleq/emulator"
)

// DEFAULT_SOURCE is assembled when no file is named.
const DEFAULT_SOURCE = "main.sla"

type options struct {
	debug   bool
	cond    string
	steps   int
	verbose bool
	symbols bool
	listing bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "subleq [file]",
		Short: "Assemble and run a SUBLEQ program",
		Long: `Subleq assembles a program written in the SUBLEQ pseudo-assembly
language, and runs it on a 16 bit single instruction machine.

Without a file, ` + DEFAULT_SOURCE + ` in the working directory is used. Included
files are found in the same directory as the program.

In debug mode each step waits for a key press, and prints a trace of the
machine state. A break condition limits the trace to the steps where the
condition, a Starlark expression over pc and the program's names, is true.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its settings from the Go flag set.
			return flag.CommandLine.Parse(nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DEFAULT_SOURCE
			if len(args) > 0 {
				path = args[0]
			}
			return run(path, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.debug, "debug", "d", false, "single step with a trace of each step")
	flags.StringVar(&opts.cond, "break", "", "only trace steps where this condition is true")
	flags.IntVar(&opts.steps, "steps", 0, "stop after this many steps (0 for no limit)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	flags.BoolVar(&opts.symbols, "symbols", false, "dump the symbol table to stderr")
	flags.BoolVar(&opts.listing, "listing", false, "write the assembled code to stderr")

	// glog's -v would collide with --verbose, so it is renamed.
	flag.CommandLine.VisitAll(func(gf *flag.Flag) {
		pf := pflag.PFlagFromGoFlag(gf)
		if gf.Name == "v" {
			pf.Name = "log-level"
			pf.Shorthand = ""
		}
		cmd.PersistentFlags().AddFlag(pf)
	})

	return cmd
}

// assemble reads a program, with includes relative to its directory.
func assemble(path string, verbose bool) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		err = errors.Wrap(err, "subleq")
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{
		Verbose: verbose,
		Name:    filepath.Base(path),
		FS:      os.DirFS(filepath.Dir(path)),
	}

	prog, err = asm.Parse(inf)
	return
}

func run(path string, opts *options) (err error) {
	prog, err := assemble(path, opts.verbose)
	if err != nil {
		return
	}

	if opts.symbols {
		var symbols []cpu.Symbol
		for _, sym := range prog.Symbols.All() {
			symbols = append(symbols, sym)
		}
		pp.Fprintln(os.Stderr, symbols)
	}

	if opts.listing {
		err = prog.Listing(os.Stderr)
		if err != nil {
			return
		}
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	emu := emulator.NewEmulator()
	emu.Verbose = opts.verbose
	emu.Debug = opts.debug
	emu.Break = opts.cond
	emu.Program = prog
	emu.Tape.Input = os.Stdin
	emu.Tape.Output = stdout

	if opts.debug {
		var restore func()
		restore, err = setRawIO()
		if err != nil {
			glog.Warningf("subleq: raw terminal: %v", err)
			err = nil
		} else {
			defer restore()
		}
	}

	err = emu.Reset()
	if err != nil {
		return
	}

	if opts.steps > 0 {
		_, err = emu.RunFor(opts.steps)
	} else {
		err = emu.Run()
	}

	if opts.verbose {
		glog.Infof("subleq: %d ticks, halted %v", emu.Ticks(), emu.Halted())
	}

	return
}

func main() {
	defer glog.Flush()

	err := newRootCommand().Execute()
	if err != nil {
		glog.Flush()
		os.Exit(1)
	}
}
