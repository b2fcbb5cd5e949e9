package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/gameboy"
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
)

type command struct {
	name  string
	usage string
	run   func(args []string, w io.Writer) error
}

var (
	commands = []command{
		{name: "run", usage: "run [flags] dump", run: runDump},
		{name: "disasm", usage: "disasm [flags] dump", run: disassembleDump},
	}
	commandTree = prefixtree.New[*command]()
)

func init() {
	for i := range commands {
		commandTree.Add(commands[i].name, &commands[i])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: sm83 <command> [flags] dump\nCommands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "    %s\n", c.usage)
	}
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	c, err := commandTree.FindValue(strings.ToLower(os.Args[1]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[1], err)
		usage()
		os.Exit(2)
	}

	if err := c.run(os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

// parseAddress parses a hexadecimal address, optionally prefixed
// with $ or 0x.
func parseAddress(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "$")
	s = strings.TrimPrefix(s, "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}

func runDump(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	entry := fs.String("entry", "0100", "The address to start execution from")
	until := fs.String("until", "", "Stop when the CPU is about to execute this address")
	cycles := fs.Uint64("cycles", 1<<24, "The maximum number of M-cycles to run for")
	vblank := fs.Uint64("vblank", 0, "Request the VBlank interrupt every n M-cycles")
	timer := fs.Uint64("timer", 0, "Request the timer interrupt every n M-cycles")
	model := fs.String("model", "dmg", "The model whose post boot registers are used")
	trace := fs.Bool("trace", false, "Log every instruction executed")
	lockstep := fs.Bool("lockstep", false, "Clock the interrupt sources in their own goroutine")
	debug := fs.Bool("debug", false, "Stop at the LD B, B breakpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("run: expected a single dump file")
	}

	b, err := utils.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	pc, err := parseAddress(*entry)
	if err != nil {
		return err
	}

	level := logrus.InfoLevel
	if *trace {
		level = logrus.DebugLevel
	}
	logger := log.NewWithLevel(os.Stderr, level)

	m := types.StringToModel(*model)
	if m == types.Unset {
		m = types.DMGABC
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithDump(b),
		gameboy.WithEntry(pc),
		gameboy.AsModel(m),
		gameboy.WithPeriodicInterrupt(interrupts.VBlank, *vblank),
		gameboy.WithPeriodicInterrupt(interrupts.Timer, *timer),
	}
	if *trace {
		opts = append(opts, gameboy.WithTrace())
	}
	if *lockstep {
		opts = append(opts, gameboy.WithLockstep())
	}
	if *debug {
		opts = append(opts, gameboy.Debug())
	}

	g, err := gameboy.NewGameBoy(opts...)
	if err != nil {
		return err
	}

	if *until != "" {
		var stop uint16
		if stop, err = parseAddress(*until); err != nil {
			return err
		}
		err = g.RunUntil(stop, *cycles)
	} else {
		err = g.Run(*cycles)
	}
	if errors.Is(err, gameboy.ErrCycleLimit) {
		logger.Infof("%v", err)
	} else if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s\n", &g.CPU.Registers)
	fmt.Fprintf(w, "cycles %d\n", g.CPU.Cycles())
	fmt.Fprintf(w, "digest %016X\n", utils.Digest(g.Dump()))
	return nil
}

func disassembleDump(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("disasm", flag.ContinueOnError)
	from := fs.String("from", "0100", "The address to start disassembling from")
	count := fs.Int("count", 16, "The number of instructions to disassemble")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("disasm: expected a single dump file")
	}

	b, err := utils.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	addr, err := parseAddress(*from)
	if err != nil {
		return err
	}

	n := utils.Clamp(1, *count, 0x10000)
	m := mmu.NewMMU()
	if err := m.Load(0x0000, b); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		text, length := cpu.Disassemble(m, addr)
		fmt.Fprintf(w, "%04X  %s\n", addr, text)
		addr += uint16(length)
	}
	return nil
}
