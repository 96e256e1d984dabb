// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/ezrec/tiny6502/cpu"
	"github.com/ezrec/tiny6502/emulator"
	"github.com/ezrec/tiny6502/internal"
)

// hexProgram wraps raw bytes as a listing with no source lines.
func hexProgram(bin []uint8) *cpu.Program {
	prog := &cpu.Program{}
	for pc, code := range cpu.Disassemble(bin) {
		prog.Lines = append(prog.Lines, cpu.Line{
			Pc:    int(pc),
			Words: []string{code.String()},
			Bytes: code.Bytes(),
		})
	}
	return prog
}

func main() {
	var compile string
	var binary string
	var bytes string
	var limit int
	var listing bool
	var defines bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&binary, "b", "", "raw binary program to load")
	flag.StringVar(&bytes, "x", "", "program as hex bytes, ie 'a9 c0 aa e8 00'")
	flag.IntVar(&limit, "n", 0, "Step limit, 0 for unlimited")
	flag.BoolVar(&listing, "l", false, "Print listing, do not execute")
	flag.BoolVar(&defines, "D", false, "Print predefined equates and exit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.StepLimit = limit

	if defines {
		for key, value := range internal.Sorted2(emu.Defines()) {
			fmt.Printf("%v = %v\n", key, value)
		}
		return
	}

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(binary) != 0:
		bin, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		emu.Program = hexProgram(bin)
	case len(bytes) != 0:
		bin, err := hex.DecodeString(strings.Join(strings.Fields(bytes), ""))
		if err != nil {
			log.Fatalf("-x: %v", err)
		}
		emu.Program = hexProgram(bin)
	default:
		log.Fatalf("%v: one of -c, -b or -x is required", os.Args[0])
	}

	if listing {
		for _, line := range emu.Program.Lines {
			fmt.Printf("%04x  % -8x  %v\n", line.Pc, line.Bytes, strings.Join(line.Words, " "))
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run(ctx)
	if err != nil {
		log.Print(emu.Cpu.String())
		log.Fatal(err)
	}

	fmt.Print(emu.Cpu.String())
}
