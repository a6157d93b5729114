// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/pipeline"
	"github.com/db47h/intcode/search"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func cells(v []int64) []vm.Cell {
	c := make([]vm.Cell, len(v))
	for k := range v {
		c[k] = vm.Cell(v[k])
	}
	return c
}

func joinCells(v []vm.Cell) string {
	s := make([]string, len(v))
	for k := range v {
		s[k] = strconv.FormatInt(int64(v[k]), 10)
	}
	return strings.Join(s, ",")
}

func loadArg(ctx *cli.Context) (vm.Image, error) {
	if ctx.Args().Len() != 1 {
		return nil, errors.New("expected exactly one program file")
	}
	return vm.Load(ctx.Args().First())
}

func (c *command) runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run a program and print its output, one value per line",
		ArgsUsage: "<program>",
		Flags: []cli.Flag{
			&cli.Int64SliceFlag{Name: "input", Aliases: []string{"i"}, Usage: "queue input `values` (repeatable)"},
			&cli.BoolFlag{Name: "pause", Usage: "pause after each output"},
			&cli.BoolFlag{Name: "trace", Usage: "log every instruction at trace level"},
			&cli.BoolFlag{Name: "dump", Usage: "print mapped memory when the program stops"},
		},
		Action: c.run,
	}
}

func (c *command) run(ctx *cli.Context) error {
	cfg := &c.cfg.Run
	override(ctx, "input", &cfg.Input, ctx.Int64Slice)
	override(ctx, "pause", &cfg.Pause, ctx.Bool)
	override(ctx, "trace", &cfg.Trace, ctx.Bool)
	override(ctx, "dump", &cfg.Dump, ctx.Bool)

	prog, err := loadArg(ctx)
	if err != nil {
		return err
	}
	c.i, err = vm.New(prog,
		vm.Input(cells(cfg.Input)...),
		vm.PauseOnOutput(cfg.Pause),
		vm.Logger(c.log),
		vm.Trace(cfg.Trace))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(ctx.App.Writer)
	defer w.Flush()
	printed := 0
	for c.i.State() != vm.Stopped {
		_, err = c.i.Run()
		out := c.i.Output()
		for _, v := range out[printed:] {
			fmt.Fprintln(w, v)
		}
		printed = len(out)
		if err != nil {
			return err
		}
	}
	if cfg.Dump {
		return dumpMemory(w, c.i.Memory())
	}
	return nil
}

func (c *command) amplifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "amplify",
		Usage:     "run a chain of amplifiers and print the output signal",
		ArgsUsage: "<program>",
		Flags: []cli.Flag{
			&cli.Int64SliceFlag{Name: "settings", Usage: "comma separated phase `settings`, one per amplifier"},
			&cli.Int64Flag{Name: "seed", Usage: "input `value` of the first amplifier"},
			&cli.BoolFlag{Name: "feedback", Usage: "feed the last amplifier output back to the first one"},
			&cli.BoolFlag{Name: "search", Usage: "find the permutation of settings with the highest signal"},
		},
		Action: c.amplify,
	}
}

func (c *command) amplify(ctx *cli.Context) error {
	cfg := &c.cfg.Amplifier
	override(ctx, "settings", &cfg.Settings, ctx.Int64Slice)
	override(ctx, "seed", &cfg.Seed, ctx.Int64)
	override(ctx, "feedback", &cfg.Feedback, ctx.Bool)
	override(ctx, "search", &cfg.Search, ctx.Bool)

	prog, err := loadArg(ctx)
	if err != nil {
		return err
	}
	settings := cells(cfg.Settings)
	opts := []pipeline.Option{pipeline.Logger(c.log), pipeline.Seed(vm.Cell(cfg.Seed))}

	if cfg.Search {
		res, err := pipeline.MaxSignal(ctx.Context, prog, settings, cfg.Feedback, opts...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(ctx.App.Writer, "%d %s\n", res.Signal, joinCells(res.Settings))
		return err
	}

	chain, err := pipeline.NewChain(prog, settings, opts...)
	if err != nil {
		return err
	}
	run := chain.Run
	if cfg.Feedback {
		run = chain.RunFeedback
	}
	signal, err := run(vm.Cell(cfg.Seed))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, signal)
	return err
}

func (c *command) nounVerbCommand() *cli.Command {
	return &cli.Command{
		Name:      "nounverb",
		Usage:     "evaluate a program for a noun and verb, or search the noun and verb producing a target",
		ArgsUsage: "<program>",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "noun", Usage: "`value` stored at address 1"},
			&cli.Int64Flag{Name: "verb", Usage: "`value` stored at address 2"},
			&cli.Int64Flag{Name: "target", Usage: "search the noun and verb leaving `value` at address 0"},
			&cli.Int64Flag{Name: "limit", Usage: "search nouns and verbs below `n`"},
			&cli.IntFlag{Name: "workers", Usage: "number of nouns searched concurrently"},
		},
		Action: c.nounVerb,
	}
}

func (c *command) nounVerb(ctx *cli.Context) error {
	cfg := &c.cfg.NounVerb
	override(ctx, "limit", &cfg.Limit, ctx.Int64)
	override(ctx, "workers", &cfg.Workers, ctx.Int)

	prog, err := loadArg(ctx)
	if err != nil {
		return err
	}
	if !ctx.IsSet("target") {
		v, err := search.Evaluate(prog, vm.Cell(ctx.Int64("noun")), vm.Cell(ctx.Int64("verb")), vm.Logger(c.log))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(ctx.App.Writer, v)
		return err
	}

	opts := []search.Option{search.Logger(c.log)}
	if cfg.Workers > 0 {
		opts = append(opts, search.Workers(cfg.Workers))
	}
	noun, verb, err := search.NounVerb(ctx.Context, prog, vm.Cell(ctx.Int64("target")), vm.Cell(cfg.Limit), opts...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.App.Writer, "noun=%d verb=%d answer=%d\n", noun, verb, search.Answer(noun, verb))
	return err
}

func (c *command) asmCommand() *cli.Command {
	return &cli.Command{
		Name:      "asm",
		Usage:     "assemble a source file",
		ArgsUsage: "<source>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "o", Usage: "write the program to `file` instead of standard output"},
		},
		Action: func(ctx *cli.Context) error {
			if ctx.Args().Len() != 1 {
				return errors.New("expected exactly one source file")
			}
			name := ctx.Args().First()
			f, err := os.Open(name)
			if err != nil {
				return errors.Wrap(err, "asm")
			}
			defer f.Close()
			img, err := asm.Assemble(name, f)
			if err != nil {
				return err
			}
			if out := ctx.String("o"); out != "" {
				return img.Save(out)
			}
			_, err = img.WriteTo(ctx.App.Writer)
			return err
		},
	}
}

func (c *command) disasmCommand() *cli.Command {
	return &cli.Command{
		Name:      "disasm",
		Usage:     "disassemble a program",
		ArgsUsage: "<program>",
		Action: func(ctx *cli.Context) error {
			prog, err := loadArg(ctx)
			if err != nil {
				return err
			}
			return asm.DisassembleAll(prog, 0, ctx.App.Writer)
		},
	}
}
