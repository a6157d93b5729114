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
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration `file`",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "log level: trace, debug, info, warn or error",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug diagnostics",
	}
)

// command holds the state shared by all commands.
type command struct {
	cfg Config
	log *slog.Logger
	i   *vm.Instance // instance to dump on error
}

func (c *command) setup(ctx *cli.Context) error {
	if ctx.IsSet(configFlag.Name) {
		if err := loadConfig(ctx.String(configFlag.Name), &c.cfg); err != nil {
			return err
		}
	}
	override(ctx, verbosityFlag.Name, &c.cfg.Verbosity, ctx.String)
	override(ctx, debugFlag.Name, &c.cfg.Debug, ctx.Bool)

	level, err := ici.ParseLevel(c.cfg.Verbosity)
	if err != nil {
		return err
	}
	c.log = ici.NewLogger(ctx.App.ErrWriter, level)
	return nil
}

func newApp(c *command, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "intcode",
		Usage:     "run, assemble and inspect Intcode programs",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     []cli.Flag{configFlag, verbosityFlag, debugFlag},
		Before:    c.setup,
		Commands: []*cli.Command{
			c.runCommand(),
			c.amplifyCommand(),
			c.nounVerbCommand(),
			c.asmCommand(),
			c.disasmCommand(),
			{
				Name:   "dumpconfig",
				Usage:  "show the effective configuration",
				Action: c.dumpConfig,
			},
		},
	}
}

// machineState is what gets dumped with --debug when a program faults.
type machineState struct {
	PC           vm.Cell
	RelativeBase vm.Cell
	State        vm.State
	Instructions int64
	PendingInput int
	Output       []vm.Cell
	Mapped       int
}

func (c *command) atExit(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if !c.cfg.Debug {
		fmt.Fprintf(w, "%v\n", err)
		return 1
	}
	fmt.Fprintf(w, "%+v\n", err)
	if i := c.i; i != nil {
		spew.Fdump(w, machineState{
			PC:           i.PC,
			RelativeBase: i.RelativeBase(),
			State:        i.State(),
			Instructions: i.InstructionCount(),
			PendingInput: i.PendingInput(),
			Output:       i.Output(),
			Mapped:       i.Memory().Len(),
		})
	}
	return 1
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &command{cfg: defaultConfig()}
	err := newApp(c, stdout, stderr).Run(args)
	return c.atExit(stderr, err)
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
