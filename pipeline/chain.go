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


package pipeline

import (
	"context"
	"log/slog"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Stage is an instance of a program with its setting.
type Stage struct {
	setting vm.Cell
	m       *vm.Instance
	seen    int
}

// NewStage returns a new Stage running program. The setting is queued as the
// first input of the instance. Options are applied after the setting is
// queued.
func NewStage(program vm.Image, setting vm.Cell, opts ...vm.Option) (*Stage, error) {
	m, err := vm.New(program, append([]vm.Option{vm.Input(setting)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Stage{setting: setting, m: m}, nil
}

// Setting returns the stage setting.
func (s *Stage) Setting() vm.Cell { return s.setting }

// State returns the run state of the stage instance.
func (s *Stage) State() vm.State { return s.m.State() }

// Machine returns the stage instance.
func (s *Stage) Machine() *vm.Instance { return s.m }

// Feed queues v as input and runs the stage instance until it pauses or
// stops. It returns the last value output during this call and true, or false
// if the instance did not output anything.
func (s *Stage) Feed(v vm.Cell) (out vm.Cell, produced bool, err error) {
	s.m.AddInput(v)
	if _, err = s.m.Run(); err != nil {
		return 0, false, err
	}
	output := s.m.Output()
	if len(output) == s.seen {
		return 0, false, nil
	}
	s.seen = len(output)
	return output[len(output)-1], true, nil
}

// Chain is a sequence of stages running the same program.
type Chain struct {
	stages []*Stage
	log    *slog.Logger
	used   bool
}

// NewChain returns a chain of len(settings) stages running program, one per
// setting.
func NewChain(program vm.Image, settings []vm.Cell, opts ...Option) (*Chain, error) {
	if len(settings) == 0 {
		return nil, errors.WithStack(ErrEmpty)
	}
	cfg := newConfig(opts)
	c := &Chain{log: cfg.log.With("settings", settings)}
	for k, setting := range settings {
		s, err := NewStage(program, setting, append(cfg.vmOpts, vm.Logger(c.log.With("stage", k)))...)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %d", k)
		}
		c.stages = append(c.stages, s)
	}
	return c, nil
}

// Stages returns the stages of the chain.
func (c *Chain) Stages() []*Stage {
	return c.stages
}

func (c *Chain) start(pause bool) error {
	if c.used {
		return errors.WithStack(ErrUsed)
	}
	c.used = true
	for _, s := range c.stages {
		s.m.SetPauseOnOutput(pause)
	}
	return nil
}

// Run feeds seed to the first stage and the last output of each stage to the
// next one, every stage running to completion. It returns the last output of
// the last stage.
//
// A chain can be run only once.
func (c *Chain) Run(seed vm.Cell) (vm.Cell, error) {
	if err := c.start(false); err != nil {
		return 0, err
	}
	v := seed
	for k, s := range c.stages {
		out, ok, err := s.Feed(v)
		if err != nil {
			return 0, errors.Wrapf(err, "stage %d", k)
		}
		if !ok {
			return 0, errors.Wrapf(ErrNoOutput, "stage %d", k)
		}
		v = out
	}
	c.log.Debug("linear chain done", "signal", v)
	return v, nil
}

// RunFeedback is like Run but stages pause after each output and the output
// of the last stage is fed back to the first one. This goes on until every
// stage has stopped. It returns the last value passed around the ring.
//
// A chain can be run only once.
func (c *Chain) RunFeedback(seed vm.Cell) (vm.Cell, error) {
	if err := c.start(true); err != nil {
		return 0, err
	}
	v := seed
	for round := 0; ; round++ {
		stopped := 0
		for k, s := range c.stages {
			if s.State() == vm.Stopped {
				stopped++
				continue
			}
			out, ok, err := s.Feed(v)
			if err != nil {
				return 0, errors.Wrapf(err, "stage %d, round %d", k, round)
			}
			if ok {
				v = out
			}
		}
		if c.log.Enabled(context.Background(), vm.LevelTrace) {
			c.log.Log(context.Background(), vm.LevelTrace, "round", "round", round, "signal", v)
		}
		if stopped == len(c.stages) {
			c.log.Debug("feedback chain done", "rounds", round, "signal", v)
			return v, nil
		}
	}
}
