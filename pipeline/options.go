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


// Package pipeline chains Intcode instances so that the output of each one is
// the input of the next, either once through (linear) or in a ring
// (feedback).
//
// Each stage of a chain runs the same program with its own setting, queued as
// its very first input. Chains never share instances: MaxSignal builds a new
// chain for every permutation of settings and runs them concurrently.
package pipeline

import (
	"log/slog"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Errors returned by chains.
var (
	ErrNoOutput = errors.New("stage produced no output")
	ErrEmpty    = errors.New("empty chain")
	ErrUsed     = errors.New("chain already run")
)

type config struct {
	log    *slog.Logger
	seed   vm.Cell
	vmOpts []vm.Option
}

// Option configures chains and searches.
type Option func(*config)

// Logger sets the logger used by the chain and passed down to its instances.
func Logger(l *slog.Logger) Option {
	return func(c *config) { c.log = l }
}

// Seed sets the value fed to the first stage by MaxSignal. The default is 0.
func Seed(v vm.Cell) Option {
	return func(c *config) { c.seed = v }
}

// Machine adds options applied to every instance of the chain.
func Machine(opts ...vm.Option) Option {
	return func(c *config) { c.vmOpts = append(c.vmOpts, opts...) }
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = ici.Discard
	}
	return c
}
