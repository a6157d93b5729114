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


// Package search finds the inputs of an Intcode program that produce a given
// result.
//
// The inputs, a noun and a verb, are patched into the program at addresses 1
// and 2 before it runs. The result is the value left at address 0 when the
// program halts.
package search

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned by NounVerb when no noun and verb produce the
// target value.
var ErrNotFound = errors.New("no matching noun and verb")

// Patch returns a copy of program with noun and verb stored at addresses 1
// and 2.
func Patch(program vm.Image, noun, verb vm.Cell) vm.Image {
	p := program.Clone()
	for len(p) < 3 {
		p = append(p, 0)
	}
	p[1], p[2] = noun, verb
	return p
}

// Evaluate runs program patched with noun and verb to completion and returns
// the value at address 0.
func Evaluate(program vm.Image, noun, verb vm.Cell, opts ...vm.Option) (vm.Cell, error) {
	i, err := vm.New(Patch(program, noun, verb), opts...)
	if err != nil {
		return 0, err
	}
	snap, err := i.Run()
	if err != nil {
		return 0, errors.Wrapf(err, "noun %d, verb %d", noun, verb)
	}
	v, _ := snap.Memory.Peek(0)
	return v, nil
}

// Answer combines noun and verb into a single value.
func Answer(noun, verb vm.Cell) vm.Cell {
	return 100*noun + verb
}

type config struct {
	log     *slog.Logger
	workers int
}

// Option configures NounVerb.
type Option func(*config)

// Logger sets the logger for the search.
func Logger(l *slog.Logger) Option {
	return func(c *config) { c.log = l }
}

// Workers sets the number of nouns searched concurrently. The default is
// GOMAXPROCS.
func Workers(n int) Option {
	return func(c *config) { c.workers = n }
}

// NounVerb searches nouns and verbs in [0, limit) for the pair that makes
// program leave target at address 0. If several pairs match, the one with
// the lowest noun, then the lowest verb, is returned.
//
// Nouns are searched concurrently. Pairs that make the program fault are not
// matches. Once a noun matches, searches of higher nouns are abandoned.
func NounVerb(ctx context.Context, program vm.Image, target, limit vm.Cell, opts ...Option) (noun, verb vm.Cell, err error) {
	cfg := &config{log: ici.Discard, workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = 1
	}
	if limit <= 0 {
		return 0, 0, errors.WithStack(ErrNotFound)
	}

	var found atomic.Int64
	found.Store(int64(limit))
	var mu sync.Mutex
	verbs := make(map[vm.Cell]vm.Cell)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for n := vm.Cell(0); n < limit; n++ {
		n := n
		if vm.Cell(found.Load()) < n {
			break
		}
		g.Go(func() error {
			for v := vm.Cell(0); v < limit; v++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if vm.Cell(found.Load()) < n {
					return nil
				}
				r, err := Evaluate(program, n, v)
				if err != nil {
					cfg.log.Log(ctx, ici.LevelTrace, "fault", "noun", n, "verb", v, "err", err)
					continue
				}
				if r != target {
					continue
				}
				mu.Lock()
				verbs[n] = v
				mu.Unlock()
				for {
					cur := found.Load()
					if cur <= int64(n) || found.CompareAndSwap(cur, int64(n)) {
						break
					}
				}
				cfg.log.Debug("match", "noun", n, "verb", v)
				return nil
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	if n := vm.Cell(found.Load()); n < limit {
		return n, verbs[n], nil
	}
	return 0, 0, errors.WithStack(ErrNotFound)
}
