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
	"runtime"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Permutations returns every ordering of values. Duplicate values yield
// duplicate orderings.
func Permutations(values []vm.Cell) [][]vm.Cell {
	a := slices.Clone(values)
	res := [][]vm.Cell{slices.Clone(a)}
	// Heap's algorithm, iterative form
	c := make([]int, len(a))
	for k := 1; k < len(a); {
		if c[k] < k {
			if k%2 == 0 {
				a[0], a[k] = a[k], a[0]
			} else {
				a[c[k]], a[k] = a[k], a[c[k]]
			}
			res = append(res, slices.Clone(a))
			c[k]++
			k = 1
			continue
		}
		c[k] = 0
		k++
	}
	return res
}

// Result is the outcome of MaxSignal.
type Result struct {
	Signal   vm.Cell
	Settings []vm.Cell
}

// MaxSignal runs one chain for every permutation of settings and returns the
// highest signal with the settings that produced it. If several permutations
// produce the same signal, the lowest one in lexicographic order wins.
//
// Chains run concurrently, up to GOMAXPROCS at a time. The first error cancels
// the remaining chains and is returned.
func MaxSignal(ctx context.Context, program vm.Image, settings []vm.Cell, feedback bool, opts ...Option) (Result, error) {
	if len(settings) == 0 {
		return Result{}, errors.WithStack(ErrEmpty)
	}
	cfg := newConfig(opts)
	perms := Permutations(settings)
	slices.SortFunc(perms, func(a, b []vm.Cell) int { return slices.Compare(a, b) })
	perms = slices.CompactFunc(perms, func(a, b []vm.Cell) bool { return slices.Equal(a, b) })

	signals := make([]vm.Cell, len(perms))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k, p := range perms {
		k, p := k, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := NewChain(program, p, opts...)
			if err != nil {
				return err
			}
			run := c.Run
			if feedback {
				run = c.RunFeedback
			}
			signals[k], err = run(cfg.seed)
			return errors.Wrapf(err, "settings %v", p)
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := 0
	for k, s := range signals {
		if s > signals[best] {
			best = k
		}
	}
	cfg.log.Debug("best signal", "signal", signals[best], "settings", perms[best], "permutations", len(perms))
	return Result{Signal: signals[best], Settings: perms[best]}, nil
}
