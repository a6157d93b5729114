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


package pipeline_test

import (
	"context"
	"testing"

	"github.com/db47h/intcode/pipeline"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
	"pgregory.net/rapid"
)

type C = vm.Image

var (
	linear1 = C{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}
	linear2 = C{3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23,
		101, 5, 23, 23, 1, 24, 23, 23, 4, 23, 99, 0, 0}
	linear3 = C{3, 31, 3, 32, 1002, 32, 10, 32, 1001, 31, -2, 31, 1007, 31, 0, 33,
		1002, 33, 7, 33, 1, 33, 31, 31, 1, 32, 31, 31, 4, 31, 99, 0, 0, 0}
	feedback1 = C{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26,
		27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5}
	feedback2 = C{3, 52, 1001, 52, -5, 52, 3, 53, 1, 52, 56, 54, 1007, 54, 5, 55, 1005, 55, 26, 1001, 54,
		-5, 54, 1105, 1, 12, 1, 53, 54, 53, 1008, 54, 0, 55, 1001, 55, 1, 55, 2, 53, 55, 53, 4,
		53, 1001, 56, -1, 56, 1005, 56, 6, 99, 0, 0, 0, 0, 10}

	// sum outputs the sum of its two inputs.
	sum = C{3, 11, 3, 12, 1, 11, 12, 11, 4, 11, 99, 0, 0}
)

var amplifierTests = []struct {
	name     string
	program  C
	settings []vm.Cell
	feedback bool
	signal   vm.Cell
}{
	{"linear 1", linear1, []vm.Cell{4, 3, 2, 1, 0}, false, 43210},
	{"linear 2", linear2, []vm.Cell{0, 1, 2, 3, 4}, false, 54321},
	{"linear 3", linear3, []vm.Cell{1, 0, 4, 3, 2}, false, 65210},
	{"feedback 1", feedback1, []vm.Cell{9, 8, 7, 6, 5}, true, 139629729},
	{"feedback 2", feedback2, []vm.Cell{9, 7, 8, 5, 6}, true, 18216},
}

func TestChain(t *testing.T) {
	for _, test := range amplifierTests {
		t.Run(test.name, func(t *testing.T) {
			c, err := pipeline.NewChain(test.program, test.settings)
			require.NoError(t, err)
			run := c.Run
			if test.feedback {
				run = c.RunFeedback
			}
			v, err := run(0)
			require.NoError(t, err)
			assert.Equal(t, test.signal, v)
			for _, s := range c.Stages() {
				assert.Equal(t, vm.Stopped, s.State())
			}

			_, err = c.Run(0)
			assert.True(t, errors.Is(err, pipeline.ErrUsed))
		})
	}
}

func TestMaxSignal(t *testing.T) {
	for _, test := range amplifierTests {
		t.Run(test.name, func(t *testing.T) {
			settings := []vm.Cell{0, 1, 2, 3, 4}
			if test.feedback {
				settings = []vm.Cell{5, 6, 7, 8, 9}
			}
			res, err := pipeline.MaxSignal(context.Background(), test.program, settings, test.feedback)
			require.NoError(t, err)
			assert.Equal(t, test.signal, res.Signal)
			assert.Equal(t, test.settings, res.Settings)
		})
	}
}

func TestMaxSignal_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pipeline.MaxSignal(ctx, linear1, []vm.Cell{0, 1, 2}, false)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestChainErrors(t *testing.T) {
	_, err := pipeline.NewChain(sum, nil)
	assert.True(t, errors.Is(err, pipeline.ErrEmpty))
	_, err = pipeline.MaxSignal(context.Background(), sum, nil, false)
	assert.True(t, errors.Is(err, pipeline.ErrEmpty))

	// reads two values, outputs nothing
	c, err := pipeline.NewChain(C{3, 0, 3, 0, 99}, []vm.Cell{1, 2})
	require.NoError(t, err)
	_, err = c.Run(0)
	assert.True(t, errors.Is(err, pipeline.ErrNoOutput))
	assert.Contains(t, err.Error(), "stage 0")

	// reads three values
	c, err = pipeline.NewChain(C{3, 0, 3, 0, 3, 0, 99}, []vm.Cell{1, 2})
	require.NoError(t, err)
	_, err = c.RunFeedback(0)
	assert.True(t, errors.Is(err, vm.ErrInputExhausted))
	var f *vm.Fault
	require.True(t, errors.As(err, &f))
	assert.Equal(t, vm.Cell(4), f.PC)

	_, err = pipeline.MaxSignal(context.Background(), C{3, 0, 3, 0, 3, 0, 99}, []vm.Cell{1, 2}, false)
	assert.True(t, errors.Is(err, vm.ErrInputExhausted))
}

func TestStage(t *testing.T) {
	s, err := pipeline.NewStage(C{3, 0, 3, 1, 4, 0, 4, 1, 99}, 7, vm.PauseOnOutput(true))
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(7), s.Setting())

	out, ok, err := s.Feed(8)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, vm.Cell(7), out)
	assert.Equal(t, vm.Paused, s.State())

	out, ok, err = s.Feed(9)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, vm.Cell(8), out)

	out, ok, err = s.Feed(10)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, out)
	assert.Equal(t, vm.Stopped, s.State())
	assert.Equal(t, 2, s.Machine().PendingInput())
}

func TestPermutations(t *testing.T) {
	perms := pipeline.Permutations(nil)
	require.Len(t, perms, 1)
	assert.Empty(t, perms[0])
	assert.Equal(t, [][]vm.Cell{{1}}, pipeline.Permutations([]vm.Cell{1}))

	perms = pipeline.Permutations([]vm.Cell{0, 1, 2, 3, 4})
	assert.Len(t, perms, 120)
	seen := make(map[[5]vm.Cell]bool)
	for _, p := range perms {
		var k [5]vm.Cell
		copy(k[:], p)
		assert.False(t, seen[k], "%v", p)
		seen[k] = true
		sorted := slices.Clone(p)
		slices.Sort(sorted)
		assert.Equal(t, []vm.Cell{0, 1, 2, 3, 4}, sorted)
	}
}

func TestChainSum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var settings []vm.Cell
		for _, v := range rapid.SliceOfN(rapid.Int64Range(-1000, 1000), 1, 5).Draw(t, "settings") {
			settings = append(settings, vm.Cell(v))
		}
		seed := vm.Cell(rapid.Int64Range(-1000, 1000).Draw(t, "seed"))
		want := seed
		for _, s := range settings {
			want += s
		}

		c, err := pipeline.NewChain(sum, settings)
		if err != nil {
			t.Fatal(err)
		}
		got, err := c.Run(seed)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, want, got)

		// every ordering yields the same signal: the lowest one wins
		res, err := pipeline.MaxSignal(context.Background(), sum, settings, false, pipeline.Seed(seed))
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, want, res.Signal)
		sorted := slices.Clone(settings)
		slices.Sort(sorted)
		assert.Equal(t, sorted, res.Settings)
	})
}
