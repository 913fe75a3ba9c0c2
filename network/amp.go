// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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

package network

import (
	"context"
	"runtime"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/combin"
)

// Ring builds a feedback ring of len(phases) instances running prog: instance
// k outputs to instance k+1, and the last one loops back to the first. Each
// input queue is seeded with the instance's phase and the first one also
// receives signal. Once all instances have halted, Ring returns the first
// value found in the first instance's queue. The network stops early if ctx
// is done.
func Ring(ctx context.Context, prog []vm.Cell, phases []vm.Cell, signal vm.Cell, opts ...Option) (vm.Cell, error) {
	net, err := seed(prog, phases, signal, opts...)
	if err != nil {
		return 0, err
	}
	n := net.Len()
	for k := 0; k < n; k++ {
		if err = net.Connect(k, (k+1)%n); err != nil {
			return 0, err
		}
	}
	if err = net.RunContext(ctx); err != nil {
		return 0, err
	}
	v, ok := net.Queue(0).Peek()
	if !ok {
		return 0, errors.Wrap(ErrNoOutput, "ring")
	}
	return v, nil
}

// Chain builds a serial pipeline of len(phases) instances running prog,
// seeded like Ring, where the last instance outputs to the external sink. It
// returns the last value received by the sink.
func Chain(ctx context.Context, prog []vm.Cell, phases []vm.Cell, signal vm.Cell, opts ...Option) (vm.Cell, error) {
	net, err := seed(prog, phases, signal, opts...)
	if err != nil {
		return 0, err
	}
	n := net.Len()
	for k := 0; k < n-1; k++ {
		if err = net.Connect(k, k+1); err != nil {
			return 0, err
		}
	}
	if err = net.RunContext(ctx); err != nil {
		return 0, err
	}
	out := net.Sink().Values()
	if len(out) == 0 {
		return 0, errors.Wrap(ErrNoOutput, "chain")
	}
	return out[len(out)-1], nil
}

func seed(prog []vm.Cell, phases []vm.Cell, signal vm.Cell, opts ...Option) (*Network, error) {
	net, err := New(prog, len(phases), opts...)
	if err != nil {
		return nil, err
	}
	for k, p := range phases {
		if err = net.Feed(k, p); err != nil {
			return nil, err
		}
	}
	if err = net.Feed(0, signal); err != nil {
		return nil, err
	}
	return net, nil
}

// Result is the outcome of a phase search.
type Result struct {
	Signal vm.Cell
	Phases []vm.Cell
}

// MaxSignal tries every ordering of phases, either in a feedback Ring or in a
// Chain, and returns the one producing the highest signal. Ties go to the
// ordering generated first, so results are reproducible.
//
// Orderings are evaluated concurrently on up to jobs goroutines, or
// GOMAXPROCS if jobs <= 0. Each evaluation builds its own network, so nothing
// is shared between goroutines. Running evaluations stop as soon as ctx is
// done or one of them fails.
func MaxSignal(ctx context.Context, prog []vm.Cell, phases []vm.Cell, signal vm.Cell, feedback bool, jobs int) (Result, error) {
	if len(phases) == 0 {
		return Result{}, errors.Wrap(ErrIndex, "no phases")
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	perms := combin.Permutations(len(phases), len(phases))
	signals := make([]vm.Cell, len(perms))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for k := range perms {
		k := k
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ph := permute(phases, perms[k])
			var err error
			if feedback {
				signals[k], err = Ring(ctx, prog, ph, signal)
			} else {
				signals[k], err = Chain(ctx, prog, ph, signal)
			}
			return errors.Wrapf(err, "phases %v", ph)
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := 0
	for k := range signals {
		if signals[k] > signals[best] {
			best = k
		}
	}
	return Result{Signal: signals[best], Phases: permute(phases, perms[best])}, nil
}

func permute(phases []vm.Cell, perm []int) []vm.Cell {
	ph := make([]vm.Cell, len(perm))
	for k, idx := range perm {
		ph[k] = phases[idx]
	}
	return ph
}
