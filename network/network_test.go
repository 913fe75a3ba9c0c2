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

package network_test

import (
	"context"
	"testing"
	"time"

	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type C []vm.Cell

var (
	ring1 = C{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26, 27, 4, 27, 1001, 28, -1,
		28, 1005, 28, 6, 99, 0, 0, 5}
	ring2 = C{3, 52, 1001, 52, -5, 52, 3, 53, 1, 52, 56, 54, 1007, 54, 5, 55, 1005, 55, 26, 1001, 54,
		-5, 54, 1105, 1, 12, 1, 53, 54, 53, 1008, 54, 0, 55, 1001, 55, 1, 55, 2, 53, 55, 53, 4,
		53, 1001, 56, -1, 56, 1005, 56, 6, 99, 0, 0, 0, 0, 10}

	chain1 = C{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}
	chain2 = C{3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23, 101, 5, 23, 23, 1, 24, 23, 23, 4, 23, 99, 0, 0}
	chain3 = C{3, 31, 3, 32, 1002, 32, 10, 32, 1001, 31, -2, 31, 1007, 31, 0, 33, 1002, 33, 7, 33, 1, 33, 31, 31, 1,
		32, 31, 31, 4, 31, 99, 0, 0, 0}
)

func TestRing(t *testing.T) {
	tests := []struct {
		prog   C
		phases C
		want   vm.Cell
	}{
		{ring1, C{9, 8, 7, 6, 5}, 139629729},
		{ring2, C{9, 7, 8, 5, 6}, 18216},
	}
	for _, test := range tests {
		v, err := network.Ring(context.Background(), test.prog, test.phases, 0)
		require.NoError(t, err)
		assert.Equal(t, test.want, v)
	}
}

func TestRing_state(t *testing.T) {
	net, err := network.New(ring1, 5)
	require.NoError(t, err)
	for k, p := range []vm.Cell{9, 8, 7, 6, 5} {
		require.NoError(t, net.Feed(k, p))
		require.NoError(t, net.Connect(k, (k+1)%5))
	}
	require.NoError(t, net.Feed(0, 0))
	for k := 0; k < net.Len(); k++ {
		assert.Equal(t, vm.Ready, net.Status(k))
	}
	require.NoError(t, net.Run())
	for k := 0; k < net.Len(); k++ {
		assert.Equal(t, vm.Halted, net.Status(k))
		assert.True(t, net.Instance(k).Halted)
	}
	// the feedback loop goes around several times
	assert.True(t, net.Rounds() > 1)
	assert.Equal(t, []vm.Cell{139629729}, net.Queue(0).Values())
	assert.Equal(t, 0, net.Sink().Len())
}

func TestChain(t *testing.T) {
	tests := []struct {
		prog   C
		phases C
		want   vm.Cell
	}{
		{chain1, C{4, 3, 2, 1, 0}, 43210},
		{chain2, C{0, 1, 2, 3, 4}, 54321},
		{chain3, C{1, 0, 4, 3, 2}, 65210},
	}
	for _, test := range tests {
		v, err := network.Chain(context.Background(), test.prog, test.phases, 0)
		require.NoError(t, err)
		assert.Equal(t, test.want, v)
	}
}

func TestMaxSignal(t *testing.T) {
	tests := []struct {
		prog     C
		phases   C
		feedback bool
		want     network.Result
	}{
		{chain1, C{0, 1, 2, 3, 4}, false, network.Result{Signal: 43210, Phases: []vm.Cell{4, 3, 2, 1, 0}}},
		{chain2, C{0, 1, 2, 3, 4}, false, network.Result{Signal: 54321, Phases: []vm.Cell{0, 1, 2, 3, 4}}},
		{ring1, C{5, 6, 7, 8, 9}, true, network.Result{Signal: 139629729, Phases: []vm.Cell{9, 8, 7, 6, 5}}},
		{ring2, C{5, 6, 7, 8, 9}, true, network.Result{Signal: 18216, Phases: []vm.Cell{9, 7, 8, 5, 6}}},
	}
	for _, test := range tests {
		for _, jobs := range []int{1, 0} {
			r, err := network.MaxSignal(context.Background(), test.prog, test.phases, 0, test.feedback, jobs)
			require.NoError(t, err)
			assert.Equal(t, test.want, r)
		}
	}
}

func TestMaxSignal_errors(t *testing.T) {
	_, err := network.MaxSignal(context.Background(), chain1, nil, 0, false, 1)
	assert.Equal(t, network.ErrIndex, errors.Cause(err))

	_, err = network.MaxSignal(context.Background(), C{42}, C{0, 1}, 0, false, 2)
	assert.Equal(t, vm.ErrInvalidOpcode, errors.Cause(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = network.MaxSignal(ctx, chain1, C{0, 1, 2}, 0, false, 1)
	assert.Equal(t, context.Canceled, errors.Cause(err))
}

func TestRunContext(t *testing.T) {
	// jt #1 #0: never halts
	loop := C{1105, 1, 0}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	net, err := network.New(loop, 2)
	require.NoError(t, err)
	err = net.RunContext(ctx)
	assert.Equal(t, context.Canceled, errors.Cause(err))
	assert.Equal(t, 0, net.Rounds())

	ctx, cancel = context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = network.Ring(ctx, loop, C{0, 1}, 0)
	assert.Equal(t, context.DeadlineExceeded, errors.Cause(err))
	_, err = network.Chain(ctx, loop, C{0, 1}, 0)
	assert.Equal(t, context.DeadlineExceeded, errors.Cause(err))

	ctx, cancel = context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = network.MaxSignal(ctx, loop, C{0, 1, 2}, 0, true, 2)
	assert.Equal(t, context.DeadlineExceeded, errors.Cause(err))
}

func TestRun_deadlock(t *testing.T) {
	// both instances wait for input that never comes
	net, err := network.New(C{3, 0, 4, 0, 99}, 2)
	require.NoError(t, err)
	require.NoError(t, net.Connect(0, 1))
	require.NoError(t, net.Connect(1, 0))
	err = net.Run()
	assert.Equal(t, network.ErrDeadlock, errors.Cause(err))
	assert.Equal(t, vm.Blocked, net.Status(0))
	assert.Equal(t, vm.Blocked, net.Status(1))

	// instance 1 halts without producing what instance 0 waits for
	net, err = network.New(C{3, 0, 3, 0, 99}, 2)
	require.NoError(t, err)
	require.NoError(t, net.Connect(1, 0))
	require.NoError(t, net.Feed(0, 1))
	require.NoError(t, net.Feed(1, 1, 2))
	err = net.Run()
	assert.Equal(t, network.ErrDeadlock, errors.Cause(err))
	assert.Equal(t, vm.Blocked, net.Status(0))
	assert.Equal(t, vm.Halted, net.Status(1))
}

func TestRun_error(t *testing.T) {
	net, err := network.New(C{3, 0, 42}, 3)
	require.NoError(t, err)
	require.NoError(t, net.Feed(1, 7))
	err = net.Run()
	assert.Equal(t, vm.ErrInvalidOpcode, errors.Cause(err))
	assert.Contains(t, err.Error(), "instance 1")
}

func TestTopology_errors(t *testing.T) {
	_, err := network.New(C{99}, 0)
	assert.Equal(t, network.ErrIndex, errors.Cause(err))

	net, err := network.New(C{99}, 2)
	require.NoError(t, err)
	assert.Equal(t, network.ErrIndex, errors.Cause(net.Connect(2, 0)))
	assert.Equal(t, network.ErrIndex, errors.Cause(net.Connect(network.External, 0)))
	assert.Equal(t, network.ErrIndex, errors.Cause(net.Connect(0, 5)))
	assert.NoError(t, net.Connect(0, network.External))
	assert.Equal(t, network.ErrIndex, errors.Cause(net.Feed(-1, 0)))

	_, err = network.Ring(context.Background(), C{99}, nil, 0)
	assert.Equal(t, network.ErrIndex, errors.Cause(err))
	_, err = network.Chain(context.Background(), C{99}, nil, 0)
	assert.Equal(t, network.ErrIndex, errors.Cause(err))
}

func TestSink(t *testing.T) {
	// every instance outputs to the sink by default
	net, err := network.New(C{3, 0, 102, 2, 0, 0, 4, 0, 99}, 3)
	require.NoError(t, err)
	for k := 0; k < 3; k++ {
		require.NoError(t, net.Feed(k, vm.Cell(k+1)))
	}
	require.NoError(t, net.Run())
	assert.Equal(t, []vm.Cell{2, 4, 6}, net.Sink().Values())
	assert.Equal(t, net.Sink(), net.Queue(network.External))
}
