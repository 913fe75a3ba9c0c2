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

// Package network wires several Intcode VM instances together.
//
// Each instance of a Network reads from its own input queue. The output of an
// instance is routed to the input queue of another instance, or to the
// network's external sink. Routing is an explicit table from instance index to
// queue index, so cyclic topologies such as feedback rings need no special
// treatment.
//
// Execution is cooperative and single-threaded: Run gives control to each
// instance that has not halted yet, in index order, and lets it run until it
// halts or blocks on an empty input queue. Only the producer of a queue can
// unblock its consumer, so running the other instances is all it takes to make
// progress.
package network

import (
	"context"

	"github.com/db47h/intcode/vm"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// External designates the network's sink queue in calls to Connect and Queue.
const External = -1

// Errors returned by Run and the topology helpers.
var (
	ErrDeadlock = errors.New("network deadlocked")
	ErrNoOutput = errors.New("no output")
	ErrIndex    = errors.New("instance index out of range")
)

type node struct {
	vm  *vm.Instance
	in  *vm.Queue
	out int
}

// port is the output channel of instance from. It looks up the destination
// queue at write time so that Connect can be called at any point.
type port struct {
	net  *Network
	from int
}

func (p port) WriteCell(v vm.Cell) error {
	p.net.Queue(p.net.nodes[p.from].out).Push(v)
	return nil
}

// Network is a set of VM instances connected by queues.
type Network struct {
	nodes  []node
	sink   *vm.Queue
	log    log15.Logger
	trace  bool
	rounds int
}

// Option interface
type Option func(*Network)

// Logger sets the logger used by the scheduler. Instances get a child logger
// with an "instance" context key.
func Logger(l log15.Logger) Option {
	return func(net *Network) { net.log = l }
}

// Trace enables instruction tracing in every instance.
func Trace(enable bool) Option {
	return func(net *Network) { net.trace = enable }
}

// New creates a network of n instances all running prog. Every instance
// initially outputs to the external sink.
func New(prog []vm.Cell, n int, opts ...Option) (*Network, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrIndex, "network size %d", n)
	}
	net := &Network{
		nodes: make([]node, n),
		sink:  vm.NewQueue(),
	}
	for _, opt := range opts {
		opt(net)
	}
	if net.log == nil {
		net.log = log15.New()
		net.log.SetHandler(log15.DiscardHandler())
	}
	for k := range net.nodes {
		nd := &net.nodes[k]
		nd.in = vm.NewQueue()
		nd.out = External
		i, err := vm.New(prog,
			vm.Input(nd.in),
			vm.Output(port{net, k}),
			vm.Logger(net.log.New("instance", k)),
			vm.Trace(net.trace))
		if err != nil {
			return nil, errors.Wrapf(err, "instance %d", k)
		}
		nd.vm = i
	}
	return net, nil
}

func (net *Network) check(k int, external bool) error {
	if k < 0 || k >= len(net.nodes) {
		if external && k == External {
			return nil
		}
		return errors.Wrapf(ErrIndex, "%d", k)
	}
	return nil
}

// Connect routes the output of instance from to the input queue of instance
// to, or to the sink if to is External.
func (net *Network) Connect(from, to int) error {
	if err := net.check(from, false); err != nil {
		return err
	}
	if err := net.check(to, true); err != nil {
		return err
	}
	net.nodes[from].out = to
	return nil
}

// Feed pushes values onto the input queue of instance k.
func (net *Network) Feed(k int, values ...vm.Cell) error {
	if err := net.check(k, false); err != nil {
		return err
	}
	net.nodes[k].in.Push(values...)
	return nil
}

// Queue returns the input queue of instance k, or the sink if k is External.
// It panics if k is out of range.
func (net *Network) Queue(k int) *vm.Queue {
	if k == External {
		return net.sink
	}
	return net.nodes[k].in
}

// Sink returns the queue receiving the output of instances connected to
// External.
func (net *Network) Sink() *vm.Queue {
	return net.sink
}

// Instance returns instance k.
func (net *Network) Instance(k int) *vm.Instance {
	return net.nodes[k].vm
}

// Status returns the status of instance k.
func (net *Network) Status(k int) vm.Status {
	return net.nodes[k].vm.Status()
}

// Len returns the number of instances in the network.
func (net *Network) Len() int {
	return len(net.nodes)
}

// Rounds returns the number of scheduling rounds performed by Run.
func (net *Network) Rounds() int {
	return net.rounds
}

// Run schedules instances in round-robin order until all of them have halted.
//
// Each round visits every instance that has not halted, in index order, and
// runs it until it halts or blocks. If a complete round does not execute a
// single instruction, no queue has changed and the next round would do the
// same: Run returns ErrDeadlock.
//
// Errors from instances are returned wrapped with the instance index.
func (net *Network) Run() error {
	return net.RunContext(context.Background())
}

// RunContext is like Run but stops when ctx is done. Cancellation is checked
// between rounds and by running instances. The returned error then wraps
// ctx.Err().
func (net *Network) RunContext(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "round %d", net.rounds)
		}
		live, progress := 0, false
		net.rounds++
		for k := range net.nodes {
			i := net.nodes[k].vm
			if i.Halted {
				continue
			}
			count := i.InstructionCount()
			st, err := i.RunContext(ctx)
			if err != nil {
				return errors.Wrapf(err, "instance %d", k)
			}
			net.log.Debug("scheduled", "instance", k, "status", st, "executed", i.InstructionCount()-count)
			if i.InstructionCount() != count {
				progress = true
			}
			if st != vm.Halted {
				live++
			}
		}
		if live == 0 {
			net.log.Debug("all instances halted", "rounds", net.rounds)
			return nil
		}
		if !progress {
			return errors.Wrapf(ErrDeadlock, "%d instances blocked", live)
		}
	}
}
