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

package main

import (
	"context"
	"fmt"

	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	phasesKey   = "phases"
	signalKey   = "signal"
	feedbackKey = "feedback"
	fixedKey    = "fixed"
	jobsKey     = "jobs"
)

func (a *app) ampCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amp FILE",
		Short: "Run a chain or a feedback ring of amplifiers",
		Long: `Amp runs one copy of the program in FILE per phase setting. Each copy first
reads its phase setting, and the first one then reads the input signal. The
output of each copy is sent to the next one.

With --feedback, the last copy outputs back to the first one and the result is
the last signal it sends. Otherwise, the result is the output of the last copy.

By default, amp tries every ordering of the phase settings and prints the
highest signal along with the corresponding ordering. With --fixed, the phase
settings are used in the given order and only the signal is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.amp(cmd.Context(), args[0])
		},
	}
	f := cmd.Flags()
	f.String(phasesKey, "0,1,2,3,4", "comma separated phase `settings`")
	f.Int64(signalKey, 0, "input signal")
	f.Bool(feedbackKey, false, "connect amplifiers in a feedback ring")
	f.Bool(fixedKey, false, "use phase settings in the given order")
	f.Int(jobsKey, 0, "maximum number of concurrent evaluations (0 for GOMAXPROCS)")
	traceFlag(f, "log every executed instruction (--fixed only)")
	return cmd
}

func (a *app) amp(ctx context.Context, fileName string) error {
	prog, err := vm.Load(fileName)
	if err != nil {
		return err
	}
	phases, err := vm.ParseString(a.v.GetString(phasesKey))
	if err != nil {
		return errors.Wrap(err, "phases")
	}
	if len(phases) == 0 {
		return errors.New("no phase settings")
	}
	signal := vm.Cell(a.v.GetInt64(signalKey))
	feedback := a.v.GetBool(feedbackKey)
	log := a.log.New("program", fileName)

	if a.v.GetBool(fixedKey) {
		opts := []network.Option{network.Logger(log), network.Trace(a.v.GetBool(traceKey))}
		var v vm.Cell
		if feedback {
			v, err = network.Ring(ctx, prog, phases, signal, opts...)
		} else {
			v, err = network.Chain(ctx, prog, phases, signal, opts...)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.stdout, v)
		return errors.Wrap(err, "write result")
	}

	jobs := a.v.GetInt(jobsKey)
	log.Info("searching phase settings", "phases", len(phases), "feedback", feedback, "jobs", jobs)
	r, err := network.MaxSignal(ctx, prog, phases, signal, feedback, jobs)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(a.stdout, "%d\t", r.Signal); err != nil {
		return errors.Wrap(err, "write result")
	}
	return vm.Write(a.stdout, r.Phases)
}
