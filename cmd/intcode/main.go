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
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configKey   = "config"
	logLevelKey = "log-level"
	debugKey    = "debug"
	traceKey    = "trace"
)

type app struct {
	v      *viper.Viper
	log    log15.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	l := log15.New()
	l.SetHandler(log15.DiscardHandler())
	return &app{
		v:      viper.New(),
		log:    l,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "intcode",
		Short: "Run, assemble and disassemble Intcode programs",
		Long: `intcode runs Intcode programs, alone or as networks of amplifiers, and
provides an assembler and disassembler for the Intcode instruction set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.String(configKey, "", "read flag values from configuration `file`")
	pf.String(logLevelKey, "warn", "log `level`: debug, info, warn, error or crit")
	pf.Bool(debugKey, false, "print a full stack trace on error")

	root.AddCommand(a.runCmd(), a.ampCmd(), a.asmCmd(), a.disasmCmd())
	return root
}

// setup binds flags, environment variables and the configuration file into
// the app's viper instance and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("INTCODE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind flags")
	}
	if cfg := a.v.GetString(configKey); cfg != "" {
		a.v.SetConfigFile(cfg)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", cfg)
		}
	}

	lvl, err := log15.LvlFromString(a.v.GetString(logLevelKey))
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	if a.v.GetBool(traceKey) {
		lvl = log15.LvlDebug
	}
	a.log.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(a.stderr, log15.TerminalFormat())))
	return nil
}

func traceFlag(f *pflag.FlagSet, usage string) {
	f.Bool(traceKey, false, usage)
}

func (a *app) atExit(err error) {
	if err == nil {
		return
	}
	if !a.v.GetBool(debugKey) {
		fmt.Fprintf(a.stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(a.stderr, "%+v\n", err)
	os.Exit(1)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		// a second interrupt kills the process
		<-ctx.Done()
		stop()
	}()

	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	err := newRootCmd(a).ExecuteContext(ctx)
	stop()
	a.atExit(err)
}
