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
	"bufio"
	"os"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const outputKey = "output"

func (a *app) asmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asm FILE",
		Short: "Assemble a program",
		Long: `Asm assembles the source in FILE and prints the resulting program in text
form, or saves it to the file given with --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.assemble(args[0])
		},
	}
	cmd.Flags().StringP(outputKey, "o", "", "write the program to `file`")
	return cmd
}

func (a *app) disasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm FILE",
		Short: "Disassemble a program",
		Long: `Disasm prints a disassembly of the program in FILE, one instruction per
line, prefixed with its address.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.disassemble(args[0])
		},
	}
}

func (a *app) assemble(fileName string) error {
	f, err := os.Open(fileName)
	if err != nil {
		return errors.Wrap(err, "asm")
	}
	defer f.Close()
	prog, err := asm.Assemble(fileName, f)
	if err != nil {
		return err
	}
	a.log.Info("assembled", "file", fileName, "cells", len(prog))
	if out := a.v.GetString(outputKey); out != "" {
		return vm.Save(out, prog)
	}
	return vm.Write(a.stdout, prog)
}

func (a *app) disassemble(fileName string) error {
	prog, err := vm.Load(fileName)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(a.stdout)
	if err = asm.DisassembleAll(prog, 0, out); err != nil {
		return err
	}
	return errors.Wrap(out.Flush(), "flush output")
}
