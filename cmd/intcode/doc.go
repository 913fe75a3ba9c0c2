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

// The intcode command line tool is a showcase for the packages
// github.com/db47h/intcode/vm, network and asm.
//
// Usage:
//
//	intcode run FILE [--input values] [--ascii] [--dump] [--trace] [--no-edit]
//	intcode amp FILE [--phases settings] [--signal n] [--feedback] [--fixed] [--jobs n]
//	intcode asm FILE [-o file]
//	intcode disasm FILE
//
// Global flags:
//
//	--config file
//		  read flag values from configuration file
//	--log-level level
//		  log level: debug, info, warn, error or crit (default "warn")
//	--debug
//		  print a full stack trace on error
//
// Program files contain comma separated integers. White space is ignored.
//
// run: runs a program until it halts. Input values are taken from --input or
// read from stdin, one per line. When stdin is a terminal, input lines can be
// edited and recalled from history, unless --no-edit is set. If the program
// needs more input than is available, run fails. In ASCII mode (--ascii), input is read as text and
// output values in the ASCII range are printed as characters. --dump prints the
// final state of the instance and its memory after the program output.
//
// amp: runs a chain of amplifiers, one copy of the program per phase setting,
// and prints the best signal and the phase ordering that produced it. With
// --feedback, the amplifiers are connected in a feedback ring. With --fixed,
// the phase settings are used as given and only the signal is printed.
//
// asm, disasm: convert between assembly source and program files. See package
// github.com/db47h/intcode/asm for the assembler syntax.
//
// Every flag can also be set from the environment, with an INTCODE_ prefix,
// upper case, and dashes replaced by underscores (e.g. INTCODE_LOG_LEVEL), or
// from the configuration file given with --config (any format supported by
// github.com/spf13/viper):
//
//	log-level: info
//	phases: 5,6,7,8,9
//	feedback: true
//
// Command line flags take precedence over the environment, which takes
// precedence over the configuration file.
package main
