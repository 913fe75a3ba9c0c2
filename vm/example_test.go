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

package vm_test

import (
	"fmt"
	"os"

	"github.com/db47h/intcode/vm"
)

// Shows how to run a program with fixed input and collect its output.
func ExampleInstance_Run() {
	prog, err := vm.ParseString("3,9,8,9,10,9,4,9,99,-1,8")
	if err != nil {
		panic(err)
	}
	out := vm.NewQueue()
	i, err := vm.New(prog, vm.Input(vm.NewQueue(8)), vm.Output(out))
	if err != nil {
		panic(err)
	}
	st, err := i.Run()
	if err != nil {
		panic(err)
	}
	fmt.Println(st, out.Values())

	// Output:
	// halted [1]
}

// Shows how an instance suspends itself when it runs out of input and resumes
// when more becomes available.
func ExampleInstance_Run_resume() {
	in := vm.NewQueue()
	i, err := vm.New([]vm.Cell{3, 11, 3, 12, 1, 11, 12, 13, 4, 13, 99, 0, 0, 0},
		vm.Input(in),
		vm.Output(vm.NewTextWriter(os.Stdout)))
	if err != nil {
		panic(err)
	}
	for _, v := range []vm.Cell{17, 25} {
		st, err := i.Run()
		if err != nil {
			panic(err)
		}
		fmt.Println(st, "at pc", i.PC)
		in.Push(v)
	}
	st, err := i.Run()
	if err != nil {
		panic(err)
	}
	fmt.Println(st)

	// Output:
	// blocked at pc 0
	// blocked at pc 2
	// 42
	// halted
}

// Shows how to plug custom functions as I/O channels.
func ExampleReaderFunc() {
	n := vm.Cell(0)
	// count down from 3, then report that no input is available.
	input := vm.ReaderFunc(func() (vm.Cell, bool, error) {
		if n == 3 {
			return 0, false, nil
		}
		n++
		return 4 - n, true, nil
	})
	output := vm.WriterFunc(func(v vm.Cell) error {
		fmt.Println("got", v)
		return nil
	})
	// echo loop: in, out, jump back to 0
	i, err := vm.New([]vm.Cell{3, 100, 4, 100, 1105, 1, 0}, vm.Input(input), vm.Output(output))
	if err != nil {
		panic(err)
	}
	st, err := i.Run()
	fmt.Println(st, err)

	// Output:
	// got 3
	// got 2
	// got 1
	// blocked <nil>
}
