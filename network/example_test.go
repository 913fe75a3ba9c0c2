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
	"fmt"

	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
)

// Builds a two stage pipeline by hand. Each instance reads a factor and a
// value, and outputs their product.
func ExampleNetwork() {
	mul := []vm.Cell{3, 11, 3, 12, 2, 11, 12, 11, 4, 11, 99, 0, 0}
	net, err := network.New(mul, 2)
	if err != nil {
		panic(err)
	}
	if err = net.Connect(0, 1); err != nil {
		panic(err)
	}
	if err = net.Feed(0, 3, 7); err != nil {
		panic(err)
	}
	if err = net.Feed(1, 2); err != nil {
		panic(err)
	}
	if err = net.Run(); err != nil {
		panic(err)
	}
	fmt.Println(net.Sink().Values())

	// Output:
	// [42]
}

func ExampleRing() {
	prog := []vm.Cell{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26, 27, 4, 27, 1001, 28, -1,
		28, 1005, 28, 6, 99, 0, 0, 5}
	v, err := network.Ring(context.Background(), prog, []vm.Cell{9, 8, 7, 6, 5}, 0)
	if err != nil {
		panic(err)
	}
	fmt.Println(v)

	// Output:
	// 139629729
}

func ExampleMaxSignal() {
	prog := []vm.Cell{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}
	r, err := network.MaxSignal(context.Background(), prog, []vm.Cell{0, 1, 2, 3, 4}, 0, false, 0)
	if err != nil {
		panic(err)
	}
	fmt.Println(r.Signal, r.Phases)

	// Output:
	// 43210 [4 3 2 1 0]
}
