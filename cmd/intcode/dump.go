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


package main

import (
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/olekukonko/tablewriter"
)

// dumpMemory writes a table of mapped addresses to w.
func dumpMemory(w io.Writer, m *vm.Memory) error {
	ew := ici.NewErrWriter(w)
	table := tablewriter.NewWriter(ew)
	table.SetHeader([]string{"Address", "Value", "Instruction"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, addr := range m.Addresses() {
		v, _ := m.Peek(addr)
		ins := ""
		if i, err := vm.Decode(v); err == nil && v >= 0 {
			ins = i.String()
		}
		table.Append([]string{
			strconv.FormatInt(int64(addr), 10),
			strconv.FormatInt(int64(v), 10),
			ins,
		})
	}
	table.Render()
	return ew.Err
}
