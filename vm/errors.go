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

package vm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors returned by Run. All but ErrStopped come wrapped in a *Fault; use
// errors.Is or errors.Cause to test for them.
var (
	ErrDecode             = errors.New("invalid instruction")
	ErrInputExhausted     = errors.New("input queue empty")
	ErrInvalidDestination = errors.New("immediate mode destination")
	ErrAddress            = errors.New("negative address")
	ErrStopped            = errors.New("machine stopped")
)

// Fault describes a fatal error during execution.
type Fault struct {
	PC  Cell // address of the faulting instruction
	Raw Cell // raw instruction word at PC
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault @pc=%d (%d): %v", f.PC, f.Raw, f.Err)
}

// Cause returns the root cause of the fault.
func (f *Fault) Cause() error { return errors.Cause(f.Err) }

// Unwrap returns the wrapped error.
func (f *Fault) Unwrap() error { return f.Err }
