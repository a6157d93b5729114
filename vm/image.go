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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Image is a program: cell values in address order.
type Image []Cell

// Parse reads a program in text form: a single line of comma separated
// decimal integers.
func Parse(r io.Reader) (Image, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return nil, errors.New("empty program")
	}
	fields := strings.Split(s, ",")
	img := make(Image, len(fields))
	for k, f := range fields {
		n, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cell %d", k)
		}
		img[k] = Cell(n)
	}
	return img, nil
}

// ParseString is like Parse but reads from a string.
func ParseString(s string) (Image, error) {
	return Parse(strings.NewReader(s))
}

// Load loads a program from file fileName.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return img, nil
}

// WriteTo writes the program in text form, followed by a newline.
func (i Image) WriteTo(w io.Writer) (int64, error) {
	b := make([]byte, 0, len(i)*4+1)
	for k, v := range i {
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	b = append(b, '\n')
	n, err := w.Write(b)
	return int64(n), errors.Wrap(err, "write failed")
}

// Save saves the program in text form to file fileName.
func (i Image) Save(fileName string) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrap(cerr, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	_, err = i.WriteTo(f)
	return err
}

// String returns the program in text form, without a trailing newline.
func (i Image) String() string {
	var sb strings.Builder
	i.WriteTo(&sb)
	return strings.TrimSuffix(sb.String(), "\n")
}

// Clone returns a copy of i.
func (i Image) Clone() Image {
	return append(Image(nil), i...)
}
