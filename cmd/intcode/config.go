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
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// Config is the tool configuration. It is read from the file given with
// --config, then command line flags override it.
type Config struct {
	Verbosity string
	Debug     bool
	Run       RunConfig
	Amplifier AmplifierConfig
	NounVerb  NounVerbConfig
}

// RunConfig configures the run command.
type RunConfig struct {
	Input []int64
	Pause bool
	Trace bool
	Dump  bool
}

// AmplifierConfig configures the amplify command.
type AmplifierConfig struct {
	Settings []int64
	Seed     int64
	Feedback bool
	Search   bool
}

// NounVerbConfig configures the nounverb command.
type NounVerbConfig struct {
	Limit   int64
	Workers int
}

func defaultConfig() Config {
	return Config{
		Verbosity: "warn",
		Amplifier: AmplifierConfig{Settings: []int64{0, 1, 2, 3, 4}},
		NounVerb:  NounVerbConfig{Limit: 100},
	}
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// loadConfig decodes the config file into cfg. Entries missing from the file
// keep their current value.
func loadConfig(fileName string, cfg *Config) error {
	f, err := os.Open(fileName)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(f).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(fileName + ", " + err.Error())
	}
	return err
}

// override sets *v to the value of the named flag if it was given on the
// command line.
func override[T any](ctx *cli.Context, name string, v *T, get func(string) T) {
	if ctx.IsSet(name) {
		*v = get(name)
	}
}

// dumpConfig is the dumpconfig command.
func (c *command) dumpConfig(ctx *cli.Context) error {
	out, err := tomlSettings.Marshal(&c.cfg)
	if err != nil {
		return errors.Wrap(err, "dumpconfig")
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}
