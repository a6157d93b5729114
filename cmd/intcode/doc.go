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


// The intcode command line tool runs, assembles and inspects Intcode
// programs. Programs are text files holding a single line of comma separated
// integers.
//
// Usage:
//
//	intcode [global options] command [command options] <file>
//
// Global options:
//
//	--config file
//		  TOML configuration file
//	--verbosity level
//		  log level: trace, debug, info, warn or error (default "warn")
//	--debug
//		  print full stack traces and dump the machine state on error
//
// Commands:
//
//	run [-i values] [--pause] [--trace] [--dump] <program>
//		  run a program and print its output, one value per line
//	amplify [--settings 0,1,2,3,4] [--seed n] [--feedback] [--search] <program>
//		  run a chain of amplifiers and print the output signal
//	nounverb [--noun n --verb n | --target n [--limit n] [--workers n]] <program>
//		  evaluate a program for a noun and verb, or search them
//	asm [-o file] <source>
//		  assemble a source file
//	disasm <program>
//		  disassemble a program
//	dumpconfig
//		  show the effective configuration
//
// run: input values are queued before the program starts. Running out of
// input is an error. With --pause, the machine returns after each output and
// is resumed right away, which makes no difference to the output but shows the
// pauses in debug logs. --dump prints every mapped memory address once the
// program halts.
//
// amplify: one amplifier is started per setting, each running the program
// with its setting as first input. The seed is fed to the first amplifier and
// each output to the next one. With --feedback, the last output goes back to
// the first amplifier until all of them halt. With --search, every
// permutation of the settings is tried and the best signal is printed with
// the settings that produced it.
//
// nounverb: the noun and verb are stored at addresses 1 and 2 and the value
// left at address 0 is printed. With --target, nouns and verbs below the
// limit are searched for the lowest pair producing the target.
//
// The configuration file uses the same names as the options:
//
//	Verbosity = "info"
//
//	[Run]
//	Input = [1]
//
//	[Amplifier]
//	Settings = [5, 6, 7, 8, 9]
//	Feedback = true
//	Search = true
//
//	[NounVerb]
//	Limit = 100
//
// Use the dumpconfig command to see all available settings.
package main
