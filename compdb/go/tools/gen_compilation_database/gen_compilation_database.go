/*
 * Copyright 2026 The Kythe Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Binary gen_compilation_database writes a compile_commands.json for a bazel
// workspace using the compilation database aspect.
//
// Examples:
//
//	# Generate a database for the default targets, building dependencies first.
//	gen_compilation_database generate --run_bazel_build -k
//
//	# Generate a database for specific targets with VSCode-friendly flags.
//	gen_compilation_database generate --vscode //source/common/... //test/common/...
//
//	# Drop headers from an existing database.
//	gen_compilation_database fix --input compile_commands.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"compdb.io/compdb/go/compdb/fixcmd"
	"compdb.io/compdb/go/compdb/gencmd"
	"compdb.io/compdb/go/util/build"
	"compdb.io/compdb/go/util/cmdutil"

	"github.com/google/subcommands"
)

type versionCommand struct{ cmdutil.Info }

func (versionCommand) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	fmt.Println(build.VersionLine())
	return subcommands.ExitSuccess
}

func init() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(gencmd.New(), "")
	subcommands.Register(fixcmd.New(), "")
	subcommands.Register(versionCommand{cmdutil.NewInfo("version", "print the build version", "version")}, "")
}

func main() {
	flag.Parse()
	ctx := context.Background()

	os.Exit(int(subcommands.Execute(ctx)))
}
