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

// Package fixcmd provides the command that filters and rewrites an existing
// compilation database without invoking bazel.
package fixcmd // import "compdb.io/compdb/go/compdb/fixcmd"

import (
	"context"
	"flag"

	"compdb.io/compdb/go/compdb"
	"compdb.io/compdb/go/platform/vfs"
	"compdb.io/compdb/go/util/cmdutil"
	"compdb.io/compdb/go/util/log"

	"github.com/google/subcommands"
)

type fixCommand struct {
	cmdutil.Info

	input   string
	output  string
	filter  compdb.FilterOptions
	rewrite compdb.RewriteOptions

	files vfs.Interface
}

// New creates a new subcommand for fixing up a compilation database.
func New() subcommands.Command {
	return &fixCommand{
		Info: cmdutil.NewInfo("fix", "filter and rewrite an existing compile_commands.json",
			`fix [OPTIONS]

Reads the database at --input, drops and rewrites entries exactly as generate
does, and writes the result to --output. The input may be - for stdin.`),
	}
}

// SetFlags implements the subcommands interface and provides command-specific
// flags for fixing a database.
func (c *fixCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.input, "input", compdb.DefaultOutput, "Path of the database to read (- for stdin)")
	fs.StringVar(&c.output, "output", compdb.DefaultOutput, "Path of the database to write (- for stdout)")
	fs.BoolVar(&c.filter.IncludeExternal, "include_external", false, "Include files from external repositories")
	fs.BoolVar(&c.filter.IncludeGenfiles, "include_genfiles", false, "Include generated files")
	fs.BoolVar(&c.filter.IncludeHeaders, "include_headers", false, "Include header files")
	fs.BoolVar(&c.rewrite.VSCode, "vscode", false, "Rewrite -iquote as -I for Visual Studio Code")
}

// Execute implements the subcommands interface and rewrites the database.
func (c *fixCommand) Execute(ctx context.Context, fs *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if fs.NArg() != 0 {
		return c.UsageError("unexpected arguments: %q", fs.Args())
	}
	files := c.files
	if files == nil {
		files = vfs.Default
	}
	cmds, err := compdb.ReadFile(ctx, files, c.input)
	if err != nil {
		return c.Fail("%v", err)
	}
	cmds, err = compdb.Process(cmds, c.filter, c.rewrite)
	if err != nil {
		return c.Fail("%v", err)
	}
	if err := compdb.WriteFile(ctx, files, c.output, cmds); err != nil {
		return c.Fail("%v", err)
	}
	log.Infof("Wrote %d compile commands to %s", len(cmds), c.output)
	return subcommands.ExitSuccess
}
