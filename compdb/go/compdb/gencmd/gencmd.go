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

// Package gencmd provides the command that generates a compilation database
// by building a bazel workspace with the compilation database aspect.
package gencmd // import "compdb.io/compdb/go/compdb/gencmd"

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"compdb.io/compdb/go/bazel"
	"compdb.io/compdb/go/compdb"
	"compdb.io/compdb/go/compdb/config"
	"compdb.io/compdb/go/platform/vfs"
	"compdb.io/compdb/go/util/cmdutil"
	"compdb.io/compdb/go/util/flagutil"
	"compdb.io/compdb/go/util/log"

	"github.com/google/subcommands"
)

type genCommand struct {
	cmdutil.Info

	runBuild   bool
	keepGoing  bool
	filter     compdb.FilterOptions
	rewrite    compdb.RewriteOptions
	bazel      string
	bazelOpts  flagutil.StringList
	output     string
	configFile string
	verbose    bool

	// Test hooks.
	files  vfs.Interface
	client bazel.Client
	getenv func(string) string
}

// New creates a new subcommand for generating a compilation database.
func New() subcommands.Command {
	return &genCommand{
		Info: cmdutil.NewInfo("generate", "generate compile_commands.json from a bazel workspace",
			`generate [OPTIONS] [target-pattern...]

Builds the given target patterns (default: //source/... //test/... //tools/...)
with the compilation database aspect and writes the collected compile commands
to --output. Extra bazel options may be given in $BAZEL_BUILD_OPTIONS as a
shell-quoted string, in a --config_file, or with repeated --bazel_opt flags.

Flags must come before the target patterns; a flag of this command given
after a target pattern is rejected.`),
	}
}

// SetFlags implements the subcommands interface and provides command-specific
// flags for database generation.
func (c *genCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.runBuild, "run_bazel_build", false, "Build header-remapping and generated targets before collecting commands")
	fs.BoolVar(&c.keepGoing, "keep_going", false, "Pass -k to bazel and ignore failures of --run_bazel_build")
	fs.BoolVar(&c.keepGoing, "k", false, "Shorthand for --keep_going")
	fs.BoolVar(&c.filter.IncludeExternal, "include_external", false, "Include files from external repositories")
	fs.BoolVar(&c.filter.IncludeGenfiles, "include_genfiles", false, "Include generated files")
	fs.BoolVar(&c.filter.IncludeHeaders, "include_headers", false, "Include header files")
	fs.BoolVar(&c.rewrite.VSCode, "vscode", false, "Rewrite -iquote as -I for Visual Studio Code")
	fs.StringVar(&c.bazel, "bazel", "bazel", "Path of the bazel binary")
	fs.Var(&c.bazelOpts, "bazel_opt", "Extra bazel option (repeatable)")
	fs.StringVar(&c.output, "output", compdb.DefaultOutput, "Path of the output database (- for stdout)")
	fs.StringVar(&c.configFile, "config_file", "", "Optional YAML settings file")
	fs.BoolVar(&c.verbose, "verbose", false, "Log each bazel invocation and fragment")
}

// Execute implements the subcommands interface and generates the database.
func (c *genCommand) Execute(ctx context.Context, fs *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	log.SetVerbose(c.verbose)
	g, err := c.generator(ctx, fs)
	if err != nil {
		return c.UsageError("%v", err)
	}
	cmds, err := g.Generate(ctx)
	if err != nil {
		return c.Fail("%v", err)
	}
	if err := compdb.WriteFile(ctx, c.fileSystem(), c.output, cmds); err != nil {
		return c.Fail("%v", err)
	}
	log.Infof("Wrote %d compile commands to %s", len(cmds), c.output)
	return subcommands.ExitSuccess
}

// generator resolves the flags, settings file, and environment into a
// configured Generator.
func (c *genCommand) generator(ctx context.Context, fs *flag.FlagSet) (*compdb.Generator, error) {
	var cfg config.Config
	if c.configFile != "" {
		loaded, err := config.Load(ctx, c.fileSystem(), c.configFile)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
		c.applyConfig(fs, &cfg)
	}

	getenv := c.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	envOpts, err := bazel.SplitOptions(getenv(bazel.BuildOptionsEnv))
	if err != nil {
		return nil, err
	}

	targets := fs.Args()
	for _, arg := range targets {
		if isFlag(fs, arg) {
			return nil, fmt.Errorf("flag %q given after target patterns", arg)
		}
	}
	if len(targets) == 0 {
		targets = cfg.Targets
	}
	var opts []string
	opts = append(opts, cfg.BazelOptions...)
	opts = append(opts, envOpts...)
	opts = append(opts, c.bazelOpts...)

	client := c.client
	if client == nil {
		client = &bazel.Command{Binary: c.bazel}
	}
	return &compdb.Generator{
		Client:    client,
		FS:        c.fileSystem(),
		Targets:   targets,
		Options:   opts,
		RunBuild:  c.runBuild,
		KeepGoing: c.keepGoing,
		Filter:    c.filter,
		Rewrite:   c.rewrite,
	}, nil
}

// applyConfig copies settings from cfg for every flag not given explicitly.
func (c *genCommand) applyConfig(fs *flag.FlagSet, cfg *config.Config) {
	unset := func(names ...string) bool {
		for _, name := range names {
			if cmdutil.IsFlagSet(fs, name) {
				return false
			}
		}
		return true
	}
	if cfg.Bazel != "" && unset("bazel") {
		c.bazel = cfg.Bazel
	}
	if cfg.Output != "" && unset("output") {
		c.output = cfg.Output
	}
	for _, b := range []struct {
		dst   *bool
		src   *bool
		flags []string
	}{
		{&c.runBuild, cfg.RunBazelBuild, []string{"run_bazel_build"}},
		{&c.keepGoing, cfg.KeepGoing, []string{"keep_going", "k"}},
		{&c.filter.IncludeExternal, cfg.IncludeExternal, []string{"include_external"}},
		{&c.filter.IncludeGenfiles, cfg.IncludeGenfiles, []string{"include_genfiles"}},
		{&c.filter.IncludeHeaders, cfg.IncludeHeaders, []string{"include_headers"}},
		{&c.rewrite.VSCode, cfg.VSCode, []string{"vscode"}},
	} {
		if unset(b.flags...) {
			config.Bool(b.dst, b.src)
		}
	}
}

// isFlag reports whether arg names one of the flags defined in fs.
func isFlag(fs *flag.FlagSet, arg string) bool {
	if !strings.HasPrefix(arg, "-") {
		return false
	}
	name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
	return name != "" && fs.Lookup(name) != nil
}

func (c *genCommand) fileSystem() vfs.Interface {
	if c.files == nil {
		return vfs.Default
	}
	return c.files
}
