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

// Package bazel provides a client for the subset of the bazel command-line
// interface used to produce a compilation database: query evaluation, builds,
// and execution root lookup.
package bazel // import "compdb.io/compdb/go/bazel"

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"compdb.io/compdb/go/util/log"

	"bitbucket.org/creachadair/shell"
	"bitbucket.org/creachadair/stringset"
	"github.com/pkg/errors"
)

// Client is the interface to the external build tool.
type Client interface {
	// Query evaluates a build graph query expression and returns the labels
	// of the matching targets.
	Query(ctx context.Context, expr string) ([]string, error)

	// Build builds the given targets, passing options ahead of them.
	Build(ctx context.Context, options, targets []string) error

	// ExecutionRoot returns the path of the execution root under the given
	// options.
	ExecutionRoot(ctx context.Context, options []string) (string, error)
}

// A CommandError reports a bazel invocation that could not be run or that
// exited unsuccessfully.
type CommandError struct {
	Args     []string // the full command line, including the binary
	ExitCode int      // the exit status, or -1 if the process did not exit
	Err      error    // the underlying error from os/exec
}

// Command returns the failed command line as a shell string.
func (e *CommandError) Command() string { return shell.Join(e.Args) }

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command(), e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Command is a Client that invokes a bazel binary as a subprocess. The zero
// value runs "bazel" from $PATH in the current directory.
type Command struct {
	Binary string    // the bazel executable; "" means "bazel"
	Dir    string    // the workspace directory; "" means the current directory
	Env    []string  // the subprocess environment; nil inherits ours
	Stderr io.Writer // receives bazel's diagnostics; nil means os.Stderr
}

// Query implements part of the Client interface. Tool dependencies are
// excluded from the result, blank lines are dropped, and the returned labels
// are unique and sorted.
func (c *Command) Query(ctx context.Context, expr string) ([]string, error) {
	var out bytes.Buffer
	if err := c.run(ctx, &out, "query", "--notool_deps", expr); err != nil {
		return nil, errors.Wrap(err, "bazel query")
	}
	return parseLabels(out.String()), nil
}

// Build implements part of the Client interface.
func (c *Command) Build(ctx context.Context, options, targets []string) error {
	args := append([]string{"build"}, options...)
	return c.run(ctx, c.stderr(), append(args, targets...)...)
}

// ExecutionRoot implements part of the Client interface.
func (c *Command) ExecutionRoot(ctx context.Context, options []string) (string, error) {
	var out bytes.Buffer
	args := append([]string{"info", "execution_root"}, options...)
	if err := c.run(ctx, &out, args...); err != nil {
		return "", errors.Wrap(err, "bazel info")
	}
	root := strings.TrimSpace(out.String())
	if root == "" {
		return "", errors.New("bazel info reported an empty execution_root")
	}
	return root, nil
}

func (c *Command) binary() string {
	if c.Binary == "" {
		return "bazel"
	}
	return c.Binary
}

func (c *Command) stderr() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}
	return c.Stderr
}

func (c *Command) run(ctx context.Context, stdout io.Writer, args ...string) error {
	cmd := exec.CommandContext(ctx, c.binary(), args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdout = stdout
	cmd.Stderr = c.stderr()
	log.Verbosef("Running: %s", shell.Join(cmd.Args))
	if err := cmd.Run(); err != nil {
		cerr := &CommandError{Args: cmd.Args, ExitCode: -1, Err: err}
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			cerr.ExitCode = exit.ExitCode()
		}
		return cerr
	}
	return nil
}

// parseLabels returns the unique non-empty lines of out, in sorted order.
func parseLabels(out string) []string {
	labels := stringset.New()
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			labels.Add(line)
		}
	}
	return labels.Elements()
}
