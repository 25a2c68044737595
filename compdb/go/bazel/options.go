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

package bazel

import (
	"fmt"

	"bitbucket.org/creachadair/shell"
)

// BuildOptionsEnv names the environment variable holding extra bazel options
// as a single shell-quoted string.
const BuildOptionsEnv = "BAZEL_BUILD_OPTIONS"

// Options appended to every build and info invocation.
const (
	// ConfigFlag selects the .bazelrc configuration for compilation database
	// builds.
	ConfigFlag = "--config=compdb"

	// RemoteDownloadFlag forces remote outputs to be materialized locally,
	// since generated sources must exist for editors to read them. It is
	// placed after user options so that it overrides any .bazelrc setting.
	RemoteDownloadFlag = "--remote_download_outputs=all"

	// KeepGoingFlag asks bazel to build as much as possible after an error.
	KeepGoingFlag = "-k"
)

// Options used to apply the compilation database aspect.
const (
	AspectFlag       = "--aspects=@bazel_compdb//:aspects.bzl%compilation_database_aspect"
	OutputGroupsFlag = "--output_groups=compdb_files"
)

// SplitOptions splits a shell-quoted string of bazel options, as found in
// the BuildOptionsEnv environment variable.
func SplitOptions(s string) ([]string, error) {
	opts, ok := shell.Split(s)
	if !ok {
		return nil, fmt.Errorf("invalid bazel options %q: unbalanced quotes or trailing escape", s)
	}
	return opts, nil
}

// BuildOptions returns the options for build and info invocations: the
// caller's extra options followed by ConfigFlag, RemoteDownloadFlag, and
// KeepGoingFlag if keepGoing is set.
func BuildOptions(extra []string, keepGoing bool) []string {
	opts := make([]string, 0, len(extra)+3)
	opts = append(opts, extra...)
	opts = append(opts, ConfigFlag, RemoteDownloadFlag)
	if keepGoing {
		opts = append(opts, KeepGoingFlag)
	}
	return opts
}

// AspectOptions returns options extended with the flags that apply the
// compilation database aspect and request its output group.
func AspectOptions(options []string) []string {
	out := make([]string, 0, len(options)+2)
	out = append(out, options...)
	return append(out, AspectFlag, OutputGroupsFlag)
}
