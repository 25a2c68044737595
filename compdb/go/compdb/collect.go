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

package compdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"compdb.io/compdb/go/platform/vfs"
	"compdb.io/compdb/go/util/log"
)

const (
	// FragmentSuffix is the file name suffix of the per-target fragments
	// written by the compilation database aspect.
	FragmentSuffix = ".compile_commands.json"

	// ExecRootPlaceholder stands in for the execution root in fragment text.
	ExecRootPlaceholder = "__EXEC_ROOT__"
)

// A FragmentError reports a fragment that could not be read or parsed.
type FragmentError struct {
	Path string
	Err  error
}

func (e *FragmentError) Error() string { return fmt.Sprintf("fragment %s: %v", e.Path, e.Err) }

func (e *FragmentError) Unwrap() error { return e.Err }

// Collect finds every fragment beneath execRoot and returns their entries
// concatenated in lexical order of fragment path. Finding no fragments is not
// an error.
func Collect(ctx context.Context, fs vfs.Reader, execRoot string) ([]*CompileCommand, error) {
	paths, err := fs.Glob(ctx, execRoot, "**/*"+FragmentSuffix)
	if err != nil {
		return nil, fmt.Errorf("listing fragments under %s: %v", execRoot, err)
	}
	sort.Strings(paths)

	var cmds []*CompileCommand
	for _, path := range paths {
		frag, err := readFragment(ctx, fs, path, execRoot)
		if err != nil {
			return nil, &FragmentError{Path: path, Err: err}
		}
		cmds = append(cmds, frag...)
	}
	log.Infof("Collected %d compile commands from %d fragments", len(cmds), len(paths))
	return cmds, nil
}

// readFragment parses a single fragment. A fragment holds zero or more
// comma-separated JSON objects, which become a JSON array once bracketed.
func readFragment(ctx context.Context, fs vfs.Reader, path, execRoot string) ([]*CompileCommand, error) {
	data, err := vfs.ReadFile(ctx, fs, path)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), ExecRootPlaceholder, jsonEscape(execRoot))

	var cmds []*CompileCommand
	if err := json.Unmarshal([]byte("["+text+"]"), &cmds); err != nil {
		return nil, err
	}
	for i, cc := range cmds {
		if cc == nil {
			return nil, fmt.Errorf("entry %d: null", i)
		} else if err := cc.validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %v", i, err)
		}
	}
	log.Verbosef("Read %d compile commands from %s", len(cmds), path)
	return cmds, nil
}

// jsonEscape returns s escaped for use inside a JSON string literal.
func jsonEscape(s string) string {
	b, _ := json.Marshal(s) // a string always marshals
	return string(b[1 : len(b)-1])
}
