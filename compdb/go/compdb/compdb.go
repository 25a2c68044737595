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

// Package compdb builds JSON compilation databases (compile_commands.json)
// from the per-target fragments emitted by a bazel aspect.
//
// A database is produced in four steps: fragments are collected from the
// execution root (Collect), entries are selected by file kind and location
// (FilterOptions), command lines are adjusted for editors and linters
// (RewriteOptions), and the result is written as an indented JSON array
// (Write). Generator runs the whole pipeline against a bazel.Client.
package compdb // import "compdb.io/compdb/go/compdb"

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"compdb.io/compdb/go/platform/vfs"

	"bitbucket.org/creachadair/stringset"
)

// DefaultOutput is the conventional name of a compilation database.
const DefaultOutput = "compile_commands.json"

// A CompileCommand is one entry of a compilation database, as described by
// https://clang.llvm.org/docs/JSONCompilationDatabase.html. Exactly one of
// Command and Arguments is normally set.
type CompileCommand struct {
	Directory string   `json:"directory"`
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	File      string   `json:"file"`
	Output    string   `json:"output,omitempty"`

	// Extra holds any other fields of the entry. They are carried through
	// unchanged and written after the standard fields, sorted by name.
	Extra map[string]json.RawMessage `json:"-"`
}

// compileCommand has the fields of CompileCommand but not its JSON methods.
type compileCommand CompileCommand

var standardFields = stringset.New("directory", "command", "arguments", "file", "output")

// UnmarshalJSON implements json.Unmarshaler. Unrecognized fields are kept in
// Extra.
func (cc *CompileCommand) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var std compileCommand
	if err := json.Unmarshal(data, &std); err != nil {
		return err
	}
	for name := range fields {
		if standardFields.Contains(strings.ToLower(name)) {
			delete(fields, name)
		}
	}
	*cc = CompileCommand(std)
	if len(fields) > 0 {
		cc.Extra = fields
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (cc CompileCommand) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode((*compileCommand)(&cc)); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	if len(cc.Extra) == 0 {
		return out, nil
	}
	out = out[:len(out)-1] // closing brace
	for _, name := range slices.Sorted(maps.Keys(cc.Extra)) {
		out = append(out, ',', '"')
		out = append(out, jsonEscape(name)...)
		out = append(out, '"', ':')
		out = append(out, cc.Extra[name]...)
	}
	return append(out, '}'), nil
}

func (cc *CompileCommand) validate() error {
	switch {
	case cc.File == "":
		return fmt.Errorf("missing file")
	case cc.Command == "" && len(cc.Arguments) == 0:
		return fmt.Errorf("missing command for %q", cc.File)
	}
	return nil
}

// Read decodes a compilation database from r.
func Read(r io.Reader) ([]*CompileCommand, error) {
	var cmds []*CompileCommand
	if err := json.NewDecoder(r).Decode(&cmds); err != nil {
		return nil, err
	}
	for i, cc := range cmds {
		if cc == nil {
			return nil, fmt.Errorf("entry %d: null", i)
		} else if err := cc.validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %v", i, err)
		}
	}
	return cmds, nil
}

// ReadFile reads the compilation database stored at path.
func ReadFile(ctx context.Context, fs vfs.Reader, path string) ([]*CompileCommand, error) {
	f, err := fs.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cmds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v", path, err)
	}
	return cmds, nil
}

// Write encodes cmds to w as a JSON array indented by two spaces. An empty
// or nil slice is written as "[]".
func Write(w io.Writer, cmds []*CompileCommand) error {
	if cmds == nil {
		cmds = []*CompileCommand{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(cmds)
}

// WriteFile writes cmds to path, replacing any existing file. The write is
// not atomic; an interrupted write may leave a partial file behind.
func WriteFile(ctx context.Context, fs vfs.Writer, path string, cmds []*CompileCommand) error {
	var buf bytes.Buffer
	if err := Write(&buf, cmds); err != nil {
		return fmt.Errorf("encoding compilation database: %v", err)
	}
	if err := vfs.WriteFile(ctx, fs, path, buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %v", path, err)
	}
	return nil
}
