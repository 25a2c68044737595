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
	"path"
	"strings"

	"bitbucket.org/creachadair/stringset"
)

// Path prefixes, relative to the execution root, of files that are not part
// of the source tree.
const (
	GenfilesPrefix = "bazel-out/"
	ExternalPrefix = "external/"
)

var headerExtensions = stringset.New(".h", ".hh", ".hpp", ".hxx")

// IsHeader reports whether file names a C or C++ header.
func IsHeader(file string) bool { return headerExtensions.Contains(path.Ext(file)) }

// FilterOptions select which entries of a database are kept.
type FilterOptions struct {
	IncludeHeaders  bool // keep entries for header files
	IncludeGenfiles bool // keep entries for files under GenfilesPrefix
	IncludeExternal bool // keep entries for files under ExternalPrefix
}

// Keep reports whether cc passes every enabled condition. Paths are compared
// as exact string prefixes.
func (o FilterOptions) Keep(cc *CompileCommand) bool {
	switch {
	case !o.IncludeHeaders && IsHeader(cc.File):
		return false
	case !o.IncludeGenfiles && strings.HasPrefix(cc.File, GenfilesPrefix):
		return false
	case !o.IncludeExternal && strings.HasPrefix(cc.File, ExternalPrefix):
		return false
	}
	return true
}

// Filter returns the entries of cmds that o keeps, in their original order.
func (o FilterOptions) Filter(cmds []*CompileCommand) []*CompileCommand {
	var kept []*CompileCommand
	for _, cc := range cmds {
		if o.Keep(cc) {
			kept = append(kept, cc)
		}
	}
	return kept
}
