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
	"strings"
)

// DefaultTargets are the target patterns used when none are given.
var DefaultTargets = []string{"//source/...", "//test/...", "//tools/..."}

// Sub-query templates. Each is instantiated with the union of the requested
// target patterns. Together they select the libraries whose headers are
// remapped by include_prefix/strip_include_prefix and the C++ targets
// generated from proto_library rules; these must be built so that the
// remapped headers and generated sources exist on disk.
var compilationQueries = []string{
	`attr(include_prefix, ".+", kind(cc_library, deps(%s)))`,
	`attr(strip_include_prefix, ".+", kind(cc_library, deps(%s)))`,
	`attr(generator_function, ".*proto_library", kind(cc_.*, deps(%s)))`,
}

// CompilationQuery returns a query expression selecting the dependencies of
// targets that must be built before a compilation database is useful.
// If targets is empty, DefaultTargets are used.
func CompilationQuery(targets []string) string {
	if len(targets) == 0 {
		targets = DefaultTargets
	}
	union := strings.Join(targets, " union ")
	exprs := make([]string, len(compilationQueries))
	for i, q := range compilationQueries {
		exprs[i] = fmt.Sprintf(q, union)
	}
	return strings.Join(exprs, " union ")
}
