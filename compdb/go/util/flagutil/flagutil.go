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

// Package flagutil is a collection of helper types for binaries using the flag
// package.
package flagutil // import "compdb.io/compdb/go/util/flagutil"

import "bitbucket.org/creachadair/shell"

// StringList implements a flag.Value that accumulates every occurrence of a
// repeated flag, in order. Values are not split, so arguments that contain
// commas (as many compiler and bazel options do) survive intact.
type StringList []string

// Set implements part of the flag.Getter interface and will append a new value to the flag.
func (f *StringList) Set(s string) error {
	*f = append(*f, s)
	return nil
}

// String implements part of the flag.Getter interface and returns a string-ish value for the flag.
func (f *StringList) String() string {
	if f == nil {
		return ""
	}
	return shell.Join(*f)
}

// Get implements flag.Getter and returns a slice of string values.
func (f *StringList) Get() any {
	if f == nil {
		return []string(nil)
	}
	return []string(*f)
}
