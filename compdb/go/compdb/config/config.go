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

// Package config loads the optional YAML settings file for compilation
// database generation. Fields left unset in the file keep their defaults;
// command-line flags override the file.
package config // import "compdb.io/compdb/go/compdb/config"

import (
	"context"
	"fmt"

	"compdb.io/compdb/go/platform/vfs"

	"sigs.k8s.io/yaml"
)

// Config mirrors the flags of the generate command.
type Config struct {
	Targets      []string `json:"targets,omitempty"`
	Bazel        string   `json:"bazel,omitempty"`
	BazelOptions []string `json:"bazel_options,omitempty"`
	Output       string   `json:"output,omitempty"`

	RunBazelBuild   *bool `json:"run_bazel_build,omitempty"`
	KeepGoing       *bool `json:"keep_going,omitempty"`
	IncludeExternal *bool `json:"include_external,omitempty"`
	IncludeGenfiles *bool `json:"include_genfiles,omitempty"`
	IncludeHeaders  *bool `json:"include_headers,omitempty"`
	VSCode          *bool `json:"vscode,omitempty"`
}

// Parse decodes a YAML (or JSON) configuration. Unknown fields are an error.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads and parses the configuration file at path.
func Load(ctx context.Context, fs vfs.Reader, path string) (*Config, error) {
	data, err := vfs.ReadFile(ctx, fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %v", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %v", path, err)
	}
	return c, nil
}

// Bool stores *src into dst if src is set. It reports whether dst changed.
func Bool(dst *bool, src *bool) bool {
	if src == nil || *dst == *src {
		return false
	}
	*dst = *src
	return true
}
