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
	"errors"
	"fmt"

	"compdb.io/compdb/go/bazel"
	"compdb.io/compdb/go/platform/vfs"
	"compdb.io/compdb/go/util/log"
)

// Process filters cmds and rewrites the survivors in place, returning them in
// their original order.
func Process(cmds []*CompileCommand, filter FilterOptions, rewrite RewriteOptions) ([]*CompileCommand, error) {
	kept := filter.Filter(cmds)
	for _, cc := range kept {
		if err := rewrite.Rewrite(cc); err != nil {
			return nil, fmt.Errorf("rewriting command for %q: %v", cc.File, err)
		}
	}
	log.Infof("Kept %d of %d compile commands", len(kept), len(cmds))
	return kept, nil
}

// A Generator produces a compilation database by building targets with the
// compilation database aspect and collecting the fragments it emits.
type Generator struct {
	Client bazel.Client
	FS     vfs.Reader // where fragments are read; nil means vfs.Default

	Targets []string // target patterns; empty means bazel.DefaultTargets
	Options []string // extra bazel options, ahead of the fixed ones

	// RunBuild first builds the targets selected by bazel.CompilationQuery so
	// that generated headers and sources exist.
	RunBuild bool

	// KeepGoing passes -k to bazel and tolerates failure of the RunBuild step.
	KeepGoing bool

	Filter  FilterOptions
	Rewrite RewriteOptions
}

// Generate runs the pipeline and returns the filtered, rewritten entries.
// A failure of the aspect build is always fatal.
func (g *Generator) Generate(ctx context.Context) ([]*CompileCommand, error) {
	targets := g.Targets
	if len(targets) == 0 {
		targets = bazel.DefaultTargets
	}
	opts := bazel.BuildOptions(g.Options, g.KeepGoing)

	if g.RunBuild {
		if err := g.buildDependencies(ctx, targets, opts); err != nil {
			if !g.KeepGoing {
				return nil, err
			}
			warnBuildFailure(err)
		}
	}

	if err := g.Client.Build(ctx, bazel.AspectOptions(opts), targets); err != nil {
		return nil, fmt.Errorf("building compilation database: %w", err)
	}
	execRoot, err := g.Client.ExecutionRoot(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("locating execution root: %w", err)
	}
	log.Verbosef("Execution root: %s", execRoot)

	fs := g.FS
	if fs == nil {
		fs = vfs.Default
	}
	cmds, err := Collect(ctx, fs, execRoot)
	if err != nil {
		return nil, err
	}
	return Process(cmds, g.Filter, g.Rewrite)
}

// buildDependencies builds the targets whose outputs the database refers to:
// remapped headers and generated protocol buffer sources.
func (g *Generator) buildDependencies(ctx context.Context, targets, opts []string) error {
	deps, err := g.Client.Query(ctx, bazel.CompilationQuery(targets))
	if err != nil {
		return err
	}
	if len(deps) == 0 {
		log.Info("No header-remapping or generated targets to build")
		return nil
	}
	log.Infof("Building %d header-remapping and generated targets", len(deps))
	return g.Client.Build(ctx, opts, deps)
}

func warnBuildFailure(err error) {
	var cerr *bazel.CommandError
	if errors.As(err, &cerr) {
		log.Warningf("bazel build failed %d: %s", cerr.ExitCode, cerr.Command())
		return
	}
	log.Warningf("bazel build failed: %v", err)
}
