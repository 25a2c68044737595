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
	"path/filepath"
	"strings"
	"testing"

	"compdb.io/compdb/go/bazel"
	"compdb.io/compdb/go/bazel/bazeltest"
	"compdb.io/compdb/go/platform/vfs"
	"compdb.io/compdb/go/test/testutil"

	"github.com/google/go-cmp/cmp"
)

func newExecRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"bazel-out/k8/bin/source/lib.compile_commands.json": `{"file": "source/lib.cc", "command": "clang -std=c++0x -iquote . -c source/lib.cc", "directory": "__EXEC_ROOT__"},
{"file": "source/lib.h", "command": "clang -std=c++11 -iquote . -c source/lib.h", "directory": "__EXEC_ROOT__"}`,
		"bazel-out/k8/bin/external/z.compile_commands.json": `{"file": "external/z/z.c", "command": "clang -c external/z/z.c", "directory": "__EXEC_ROOT__"}`,
	})
	return root
}

func TestGenerate(t *testing.T) {
	root := newExecRoot(t)
	client := &bazeltest.Client{ExecRoot: root}
	g := &Generator{
		Client:  client,
		FS:      vfs.LocalFS{},
		Options: []string{"--jobs=2"},
		Rewrite: RewriteOptions{VSCode: true},
	}
	got, err := g.Generate(context.Background())
	testutil.Fatalf(t, "Generate failed: %v", err)

	want := []*CompileCommand{{
		File:      "source/lib.cc",
		Command:   "clang -I . -c source/lib.cc",
		Directory: root,
	}}
	if err := testutil.DeepEqual(want, got); err != nil {
		t.Error(err)
	}

	opts := []string{"--jobs=2", bazel.ConfigFlag, bazel.RemoteDownloadFlag}
	wantCalls := []bazeltest.Call{
		{Verb: "build", Options: bazel.AspectOptions(opts), Targets: bazel.DefaultTargets},
		{Verb: "info", Options: opts},
	}
	if diff := cmp.Diff(wantCalls, client.Calls); diff != "" {
		t.Errorf("Unexpected bazel calls: (-want +got)\n%s", diff)
	}
}

func TestGenerateIncludeAll(t *testing.T) {
	g := &Generator{
		Client: &bazeltest.Client{ExecRoot: newExecRoot(t)},
		FS:     vfs.LocalFS{},
		Filter: FilterOptions{IncludeHeaders: true, IncludeExternal: true},
	}
	got, err := g.Generate(context.Background())
	testutil.Fatalf(t, "Generate failed: %v", err)
	if diff := cmp.Diff([]string{"external/z/z.c", "source/lib.cc", "source/lib.h"}, files(got)); diff != "" {
		t.Errorf("Unexpected files: (-want +got)\n%s", diff)
	}
	if hdr := got[2].Command; !strings.HasSuffix(hdr, strings.Join(HeaderWarningFlags, " ")) {
		t.Errorf("Header command %q lacks warning flags", hdr)
	}
}

func TestGenerateRunBuild(t *testing.T) {
	client := &bazeltest.Client{
		ExecRoot: t.TempDir(),
		Targets:  []string{"//source:lib_cc_proto"},
	}
	g := &Generator{
		Client:    client,
		FS:        vfs.LocalFS{},
		Targets:   []string{"//source/..."},
		RunBuild:  true,
		KeepGoing: true,
	}
	got, err := g.Generate(context.Background())
	testutil.Fatalf(t, "Generate failed: %v", err)
	if len(got) != 0 {
		t.Errorf("Generate() = %v; want no entries", got)
	}

	if diff := cmp.Diff([]string{"query", "build", "build", "info"}, client.Verbs()); diff != "" {
		t.Fatalf("Unexpected bazel calls: (-want +got)\n%s", diff)
	}
	if want := bazel.CompilationQuery([]string{"//source/..."}); client.Calls[0].Expr != want {
		t.Errorf("Query expression = %q; want %q", client.Calls[0].Expr, want)
	}
	opts := []string{bazel.ConfigFlag, bazel.RemoteDownloadFlag, bazel.KeepGoingFlag}
	if diff := cmp.Diff(bazeltest.Call{Verb: "build", Options: opts, Targets: client.Targets}, client.Calls[1]); diff != "" {
		t.Errorf("Unexpected dependency build: (-want +got)\n%s", diff)
	}
	if diff := cmp.Diff([]string{"//source/..."}, client.Calls[2].Targets); diff != "" {
		t.Errorf("Unexpected aspect build targets: (-want +got)\n%s", diff)
	}
}

func TestGenerateRunBuildNoDependencies(t *testing.T) {
	client := &bazeltest.Client{ExecRoot: t.TempDir()}
	g := &Generator{Client: client, FS: vfs.LocalFS{}, RunBuild: true}
	_, err := g.Generate(context.Background())
	testutil.Fatalf(t, "Generate failed: %v", err)
	if diff := cmp.Diff([]string{"query", "build", "info"}, client.Verbs()); diff != "" {
		t.Errorf("Unexpected bazel calls: (-want +got)\n%s", diff)
	}
}

// failFirstBuild fails the build that does not apply the aspect.
func failFirstBuild(options, _ []string) error {
	for _, opt := range options {
		if opt == bazel.AspectFlag {
			return nil
		}
	}
	return &bazel.CommandError{Args: []string{"bazel", "build", "//x:y"}, ExitCode: 1, Err: errors.New("exit status 1")}
}

func TestGenerateDependencyBuildFailure(t *testing.T) {
	t.Run("keep going", func(t *testing.T) {
		client := &bazeltest.Client{ExecRoot: t.TempDir(), Targets: []string{"//x:y"}, BuildFunc: failFirstBuild}
		g := &Generator{Client: client, FS: vfs.LocalFS{}, RunBuild: true, KeepGoing: true}
		if _, err := g.Generate(context.Background()); err != nil {
			t.Fatalf("Generate failed despite KeepGoing: %v", err)
		}
		if diff := cmp.Diff([]string{"query", "build", "build", "info"}, client.Verbs()); diff != "" {
			t.Errorf("Unexpected bazel calls: (-want +got)\n%s", diff)
		}
	})
	t.Run("fatal", func(t *testing.T) {
		client := &bazeltest.Client{ExecRoot: t.TempDir(), Targets: []string{"//x:y"}, BuildFunc: failFirstBuild}
		g := &Generator{Client: client, FS: vfs.LocalFS{}, RunBuild: true}
		_, err := g.Generate(context.Background())
		var cerr *bazel.CommandError
		if !errors.As(err, &cerr) {
			t.Fatalf("Generate() error = %v; want *bazel.CommandError", err)
		}
		if diff := cmp.Diff([]string{"query", "build"}, client.Verbs()); diff != "" {
			t.Errorf("Unexpected bazel calls: (-want +got)\n%s", diff)
		}
	})
	t.Run("query failure keep going", func(t *testing.T) {
		client := &bazeltest.Client{ExecRoot: t.TempDir(), QueryErr: errors.New("bad pattern")}
		g := &Generator{Client: client, FS: vfs.LocalFS{}, RunBuild: true, KeepGoing: true}
		if _, err := g.Generate(context.Background()); err != nil {
			t.Fatalf("Generate failed despite KeepGoing: %v", err)
		}
	})
}

func TestGenerateAspectBuildFailureIsFatal(t *testing.T) {
	client := &bazeltest.Client{
		ExecRoot:  t.TempDir(),
		BuildFunc: func(_, _ []string) error { return errors.New("boom") },
	}
	g := &Generator{Client: client, FS: vfs.LocalFS{}, KeepGoing: true}
	if _, err := g.Generate(context.Background()); err == nil {
		t.Fatal("Generate succeeded; want error")
	}
	if diff := cmp.Diff([]string{"build"}, client.Verbs()); diff != "" {
		t.Errorf("Unexpected bazel calls: (-want +got)\n%s", diff)
	}
}

func TestGenerateWritesEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	g := &Generator{Client: &bazeltest.Client{ExecRoot: t.TempDir()}, FS: vfs.LocalFS{}}
	cmds, err := g.Generate(ctx)
	testutil.Fatalf(t, "Generate failed: %v", err)

	out := filepath.Join(t.TempDir(), DefaultOutput)
	testutil.Fatalf(t, "WriteFile failed: %v", WriteFile(ctx, vfs.LocalFS{}, out, cmds))
	data, err := vfs.ReadFile(ctx, vfs.LocalFS{}, out)
	testutil.Fatalf(t, "ReadFile failed: %v", err)
	if err := testutil.JSONEqual([]byte(`[]`), data); err != nil {
		t.Error(err)
	}
}
