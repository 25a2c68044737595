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

package log

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags, out := log.Flags(), log.Writer()
	log.SetFlags(0)
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetFlags(flags)
		log.SetOutput(out)
	})
	return &buf
}

func TestPrefixes(t *testing.T) {
	buf := captureOutput(t)

	Infof("hello %d", 1)
	Warningf("bazel build failed %d: %s", 1, "bazel build //...")
	Errorf("bad %s", "thing")
	Info("plain", 2)

	want := []string{
		"hello 1",
		"WARNING: bazel build failed 1: bazel build //...",
		"ERROR: bad thing",
		"plain 2",
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(got) != len(want) {
		t.Fatalf("Got %d lines, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVerbose(t *testing.T) {
	buf := captureOutput(t)
	defer SetVerbose(false)

	SetVerbose(false)
	Verbosef("hidden")
	if buf.Len() != 0 {
		t.Errorf("Verbosef logged while disabled: %q", buf.String())
	}

	SetVerbose(true)
	Verbosef("shown %s", "now")
	if got := strings.TrimSpace(buf.String()); got != "shown now" {
		t.Errorf("Verbosef: got %q, want %q", got, "shown now")
	}
}
