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

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJSONEqual(t *testing.T) {
	if err := JSONEqual([]byte(`{"a": [1, 2], "b": "x"}`), []byte(`{"b":"x","a":[1,2]}`)); err != nil {
		t.Errorf("JSONEqual reported a difference for equal documents: %v", err)
	}
	if err := JSONEqual([]byte(`[{"file": "a.cc"}]`), []byte(`[{"file": "b.cc"}]`)); err == nil {
		t.Error("JSONEqual reported no difference for unequal documents")
	}
}

func TestYAMLEqual(t *testing.T) {
	yml := []byte("targets:\n- //a/...\nvscode: true\n")
	jsn := []byte(`{"vscode": true, "targets": ["//a/..."]}`)
	if err := YAMLEqual(yml, jsn); err != nil {
		t.Errorf("YAMLEqual reported a difference: %v", err)
	}
}

func TestWriteFiles(t *testing.T) {
	root := t.TempDir()
	WriteFiles(t, root, map[string]string{"a/b/c.txt": "hi"})
	data, err := os.ReadFile(filepath.Join(root, "a", "b", "c.txt"))
	Fatalf(t, "ReadFile: %v", err)
	if string(data) != "hi" {
		t.Errorf("Got %q; want %q", data, "hi")
	}
}
