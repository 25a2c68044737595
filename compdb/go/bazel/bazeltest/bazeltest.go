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

// Package bazeltest provides an in-memory bazel.Client for tests.
package bazeltest // import "compdb.io/compdb/go/bazel/bazeltest"

import (
	"context"
	"errors"
)

// A Call records a single invocation of the fake client.
type Call struct {
	Verb    string   // "query", "build", or "info"
	Expr    string   // the query expression, for "query"
	Options []string // the options, for "build" and "info"
	Targets []string // the targets, for "build"
}

// Client is a fake bazel.Client. Its zero value answers every query with no
// targets, succeeds every build, and has no execution root.
type Client struct {
	Targets  []string // returned by Query
	QueryErr error    // returned by Query, if set
	ExecRoot string   // returned by ExecutionRoot

	// BuildFunc, if set, determines the result of each Build call.
	BuildFunc func(options, targets []string) error

	Calls []Call
}

// Query implements part of bazel.Client.
func (c *Client) Query(_ context.Context, expr string) ([]string, error) {
	c.Calls = append(c.Calls, Call{Verb: "query", Expr: expr})
	if c.QueryErr != nil {
		return nil, c.QueryErr
	}
	return c.Targets, nil
}

// Build implements part of bazel.Client.
func (c *Client) Build(_ context.Context, options, targets []string) error {
	c.Calls = append(c.Calls, Call{Verb: "build", Options: options, Targets: targets})
	if c.BuildFunc != nil {
		return c.BuildFunc(options, targets)
	}
	return nil
}

// ExecutionRoot implements part of bazel.Client.
func (c *Client) ExecutionRoot(_ context.Context, options []string) (string, error) {
	c.Calls = append(c.Calls, Call{Verb: "info", Options: options})
	if c.ExecRoot == "" {
		return "", errors.New("no execution root configured")
	}
	return c.ExecRoot, nil
}

// Verbs returns the verbs of the recorded calls, in order.
func (c *Client) Verbs() []string {
	verbs := make([]string, len(c.Calls))
	for i, call := range c.Calls {
		verbs[i] = call.Verb
	}
	return verbs
}
