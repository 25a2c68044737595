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
	"errors"
	"strings"

	"bitbucket.org/creachadair/stringset"
)

// An Invocation is a compiler command line split into the compiler and its
// options.
type Invocation struct {
	Compiler string
	Options  []Option

	// Trailing is any whitespace that followed the last option.
	Trailing string
}

// An Option is one shell word of a command line. Text keeps the word as
// written, quotes and escapes included, and Sep is the whitespace that
// preceded it.
type Option struct {
	Sep  string
	Text string
}

const separators = " \t\n"

// ParseInvocation returns the invocation described by cc. The compiler is
// everything before the first whitespace. The rest is divided into shell
// words without interpreting them, so String reproduces the command exactly.
func ParseInvocation(cc *CompileCommand) (Invocation, error) {
	if len(cc.Arguments) > 0 {
		inv := Invocation{Compiler: cc.Arguments[0]}
		for _, arg := range cc.Arguments[1:] {
			inv.Options = append(inv.Options, Option{Sep: " ", Text: arg})
		}
		return inv, nil
	}
	cmd := strings.TrimLeft(cc.Command, separators)
	if cmd == "" {
		return Invocation{}, errors.New("empty command line")
	}
	compiler, rest := cmd, ""
	if i := strings.IndexAny(cmd, separators); i >= 0 {
		compiler, rest = cmd[:i], cmd[i:]
	}
	opts, trailing := splitOptions(rest)
	return Invocation{Compiler: compiler, Options: opts, Trailing: trailing}, nil
}

// splitOptions divides s into words, each with the whitespace before it.
func splitOptions(s string) (opts []Option, trailing string) {
	for {
		text := strings.TrimLeft(s, separators)
		if text == "" {
			return opts, s
		}
		end := wordEnd(text)
		opts = append(opts, Option{Sep: s[:len(s)-len(text)], Text: text[:end]})
		s = text[end:]
	}
}

// wordEnd returns the length of the shell word at the start of s. Whitespace
// inside quotes or after a backslash does not end the word, and an
// unterminated quote runs to the end of s.
func wordEnd(s string) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote == '\'':
			if c == '\'' {
				quote = 0
			}
		case c == '\\':
			i++
		case quote == '"':
			if c == '"' {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case strings.IndexByte(separators, c) >= 0:
			return i
		}
	}
	return len(s)
}

// Args returns the full argument list, compiler first.
func (inv Invocation) Args() []string {
	args := []string{inv.Compiler}
	for _, opt := range inv.Options {
		args = append(args, opt.Text)
	}
	return args
}

// String returns the command line with its original spacing.
func (inv Invocation) String() string {
	var buf strings.Builder
	buf.WriteString(inv.Compiler)
	for _, opt := range inv.Options {
		buf.WriteString(opt.Sep)
		buf.WriteString(opt.Text)
	}
	buf.WriteString(inv.Trailing)
	return buf.String()
}

// A Rule rewrites the options of an Invocation. If Match is set, every option
// equal to Match is replaced by Replace (removed if Replace is empty); the
// option after a removed one takes over its separator. Otherwise, the
// options in Replace that are not already present are appended.
type Rule struct {
	Match   string
	Replace []string
}

// Apply returns opts rewritten by r.
func (r Rule) Apply(opts []Option) []Option {
	if r.Match == "" {
		have := stringset.New()
		for _, opt := range opts {
			have.Add(opt.Text)
		}
		for _, text := range r.Replace {
			if have.Add(text) {
				opts = append(opts, Option{Sep: " ", Text: text})
			}
		}
		return opts
	}
	out := make([]Option, 0, len(opts))
	var sep string
	var held bool
	for _, opt := range opts {
		if held {
			opt.Sep, held = sep, false
		}
		if opt.Text != r.Match {
			out = append(out, opt)
			continue
		}
		if len(r.Replace) == 0 {
			sep, held = opt.Sep, true
			continue
		}
		out = append(out, Option{Sep: opt.Sep, Text: r.Replace[0]})
		for _, text := range r.Replace[1:] {
			out = append(out, Option{Sep: " ", Text: text})
		}
	}
	return out
}

// Flags injected by bazel that do not affect the build but that clang-tidy
// and other tools misinterpret.
var supersededStdFlags = []string{"-std=c++0x", "-std=c++11"}

// HeaderWarningFlags silence diagnostics that only arise when a header is
// compiled on its own.
var HeaderWarningFlags = []string{
	"-Wno-pragma-once-outside-header",
	"-Wno-unused-const-variable",
	"-Wno-unused-function",
}

// RewriteOptions control how compile commands are rewritten.
type RewriteOptions struct {
	// VSCode replaces -iquote with -I, which Visual Studio Code understands.
	VSCode bool
}

// Rules returns the rules applied to the command for file, in order.
func (o RewriteOptions) Rules(file string) []Rule {
	var rules []Rule
	for _, flag := range supersededStdFlags {
		rules = append(rules, Rule{Match: flag})
	}
	if o.VSCode {
		rules = append(rules, Rule{Match: "-iquote", Replace: []string{"-I"}})
	}
	if IsHeader(file) {
		rules = append(rules, Rule{Replace: HeaderWarningFlags})
	}
	return rules
}

// Rewrite applies the rules for cc.File to its command line in place. An
// entry in "arguments" form keeps that form.
func (o RewriteOptions) Rewrite(cc *CompileCommand) error {
	inv, err := ParseInvocation(cc)
	if err != nil {
		return err
	}
	for _, rule := range o.Rules(cc.File) {
		inv.Options = rule.Apply(inv.Options)
	}
	if len(cc.Arguments) > 0 {
		cc.Arguments = inv.Args()
	} else {
		cc.Command = inv.String()
	}
	return nil
}
