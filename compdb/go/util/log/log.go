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

// Package log provides semantic log functions.
package log // import "compdb.io/compdb/go/util/log"

import (
	"fmt"
	"log"
	"sync/atomic"
)

var verbose atomic.Bool

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) { verbose.Store(v) }

// Infof logs to the informational log.
func Infof(msg string, args ...any) { log.Output(2, fmt.Sprintf(msg, args...)) }

// Info logs to the informational log.
func Info(args ...any) { log.Output(2, fmt.Sprintln(args...)) }

// Verbosef logs to the informational log if verbose logging is enabled.
func Verbosef(msg string, args ...any) {
	if verbose.Load() {
		log.Output(2, fmt.Sprintf(msg, args...))
	}
}

// Warningf logs to the warning log.
func Warningf(msg string, args ...any) { log.Output(2, fmt.Sprintf("WARNING: "+msg, args...)) }

// Errorf logs to the error log.
func Errorf(msg string, args ...any) { log.Output(2, fmt.Sprintf("ERROR: "+msg, args...)) }
