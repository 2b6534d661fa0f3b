/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package shapecheck

import "sync/atomic"

// Mode selects how Scope reacts to a failed check. It applies only to the
// Scope layer: the core Match/MatchTree/BroadcastShapes functions always
// report, so libraries built on them keep full control.
type Mode int32

const (
	// ModeCheck validates and returns the diagnostic on mismatch. The
	// default.
	ModeCheck Mode = iota

	// ModeWarn validates, logs the diagnostic through klog and lets the
	// check pass. Useful when enabling contracts on an existing codebase.
	ModeWarn

	// ModeSkip disables Scope validation entirely.
	ModeSkip
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeCheck:
		return "check"
	case ModeWarn:
		return "warn"
	case ModeSkip:
		return "skip"
	}
	return "invalid"
}

var currentMode atomic.Int32

// SetMode changes the global Scope validation mode. Safe for concurrent
// use; it affects Scope checks that start after the call.
func SetMode(m Mode) {
	currentMode.Store(int32(m))
}

// CurrentMode returns the global Scope validation mode.
func CurrentMode() Mode {
	return Mode(currentMode.Load())
}
