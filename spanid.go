// SPDX-License-Identifier: GPL-3.0-or-later

package callback

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewSpanID returns a UUIDv7 identifying a chain invocation.
//
// Every [*Chain.Invoke] emits its log events with a fresh span ID, so the
// events of a single pass, including the per-callback ones, can be grouped
// together. The span terminology is borrowed from OTel.
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewSpanID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
