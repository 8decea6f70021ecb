// SPDX-License-Identifier: GPL-3.0-or-later

package callback

import (
	"context"
	"log/slog"
	"time"

	"github.com/bassosimone/slogstub"
)

// newCapturingLogger returns a logger that captures all log records into the
// returned slice. The caller can inspect the slice after exercising the code
// under test to verify which events were emitted.
func newCapturingLogger() (*slog.Logger, *[]slog.Record) {
	var records []slog.Record
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return true
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			records = append(records, record)
			return nil
		},
	}
	return slog.New(handler), &records
}

// recordAttrs returns the attributes of a record indexed by key.
func recordAttrs(record slog.Record) map[string]slog.Value {
	attrs := make(map[string]slog.Value)
	record.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value
		return true
	})
	return attrs
}

// recordMessages returns the message of each record, in order.
func recordMessages(records []slog.Record) []string {
	var messages []string
	for _, record := range records {
		messages = append(messages, record.Message)
	}
	return messages
}

// newTestConfig returns a [*Config] with deterministic span IDs and time.
func newTestConfig() *Config {
	cfg := NewConfig()
	cfg.NewSpanID = func() string {
		return "0191f9c6-0000-7000-8000-000000000000"
	}
	cfg.TimeNow = func() time.Time {
		return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return cfg
}

// tracer records the names of the functions that ran.
type tracer struct {
	trace []string
}

// callback returns a [*FuncAdapter] recording name and returning cleanup.
func (tr *tracer) callback(name string, cleanup Cleanup) *FuncAdapter[int] {
	return NewFunc(func(ctx context.Context, input int) (Cleanup, error) {
		tr.trace = append(tr.trace, name)
		return cleanup, nil
	})
}

// cleanup returns a [*FuncAdapter] recording name.
func (tr *tracer) cleanup(name string) *FuncAdapter[Unit] {
	return NewCleanupFunc(func() {
		tr.trace = append(tr.trace, name)
	})
}
