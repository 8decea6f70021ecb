// SPDX-License-Identifier: GPL-3.0-or-later

package callback

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/bassosimone/runtimex"
)

// New returns a new [*Chain] using [NewConfig] and [DefaultSLogger].
//
// The fns argument contains the initial registered sequence, in order.
func New[A any](fns ...Func[A]) *Chain[A] {
	return NewChain(NewConfig(), DefaultSLogger(), fns...)
}

// NewChain returns a new [*Chain].
//
// The cfg argument contains the common configuration and must not be nil.
//
// The logger argument is the [SLogger] to use for structured logging.
//
// The fns argument contains the initial registered sequence, in order. The
// slice is copied, so the caller may reuse it. Entries are not validated.
func NewChain[A any](cfg *Config, logger SLogger, fns ...Func[A]) *Chain[A] {
	runtimex.Assert(cfg != nil)
	return &Chain[A]{
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		NewSpanID:     cfg.NewSpanID,
		TimeNow:       cfg.TimeNow,
		funcs:         slices.Clone(fns),
	}
}

// Chain is an ordered, mutable sequence of [Func] invoked together.
//
// Invoking a Chain calls every registered [Func] in registration order and
// collects the cleanups they return into a new, single-use cleanup chain
// that runs them in reverse order.
//
// The registered sequence may be modified by the callbacks themselves
// while the chain is being invoked. A Chain is not safe for concurrent use
// by multiple goroutines.
//
// Construct using [New] or [NewChain]: the zero value lacks the dependencies
// that [*Chain.Invoke] uses.
//
// All exported fields are safe to modify after construction but before first use.
type Chain[A any] struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewChain] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or custom logging).
	//
	// Set by [NewChain] to the user-provided logger.
	Logger SLogger

	// NewSpanID returns the span ID of each invocation.
	//
	// Set by [NewChain] from [Config.NewSpanID].
	NewSpanID func() string

	// TimeNow is the function to get the current time (configurable for testing).
	//
	// Set by [NewChain] from [Config.TimeNow].
	TimeNow func() time.Time

	// funcs is the registered sequence.
	funcs []Func[A]

	// cursors contains the index of the entry being run by each
	// in-progress invocation, innermost last.
	cursors []*int
}

var _ Func[int] = &Chain[int]{}

// Len returns the number of entries in the registered sequence.
func (c *Chain[A]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.funcs)
}

// Add appends each [Func] to the registered sequence, in argument order.
//
// The same [Func] may be added several times and then runs once per
// registration. Entries added by a callback during an invocation run
// within that same invocation.
func (c *Chain[A]) Add(fns ...Func[A]) *Chain[A] {
	c.funcs = append(c.funcs, fns...)
	return c
}

// Remove removes all the occurrences of each [Func] from the registered sequence.
//
// Removing a [Func] that is not registered does nothing. It is safe to call
// Remove from within a callback, including removing the running callback:
// the in-progress invocation continues with the entry that followed it and
// does not run removed entries it has not reached yet.
func (c *Chain[A]) Remove(fns ...Func[A]) *Chain[A] {
	for _, fn := range fns {
		c.removeAll(fn)
	}
	return c
}

func (c *Chain[A]) removeAll(fn Func[A]) {
	// Walking backwards, each removal only shifts the entries we have already
	// visited, so the cursor adjustment stays in the current coordinates.
	for idx := len(c.funcs) - 1; idx >= 0; idx-- {
		if !sameFunc(c.funcs[idx], fn) {
			continue
		}
		c.funcs = slices.Delete(c.funcs, idx, idx+1)
		for _, cursor := range c.cursors {
			if idx <= *cursor {
				*cursor--
			}
		}
	}
}

// Clear empties the registered sequence.
//
// When called during an invocation, the invocation stops after the
// running callback unless new entries are added.
func (c *Chain[A]) Clear() *Chain[A] {
	clear(c.funcs)
	c.funcs = c.funcs[:0]
	for _, cursor := range c.cursors {
		*cursor = -1
	}
	return c
}

// Invoke calls each registered [Func] in order with the given ctx and input.
//
// The ctx is passed unmodified to every callback. The chain itself never
// inspects it.
//
// When no callback returns a [Cleanup], Invoke returns nil. Otherwise, it
// returns a new cleanup chain containing the collected cleanups in reverse
// order, followed by a function clearing the cleanup chain. Hence, invoking
// the cleanup chain runs the cleanups once and the following invocations
// do nothing and return nil.
//
// The first callback error aborts the invocation: the remaining callbacks do
// not run and Invoke returns the error along with the cleanup chain of the
// callbacks that already ran, including any [Cleanup] returned together
// with the error, so that the caller can undo their effects.
//
// The clearing function is the last entry of the cleanup chain, therefore
// entries added to a cleanup chain after Invoke returns it never run. To run
// more functions after the cleanups, register the cleanup chain into another
// chain of [Unit] followed by those functions.
//
// Invoking a nil [*Chain] does nothing and returns nil.
func (c *Chain[A]) Invoke(ctx context.Context, input A) (*Chain[Unit], error) {
	if c == nil {
		return nil, nil
	}

	spanID := c.NewSpanID()
	t0 := c.TimeNow()
	c.logInvokeStart(spanID, len(c.funcs), t0)

	cursor := new(int)
	c.cursors = append(c.cursors, cursor)
	defer c.dropCursor(cursor)

	var (
		cleanups []Cleanup
		err      error
		invoked  int
	)
	for *cursor = 0; *cursor < len(c.funcs); *cursor++ {
		fn := c.funcs[*cursor]
		if fn == nil {
			continue
		}
		var cleanup Cleanup
		cleanup, err = c.callFunc(ctx, spanID, *cursor, fn, input)
		invoked++
		if cleanup != nil {
			cleanups = append(cleanups, cleanup)
		}
		if err != nil {
			break
		}
	}

	cleanupChain := c.newCleanupChain(cleanups)
	c.logInvokeDone(spanID, t0, invoked, len(cleanups), err)
	return cleanupChain, err
}

func (c *Chain[A]) callFunc(
	ctx context.Context, spanID string, index int, fn Func[A], input A) (Cleanup, error) {
	t0 := c.TimeNow()
	cleanup, err := fn.Call(ctx, input)
	if noCleanup(cleanup) {
		cleanup = nil
	}
	c.logCallbackDone(spanID, index, t0, cleanup != nil, err)
	return cleanup, err
}

func (c *Chain[A]) dropCursor(cursor *int) {
	if idx := slices.Index(c.cursors, cursor); idx >= 0 {
		c.cursors = slices.Delete(c.cursors, idx, idx+1)
	}
}

// newCleanupChain returns nil when there are no cleanups.
func (c *Chain[A]) newCleanupChain(cleanups []Cleanup) *Chain[Unit] {
	if len(cleanups) <= 0 {
		return nil
	}
	slices.Reverse(cleanups)
	chain := &Chain[Unit]{
		ErrClassifier: c.ErrClassifier,
		Logger:        c.Logger,
		NewSpanID:     c.NewSpanID,
		TimeNow:       c.TimeNow,
		funcs:         cleanups,
	}
	return chain.Add(NewCleanupFunc(func() {
		chain.Clear()
	}))
}

// Call implements [Func], so that a [*Chain] can be registered into another one.
//
// Call is like [*Chain.Invoke] except that it returns a nil [Cleanup] rather
// than a nil [*Chain] when there is nothing to clean up.
func (c *Chain[A]) Call(ctx context.Context, input A) (Cleanup, error) {
	cleanupChain, err := c.Invoke(ctx, input)
	if cleanupChain == nil {
		return nil, err
	}
	return cleanupChain, err
}

// Callable returns a function that invokes the chain using [context.Background].
//
// This allows calling the chain as a plain function value:
//
//	call := chain.Callable()
//	cleanup, err := call(5)
//
// The returned cleanup chain is a [*Chain] of [Unit]: use [Undo] to call it
// with no arguments, or its own Callable with [Unit].
func (c *Chain[A]) Callable() func(input A) (*Chain[Unit], error) {
	return func(input A) (*Chain[Unit], error) {
		return c.Invoke(context.Background(), input)
	}
}

// Undo invokes a cleanup chain using [context.Background].
//
// Undo of a nil or already invoked cleanup chain does nothing and returns nil.
// The returned [*Chain] collects the cleanups returned by the cleanups, if any.
func Undo(cleanup *Chain[Unit]) (*Chain[Unit], error) {
	return cleanup.Invoke(context.Background(), Unit{})
}

func (c *Chain[A]) logInvokeStart(spanID string, callbacks int, t0 time.Time) {
	c.Logger.Info(
		"chainInvokeStart",
		slog.Int("callbacks", callbacks),
		slog.String("spanID", spanID),
		slog.Time("t", t0),
	)
}

func (c *Chain[A]) logInvokeDone(spanID string, t0 time.Time, invoked, cleanups int, err error) {
	c.Logger.Info(
		"chainInvokeDone",
		slog.Int("cleanups", cleanups),
		slog.Any("err", err),
		slog.String("errClass", c.ErrClassifier.Classify(err)),
		slog.Int("invoked", invoked),
		slog.String("spanID", spanID),
		slog.Time("t0", t0),
		slog.Time("t", c.TimeNow()),
	)
}

func (c *Chain[A]) logCallbackDone(spanID string, index int, t0 time.Time, cleanup bool, err error) {
	c.Logger.Debug(
		"chainCallbackDone",
		slog.Bool("cleanup", cleanup),
		slog.Any("err", err),
		slog.String("errClass", c.ErrClassifier.Classify(err)),
		slog.Int("index", index),
		slog.String("spanID", spanID),
		slog.Time("t0", t0),
		slog.Time("t", c.TimeNow()),
	)
}
