// SPDX-License-Identifier: GPL-3.0-or-later

// Package callback provides composable callback chains with reversible effects.
//
// # Core Abstraction
//
// The package is built around a single interface:
//
//	type Func[A any] interface {
//		Call(ctx context.Context, input A) (Cleanup, error)
//	}
//
// Each Func is a callback that may return a [Cleanup] undoing its effects.
// A [Cleanup] is a Func of [Unit], so cleanups compose exactly like callbacks.
//
// # Chains
//
// A [*Chain] holds an ordered sequence of Func. Invoking it with
// [*Chain.Invoke] calls every registered Func, in registration order, with
// the same context and input. The cleanups returned along the way are
// collected into a new cleanup chain that runs them in reverse order:
//
//	chain := callback.New(openFunc, lockFunc)
//	cleanup, err := chain.Invoke(ctx, input)
//	...
//	callback.Undo(cleanup) // unlock, then close
//
// A cleanup chain clears itself after its first invocation, hence it is
// safe to invoke it many times: only the first invocation has effects.
// When no callback returns a cleanup, Invoke returns a nil [*Chain], and
// invoking a nil [*Chain] does nothing.
//
// The registered sequence can be changed at any time using [*Chain.Add],
// [*Chain.Remove] and [*Chain.Clear], including by the callbacks themselves
// while the chain is running. The same Func may be registered several
// times, and [*Chain.Remove] removes all its registrations. Use [NewFunc]
// to turn a closure into a Func with a stable identity.
//
// Composition utilities:
//   - [*Chain] implements Func, so a chain can be registered into another chain
//   - [*Chain.Callable]: obtain the chain as a plain function value
//   - [Apply]: bind a fixed input to a Func, yielding a Func of [Unit]
//   - [NewCleanupFunc]: wrap a func() as a [Cleanup]
//
// # Errors
//
// Chains do not isolate callbacks from each other. The first error returned
// by a callback aborts the invocation, and [*Chain.Invoke] returns it
// unmodified along with the cleanup chain of the callbacks that already ran.
// Panics are not recovered.
//
// # Observability
//
// Chains support structured logging via [SLogger] (compatible with [log/slog]).
// By default, logging is disabled. Pass a custom [*slog.Logger] to [NewChain]
// to enable logging. Error classification is configurable via [ErrClassifier].
//
// Each invocation is a span identified by a UUIDv7 (see [NewSpanID]) and
// emits chainInvokeStart and chainInvokeDone at [slog.LevelInfo], plus one
// chainCallbackDone per callback at [slog.LevelDebug].
//
// # Design Boundaries
//
// Chains are synchronous and are not safe for concurrent use. The following
// are out of scope: scheduling, asynchronous execution, retries, error
// isolation between callbacks, and persistence of chains.
package callback
