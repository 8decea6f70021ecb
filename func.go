// SPDX-License-Identifier: GPL-3.0-or-later

package callback

import (
	"context"
	"reflect"
)

// Func is a callback that accepts an input and optionally returns a [Cleanup].
//
// Func instances are registered into a [*Chain] using [NewChain] or [*Chain.Add].
//
// Cleanup contract: a Func returns a nil [Cleanup] when there is nothing to
// undo. A nil pointer or an empty cleanup chain also count as nothing to undo. When a Func fails after producing effects, it may return a [Cleanup]
// along with the error: [*Chain] still collects it before aborting.
type Func[A any] interface {
	Call(ctx context.Context, input A) (Cleanup, error)
}

// Cleanup is a [Func] that undoes the effect of the [Func] that returned it.
//
// A Cleanup may itself return a further Cleanup.
type Cleanup = Func[Unit]

// NewFunc wraps a function as a [*FuncAdapter].
//
// Use this to create ad-hoc [Func] instances from closures. The returned
// pointer has identity, therefore it can be passed to [*Chain.Remove].
func NewFunc[A any](fn func(ctx context.Context, input A) (Cleanup, error)) *FuncAdapter[A] {
	return &FuncAdapter[A]{fn: fn}
}

// NewCleanupFunc wraps a function taking no arguments as a [Cleanup].
//
// The returned [Cleanup] never fails and never returns a further [Cleanup].
func NewCleanupFunc(fn func()) *FuncAdapter[Unit] {
	return NewFunc(func(ctx context.Context, _ Unit) (Cleanup, error) {
		fn()
		return nil, nil
	})
}

// FuncAdapter wraps a function as a [Func] implementation.
//
// Construct using [NewFunc] or [NewCleanupFunc].
type FuncAdapter[A any] struct {
	fn func(ctx context.Context, input A) (Cleanup, error)
}

var _ Func[int] = &FuncAdapter[int]{}

// Call implements [Func].
func (f *FuncAdapter[A]) Call(ctx context.Context, input A) (Cleanup, error) {
	return f.fn(ctx, input)
}

// sameFunc reports whether two [Func] values are the same registration.
//
// Values whose dynamic type is not comparable are never the same, which
// avoids the runtime panic that comparing them with == would cause.
func sameFunc[A any](a, b Func[A]) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta != nil && !ta.Comparable() {
		return false
	}
	return a == b
}

// noCleanup reports whether a [Cleanup] has nothing to undo: a nil value, a
// nil pointer stored in the interface, or an empty [*Chain] of [Unit].
func noCleanup(cleanup Cleanup) bool {
	if cleanup == nil {
		return true
	}
	if chain, ok := cleanup.(*Chain[Unit]); ok {
		return chain.Len() <= 0
	}
	value := reflect.ValueOf(cleanup)
	switch value.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return value.IsNil()
	default:
		return false
	}
}
