// SPDX-License-Identifier: GPL-3.0-or-later

package callback_test

import (
	"context"
	"fmt"

	"github.com/bassosimone/callback"
	"github.com/bassosimone/runtimex"
)

// This example shows how to register callbacks returning cleanups and how
// to undo their effects by invoking the returned cleanup chain.
func Example() {
	var data []int
	pop := callback.NewCleanupFunc(func() {
		fmt.Println("pop", data[len(data)-1])
		data = data[:len(data)-1]
	})

	double := callback.NewFunc(func(ctx context.Context, arg int) (callback.Cleanup, error) {
		data = append(data, 2*arg)
		return pop, nil
	})
	triple := callback.NewFunc(func(ctx context.Context, arg int) (callback.Cleanup, error) {
		data = append(data, 3*arg)
		return pop, nil
	})

	call := callback.New[int]().Add(double, triple).Callable()

	cleanup := runtimex.PanicOnError1(call(5))
	fmt.Println(data)

	runtimex.PanicOnError1(callback.Undo(cleanup))
	fmt.Println(data)

	// the cleanup chain has cleared itself
	runtimex.PanicOnError1(callback.Undo(cleanup))
	fmt.Println(data)

	// Output:
	// [10 15]
	// pop 15
	// pop 10
	// []
	// []
}

// This example shows that a callback may remove itself from the chain
// while the chain is running, which is useful for one-shot callbacks.
func ExampleChain_Remove() {
	chain := callback.New[string]()

	var once *callback.FuncAdapter[string]
	once = callback.NewFunc(func(ctx context.Context, event string) (callback.Cleanup, error) {
		fmt.Println("once:", event)
		chain.Remove(once)
		return nil, nil
	})
	always := callback.NewFunc(func(ctx context.Context, event string) (callback.Cleanup, error) {
		fmt.Println("always:", event)
		return nil, nil
	})
	chain.Add(once, always)

	ctx := context.Background()
	runtimex.PanicOnError1(chain.Invoke(ctx, "first"))
	runtimex.PanicOnError1(chain.Invoke(ctx, "second"))

	// Output:
	// once: first
	// always: first
	// always: second
}
