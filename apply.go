// SPDX-License-Identifier: GPL-3.0-or-later

package callback

import "context"

// Apply binds a fixed input to a [Func], returning a [Func] that takes [Unit] instead.
//
// This is useful to register a [Func], or a whole [*Chain], into a chain
// of [Unit], for example to notify once a cleanup chain has run:
//
//	rollback := New[Unit](cleanup, Apply(notify, "rolled back"))
func Apply[A any](fn Func[A], input A) Func[Unit] {
	return &apply[A]{fn, input}
}

type apply[A any] struct {
	fn    Func[A]
	input A
}

func (b *apply[A]) Call(ctx context.Context, _ Unit) (Cleanup, error) {
	return b.fn.Call(ctx, b.input)
}
