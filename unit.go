// SPDX-License-Identifier: GPL-3.0-or-later

package callback

// Unit is a type not containing any value.
//
// A [Cleanup] takes a Unit as its input, and a cleanup chain is
// therefore a [*Chain] of Unit.
type Unit struct{}
