// SPDX-License-Identifier: MIT

package earth

import "errors"

var (
	// ErrInvalidLayer indicates non-physical layer properties: non-positive or
	// non-finite velocity or density, or a negative/NaN thickness.
	ErrInvalidLayer = errors.New("earth: invalid layer properties")

	// ErrMantleThickness indicates a mantle half-space whose thickness is not +Inf.
	ErrMantleThickness = errors.New("earth: mantle thickness must be +Inf")

	// ErrUnboundedLayer indicates an infinite-thickness layer inside the stack.
	// Only the mantle may be a half-space.
	ErrUnboundedLayer = errors.New("earth: stack layer must have finite thickness")
)
