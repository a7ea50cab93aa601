// SPDX-License-Identifier: MIT

package wavefield

// Mat4Mul exposes the 4×4 product to the external test package.
var Mat4Mul = (*Mat4).mul
