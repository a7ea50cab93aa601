// SPDX-License-Identifier: MIT

package wavefield

import (
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/seisinv/earth"
)

// Mat4 is a dense 4×4 complex matrix in row-major order.
type Mat4 [4][4]complex128

// ModeSet holds the mode matrices of one layer for each ray parameter.
//
//   - M    - mode-to-physical transform, M[i] for ray parameter p[i].
//   - Minv - its closed-form inverse.
//   - Q    - vertical slownesses (−qa, +qa, −qb, +qb).
type ModeSet struct {
	M    []Mat4
	Minv []Mat4
	Q    [][4]complex128
}

// ModeMatrices computes M, Minv and Q of a homogeneous layer for every ray
// parameter in p.
//
// With qa = √(1/Vp² − p²), qb = √(1/Vs² − p²) evaluated in complex
// arithmetic (post-critical waves become evanescent), η = 1/Vs² − 2p² and
// μ = ρVs²:
//
//	M    = [ p       p      qb     qb    ]
//	       [ qa     −qa    −p      p     ] · diag(Vp, Vp, Vs, Vs)
//	       [ −2μp·qa 2μp·qa −μη    μη    ]
//	       [ −μη    −μη     2μp·qb 2μp·qb]
//
//	Minv = diag(1/Vp, 1/Vp, 1/Vs, 1/Vs) · (1/ρ) ·
//	       [ μp      μη/2qa −p/2qa −1/2  ]
//	       [ μp     −μη/2qa  p/2qa −1/2  ]
//	       [ μη/2qb −μp     −1/2    p/2qb]
//	       [ μη/2qb  μp      1/2    p/2qb]
//
// Minv is the analytic inverse; no numeric inversion is performed.
//
// Returns ErrInvalidModel when qa or qb is NaN or zero (critical incidence,
// where Minv is singular).
func ModeMatrices(layer earth.LayerProps, p []float64) (ModeSet, error) {
	ms := ModeSet{
		M:    make([]Mat4, len(p)),
		Minv: make([]Mat4, len(p)),
		Q:    make([][4]complex128, len(p)),
	}
	var (
		vp, vs, rho = layer.Vp, layer.Vs, layer.Rho
		mu          = layer.Mu()
		sp, ss      = 1 / (vp * vp), 1 / (vs * vs)
		vf          = [4]float64{vp, vp, vs, vs}
	)
	for i, pi := range p {
		qa := cmplx.Sqrt(complex(sp-pi*pi, 0))
		qb := cmplx.Sqrt(complex(ss-pi*pi, 0))
		if cmplx.IsNaN(qa) || cmplx.IsNaN(qb) || cmplx.IsInf(qa) || cmplx.IsInf(qb) {
			return ModeSet{}, fmt.Errorf("%w: NaN slowness for layer %s, p=%g", ErrInvalidModel, layer, pi)
		}
		if qa == 0 || qb == 0 {
			return ModeSet{}, fmt.Errorf("%w: critical incidence for layer %s, p=%g", ErrInvalidModel, layer, pi)
		}

		var (
			cp    = complex(pi, 0)
			eta   = complex(ss-2*pi*pi, 0)
			cmu   = complex(mu, 0)
			trp   = 2 * cmu * cp * qa
			trs   = 2 * cmu * cp * qb
			mueta = cmu * eta
			mup   = cmu * cp
			half  = complex(0.5, 0)
		)

		m := Mat4{
			{cp, cp, qb, qb},
			{qa, -qa, -cp, cp},
			{-trp, trp, -mueta, mueta},
			{-mueta, -mueta, trs, trs},
		}
		inv := Mat4{
			{mup, mueta / 2 / qa, -cp / 2 / qa, -half},
			{mup, -mueta / 2 / qa, cp / 2 / qa, -half},
			{mueta / 2 / qb, -mup, -half, cp / 2 / qb},
			{mueta / 2 / qb, mup, half, cp / 2 / qb},
		}
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				m[r][c] *= complex(vf[c], 0)
				inv[r][c] *= complex(1/(rho*vf[r]), 0)
			}
		}

		ms.M[i] = m
		ms.Minv[i] = inv
		ms.Q[i] = [4]complex128{-qa, qa, -qb, qb}
	}
	return ms, nil
}

// mul returns the matrix product a·b.
func (a *Mat4) mul(b *Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var s complex128
			for k := 0; k < 4; k++ {
				s += a[r][k] * b[k][c]
			}
			out[r][c] = s
		}
	}
	return out
}

// apply computes dst = m·src column by column for a 4×K field.
// dst and src may not alias.
func (a *Mat4) apply(dst, src *[4][]complex128) {
	k := len(src[0])
	for r := 0; r < 4; r++ {
		row := dst[r][:k]
		m0, m1, m2, m3 := a[r][0], a[r][1], a[r][2], a[r][3]
		for j := 0; j < k; j++ {
			row[j] = m0*src[0][j] + m1*src[1][j] + m2*src[2][j] + m3*src[3][j]
		}
	}
}
