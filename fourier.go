/*
 * fourier.go, part of goXtal.
 *
 *
 * Copyright 2022 Raul Mera rauldotmeraatusachdotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package xtal

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

//ReciprocalGrid holds the transform of a real density grid in half-space
//Hermitian storage: the l axis keeps only 0..Nw/2, the missing half is
//recovered by Friedel conjugation. Read-only once produced.
type ReciprocalGrid struct {
	Nu, Nv, Nw int //dimensions of the real-space grid it came from
	nwc        int //stored l coefficients, Nw/2+1
	data       []complex128
	scale      float64 //volume/(Nu*Nv*Nw), the integration element
}

//transformMapToF computes the 3D real-to-complex transform of the density:
//a real FFT along the fastest (w) axis followed by complex FFTs along v
//and u. The library convention is exp(-2*pi*i); structure factors use
//exp(+2*pi*i), so lookups conjugate on the way out (the input is real, so
//this loses nothing).
func transformMapToF(data []float64, nu, nv, nw int, volume float64) *ReciprocalGrid {
	nwc := nw/2 + 1
	out := make([]complex128, nu*nv*nwc)

	rfft := fourier.NewFFT(nw)
	row := make([]complex128, nwc)
	for u := 0; u < nu; u++ {
		for v := 0; v < nv; v++ {
			src := data[(u*nv+v)*nw : (u*nv+v+1)*nw]
			rfft.Coefficients(row, src)
			copy(out[(u*nv+v)*nwc:(u*nv+v+1)*nwc], row)
		}
	}

	vfft := fourier.NewCmplxFFT(nv)
	colv := make([]complex128, nv)
	dstv := make([]complex128, nv)
	for u := 0; u < nu; u++ {
		for w := 0; w < nwc; w++ {
			for v := 0; v < nv; v++ {
				colv[v] = out[(u*nv+v)*nwc+w]
			}
			vfft.Coefficients(dstv, colv)
			for v := 0; v < nv; v++ {
				out[(u*nv+v)*nwc+w] = dstv[v]
			}
		}
	}

	ufft := fourier.NewCmplxFFT(nu)
	colu := make([]complex128, nu)
	dstu := make([]complex128, nu)
	for v := 0; v < nv; v++ {
		for w := 0; w < nwc; w++ {
			for u := 0; u < nu; u++ {
				colu[u] = out[(u*nv+v)*nwc+w]
			}
			ufft.Coefficients(dstu, colu)
			for u := 0; u < nu; u++ {
				out[(u*nv+v)*nwc+w] = dstu[u]
			}
		}
	}

	return &ReciprocalGrid{
		Nu: nu, Nv: nv, Nw: nw,
		nwc:   nwc,
		data:  out,
		scale: volume / float64(nu*nv*nw),
	}
}

//F returns the raw structure factor of hkl from the grid (no blur
//correction; see DensityCalculator.F for the corrected value). Indexes are
//taken modulo the grid dimensions; the caller keeps them inside the
//Nyquist bounds (HKLSearch.ClipTo does that in sweeps). Negative l goes
//through the Friedel mate of the stored half-space.
func (G *ReciprocalGrid) F(hkl Miller) complex128 {
	h, k, l := hkl[0], hkl[1], hkl[2]
	conj := false
	if l < 0 {
		h, k, l = -h, -k, -l
		conj = true
	}
	if l >= G.nwc {
		panic("goXtal: reflection beyond the Nyquist limit of the grid")
	}
	iu := modInt(h, G.Nu)
	iv := modInt(k, G.Nv)
	v := G.data[(iu*G.Nv+iv)*G.nwc+l]
	f := cmplx.Conj(v) * complex(G.scale, 0)
	if conj {
		f = cmplx.Conj(f)
	}
	return f
}
