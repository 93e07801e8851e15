/*
 * density.go, part of goXtal.
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
	"math"
)

//Default parameters of the grid route.
const (
	DefaultRate = 1.5  //oversampling (Shannon) rate
	DefaultRCut = 5e-5 //density cutoff deciding each atom's radius
)

//DensityCalculator approximates the periodic electron density of a model
//on a real-space grid and recovers structure factors from a single Fourier
//transform, instead of one direct sum per reflection. Every atom is drawn
//as a truncated sum of Gaussians, broadened by its displacement parameter
//plus an extra blur B; the blur is divided back out in reciprocal space
//(see ReciprocalSpaceMultiplier). The grid belongs to one calculator and
//one model computation at a time; it is rebuilt on every PutModelDensity.
//
//Anomalous corrections: f' joins the rasterized density (the density stays
//real); f'' cannot, so the grid route ignores it.
type DensityCalculator struct {
	DMin float64
	Rate float64 //grid oversampling rate, DefaultRate if 0
	RCut float64 //cutoff threshold, DefaultRCut if 0. Smaller = larger atom radii = more accurate, slower.
	Blur float64 //extra B for Gaussian blurring. Negative = estimate automatically.

	Nu, Nv, Nw int
	Data       []float64 //density, index (u*Nv+v)*Nw+w

	cell       *UnitCell
	group      *SpaceGroup
	scat       *ScatteringModel
	wavelength float64
}

//NewDensityCalculator builds a grid pipeline for the model, with the
//resolution limit dmin and default rate, cutoff and (automatic) blur.
//scat carries the f' values in effect; nil means none.
func NewDensityCalculator(m *Model, scat *ScatteringModel, dmin float64) *DensityCalculator {
	if scat == nil {
		scat = NewScatteringModel()
	}
	return &DensityCalculator{
		DMin:       dmin,
		Rate:       DefaultRate,
		RCut:       DefaultRCut,
		Blur:       -1,
		cell:       m.Cell,
		group:      m.SpaceGroup(),
		scat:       scat,
		wavelength: m.Wavelength,
	}
}

//SetupGrid derives the grid dimensions from the cell and the oversampling
//rate: spacing at most DMin/(2*Rate) along each axis, rounded up to even
//numbers whose only prime factors are 2, 3 and 5.
func (D *DensityCalculator) SetupGrid() {
	spacing := D.DMin / (2 * D.rate())
	nu := goodGridSize(int(math.Ceil(D.cell.A / spacing)))
	nv := goodGridSize(int(math.Ceil(D.cell.B / spacing)))
	nw := goodGridSize(int(math.Ceil(D.cell.C / spacing)))
	D.Nu, D.Nv, D.Nw = nu, nv, nw
	D.Data = make([]float64, nu*nv*nw)
}

//SetGridSize forces explicit grid dimensions. Dimensions must be even and
//2,3,5-smooth, or the transform cannot factorize them efficiently; anything
//else fails with an ErrInvalidGridSize error.
func (D *DensityCalculator) SetGridSize(nu, nv, nw int) error {
	for _, n := range []int{nu, nv, nw} {
		if n < 2 || n%2 != 0 || !smooth235(n) {
			return newError(ErrInvalidGridSize,
				"goXtal: grid dimension %d is not an even 2,3,5-smooth number", n)
		}
	}
	D.Nu, D.Nv, D.Nw = nu, nv, nw
	D.Data = make([]float64, nu*nv*nw)
	return nil
}

//EstimateBlur returns the automatic extra-blur estimate for the model:
//(4*dmin*(1/rate-0.2))^2 - Bmin, floored at 0. The rule is ad hoc (ITfC
//vol. B 1.3.4.4.5 gives the principled version); finer sampling rates need
//less blurring, and at rate>=3 none at all.
func (D *DensityCalculator) EstimateBlur(m *Model) float64 {
	if D.rate() >= 3 {
		return 0
	}
	sqrtB := 4 * D.DMin * (1/D.rate() - 0.2)
	blur := sqrtB*sqrtB - m.MinBiso()
	if blur < 0 {
		return 0
	}
	return blur
}

//PutModelDensity rasterizes the model (all symmetry images of every atom)
//onto the grid, setting up grid dimensions and blur first if the caller
//didn't. Atom blobs wrap at the cell edges.
func (D *DensityCalculator) PutModelDensity(m *Model) error {
	if D.Data == nil {
		D.SetupGrid()
	}
	for i := range D.Data {
		D.Data[i] = 0
	}
	if D.Blur < 0 {
		D.Blur = D.EstimateBlur(m)
	}
	rcut := D.RCut
	if rcut <= 0 {
		rcut = DefaultRCut
	}
	for _, a := range m.Atoms {
		if a.Occ == 0 {
			continue
		}
		coef, ok := formFactors[a.Symbol]
		if !ok {
			return newError(ErrMissingFormFactor,
				"goXtal: no form factor tabulated for element %q", a.Symbol)
		}
		blob := D.makeBlob(a, coef, rcut)
		for _, op := range D.group.Ops {
			pos := op.Apply(a.Fract)
			for i := 0; i < 3; i++ {
				pos[i] = wrapFrac(pos[i])
			}
			D.addBlob(pos, a.Occ, blob)
		}
	}
	return nil
}

//blob is one atom's real-space density: up to 5 Gaussian terms
//p*exp(-4*pi^2*r^2/w) truncated at radius2.
type blob struct {
	p       [5]float64
	w       [5]float64
	n       int
	radius2 float64
}

func (b *blob) density(r2 float64) float64 {
	d := 0.0
	for i := 0; i < b.n; i++ {
		d += b.p[i] * math.Exp(-4*math.Pi*math.Pi*r2/b.w[i])
	}
	return d
}

//makeBlob converts the reciprocal-space Gaussian coefficients of the atom
//into real-space ones, broadened by B_eq+blur, and bounds the radius
//analytically from the cutoff: past the radius every term is below rcut.
func (D *DensityCalculator) makeBlob(a *Atom, coef *FormFactorCoeffs, rcut float64) blob {
	badd := a.BisoEquivalent() + D.Blur
	var bl blob
	add := func(aCoef, bCoef float64) {
		if aCoef == 0 {
			return
		}
		w := bCoef + badd
		if w < 1e-3 {
			//a zero-width term is a point charge; widen it to something
			//representable rather than dividing by zero
			w = 1e-3
		}
		p := aCoef * math.Pow(4*math.Pi/w, 1.5)
		bl.p[bl.n] = p
		bl.w[bl.n] = w
		bl.n++
		if math.Abs(p) > rcut {
			r2 := w / (4 * math.Pi * math.Pi) * math.Log(math.Abs(p)/rcut)
			if r2 > bl.radius2 {
				bl.radius2 = r2
			}
		}
	}
	for i := 0; i < 4; i++ {
		add(coef.A[i], coef.B[i])
	}
	c := coef.C
	if D.wavelength > 0 {
		c += D.scat.Fprime(a.Symbol)
	}
	add(c, 0)
	return bl
}

//addBlob accumulates one blob at the fractional position pos, scaled by
//occ, visiting only the grid points inside the blob's radius and wrapping
//periodically.
func (D *DensityCalculator) addBlob(pos [3]float64, occ float64, bl blob) {
	if bl.radius2 <= 0 {
		return
	}
	radius := math.Sqrt(bl.radius2)
	//number of grid planes within the radius along each axis; the plane
	//spacing along u is 1/(a*.Nu) and so on
	du := int(radius*D.cell.Ar*float64(D.Nu)) + 1
	dv := int(radius*D.cell.Br*float64(D.Nv)) + 1
	dw := int(radius*D.cell.Cr*float64(D.Nw)) + 1
	iu0 := int(math.Round(pos[0] * float64(D.Nu)))
	iv0 := int(math.Round(pos[1] * float64(D.Nv)))
	iw0 := int(math.Round(pos[2] * float64(D.Nw)))
	for iu := iu0 - du; iu <= iu0+du; iu++ {
		fu := float64(iu)/float64(D.Nu) - pos[0]
		for iv := iv0 - dv; iv <= iv0+dv; iv++ {
			fv := float64(iv)/float64(D.Nv) - pos[1]
			for iw := iw0 - dw; iw <= iw0+dw; iw++ {
				fw := float64(iw)/float64(D.Nw) - pos[2]
				c := D.cell.Orthogonalize([3]float64{fu, fv, fw})
				r2 := c[0]*c[0] + c[1]*c[1] + c[2]*c[2]
				if r2 > bl.radius2 {
					continue
				}
				idx := (modInt(iu, D.Nu)*D.Nv+modInt(iv, D.Nv))*D.Nw + modInt(iw, D.Nw)
				D.Data[idx] += occ * bl.density(r2)
			}
		}
	}
}

//Transform runs the forward real-to-complex transform of the grid and
//returns the reciprocal (half-space, Hermitian) grid. PutModelDensity must
//have run first.
func (D *DensityCalculator) Transform() (*ReciprocalGrid, error) {
	if D.Data == nil {
		return nil, newError(ErrInvalidGridSize, "goXtal: Transform called with no density grid")
	}
	return transformMapToF(D.Data, D.Nu, D.Nv, D.Nw, D.cell.Volume), nil
}

//ReciprocalSpaceMultiplier undoes the Fourier envelope of the extra blur
//for a reflection with the given 1/d^2: a Gaussian blurred in real space is
//recovered by a Gaussian division in reciprocal space.
func (D *DensityCalculator) ReciprocalSpaceMultiplier(oneOverD2 float64) float64 {
	return math.Exp(D.Blur * oneOverD2 / 4)
}

//F returns the blur-corrected structure factor of hkl read off the
//reciprocal grid rg.
func (D *DensityCalculator) F(rg *ReciprocalGrid, hkl Miller) complex128 {
	return rg.F(hkl) * complex(D.ReciprocalSpaceMultiplier(D.cell.OneOverD2(hkl)), 0)
}

func (D *DensityCalculator) rate() float64 {
	if D.Rate <= 0 {
		return DefaultRate
	}
	return D.Rate
}

func modInt(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func smooth235(n int) bool {
	for n%2 == 0 {
		n /= 2
	}
	for n%3 == 0 {
		n /= 3
	}
	for n%5 == 0 {
		n /= 5
	}
	return n == 1
}

//goodGridSize rounds n up to an even number with no prime factor above 5.
func goodGridSize(n int) int {
	if n < 2 {
		n = 2
	}
	if n%2 != 0 {
		n++
	}
	for !smooth235(n) {
		n += 2
	}
	return n
}
