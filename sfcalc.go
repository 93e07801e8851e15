/*
 * sfcalc.go, part of goXtal.
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
	"math/cmplx"
)

//SFCalculator computes structure factors by direct summation over the
//atoms of a model: for every atom and every symmetry image, form factor
//(plus anomalous corrections) x occupancy x Debye-Waller x phase. This is
//the slow, exact route; sweeps over a crystal at working resolution go
//through DensityCalculator instead, and come back here only for validation.
//
//Atoms on special positions must carry pre-divided occupancies (see
//Model.AdjustSpecialPositions); the calculator does not detect them.
type SFCalculator struct {
	cell       *UnitCell
	group      *SpaceGroup
	scat       *ScatteringModel
	wavelength float64
}

//NewSFCalculator builds a calculator for the given model. The scattering
//model scat carries the f' values in effect; a nil scat means no
//corrections.
func NewSFCalculator(m *Model, scat *ScatteringModel) *SFCalculator {
	if scat == nil {
		scat = NewScatteringModel()
	}
	return &SFCalculator{
		cell:       m.Cell,
		group:      m.SpaceGroup(),
		scat:       scat,
		wavelength: m.Wavelength,
	}
}

//Calculate returns the complex structure factor F(hkl) of the model.
func (C *SFCalculator) Calculate(m *Model, hkl Miller) complex128 {
	stol2 := C.cell.Stol2(hkl)
	var sum complex128
	for _, a := range m.Atoms {
		if a.Occ == 0 {
			continue
		}
		f := FormFactor(a.Symbol, stol2)
		var fp, fdp float64
		switch {
		case a.HasAnom:
			fp, fdp = a.Fprime, a.Fdp
		case C.wavelength > 0:
			fp = C.scat.Fprime(a.Symbol)
			_, fdp, _ = AnomalousAt(a.Symbol, C.wavelength)
		}
		scat := complex(f+fp, fdp)
		sum += scat * complex(a.Occ, 0) * C.phaseSum(a, hkl, stol2)
	}
	return sum
}

//phaseSum accumulates exp(2*pi*i*h.(Rx+t)) over the symmetry images of the
//atom, with the Debye-Waller attenuation folded in. For anisotropic atoms
//the attenuation depends on the image orientation: attenuating h.R with the
//atom's own U tensor equals attenuating h with the rotated tensor.
func (C *SFCalculator) phaseSum(a *Atom, hkl Miller, stol2 float64) complex128 {
	isoDW := 0.0
	if a.Aniso == nil {
		isoDW = math.Exp(-a.Biso * stol2)
	}
	var sum complex128
	for _, op := range C.group.Ops {
		hr := op.ApplyToHKL(hkl)
		arg := 2 * math.Pi * (float64(hr[0])*a.Fract[0] + float64(hr[1])*a.Fract[1] + float64(hr[2])*a.Fract[2] +
			float64(hkl[0])*op.T[0] + float64(hkl[1])*op.T[1] + float64(hkl[2])*op.T[2])
		dw := isoDW
		if a.Aniso != nil {
			dw = C.anisoDW(hr, a.Aniso)
		}
		sum += cmplx.Rect(dw, arg)
	}
	return sum
}

//anisoDW is exp(-2*pi^2 * sum_ij U*_ij h_i h_j) with U*_ij = U_ij a*_i a*_j
//(CIF U convention).
func (C *SFCalculator) anisoDW(hkl Miller, u *[6]float64) float64 {
	h, k, l := float64(hkl[0]), float64(hkl[1]), float64(hkl[2])
	ar, br, cr := C.cell.Ar, C.cell.Br, C.cell.Cr
	q := u[0]*h*h*ar*ar + u[1]*k*k*br*br + u[2]*l*l*cr*cr +
		2*(u[3]*h*k*ar*br + u[4]*h*l*ar*cr + u[5]*k*l*br*cr)
	return math.Exp(-2 * math.Pi * math.Pi * q)
}

//Amplitude returns |f| for a complex structure factor.
func Amplitude(f complex128) float64 {
	return cmplx.Abs(f)
}

//PhaseInDegrees returns the phase of f in degrees, in [0,360).
func PhaseInDegrees(f complex128) float64 {
	deg := cmplx.Phase(f) / deg2Rad
	if deg < 0 {
		deg += 360
	}
	return deg
}
