/*
 * cell.go, part of goXtal.
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

	"gonum.org/v1/gonum/mat"
)

//Miller is a reciprocal-lattice point, i.e. a reflection index.
type Miller [3]int

//Neg returns the Friedel mate -h,-k,-l.
func (m Miller) Neg() Miller {
	return Miller{-m[0], -m[1], -m[2]}
}

//Less orders Miller indexes by the (h,k,l) triple.
func (m Miller) Less(n Miller) bool {
	for i := 0; i < 3; i++ {
		if m[i] != n[i] {
			return m[i] < n[i]
		}
	}
	return false
}

//UnitCell holds the 6 lattice parameters of a crystal (lengths in A, angles
//in degrees) plus everything derived from them: volume, reciprocal parameters
//and the fractional<->Cartesian transformation matrices. Build it with
//NewUnitCell and treat it as read-only afterwards.
type UnitCell struct {
	A, B, C             float64
	Alpha, Beta, Gamma  float64
	Volume              float64
	Ar, Br, Cr          float64 //reciprocal lengths, 1/A
	CosAr, CosBr, CosGr float64 //cosines of the reciprocal angles
	orth, frac          *mat.Dense
}

//NewUnitCell builds a cell from the 6 lattice parameters. It panics on
//non-positive lengths or angles outside (0,180), as a cell like that can
//only come from a programming error upstream.
func NewUnitCell(a, b, c, alpha, beta, gamma float64) *UnitCell {
	if a <= 0 || b <= 0 || c <= 0 {
		panic("goXtal: unit-cell lengths must be positive")
	}
	if alpha <= 0 || alpha >= 180 || beta <= 0 || beta >= 180 || gamma <= 0 || gamma >= 180 {
		panic("goXtal: unit-cell angles must be within (0,180) degrees")
	}
	U := new(UnitCell)
	U.A, U.B, U.C = a, b, c
	U.Alpha, U.Beta, U.Gamma = alpha, beta, gamma
	ca := math.Cos(deg2Rad * alpha)
	cb := math.Cos(deg2Rad * beta)
	cg := math.Cos(deg2Rad * gamma)
	sa := math.Sin(deg2Rad * alpha)
	sb := math.Sin(deg2Rad * beta)
	sg := math.Sin(deg2Rad * gamma)
	U.Volume = a * b * c * math.Sqrt(1-ca*ca-cb*cb-cg*cg+2*ca*cb*cg)
	U.Ar = b * c * sa / U.Volume
	U.Br = a * c * sb / U.Volume
	U.Cr = a * b * sg / U.Volume
	U.CosAr = (cb*cg - ca) / (sb * sg)
	U.CosBr = (ca*cg - cb) / (sa * sg)
	U.CosGr = (ca*cb - cg) / (sa * sb)
	//PDB convention: a along x, b in the xy plane.
	U.orth = mat.NewDense(3, 3, []float64{
		a, b * cg, c * cb,
		0, b * sg, c * (ca - cb*cg) / sg,
		0, 0, U.Volume / (a * b * sg),
	})
	U.frac = mat.NewDense(3, 3, nil)
	err := U.frac.Inverse(U.orth)
	if err != nil {
		panic("goXtal: singular orthogonalization matrix: " + err.Error())
	}
	return U
}

//Orthogonalize transforms fractional coordinates into Cartesian (A).
func (U *UnitCell) Orthogonalize(fract [3]float64) [3]float64 {
	return U.apply(U.orth, fract)
}

//Fractionalize transforms Cartesian coordinates (A) into fractional.
func (U *UnitCell) Fractionalize(cart [3]float64) [3]float64 {
	return U.apply(U.frac, cart)
}

func (U *UnitCell) apply(M *mat.Dense, v [3]float64) [3]float64 {
	var r [3]float64
	for i := 0; i < 3; i++ {
		r[i] = M.At(i, 0)*v[0] + M.At(i, 1)*v[1] + M.At(i, 2)*v[2]
	}
	return r
}

//OneOverD2 returns 1/d^2 for the given reflection, from the reciprocal
//metric tensor.
func (U *UnitCell) OneOverD2(hkl Miller) float64 {
	h, k, l := float64(hkl[0]), float64(hkl[1]), float64(hkl[2])
	return h*h*U.Ar*U.Ar + k*k*U.Br*U.Br + l*l*U.Cr*U.Cr +
		2*(k*l*U.Br*U.Cr*U.CosAr + h*l*U.Ar*U.Cr*U.CosBr + h*k*U.Ar*U.Br*U.CosGr)
}

//D returns the resolution (d-spacing, in A) of the given reflection.
//It is +Inf for (0,0,0).
func (U *UnitCell) D(hkl Miller) float64 {
	return 1 / math.Sqrt(U.OneOverD2(hkl))
}

//Stol2 returns (sin(theta)/lambda)^2 = 1/(4d^2) for the given reflection,
//the argument at which form factors are evaluated.
func (U *UnitCell) Stol2(hkl Miller) float64 {
	return U.OneOverD2(hkl) / 4
}

const deg2Rad = math.Pi / 180

//wrapFrac brings a fractional coordinate into [0,1).
func wrapFrac(x float64) float64 {
	x = math.Mod(x, 1)
	if x < 0 {
		x++
	}
	return x
}
