/*
 * model.go, part of goXtal.
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

import "sort"

//Atom is one scattering site of a model. Positions are fractional.
//Biso is the isotropic displacement parameter B (A^2); Aniso, when not nil,
//carries the anisotropic U tensor (U11,U22,U33,U12,U13,U23, CIF convention)
//and takes precedence in direct summation. Fprime/Fdp, when HasAnom is set,
//override the model-wide anomalous corrections for this atom only.
type Atom struct {
	Name    string
	Symbol  string //element symbol, UnknownElement when not typed
	Fract   [3]float64
	Occ     float64
	Biso    float64
	Aniso   *[6]float64
	Fprime  float64
	Fdp     float64
	HasAnom bool
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("goXtal: attempted to copy a nil atom")
	}
	na := new(Atom)
	*na = *A
	if A.Aniso != nil {
		u := *A.Aniso
		na.Aniso = &u
	}
	return na
}

//BisoEquivalent returns Biso, or, for anisotropic atoms, the isotropic
//equivalent 8*pi^2*trace(U)/3.
func (A *Atom) BisoEquivalent() float64 {
	if A.Aniso == nil {
		return A.Biso
	}
	return u2B * (A.Aniso[0] + A.Aniso[1] + A.Aniso[2]) / 3
}

const u2B = 78.9568352087147 //8*pi^2

//Model is an atomic model with its unit cell and space group: everything
//the structure-factor machinery reads. Periodic marks macromolecular
//(crystal) models, which take the grid route in resolution sweeps;
//non-periodic models (small molecules) are summed directly. Wavelength, when
//positive, switches anomalous scattering on. Fprimes may carry per-element
//f' read from the source file; those take precedence over wavelength-derived
//estimates.
type Model struct {
	Name       string
	Cell       *UnitCell
	Group      *SpaceGroup
	Atoms      []*Atom
	Periodic   bool
	Wavelength float64
	Fprimes    map[string]float64
}

//SpaceGroup returns the model's group, or P1 when none was assigned.
func (M *Model) SpaceGroup() *SpaceGroup {
	if M.Group == nil {
		return P1()
	}
	return M.Group
}

//Copy returns a deep copy of the model. Cell and Group, being read-only,
//are shared.
func (M *Model) Copy() *Model {
	nm := new(Model)
	*nm = *M
	nm.Atoms = make([]*Atom, len(M.Atoms))
	for i, a := range M.Atoms {
		nm.Atoms[i] = a.Copy()
	}
	if M.Fprimes != nil {
		nm.Fprimes = make(map[string]float64, len(M.Fprimes))
		for k, v := range M.Fprimes {
			nm.Fprimes[k] = v
		}
	}
	return nm
}

//PresentElements returns the sorted set of element symbols in the model.
func (M *Model) PresentElements() []string {
	seen := make(map[string]bool)
	for _, a := range M.Atoms {
		seen[a.Symbol] = true
	}
	r := make([]string, 0, len(seen))
	for s := range seen {
		r = append(r, s)
	}
	sort.Strings(r)
	return r
}

//ResolveUnknown reassigns every placeholder ("X") atom to the given
//element. It returns how many atoms were reassigned.
func (M *Model) ResolveUnknown(symbol string) int {
	n := 0
	for _, a := range M.Atoms {
		if a.Symbol == UnknownElement {
			a.Symbol = symbol
			n++
		}
	}
	return n
}

//AdjustSpecialPositions divides the occupancy of every atom sitting on a
//special position by the number of symmetry mates at that position plus
//one. Small-molecule files state full occupancy for such atoms, so this has
//to run once, right after loading, before any structure-factor work. It
//returns the number of adjusted atoms. tol<=0 means the default 0.4 A.
func (M *Model) AdjustSpecialPositions(tol float64) int {
	g := M.SpaceGroup()
	n := 0
	for _, a := range M.Atoms {
		mates := g.SpecialPositionMates(M.Cell, a.Fract, tol)
		if mates > 0 {
			a.Occ /= float64(mates + 1)
			n++
		}
	}
	return n
}

//MinBiso returns the smallest (equivalent) isotropic displacement
//parameter in the model, or 0 for an empty model.
func (M *Model) MinBiso() float64 {
	if len(M.Atoms) == 0 {
		return 0
	}
	min := M.Atoms[0].BisoEquivalent()
	for _, a := range M.Atoms[1:] {
		if b := a.BisoEquivalent(); b < min {
			min = b
		}
	}
	return min
}
