/*
 * symmetry.go, part of goXtal.
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
	"strings"
)

//SymOp is one symmetry operation x'=Rx+t, with the rotation part as an
//integer matrix acting on fractional coordinates and the translation as
//fractions of the cell edges.
type SymOp struct {
	R [3][3]int
	T [3]float64
}

//Apply transforms the fractional position x by the operation.
func (s SymOp) Apply(x [3]float64) [3]float64 {
	var r [3]float64
	for i := 0; i < 3; i++ {
		r[i] = float64(s.R[i][0])*x[0] + float64(s.R[i][1])*x[1] + float64(s.R[i][2])*x[2] + s.T[i]
	}
	return r
}

//ApplyToHKL transforms a reflection index by the rotation part of the
//operation. Reflections transform with the transposed matrix: h'_j = sum_i h_i R_ij.
func (s SymOp) ApplyToHKL(hkl Miller) Miller {
	var r Miller
	for j := 0; j < 3; j++ {
		r[j] = hkl[0]*s.R[0][j] + hkl[1]*s.R[1][j] + hkl[2]*s.R[2][j]
	}
	return r
}

//SpaceGroup is a crystallographic space group: its Hermann-Mauguin symbol,
//its number in the International Tables, and the full list of symmetry
//operations (identity and centering translations included). SpaceGroups
//from this package are shared, read-only objects; don't modify them.
type SpaceGroup struct {
	Name   string
	Number int
	Ops    []SymOp
}

//P1 returns the trivial group (no symmetry). It is the fallback for
//models that don't declare a space group.
func P1() *SpaceGroup {
	return findSpaceGroupExact("P1")
}

//FindSpaceGroup looks a space group up by its Hermann-Mauguin symbol
//("P 21 21 21" and "P212121" are both accepted). It returns nil when the
//symbol is not in the table, so the caller can decide whether to degrade
//to P1 or to complain.
func FindSpaceGroup(name string) *SpaceGroup {
	key := strings.ToUpper(strings.Join(strings.Fields(name), ""))
	return findSpaceGroupExact(key)
}

func findSpaceGroupExact(key string) *SpaceGroup {
	ent, ok := spaceGroupTable[key]
	if !ok {
		return nil
	}
	ent.once.Do(func() {
		ops := make([]SymOp, 0, len(ent.triplets)*len(ent.centering))
		for _, t := range ent.triplets {
			op := mustParseSymOp(t)
			for _, c := range ent.centering {
				cop := op
				for i := 0; i < 3; i++ {
					cop.T[i] = wrapFrac(op.T[i] + c[i])
				}
				ops = append(ops, cop)
			}
		}
		ent.group = &SpaceGroup{Name: ent.name, Number: ent.number, Ops: ops}
	})
	return ent.group
}

//IsInASU says whether hkl is the canonical representative of its orbit
//under the Laue group (the rotations of the group plus inversion, since
//Friedel mates carry the same amplitude). The representative is the
//largest orbit member in (h,k,l) order; for a centric pair exactly one
//member satisfies this, so the choice follows from the group itself and
//not from any iteration order.
func (S *SpaceGroup) IsInASU(hkl Miller) bool {
	for _, op := range S.Ops {
		t := op.ApplyToHKL(hkl)
		if hkl.Less(t) || hkl.Less(t.Neg()) {
			return false
		}
	}
	return true
}

//Multiplicity returns the number of distinct positions the orbit of hkl
//has under the Laue group. Mostly of interest for completeness bookkeeping.
func (S *SpaceGroup) Multiplicity(hkl Miller) int {
	seen := make(map[Miller]bool, 2*len(S.Ops))
	for _, op := range S.Ops {
		t := op.ApplyToHKL(hkl)
		seen[t] = true
		seen[t.Neg()] = true
	}
	return len(seen)
}

//Centric says whether the reflection is centric, i.e. some Laue-group
//operation maps it onto its own Friedel mate.
func (S *SpaceGroup) Centric(hkl Miller) bool {
	for _, op := range S.Ops {
		if op.ApplyToHKL(hkl) == hkl.Neg() {
			return true
		}
	}
	return false
}

//SpecialPositionMates returns how many symmetry operations (besides the
//identity) map the fractional position onto itself, within tol Angstroms.
//An atom sitting on a special position has SpecialPositionMates(...)>0 and
//its occupancy has to be divided by that count plus one before any
//structure-factor work.
func (S *SpaceGroup) SpecialPositionMates(cell *UnitCell, fract [3]float64, tol float64) int {
	if tol <= 0 {
		tol = 0.4
	}
	n := 0
	for i, op := range S.Ops {
		if i == 0 && op.isIdentity() {
			continue
		}
		img := op.Apply(fract)
		var d [3]float64
		for j := 0; j < 3; j++ {
			//minimum-image difference in fractional space
			d[j] = img[j] - fract[j]
			d[j] -= math.Round(d[j])
		}
		c := cell.Orthogonalize(d)
		if c[0]*c[0]+c[1]*c[1]+c[2]*c[2] < tol*tol {
			n++
		}
	}
	return n
}

func (s SymOp) isIdentity() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0
			if i == j {
				want = 1
			}
			if s.R[i][j] != want {
				return false
			}
		}
		if s.T[i] != 0 {
			return false
		}
	}
	return true
}

//mustParseSymOp turns a triplet like "-x,y+1/2,-z" into a SymOp. The table
//below is the only caller, so a malformed triplet is a bug in this file and
//we panic on it.
func mustParseSymOp(triplet string) SymOp {
	var op SymOp
	parts := strings.Split(strings.ReplaceAll(triplet, " ", ""), ",")
	if len(parts) != 3 {
		panic("goXtal: malformed symmetry triplet: " + triplet)
	}
	for i, p := range parts {
		sign := 1
		j := 0
		for j < len(p) {
			switch c := p[j]; {
			case c == '+':
				sign = 1
				j++
			case c == '-':
				sign = -1
				j++
			case c == 'x' || c == 'X':
				op.R[i][0] += sign
				sign = 1
				j++
			case c == 'y' || c == 'Y':
				op.R[i][1] += sign
				sign = 1
				j++
			case c == 'z' || c == 'Z':
				op.R[i][2] += sign
				sign = 1
				j++
			case c >= '0' && c <= '9':
				num := float64(c - '0')
				j++
				if j+1 < len(p) && p[j] == '/' && p[j+1] >= '1' && p[j+1] <= '9' {
					num /= float64(p[j+1] - '0')
					j += 2
				}
				op.T[i] += float64(sign) * num
				sign = 1
			default:
				panic("goXtal: malformed symmetry triplet: " + triplet)
			}
		}
		op.T[i] = wrapFrac(op.T[i])
	}
	return op
}
