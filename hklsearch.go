/*
 * hklsearch.go, part of goXtal.
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

//HKLSearch enumerates the unique reflections (one representative per
//symmetry-equivalent set) inside a resolution sphere. The sequence is lazy,
//finite and restartable, and two searches over the same group and limit
//yield the same set in the same order. Use it like a trajectory reader:
//
//	s := NewHKLSearch(cell, group, 2.0)
//	for hkl, ok := s.Next(); ok; hkl, ok = s.Next() {
//		...
//	}
type HKLSearch struct {
	cell             *UnitCell
	group            *SpaceGroup
	maxInvD2         float64
	maxH, maxK, maxL int
	h, k, l          int
	started          bool
}

//NewHKLSearch builds an enumerator over the unique reflections with
//1/d^2 < (1/dmin)^2. It panics on dmin<=0; there is no meaningful sphere
//for such a limit.
func NewHKLSearch(cell *UnitCell, group *SpaceGroup, dmin float64) *HKLSearch {
	if dmin <= 0 {
		panic("goXtal: HKLSearch needs a positive resolution limit")
	}
	if group == nil {
		group = P1()
	}
	maxInvD := 1 / dmin
	s := &HKLSearch{
		cell:     cell,
		group:    group,
		maxInvD2: maxInvD * maxInvD,
		maxH:     int(maxInvD / cell.Ar),
		maxK:     int(maxInvD / cell.Br),
		maxL:     int(maxInvD / cell.Cr),
	}
	s.Reset()
	return s
}

//ClipTo intersects the index bounds with the Nyquist limits of an
//nu x nv x nw grid, so every surviving reflection can be read off the
//transformed grid. A limit finer than the grid supports is clipped, never
//an error.
func (s *HKLSearch) ClipTo(nu, nv, nw int) {
	if nu/2 < s.maxH {
		s.maxH = nu / 2
	}
	if nv/2 < s.maxK {
		s.maxK = nv / 2
	}
	if nw/2 < s.maxL {
		s.maxL = nw / 2
	}
	s.Reset()
}

//Reset rewinds the search to the beginning of the sequence.
func (s *HKLSearch) Reset() {
	s.h = -s.maxH
	s.k = -s.maxK
	s.l = -s.maxL
	s.started = false
}

//Bounds returns the current index bounds (+-maxH, +-maxK, +-maxL).
func (s *HKLSearch) Bounds() (int, int, int) {
	return s.maxH, s.maxK, s.maxL
}

//Next returns the next unique reflection, and false when the sequence is
//exhausted.
func (s *HKLSearch) Next() (Miller, bool) {
	for {
		if s.started {
			if !s.advance() {
				return Miller{}, false
			}
		}
		s.started = true
		hkl := Miller{s.h, s.k, s.l}
		if s.cell.OneOverD2(hkl) >= s.maxInvD2 {
			continue
		}
		if !s.group.IsInASU(hkl) {
			continue
		}
		return hkl, true
	}
}

func (s *HKLSearch) advance() bool {
	s.l++
	if s.l <= s.maxL {
		return true
	}
	s.l = -s.maxL
	s.k++
	if s.k <= s.maxK {
		return true
	}
	s.k = -s.maxK
	s.h++
	return s.h <= s.maxH
}
