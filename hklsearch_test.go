/*
 * hklsearch_test.go, part of goXtal.
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
	"fmt"
	"testing"
)

func collect(s *HKLSearch) []Miller {
	var r []Miller
	for hkl, ok := s.Next(); ok; hkl, ok = s.Next() {
		r = append(r, hkl)
	}
	return r
}

func TestHKLSearchP1(Te *testing.T) {
	cell := NewUnitCell(10, 10, 10, 90, 90, 90)
	s := NewHKLSearch(cell, nil, 2.0)
	if h, k, l := s.Bounds(); h != 5 || k != 5 || l != 5 {
		Te.Fatalf("bounds for dmin=2 on a 10A cell: (%d %d %d), want (5 5 5)", h, k, l)
	}
	got := collect(s)
	//count the whole sphere by brute force; in P1 the unique set is half of
	//it (Friedel) plus the origin
	sphere := 0
	for h := -5; h <= 5; h++ {
		for k := -5; k <= 5; k++ {
			for l := -5; l <= 5; l++ {
				if h*h+k*k+l*l < 25 {
					sphere++
				}
			}
		}
	}
	want := (sphere-1)/2 + 1
	fmt.Printf("%d indexes in the sphere, %d unique\n", sphere, len(got))
	if len(got) != want {
		Te.Errorf("got %d unique reflections, want %d", len(got), want)
	}
	seen := make(map[Miller]bool)
	limit := 1.0 / 4
	for _, hkl := range got {
		if seen[hkl] {
			Te.Fatalf("duplicate %v in the enumeration", hkl)
		}
		seen[hkl] = true
		if cell.OneOverD2(hkl) >= limit {
			Te.Errorf("%v is outside the resolution sphere", hkl)
		}
	}
	if !seen[Miller{0, 0, 0}] {
		Te.Error("(000) missing from the enumeration")
	}
}

func TestHKLSearchRestart(Te *testing.T) {
	cell := NewUnitCell(12, 9, 15, 90, 102, 90)
	sg := FindSpaceGroup("P 1 21 1")
	s := NewHKLSearch(cell, sg, 2.5)
	first := collect(s)
	s.Reset()
	second := collect(s)
	if len(first) == 0 || len(first) != len(second) {
		Te.Fatalf("restart changed the count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			Te.Fatalf("restart changed the order at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestHKLSearchClip(Te *testing.T) {
	cell := NewUnitCell(10, 10, 10, 90, 90, 90)
	s := NewHKLSearch(cell, nil, 1.0) //bounds 10
	s.ClipTo(12, 12, 12)
	if h, k, l := s.Bounds(); h != 6 || k != 6 || l != 6 {
		Te.Fatalf("clipped bounds (%d %d %d), want (6 6 6)", h, k, l)
	}
	for _, hkl := range collect(s) {
		for i := 0; i < 3; i++ {
			if hkl[i] > 6 || hkl[i] < -6 {
				Te.Fatalf("%v escaped the Nyquist clip", hkl)
			}
		}
	}
}

func TestHKLSearchBadLimit(Te *testing.T) {
	defer func() {
		if recover() == nil {
			Te.Error("dmin=0 did not panic")
		}
	}()
	cell := NewUnitCell(10, 10, 10, 90, 90, 90)
	NewHKLSearch(cell, nil, 0)
}
