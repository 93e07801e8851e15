/*
 * cell_test.go, part of goXtal.
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
	"testing"
)

func TestCubicCell(Te *testing.T) {
	cell := NewUnitCell(10, 10, 10, 90, 90, 90)
	if math.Abs(cell.Volume-1000) > 1e-9 {
		Te.Errorf("cubic 10A cell: volume %v, want 1000", cell.Volume)
	}
	for _, r := range []float64{cell.Ar, cell.Br, cell.Cr} {
		if math.Abs(r-0.1) > 1e-12 {
			Te.Errorf("cubic 10A cell: reciprocal length %v, want 0.1", r)
		}
	}
	if v := cell.OneOverD2(Miller{1, 1, 1}); math.Abs(v-0.03) > 1e-12 {
		Te.Errorf("1/d2 of (111): %v, want 0.03", v)
	}
	if d := cell.D(Miller{2, 0, 0}); math.Abs(d-5) > 1e-9 {
		Te.Errorf("d of (200): %v, want 5", d)
	}
}

func TestTriclinicRoundTrip(Te *testing.T) {
	cell := NewUnitCell(8.1, 11.3, 9.7, 82.5, 101.2, 96.0)
	fr := [3]float64{0.11, 0.52, 0.87}
	back := cell.Fractionalize(cell.Orthogonalize(fr))
	for i := 0; i < 3; i++ {
		if math.Abs(back[i]-fr[i]) > 1e-10 {
			Te.Errorf("fract->cart->fract: coordinate %d came back as %v, want %v", i, back[i], fr[i])
		}
	}
	//the (100) plane spacing must be 1/a*
	if d := cell.D(Miller{1, 0, 0}); math.Abs(d-1/cell.Ar) > 1e-9 {
		Te.Errorf("d(100)=%v, want %v", d, 1/cell.Ar)
	}
}

func TestStol2MatchesD(Te *testing.T) {
	cell := NewUnitCell(23.0, 31.5, 17.2, 90, 105.3, 90)
	hkl := Miller{3, -2, 5}
	d := cell.D(hkl)
	if s := cell.Stol2(hkl); math.Abs(s-1/(4*d*d)) > 1e-12 {
		Te.Errorf("stol2 %v does not match 1/(4d^2) %v", s, 1/(4*d*d))
	}
}
