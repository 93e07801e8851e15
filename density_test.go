/*
 * density_test.go, part of goXtal.
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
	"math"
	"testing"
)

func TestGoodGridSize(Te *testing.T) {
	cases := [][2]int{{1, 2}, {7, 8}, {11, 12}, {13, 16}, {30, 30}, {40, 40}, {45, 48}}
	for _, c := range cases {
		if got := goodGridSize(c[0]); got != c[1] {
			Te.Errorf("goodGridSize(%d) = %d, want %d", c[0], got, c[1])
		}
	}
}

func TestSetGridSize(Te *testing.T) {
	m := carbonModel()
	den := NewDensityCalculator(m, nil, 2.0)
	if err := den.SetGridSize(40, 36, 30); err != nil {
		Te.Fatalf("a perfectly fine grid was rejected: %v", err)
	}
	for _, bad := range []int{41, 14, 0} {
		err := den.SetGridSize(bad, 40, 40)
		if err == nil {
			Te.Errorf("grid dimension %d was accepted", bad)
		} else if Kind(err) != ErrInvalidGridSize {
			Te.Errorf("grid dimension %d: wrong error kind %v", bad, Kind(err))
		}
	}
}

func TestEstimateBlur(Te *testing.T) {
	m := carbonModel()
	m.Atoms[0].Biso = 5
	den := NewDensityCalculator(m, nil, 2.0)
	den.Rate = 1.5
	b15 := den.EstimateBlur(m)
	want := math.Pow(4*2.0*(1/1.5-0.2), 2) - 5
	if math.Abs(b15-want) > 1e-9 {
		Te.Errorf("blur at rate 1.5: %v, want %v", b15, want)
	}
	den.Rate = 1.2
	if b12 := den.EstimateBlur(m); b12 <= b15 {
		Te.Errorf("coarser sampling should need more blur: %v <= %v", b12, b15)
	}
	den.Rate = 3
	if b := den.EstimateBlur(m); b != 0 {
		Te.Errorf("blur at rate 3: %v, want 0", b)
	}
	//a very stiff model can already be smooth enough
	m.Atoms[0].Biso = 1000
	den.Rate = 1.5
	if b := den.EstimateBlur(m); b != 0 {
		Te.Errorf("blur with Bmin=1000: %v, want 0", b)
	}
}

func TestPutModelDensityUnknown(Te *testing.T) {
	m := carbonModel()
	m.Atoms[0].Symbol = "Xx"
	den := NewDensityCalculator(m, nil, 2.0)
	if err := den.PutModelDensity(m); err == nil {
		Te.Error("rasterized an element with no form factor")
	} else if Kind(err) != ErrMissingFormFactor {
		Te.Errorf("wrong error kind: %v", Kind(err))
	}
}

//three-atom P1 test crystal; B values keep the density representable
func gridTestModel() *Model {
	return &Model{
		Name:     "grid test",
		Cell:     NewUnitCell(10, 10, 10, 90, 90, 90),
		Periodic: true,
		Atoms: []*Atom{
			{Name: "C1", Symbol: "C", Fract: [3]float64{0.123, 0.234, 0.345}, Occ: 1, Biso: 4},
			{Name: "O1", Symbol: "O", Fract: [3]float64{0.5, 0.45, 0.4}, Occ: 1, Biso: 6},
			{Name: "N1", Symbol: "N", Fract: [3]float64{0.7, 0.1, 0.8}, Occ: 1, Biso: 5},
		},
	}
}

//the grid route against direct summation, oversampled enough that no
//blurring is needed. The two routes are independent implementations, so
//close agreement here vouches for both.
func TestGridVsDirect(Te *testing.T) {
	m := gridTestModel()
	den := NewDensityCalculator(m, nil, 2.0)
	den.Rate = 4
	den.RCut = 1e-7
	if err := den.PutModelDensity(m); err != nil {
		Te.Fatal(err)
	}
	if den.Blur != 0 {
		Te.Fatalf("rate 4 should need no blur, got %v", den.Blur)
	}
	rg, err := den.Transform()
	if err != nil {
		Te.Fatal(err)
	}
	calc := NewSFCalculator(m, nil)
	search := NewHKLSearch(m.Cell, m.SpaceGroup(), 2.0)
	search.ClipTo(den.Nu, den.Nv, den.Nw)
	comp := new(Comparator)
	for hkl, ok := search.Next(); ok; hkl, ok = search.Next() {
		comp.Add(den.F(rg, hkl), calc.Calculate(m, hkl))
	}
	if comp.Count() < 100 {
		Te.Fatalf("only %d reflections compared", comp.Count())
	}
	rf, err := comp.Rfactor()
	if err != nil {
		Te.Fatal(err)
	}
	cc, _ := comp.CC()
	fmt.Printf("grid vs direct (rate 4): %v, CC=%.6f over %d reflections\n", comp, cc, comp.Count())
	if rf > 0.01 {
		Te.Errorf("R between grid and direct: %v, want < 0.01", rf)
	}
	if cc < 0.999 {
		Te.Errorf("amplitude CC between grid and direct: %v", cc)
	}
	//F(000) is the electron count
	f000 := den.F(rg, Miller{0, 0, 0})
	if math.Abs(real(f000)-21) > 0.5 || math.Abs(imag(f000)) > 1e-8 {
		Te.Errorf("F(000) = %v, want about 21+0i", f000)
	}
}

//same comparison at the default working rate, where the blur and its
//reciprocal-space correction have to carry the accuracy
func TestGridVsDirectBlurred(Te *testing.T) {
	m := gridTestModel()
	den := NewDensityCalculator(m, nil, 2.0)
	if err := den.PutModelDensity(m); err != nil {
		Te.Fatal(err)
	}
	if den.Blur <= 0 {
		Te.Fatalf("the default rate needs blurring, got %v", den.Blur)
	}
	rg, err := den.Transform()
	if err != nil {
		Te.Fatal(err)
	}
	calc := NewSFCalculator(m, nil)
	search := NewHKLSearch(m.Cell, m.SpaceGroup(), 2.0)
	search.ClipTo(den.Nu, den.Nv, den.Nw)
	comp := new(Comparator)
	for hkl, ok := search.Next(); ok; hkl, ok = search.Next() {
		comp.Add(den.F(rg, hkl), calc.Calculate(m, hkl))
	}
	rf, err := comp.Rfactor()
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Printf("grid vs direct (default rate, blur %.2f): %v\n", den.Blur, comp)
	if rf > 0.02 {
		Te.Errorf("R between blurred grid and direct: %v, want < 0.02", rf)
	}
}

//both routes expand the symmetry themselves, so they have to keep agreeing
//outside P1
func TestGridVsDirectSymmetry(Te *testing.T) {
	m := gridTestModel()
	m.Group = FindSpaceGroup("P 21 21 21")
	den := NewDensityCalculator(m, nil, 2.2)
	den.Rate = 4
	den.RCut = 1e-7
	if err := den.PutModelDensity(m); err != nil {
		Te.Fatal(err)
	}
	rg, err := den.Transform()
	if err != nil {
		Te.Fatal(err)
	}
	calc := NewSFCalculator(m, nil)
	search := NewHKLSearch(m.Cell, m.Group, 2.2)
	search.ClipTo(den.Nu, den.Nv, den.Nw)
	comp := new(Comparator)
	for hkl, ok := search.Next(); ok; hkl, ok = search.Next() {
		comp.Add(den.F(rg, hkl), calc.Calculate(m, hkl))
	}
	rf, err := comp.Rfactor()
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Printf("grid vs direct in P212121: %v over %d reflections\n", comp, comp.Count())
	if rf > 0.01 {
		Te.Errorf("R between grid and direct in P212121: %v, want < 0.01", rf)
	}
}
