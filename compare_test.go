/*
 * compare_test.go, part of goXtal.
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

func TestComparatorPerfectAgreement(Te *testing.T) {
	c := new(Comparator)
	for _, f := range []complex128{3 + 4i, 1, -2 + 0.5i, 0.1 - 7i} {
		c.Add(f, f)
	}
	if c.Count() != 4 {
		Te.Fatalf("count %d, want 4", c.Count())
	}
	rmse, err := c.RMSE()
	if err != nil || rmse != 0 {
		Te.Errorf("RMSE of identical sets: %v (%v), want 0", rmse, err)
	}
	rf, err := c.Rfactor()
	if err != nil || rf != 0 {
		Te.Errorf("R of identical sets: %v (%v), want 0", rf, err)
	}
	sc, err := c.Scale()
	if err != nil || math.Abs(sc-1) > 1e-12 {
		Te.Errorf("scale of identical sets: %v (%v), want 1", sc, err)
	}
	cc, err := c.CC()
	if err != nil || math.Abs(cc-1) > 1e-12 {
		Te.Errorf("CC of identical sets: %v (%v), want 1", cc, err)
	}
	fmt.Println(c)
}

func TestComparatorKnownValues(Te *testing.T) {
	c := new(Comparator)
	c.Add(3, 4)        //|dF|=1
	c.Add(6+8i, 0+10i) //equal amplitudes (10), |dF|^2=40
	rmse, _ := c.RMSE()
	wantRMSE := math.Sqrt((1 + 40) / 2.0)
	if math.Abs(rmse-wantRMSE) > 1e-12 {
		Te.Errorf("RMSE %v, want %v", rmse, wantRMSE)
	}
	//amplitudes agree at the second pair, so R sees only the first
	rf, _ := c.Rfactor()
	if want := 1.0 / 14.0; math.Abs(rf-want) > 1e-12 {
		Te.Errorf("R %v, want %v", rf, want)
	}
	max, _ := c.MaxAbsDiff()
	if math.Abs(max-math.Sqrt(40)) > 1e-12 {
		Te.Errorf("max|dF| %v, want %v", max, math.Sqrt(40))
	}
	sc, _ := c.Scale()
	if want := math.Sqrt(109.0 / 116.0); math.Abs(sc-want) > 1e-12 {
		Te.Errorf("scale %v, want %v", sc, want)
	}
}

func TestComparatorEmpty(Te *testing.T) {
	c := new(Comparator)
	if _, err := c.RMSE(); err == nil {
		Te.Error("RMSE of an empty comparator did not fail")
	} else if Kind(err) != ErrInsufficientData {
		Te.Errorf("wrong error kind: %v", err)
	}
	one := new(Comparator)
	one.Add(1, 1)
	if _, err := one.CC(); err == nil || Kind(err) != ErrInsufficientData {
		Te.Error("CC with a single sample must fail")
	}
	if s := c.String(); s == "" {
		Te.Error("empty comparator printed nothing")
	}
}

func TestComparatorMerge(Te *testing.T) {
	pairs := [][2]complex128{{3, 4}, {1 + 1i, 1}, {5, 5 - 2i}, {0.3i, 0.1}}
	whole := new(Comparator)
	a, b := new(Comparator), new(Comparator)
	for i, p := range pairs {
		whole.Add(p[0], p[1])
		if i%2 == 0 {
			a.Add(p[0], p[1])
		} else {
			b.Add(p[0], p[1])
		}
	}
	a.Merge(b)
	if a.Count() != whole.Count() {
		Te.Fatalf("merged count %d, want %d", a.Count(), whole.Count())
	}
	for _, f := range []func(*Comparator) (float64, error){
		(*Comparator).RMSE, (*Comparator).Rfactor, (*Comparator).Scale,
		(*Comparator).MaxAbsDiff, (*Comparator).WeightedRMSE,
	} {
		va, _ := f(a)
		vw, _ := f(whole)
		if math.Abs(va-vw) > 1e-12 {
			Te.Errorf("merged statistic %v differs from whole-set %v", va, vw)
		}
	}
}
