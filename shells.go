/*
 * shells.go, part of goXtal.
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
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

//Shell is one resolution bin of a comparison: the d-spacing range it covers
//(DMax down to DMin, in A; DMax may be +Inf when the bin holds F(000)) and
//the statistics accumulated over its reflections.
type Shell struct {
	DMax, DMin float64
	Stats      *Comparator
}

func (s Shell) String() string {
	lo := fmt.Sprintf("%5.2f", s.DMax)
	if math.IsInf(s.DMax, 1) {
		lo = "  inf"
	}
	return fmt.Sprintf("d %s-%5.2f  n=%-5d %s", lo, s.DMin, s.Stats.Count(), s.Stats)
}

//ShellStats splits the compared reflections of a report into n resolution
//shells of nearly equal population (quantiles on 1/d^2, the usual shell
//variable) and accumulates per-shell statistics. The overall numbers hide
//where a model goes wrong; resolution-resolved ones rarely do. It needs at
//least one compared reflection per shell.
func ShellStats(rep *Report, n int) ([]Shell, error) {
	if n < 1 {
		return nil, newError(ErrGeneral, "goXtal: asked for %d resolution shells", n)
	}
	type pair struct {
		q          float64 //1/d^2
		value, ref complex128
	}
	var pairs []pair
	var qs []float64
	for _, rec := range rep.Records {
		if !rec.HasRef {
			continue
		}
		q := 0.0 //F(000) has d=+Inf
		if !math.IsInf(rec.D, 1) {
			q = 1 / (rec.D * rec.D)
		}
		pairs = append(pairs, pair{q: q, value: rec.F, ref: rec.Ref})
		qs = append(qs, q)
	}
	if len(pairs) < n {
		return nil, newError(ErrInsufficientData,
			"goXtal: %d compared reflections cannot fill %d shells", len(pairs), n)
	}
	sort.Float64s(qs)
	dividers := make([]float64, n+1)
	dividers[0] = qs[0]
	dividers[n] = qs[len(qs)-1]
	for i := 1; i < n; i++ {
		dividers[i] = stat.Quantile(float64(i)/float64(n), stat.Empirical, qs, nil)
	}
	shells := make([]Shell, n)
	for i := range shells {
		shells[i] = Shell{DMax: qToD(dividers[i]), DMin: qToD(dividers[i+1]), Stats: new(Comparator)}
	}
	for _, p := range pairs {
		for j := 0; j < n; j++ {
			//the topmost shell takes its upper edge too
			if p.q >= dividers[j] && (p.q < dividers[j+1] || j == n-1) {
				shells[j].Stats.Add(p.value, p.ref)
				break
			}
		}
	}
	return shells, nil
}

//ShellTable formats the shells one per line, coarsest first.
func ShellTable(shells []Shell) string {
	lines := make([]string, len(shells))
	for i, s := range shells {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

func qToD(q float64) float64 {
	if q <= 0 {
		return math.Inf(1)
	}
	return 1 / math.Sqrt(q)
}
