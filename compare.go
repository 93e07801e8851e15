/*
 * compare.go, part of goXtal.
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
	"math/cmplx"

	"gonum.org/v1/gonum/stat"
)

//Comparator folds pairs of (computed, reference) structure factors into
//running discrepancy sums. Add must be called exactly once per matched
//reflection; feeding the same pair twice corrupts the count and every
//derived ratio. A Comparator lives for one validation run; to parallelize
//over shells give each worker its own and Merge them at the end.
type Comparator struct {
	sumSqDiff  float64 //sum |computed-reference|^2
	sumSq1     float64 //sum |computed|^2
	sumSq2     float64 //sum |reference|^2
	sumAbs     float64 //sum |reference|
	sumAbsDiff float64 //sum ||computed|-|reference||
	maxAbsDiff float64
	count      int
	amp1, amp2 []float64 //amplitudes kept aside for the correlation
}

//Add accumulates one (computed, reference) pair. O(1) on the sums.
func (C *Comparator) Add(value, exact complex128) {
	absDiff := cmplx.Abs(value - exact)
	av, ae := cmplx.Abs(value), cmplx.Abs(exact)
	C.sumSqDiff += absDiff * absDiff
	C.sumSq1 += av * av
	C.sumSq2 += ae * ae
	C.sumAbs += ae
	C.sumAbsDiff += math.Abs(av - ae)
	if absDiff > C.maxAbsDiff {
		C.maxAbsDiff = absDiff
	}
	C.count++
	C.amp1 = append(C.amp1, av)
	C.amp2 = append(C.amp2, ae)
}

//Merge folds the sums of another comparator into this one, so independent
//workers can accumulate privately and combine afterwards.
func (C *Comparator) Merge(other *Comparator) {
	C.sumSqDiff += other.sumSqDiff
	C.sumSq1 += other.sumSq1
	C.sumSq2 += other.sumSq2
	C.sumAbs += other.sumAbs
	C.sumAbsDiff += other.sumAbsDiff
	if other.maxAbsDiff > C.maxAbsDiff {
		C.maxAbsDiff = other.maxAbsDiff
	}
	C.count += other.count
	C.amp1 = append(C.amp1, other.amp1...)
	C.amp2 = append(C.amp2, other.amp2...)
}

//Count returns the number of pairs seen.
func (C *Comparator) Count() int { return C.count }

func (C *Comparator) need(n int, what string) error {
	if C.count < n {
		return newError(ErrInsufficientData,
			"goXtal: %s undefined with %d samples (need at least %d)", what, C.count, n)
	}
	return nil
}

//RMSE is sqrt(sum|dF|^2/count).
func (C *Comparator) RMSE() (float64, error) {
	if err := C.need(1, "RMSE"); err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(C.sumSqDiff / float64(C.count)), nil
}

//MeanAbs is the mean reference amplitude.
func (C *Comparator) MeanAbs() (float64, error) {
	if err := C.need(1, "mean amplitude"); err != nil {
		return math.NaN(), err
	}
	return C.sumAbs / float64(C.count), nil
}

//WeightedRMSE is the RMSE relative to the mean reference amplitude.
func (C *Comparator) WeightedRMSE() (float64, error) {
	rmse, err := C.RMSE()
	if err != nil {
		return math.NaN(), err
	}
	avg, err := C.MeanAbs()
	if err != nil {
		return math.NaN(), err
	}
	return rmse / avg, nil
}

//Rfactor is sum||Fc|-|Fr||/sum|Fr|, on amplitudes only, the usual
//crystallographic discrepancy metric.
func (C *Comparator) Rfactor() (float64, error) {
	if err := C.need(1, "R-factor"); err != nil {
		return math.NaN(), err
	}
	return C.sumAbsDiff / C.sumAbs, nil
}

//Scale is sqrt(sum|Fc|^2/sum|Fr|^2), the overall scale between the two sets.
func (C *Comparator) Scale() (float64, error) {
	if err := C.need(1, "scale"); err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(C.sumSq1 / C.sumSq2), nil
}

//MaxAbsDiff is the largest single |Fc-Fr| seen.
func (C *Comparator) MaxAbsDiff() (float64, error) {
	if err := C.need(1, "max|dF|"); err != nil {
		return math.NaN(), err
	}
	return C.maxAbsDiff, nil
}

//CC is the Pearson correlation between computed and reference amplitudes.
func (C *Comparator) CC() (float64, error) {
	if err := C.need(2, "amplitude correlation"); err != nil {
		return math.NaN(), err
	}
	return stat.Correlation(C.amp1, C.amp2, nil), nil
}

//String summarizes the statistics in one line, with safe placeholders when
//no data was accumulated.
func (C *Comparator) String() string {
	if C.count == 0 {
		return "RMSE=undef  max|dF|=undef  R=undef (no reflections compared)"
	}
	rmse, _ := C.RMSE()
	wrmse, _ := C.WeightedRMSE()
	max, _ := C.MaxAbsDiff()
	rf, _ := C.Rfactor()
	return fmt.Sprintf("RMSE=%#.5g  %#.4g%%  max|dF|=%#.4g  R=%.3f%%",
		rmse, 100*wrmse, max, 100*rf)
}
