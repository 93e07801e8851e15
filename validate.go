/*
 * validate.go, part of goXtal.
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
	"errors"
	"fmt"
	"io"
	"log"
	"math/cmplx"

	"github.com/rmera/goxtal/refl"
)

//Mode selects what, if anything, the computed structure factors are
//compared against during a resolution sweep.
type Mode int

const (
	//ModeNone: just compute and emit.
	ModeNone Mode = iota
	//ModeSelfTest: recompute every reflection by direct summation (slow,
	//exact) and compare the grid route against it.
	ModeSelfTest
	//ModeCache: compare against a cache file written by a previous sweep,
	//which must list the reflections in the same order.
	ModeCache
	//ModeCheckFile: compare against a reflection file (CIF refln loop),
	//matching reflections by index and skipping those absent from the file.
	ModeCheckFile
)

//Options configures a calculation run. Zero values mean defaults where a
//default makes sense; build it with DefaultOptions and override from there.
type Options struct {
	HKLs       []Miller //explicit reflections; when non-empty, no sweep happens
	DMin       float64  //resolution limit of the sweep, A
	Rate       float64  //grid oversampling rate
	Blur       float64  //extra B for blurring, negative = automatic
	RCut       float64  //density cutoff for atom radii
	Wavelength float64  //overrides the model's when >=0; >0 turns anomalous scattering on
	Unknown    string   //element to use for untyped ("X") atoms; empty = refuse them
	Mode       Mode
	RefPath    string  //reference file for ModeCache and ModeCheckFile
	FLabel     string  //amplitude label in the reference file
	PhiLabel   string  //phase label in the reference file
	Scale      float64 //computed F is multiplied by this before a file check
	Verbose    bool
}

//DefaultOptions returns reasonable defaults: 1.5 oversampling, automatic
//blur, 5e-5 cutoff, no comparison.
func DefaultOptions() *Options {
	return &Options{
		Rate:       DefaultRate,
		RCut:       DefaultRCut,
		Blur:       -1,
		Wavelength: -1,
		Scale:      1,
	}
}

//Record is one computed reflection, possibly paired with its reference
//value.
type Record struct {
	HKL    Miller
	F      complex128
	Ref    complex128
	HasRef bool
	D      float64 //resolution, A
}

//String formats the record the way cache files store it:
//" (h k l)	amplitude	phase".
func (r Record) String() string {
	return fmt.Sprintf(" (%d %d %d)\t%.6f\t%.6f",
		r.HKL[0], r.HKL[1], r.HKL[2], Amplitude(r.F), PhaseInDegrees(r.F))
}

//Report is the outcome of one calculation run. Stats is only meaningful
//when Compared is true; with zero compared reflections its statistics
//report themselves as undefined rather than crashing.
type Report struct {
	Model    string
	Records  []Record
	Stats    *Comparator
	Compared bool
}

//WriteCache writes the computed values in cache format, one line per
//reflection, suitable for a later ModeCache run.
func (rep *Report) WriteCache(w io.Writer) error {
	for _, rec := range rep.Records {
		if _, err := fmt.Fprintln(w, rec.String()); err != nil {
			return err
		}
	}
	return nil
}

//Calc computes structure factors for the model per the options, and
//compares them against a reference when a comparison mode is set. All file
//reading happens up front; the numeric sweep starts only once every input
//is in memory. The model itself is never modified.
func Calc(m *Model, o *Options) (*Report, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if len(m.Atoms) == 0 {
		return nil, newError(ErrGeneral, "goXtal: no atoms in model %q", m.Name)
	}
	work := m.Copy()
	if o.Wavelength >= 0 {
		work.Wavelength = o.Wavelength
	}
	scat, err := prepareScattering(work, o)
	if err != nil {
		return nil, errDecorate(err, "Calc")
	}
	calc := NewSFCalculator(work, scat)

	//direct query: no enumeration, no comparison
	if len(o.HKLs) > 0 {
		rep := &Report{Model: work.Name, Stats: new(Comparator)}
		for _, hkl := range o.HKLs {
			rep.Records = append(rep.Records, Record{
				HKL: hkl,
				F:   calc.Calculate(work, hkl),
				D:   work.Cell.D(hkl),
			})
		}
		return rep, nil
	}
	if o.DMin <= 0 {
		return nil, newError(ErrGeneral,
			"goXtal: either a resolution limit or explicit reflections are required")
	}

	search := NewHKLSearch(work.Cell, work.SpaceGroup(), o.DMin)
	var getF func(Miller) complex128
	if work.Periodic {
		den := NewDensityCalculator(work, scat, o.DMin)
		den.Rate, den.RCut, den.Blur = o.Rate, o.RCut, o.Blur
		if err := den.PutModelDensity(work); err != nil {
			return nil, errDecorate(err, "Calc")
		}
		if o.Verbose {
			log.Printf("goXtal: %s: grid %dx%dx%d, blur %.3g",
				work.Name, den.Nu, den.Nv, den.Nw, den.Blur)
		}
		rg, err := den.Transform()
		if err != nil {
			return nil, errDecorate(err, "Calc")
		}
		search.ClipTo(den.Nu, den.Nv, den.Nw)
		getF = func(hkl Miller) complex128 { return den.F(rg, hkl) }
	} else {
		if o.Mode == ModeSelfTest {
			return nil, newError(ErrGeneral,
				"goXtal: the self-test compares the grid route against direct summation; non-periodic models are summed directly already")
		}
		getF = func(hkl Miller) complex128 { return calc.Calculate(work, hkl) }
	}

	src, closeSrc, err := openRefSource(work, calc, o)
	if err != nil {
		return nil, errDecorate(err, "Calc")
	}
	if closeSrc != nil {
		defer closeSrc()
	}

	rep := &Report{Model: work.Name, Stats: new(Comparator), Compared: src != nil}
	for hkl, ok := search.Next(); ok; hkl, ok = search.Next() {
		f := getF(hkl)
		rec := Record{HKL: hkl, F: f, D: work.Cell.D(hkl)}
		if src != nil {
			ref, found, err := src.next(hkl)
			if err != nil {
				return nil, errDecorate(err, "Calc")
			}
			if found {
				value := f
				if o.Mode == ModeCheckFile {
					value *= complex(o.scale(), 0)
					if src.amplitudeOnly() {
						value = complex(Amplitude(value), 0)
					}
					rec.F = value
				}
				rec.Ref = ref
				rec.HasRef = true
				rep.Stats.Add(value, ref)
			}
		}
		rep.Records = append(rep.Records, rec)
	}
	if o.Verbose && rep.Compared {
		log.Printf("goXtal: %s: %s", work.Name, rep.Stats)
	}
	return rep, nil
}

//CalcBatch runs Calc over several models. A failing model is reported and
//skipped; the batch goes on. Reports and errors come back aligned with the
//input slice.
func CalcBatch(models []*Model, o *Options) ([]*Report, []error) {
	reps := make([]*Report, len(models))
	errs := make([]error, len(models))
	for i, m := range models {
		rep, err := Calc(m, o)
		if err != nil {
			log.Printf("goXtal: %s: %v", m.Name, err)
			errs[i] = err
			continue
		}
		reps[i] = rep
	}
	return reps, errs
}

//prepareScattering resolves untyped atoms, verifies every element has a
//tabulated form factor, and wires up the f' corrections: explicit
//per-element values from the model first, wavelength-derived estimates
//only for elements with no explicit value. It runs before any numeric
//work, so element problems surface immediately.
func prepareScattering(work *Model, o *Options) (*ScatteringModel, error) {
	if o.Unknown != "" {
		if !HasFormFactor(o.Unknown) {
			return nil, newError(ErrMissingFormFactor,
				"goXtal: fallback element %q has no tabulated form factor", o.Unknown)
		}
		work.ResolveUnknown(o.Unknown)
	}
	for _, el := range work.PresentElements() {
		if el == UnknownElement {
			return nil, newError(ErrUnresolvedElement,
				"goXtal: model %q has atoms of unknown element; set a fallback element to use for them", work.Name)
		}
		if !HasFormFactor(el) {
			return nil, newError(ErrMissingFormFactor,
				"goXtal: no form factor tabulated for element %q", el)
		}
	}
	scat := NewScatteringModel()
	for el, fp := range work.Fprimes {
		scat.SetFprime(el, fp)
	}
	if work.Wavelength > 0 {
		for _, el := range work.PresentElements() {
			if fp, _, ok := AnomalousAt(el, work.Wavelength); ok {
				scat.SetFprimeIfNotSet(el, fp)
			}
		}
	}
	return scat, nil
}

func (o *Options) scale() float64 {
	if o.Scale == 0 {
		return 1
	}
	return o.Scale
}

//refSource hands out the reference value for each enumerated reflection.
//The cache flavor is sequential and order-checking; the file flavor looks
//indexes up and reports misses as not-found; the self-test flavor just
//recomputes.
type refSource interface {
	next(hkl Miller) (value complex128, found bool, err error)
	amplitudeOnly() bool
}

func openRefSource(work *Model, calc *SFCalculator, o *Options) (refSource, func() error, error) {
	switch o.Mode {
	case ModeNone:
		return nil, nil, nil
	case ModeSelfTest:
		return &directRef{calc: calc, m: work}, nil, nil
	case ModeCache:
		rd, err := refl.OpenCache(o.RefPath)
		if err != nil {
			return nil, nil, err
		}
		return &cacheRef{rd: rd}, rd.Close, nil
	case ModeCheckFile:
		recs, err := refl.ReadCIF(o.RefPath, o.FLabel, o.PhiLabel)
		if err != nil {
			if errors.Is(err, refl.ErrColumnNotFound) {
				return nil, nil, newError(ErrColumnNotFound, "goXtal: %v", err)
			}
			return nil, nil, err
		}
		return newFileRef(recs), nil, nil
	}
	return nil, nil, newError(ErrGeneral, "goXtal: unknown comparison mode %d", o.Mode)
}

type directRef struct {
	calc *SFCalculator
	m    *Model
}

func (d *directRef) next(hkl Miller) (complex128, bool, error) {
	return d.calc.Calculate(d.m, hkl), true, nil
}

func (d *directRef) amplitudeOnly() bool { return false }

type cacheRef struct {
	rd *refl.CacheReader
}

func (c *cacheRef) next(hkl Miller) (complex128, bool, error) {
	rec, err := c.rd.Next()
	if err == io.EOF {
		return 0, false, newError(ErrCacheOrderMismatch,
			"goXtal: cache file ended before the enumeration at (%d %d %d)", hkl[0], hkl[1], hkl[2])
	}
	if err != nil {
		return 0, false, newError(ErrParse, "goXtal: %v", err)
	}
	if rec.HKL != [3]int(hkl) {
		return 0, false, newError(ErrCacheOrderMismatch,
			"goXtal: different h k l order than in cache file: got (%d %d %d), cache has (%d %d %d)",
			hkl[0], hkl[1], hkl[2], rec.HKL[0], rec.HKL[1], rec.HKL[2])
	}
	return cmplx.Rect(rec.Amp, rec.PhaseDeg*deg2Rad), true, nil
}

func (c *cacheRef) amplitudeOnly() bool { return false }

type fileRef struct {
	values  map[Miller]complex128
	ampOnly bool
}

func newFileRef(recs []refl.Record) *fileRef {
	fr := &fileRef{values: make(map[Miller]complex128, len(recs))}
	fr.ampOnly = true
	for _, rec := range recs {
		if rec.HasPhase {
			fr.ampOnly = false
			break
		}
	}
	for _, rec := range recs {
		hkl := Miller{rec.HKL[0], rec.HKL[1], rec.HKL[2]}
		if fr.ampOnly {
			fr.values[hkl] = complex(rec.Amp, 0)
		} else {
			fr.values[hkl] = cmplx.Rect(rec.Amp, rec.PhaseDeg*deg2Rad)
		}
	}
	return fr
}

func (f *fileRef) next(hkl Miller) (complex128, bool, error) {
	v, ok := f.values[hkl]
	return v, ok, nil
}

func (f *fileRef) amplitudeOnly() bool { return f.ampOnly }
