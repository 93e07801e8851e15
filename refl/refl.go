/*
 * refl.go, part of goXtal.
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

//Package refl reads reference structure-factor values from files: the
//line-oriented cache format written by the goxtal sweep, and reflection
//loops from small-molecule CIF files. Both come gzipped often enough that
//every reader here is transparently gzip-aware.
package refl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

//ErrColumnNotFound is returned when a requested data label is absent from
//a reflection file.
var ErrColumnNotFound = errors.New("refl: column not found")

//Record is one reflection read from a file.
type Record struct {
	HKL      [3]int
	Amp      float64
	PhaseDeg float64
	HasPhase bool
}

//source bundles a possibly-decompressing reader with the file under it.
type source struct {
	io.Reader
	f  *os.File
	gz *gzip.Reader
}

func (s *source) Close() error {
	if s.gz != nil {
		s.gz.Close()
	}
	return s.f.Close()
}

//open opens path for reading, decompressing on the fly when the name ends
//in .gz.
func open(path string) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := &source{Reader: f, f: f}
	if strings.HasSuffix(path, ".gz") {
		s.gz, err = gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("refl: %s: %w", path, err)
		}
		s.Reader = s.gz
	}
	return s, nil
}

//CacheReader reads, line by line, the " (h k l)\tamplitude\tphase" records
//a previous sweep wrote. Records come back in file order; the caller is in
//charge of checking that the order matches its own enumeration.
type CacheReader struct {
	src  *source
	sc   *bufio.Scanner
	line int
}

//OpenCache opens a cache file (gzipped or not).
func OpenCache(path string) (*CacheReader, error) {
	src, err := open(path)
	if err != nil {
		return nil, err
	}
	return &CacheReader{src: src, sc: bufio.NewScanner(src)}, nil
}

//Next returns the next record, or io.EOF past the last one.
func (r *CacheReader) Next() (Record, error) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var rec Record
		n, err := fmt.Sscanf(text, "(%d %d %d) %f %f",
			&rec.HKL[0], &rec.HKL[1], &rec.HKL[2], &rec.Amp, &rec.PhaseDeg)
		if err != nil || n != 5 {
			return Record{}, fmt.Errorf("refl: cannot parse cache line %d: %q", r.line, text)
		}
		rec.HasPhase = true
		return rec, nil
	}
	if err := r.sc.Err(); err != nil {
		return Record{}, err
	}
	return Record{}, io.EOF
}

//Close closes the underlying file.
func (r *CacheReader) Close() error {
	return r.src.Close()
}

//ReadCacheAll slurps a whole cache file.
func ReadCacheAll(path string) ([]Record, error) {
	r, err := OpenCache(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var recs []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
}

//ReadCIF reads the _refln_ loop of a small-molecule CIF file. fLabel names
//the amplitude item ("F_calc" style, without the _refln_ prefix); when
//empty, F_calc is tried first and then F_squared_calc (whose square root is
//taken). phiLabel optionally names a phase item (degrees); when empty,
//phase_calc is used if present and phases are simply omitted otherwise.
//A missing index or amplitude column fails with ErrColumnNotFound.
func ReadCIF(path, fLabel, phiLabel string) ([]Record, error) {
	src, err := open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	sc := bufio.NewScanner(src)
	var tags []string
	inLoop := false
	inData := false
	var recs []Record
	var hIdx, kIdx, lIdx, fIdx, phiIdx, sqIdx int
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		switch {
		case text == "loop_":
			if inData {
				//the refln loop is over
				return recs, nil
			}
			inLoop = true
			tags = nil
		case inLoop && strings.HasPrefix(text, "_"):
			tags = append(tags, normalizeTag(text))
		case inLoop:
			//first data row of the current loop
			if !isReflnLoop(tags) {
				inLoop = false
				tags = nil
				continue
			}
			hIdx, kIdx, lIdx, fIdx, sqIdx, phiIdx, err = reflnColumns(tags, fLabel, phiLabel)
			if err != nil {
				return nil, err
			}
			inLoop = false
			inData = true
			fallthrough
		case inData:
			if strings.HasPrefix(text, "_") || strings.HasPrefix(text, "data_") {
				return recs, nil
			}
			fields := strings.Fields(text)
			if len(fields) < len(tags) {
				return recs, nil
			}
			rec, ok := parseReflnRow(fields, hIdx, kIdx, lIdx, fIdx, sqIdx, phiIdx)
			if ok {
				recs = append(recs, rec)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !inData {
		return nil, fmt.Errorf("refl: no _refln_ loop in %s: %w", path, ErrColumnNotFound)
	}
	return recs, nil
}

//normalizeTag maps "_refln_index_h" and "_refln.index_h" to "index_h",
//and leaves foreign tags marked so they never match.
func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, pre := range []string{"_refln_", "_refln."} {
		if strings.HasPrefix(tag, pre) {
			return strings.TrimPrefix(tag, pre)
		}
	}
	return tag //still has the leading underscore
}

func isReflnLoop(tags []string) bool {
	for _, t := range tags {
		if t == "index_h" {
			return true
		}
	}
	return false
}

func indexOf(tags []string, want string) int {
	for i, t := range tags {
		if t == want {
			return i
		}
	}
	return -1
}

func reflnColumns(tags []string, fLabel, phiLabel string) (h, k, l, f, sq, phi int, err error) {
	h = indexOf(tags, "index_h")
	k = indexOf(tags, "index_k")
	l = indexOf(tags, "index_l")
	if h < 0 || k < 0 || l < 0 {
		return 0, 0, 0, 0, 0, 0, fmt.Errorf("refl: _refln_index_ items: %w", ErrColumnNotFound)
	}
	sq = -1
	if fLabel != "" {
		f = indexOf(tags, strings.ToLower(fLabel))
		if f < 0 {
			return 0, 0, 0, 0, 0, 0, fmt.Errorf("refl: _refln_%s: %w", fLabel, ErrColumnNotFound)
		}
	} else {
		f = indexOf(tags, "f_calc")
		if f < 0 {
			sq = indexOf(tags, "f_squared_calc")
			if sq < 0 {
				return 0, 0, 0, 0, 0, 0,
					fmt.Errorf("refl: neither _refln_F_calc nor _refln_F_squared_calc: %w", ErrColumnNotFound)
			}
		}
	}
	if phiLabel != "" {
		phi = indexOf(tags, strings.ToLower(phiLabel))
		if phi < 0 {
			return 0, 0, 0, 0, 0, 0, fmt.Errorf("refl: _refln_%s: %w", phiLabel, ErrColumnNotFound)
		}
	} else {
		phi = indexOf(tags, "phase_calc")
	}
	return h, k, l, f, sq, phi, nil
}

func parseReflnRow(fields []string, hIdx, kIdx, lIdx, fIdx, sqIdx, phiIdx int) (Record, bool) {
	var rec Record
	var err error
	for i, idx := range []int{hIdx, kIdx, lIdx} {
		rec.HKL[i], err = strconv.Atoi(fields[idx])
		if err != nil {
			return Record{}, false
		}
	}
	num := func(idx int) (float64, bool) {
		s := fields[idx]
		if s == "?" || s == "." {
			return 0, false
		}
		//CIF numbers may carry a standard uncertainty in parentheses
		if i := strings.IndexByte(s, '('); i >= 0 {
			s = s[:i]
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	if sqIdx >= 0 {
		f2, ok := num(sqIdx)
		if !ok || f2 < 0 {
			return Record{}, false
		}
		rec.Amp = math.Sqrt(f2)
	} else {
		f, ok := num(fIdx)
		if !ok {
			return Record{}, false
		}
		rec.Amp = f
	}
	if phiIdx >= 0 {
		if p, ok := num(phiIdx); ok {
			rec.PhaseDeg = p
			rec.HasPhase = true
		}
	}
	return rec, true
}
