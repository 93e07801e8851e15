/*
 * scattering.go, part of goXtal.
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

import "math"

//UnknownElement is the placeholder symbol for atoms whose element could
//not be determined. It never scatters; it has to be reassigned to a real
//element before any calculation.
const UnknownElement = "X"

//FormFactorCoeffs are the coefficients of the usual 4-Gaussian
//approximation of an atomic form factor:
//f(s2) = c + sum_i a_i*exp(-b_i*s2), with s2 = (sin(theta)/lambda)^2.
type FormFactorCoeffs struct {
	A [4]float64
	B [4]float64
	C float64
}

//Value evaluates the form factor at stol2 = (sin(theta)/lambda)^2.
func (f *FormFactorCoeffs) Value(stol2 float64) float64 {
	r := f.C
	for i := 0; i < 4; i++ {
		r += f.A[i] * math.Exp(-f.B[i]*stol2)
	}
	return r
}

//A map with the 4-Gaussian X-ray form-factor coefficients (International
//Tables, vol. C) per element. Note that just common "bio-elements" are
//present.
var formFactors = map[string]*FormFactorCoeffs{
	"H":  {A: [4]float64{0.489918, 0.262003, 0.196767, 0.049879}, B: [4]float64{20.6593, 7.74039, 49.5519, 2.20159}, C: 0.001305},
	"C":  {A: [4]float64{2.31000, 1.02000, 1.58860, 0.865000}, B: [4]float64{20.8439, 10.2075, 0.568700, 51.6512}, C: 0.215600},
	"N":  {A: [4]float64{12.2126, 3.13220, 2.01250, 1.16630}, B: [4]float64{0.005700, 9.89330, 28.9975, 0.582600}, C: -11.529},
	"O":  {A: [4]float64{3.04850, 2.28680, 1.54630, 0.867000}, B: [4]float64{13.2771, 5.70110, 0.323900, 32.9089}, C: 0.250800},
	"F":  {A: [4]float64{3.53920, 2.64120, 1.51700, 1.02430}, B: [4]float64{10.2825, 4.29440, 0.261500, 26.1476}, C: 0.277600},
	"Na": {A: [4]float64{4.76260, 3.17360, 1.26740, 1.11280}, B: [4]float64{3.28500, 8.84220, 0.313600, 129.424}, C: 0.676000},
	"Mg": {A: [4]float64{5.42040, 2.17350, 1.22690, 2.30730}, B: [4]float64{2.82750, 79.2611, 0.380800, 7.19370}, C: 0.858400},
	"Si": {A: [4]float64{6.29150, 3.03530, 1.98910, 1.54100}, B: [4]float64{2.43860, 32.3337, 0.678500, 81.6937}, C: 1.14070},
	"P":  {A: [4]float64{6.43450, 4.17910, 1.78000, 1.49080}, B: [4]float64{1.90670, 27.1570, 0.526000, 68.1645}, C: 1.11490},
	"S":  {A: [4]float64{6.90530, 5.20340, 1.43790, 1.58630}, B: [4]float64{1.46790, 22.2151, 0.253600, 56.1720}, C: 0.866900},
	"Cl": {A: [4]float64{11.4604, 7.19640, 6.25560, 1.64550}, B: [4]float64{0.010400, 1.16620, 18.5194, 47.7784}, C: -9.5574},
	"K":  {A: [4]float64{8.21860, 7.43980, 1.05190, 0.865900}, B: [4]float64{12.7949, 0.774800, 213.187, 41.6841}, C: 1.42280},
	"Ca": {A: [4]float64{8.62660, 7.38730, 1.58990, 1.02110}, B: [4]float64{10.4421, 0.659900, 85.7484, 178.437}, C: 1.37510},
	"Mn": {A: [4]float64{11.2819, 7.35730, 3.01930, 2.24410}, B: [4]float64{5.34090, 0.343200, 17.8674, 83.7543}, C: 1.08960},
	"Fe": {A: [4]float64{11.7695, 7.35730, 3.52220, 2.30450}, B: [4]float64{4.76110, 0.307200, 15.3535, 76.8805}, C: 1.03690},
	"Cu": {A: [4]float64{13.3380, 7.16760, 5.61580, 1.67350}, B: [4]float64{3.58280, 0.247000, 11.3966, 64.8126}, C: 1.19100},
	"Zn": {A: [4]float64{14.0743, 7.03180, 5.16520, 2.41000}, B: [4]float64{3.26550, 0.233300, 10.3163, 58.7097}, C: 1.30410},
	"Se": {A: [4]float64{17.0006, 5.81960, 3.97310, 4.35430}, B: [4]float64{2.40980, 0.272600, 15.2372, 43.8163}, C: 2.84090},
	"Br": {A: [4]float64{17.1789, 5.23580, 5.63770, 3.98510}, B: [4]float64{2.17230, 16.5796, 0.260900, 41.4328}, C: 2.95570},
	"I":  {A: [4]float64{20.1472, 18.9949, 7.51380, 2.27350}, B: [4]float64{4.34700, 0.381400, 27.7660, 66.8776}, C: 4.07120},
}

//Anomalous-dispersion corrections (f', f'') at the 2 most common home-source
//lines, Cu Kalpha (1.5418 A) and Mo Kalpha (0.7107 A). A coarse lookup: the
//closest line is used for any requested wavelength. Values supplied
//explicitly by the caller always take precedence (see SetFprimeIfNotSet).
type anomCorr struct {
	cuFp, cuFdp float64
	moFp, moFdp float64
}

const (
	wavelengthCuKa = 1.5418
	wavelengthMoKa = 0.7107
)

var anomTable = map[string]*anomCorr{
	"H":  {0.000, 0.000, 0.000, 0.000},
	"C":  {0.017, 0.009, 0.002, 0.002},
	"N":  {0.029, 0.018, 0.004, 0.003},
	"O":  {0.047, 0.032, 0.008, 0.006},
	"F":  {0.069, 0.053, 0.014, 0.010},
	"Na": {0.129, 0.124, 0.030, 0.025},
	"Mg": {0.165, 0.177, 0.042, 0.036},
	"Si": {0.254, 0.330, 0.072, 0.071},
	"P":  {0.283, 0.434, 0.090, 0.095},
	"S":  {0.319, 0.557, 0.110, 0.124},
	"Cl": {0.364, 0.702, 0.132, 0.159},
	"K":  {0.365, 1.066, 0.179, 0.250},
	"Ca": {0.341, 1.286, 0.203, 0.306},
	"Mn": {-0.568, 2.808, 0.295, 0.729},
	"Fe": {-1.179, 3.204, 0.301, 0.845},
	"Cu": {-2.019, 0.589, 0.320, 1.265},
	"Zn": {-1.612, 0.678, 0.284, 1.430},
	"Se": {-0.879, 1.139, -0.093, 2.226},
	"Br": {-0.767, 1.283, -0.374, 2.456},
	"I":  {-0.579, 6.835, -0.474, 1.812},
}

//HasFormFactor says whether the element has tabulated scattering
//coefficients.
func HasFormFactor(symbol string) bool {
	_, ok := formFactors[symbol]
	return ok
}

//FormFactor evaluates the tabulated form factor of the element at
//stol2 = (sin(theta)/lambda)^2 = 1/(4d^2). It panics on untabulated
//elements; the caller is expected to have checked with HasFormFactor
//before starting a calculation.
func FormFactor(symbol string, stol2 float64) float64 {
	f, ok := formFactors[symbol]
	if !ok {
		panic("goXtal: no form factor tabulated for element " + symbol)
	}
	return f.Value(stol2)
}

//AnomalousAt returns (f',f'') for the element at the given wavelength (A),
//from the closest tabulated line. The second return is false when the
//element has no tabulated corrections.
func AnomalousAt(symbol string, wavelength float64) (fp, fdp float64, ok bool) {
	a, ok := anomTable[symbol]
	if !ok {
		return 0, 0, false
	}
	if math.Abs(wavelength-wavelengthCuKa) <= math.Abs(wavelength-wavelengthMoKa) {
		return a.cuFp, a.cuFdp, true
	}
	return a.moFp, a.moFdp, true
}

//ScatteringModel holds the mutable, per-calculation scattering state: the
//f' values in effect for each element. The form-factor coefficients
//themselves live in an immutable package table shared by every model.
type ScatteringModel struct {
	fprimes  map[string]float64
	explicit map[string]bool
}

//NewScatteringModel returns a model with no f' corrections set.
func NewScatteringModel() *ScatteringModel {
	return &ScatteringModel{
		fprimes:  make(map[string]float64),
		explicit: make(map[string]bool),
	}
}

//Fprime returns the f' in effect for the element, 0 if none was set.
func (S *ScatteringModel) Fprime(symbol string) float64 {
	return S.fprimes[symbol]
}

//SetFprime sets an explicit f' for the element. Explicit values survive
//later SetFprimeIfNotSet calls.
func (S *ScatteringModel) SetFprime(symbol string, fp float64) {
	S.fprimes[symbol] = fp
	S.explicit[symbol] = true
}

//SetFprimeIfNotSet sets f' for the element only when no explicit value was
//supplied before, so wavelength-derived estimates never clobber values read
//from a file.
func (S *ScatteringModel) SetFprimeIfNotSet(symbol string, fp float64) {
	if S.explicit[symbol] {
		return
	}
	S.fprimes[symbol] = fp
}

//Fprimes returns a copy of the f' values currently in effect.
func (S *ScatteringModel) Fprimes() map[string]float64 {
	r := make(map[string]float64, len(S.fprimes))
	for k, v := range S.fprimes {
		r[k] = v
	}
	return r
}
