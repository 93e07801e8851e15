/*
 * doc.go, part of goXtal.
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

//Package xtal computes and validates crystallographic structure factors.
//Given an atomic model and its unit cell it produces complex F(hkl) values
//either by direct summation over the atoms (exact, slow; the choice for
//small molecules and for validation references) or through an
//FFT-accelerated route that rasterizes the electron density onto a
//real-space grid (the choice for periodic macromolecular models). Computed
//values can be compared against a cached earlier run, against a direct
//recomputation, or against a reflection file, with the discrepancies folded
//into the usual crystallographic statistics (R-factor, RMSE, scale).
//
//The highest-level entry point is Calc, driven by an Options record; the
//pieces (SFCalculator, DensityCalculator, HKLSearch, Comparator) are
//exported and usable on their own. Model loading from PDB/CIF files is out
//of scope; a Model is built programmatically or by an external loader.
package xtal
