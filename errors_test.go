/*
 * errors_test.go, part of goXtal.
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
	"testing"
)

func TestErrDecorateKeepsCaller(Te *testing.T) {
	err := newError(ErrMissingFormFactor, "goXtal: no form factor for %q", "Qq")
	dec := errDecorate(err, "Calc")
	e, ok := dec.(Error)
	if !ok {
		Te.Fatalf("errDecorate changed the error type to %T", dec)
	}
	deco := e.Decorate("")
	if len(deco) != 1 || deco[0] != "Calc" {
		Te.Errorf("decoration after errDecorate: got %v, want [Calc]", deco)
	}
	//a second decoration stacks on the first
	dec = errDecorate(e, "CalcBatch")
	deco = dec.(Error).Decorate("")
	if len(deco) != 2 || deco[1] != "CalcBatch" {
		Te.Errorf("stacked decoration: got %v, want [Calc CalcBatch]", deco)
	}
	if Kind(dec) != ErrMissingFormFactor {
		Te.Error("decoration changed the error kind")
	}
	if dec.Error() != err.Error() {
		Te.Error("decoration changed the error message")
	}
}

func TestErrDecorateForeignError(Te *testing.T) {
	plain := errors.New("not ours")
	if got := errDecorate(plain, "Calc"); got != plain {
		Te.Errorf("foreign error was not returned as it came: %v", got)
	}
	if Kind(plain) != ErrGeneral {
		Te.Error("foreign errors must classify as ErrGeneral")
	}
}
