/*
 * sfplot_test.go, part of goXtal.
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

package sfplot

import (
	"os"
	"path/filepath"
	"testing"

	xtal "github.com/rmera/goxtal"
	"github.com/stretchr/testify/require"
)

func fakeReport() *xtal.Report {
	rep := &xtal.Report{Model: "fake", Stats: new(xtal.Comparator)}
	for i := 1; i <= 20; i++ {
		f := complex(float64(i), float64(i)/3)
		ref := f * 1.02
		rep.Records = append(rep.Records, xtal.Record{
			HKL: xtal.Miller{i, 0, 0}, F: f, Ref: ref, HasRef: true,
		})
		rep.Stats.Add(f, ref)
	}
	return rep
}

func TestAmplitudeScatter(t *testing.T) {
	rep := fakeReport()
	path := filepath.Join(t.TempDir(), "scatter.png")
	require.NoError(t, AmplitudeScatter(rep, "test", path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestAmplitudeScatterEmpty(t *testing.T) {
	rep := &xtal.Report{Model: "empty", Stats: new(xtal.Comparator)}
	rep.Records = append(rep.Records, xtal.Record{HKL: xtal.Miller{1, 0, 0}, F: 3})
	err := AmplitudeScatter(rep, "test", filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}
