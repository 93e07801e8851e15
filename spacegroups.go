/*
 * spacegroups.go, part of goXtal.
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

import "sync"

//The space-group table. Note that just the groups that cover the large
//majority of deposited macromolecular and small-molecule structures are
//present; symbols not found here degrade to P1 at the caller's discretion.
//Operations are given as coordinate triplets (International Tables style)
//and expanded lazily, once, on first lookup.

type sgEntry struct {
	name      string
	number    int
	triplets  []string
	centering [][3]float64
	once      sync.Once
	group     *SpaceGroup
}

var noCentering = [][3]float64{{0, 0, 0}}
var cCentering = [][3]float64{{0, 0, 0}, {0.5, 0.5, 0}}
var iCentering = [][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}}

var spaceGroupEntries = []*sgEntry{
	{name: "P 1", number: 1, centering: noCentering,
		triplets: []string{"x,y,z"}},
	{name: "P -1", number: 2, centering: noCentering,
		triplets: []string{"x,y,z", "-x,-y,-z"}},
	{name: "P 1 21 1", number: 4, centering: noCentering,
		triplets: []string{"x,y,z", "-x,y+1/2,-z"}},
	{name: "C 1 2 1", number: 5, centering: cCentering,
		triplets: []string{"x,y,z", "-x,y,-z"}},
	{name: "P 1 21/c 1", number: 14, centering: noCentering,
		triplets: []string{"x,y,z", "-x,y+1/2,-z+1/2", "-x,-y,-z", "x,-y+1/2,z+1/2"}},
	{name: "C 1 2/c 1", number: 15, centering: cCentering,
		triplets: []string{"x,y,z", "-x,y,-z+1/2", "-x,-y,-z", "x,-y,z+1/2"}},
	{name: "P 21 21 2", number: 18, centering: noCentering,
		triplets: []string{"x,y,z", "-x,-y,z", "-x+1/2,y+1/2,-z", "x+1/2,-y+1/2,-z"}},
	{name: "P 21 21 21", number: 19, centering: noCentering,
		triplets: []string{"x,y,z", "-x+1/2,-y,z+1/2", "-x,y+1/2,-z+1/2", "x+1/2,-y+1/2,-z"}},
	{name: "C 2 2 21", number: 20, centering: cCentering,
		triplets: []string{"x,y,z", "-x,-y,z+1/2", "-x,y,-z+1/2", "x,-y,-z"}},
	{name: "I 2 2 2", number: 23, centering: iCentering,
		triplets: []string{"x,y,z", "-x,-y,z", "-x,y,-z", "x,-y,-z"}},
	{name: "P 4", number: 75, centering: noCentering,
		triplets: []string{"x,y,z", "-x,-y,z", "-y,x,z", "y,-x,z"}},
	{name: "P 43 21 2", number: 96, centering: noCentering,
		triplets: []string{"x,y,z", "-x,-y,z+1/2",
			"-y+1/2,x+1/2,z+3/4", "y+1/2,-x+1/2,z+1/4",
			"-x+1/2,y+1/2,-z+3/4", "x+1/2,-y+1/2,-z+1/4",
			"y,x,-z", "-y,-x,-z+1/2"}},
	{name: "P 31 2 1", number: 152, centering: noCentering,
		triplets: []string{"x,y,z", "-y,x-y,z+1/3", "-x+y,-x,z+2/3",
			"y,x,-z", "x-y,-y,-z+2/3", "-x,-x+y,-z+1/3"}},
	{name: "P 61", number: 169, centering: noCentering,
		triplets: []string{"x,y,z", "-y,x-y,z+1/3", "-x+y,-x,z+2/3",
			"-x,-y,z+1/2", "y,-x+y,z+5/6", "x-y,x,z+1/6"}},
}

//aliases maps alternative spellings to the canonical no-space key.
var sgAliases = map[string]string{
	"P21":   "P1211",
	"P21/C": "P121/C1",
	"C2":    "C121",
	"C2/C":  "C12/C1",
}

var spaceGroupTable = buildSpaceGroupTable()

func buildSpaceGroupTable() map[string]*sgEntry {
	t := make(map[string]*sgEntry, 2*len(spaceGroupEntries))
	for _, e := range spaceGroupEntries {
		key := normalizeSymbol(e.name)
		t[key] = e
	}
	for alias, key := range sgAliases {
		if e, ok := t[key]; ok {
			t[alias] = e
		}
	}
	return t
}

func normalizeSymbol(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			continue
		}
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
