// seehuhn.de/go/vectorize - convert raster images to vector graphics
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package testcases

var shapeCases = []TestCase{
	{
		Name:   "ring_stacked",
		Width:  32,
		Height: 32,
		Pattern: Ring{
			Inner:      6,
			Outer:      12,
			Hole:       yellow,
			Ring:       blue,
			Background: white,
		},
		Hierarchical: "stacked",
		Mode:         "spline",
	},
	{
		Name:   "ring_cutout",
		Width:  32,
		Height: 32,
		Pattern: Ring{
			Inner:      6,
			Outer:      12,
			Hole:       white,
			Ring:       red,
			Background: white,
		},
		Hierarchical: "cutout",
		Mode:         "polygon",
	},
	{
		Name:   "disc_pixels",
		Width:  20,
		Height: 20,
		Pattern: Ring{
			Outer:      7,
			Hole:       green,
			Ring:       green,
			Background: black,
		},
		Hierarchical: "stacked",
		Mode:         "none",
	},
	{
		// diagonal neighbours only touch at their corners
		Name:         "checker",
		Width:        8,
		Height:       8,
		Pattern:      Checker{A: black, B: white, Cell: 1},
		Hierarchical: "stacked",
		Mode:         "none",
	},
	{
		Name:         "checker_cells",
		Width:        24,
		Height:       24,
		Pattern:      Checker{A: red, B: blue, Cell: 6},
		Hierarchical: "cutout",
		Mode:         "spline",
	},
}
