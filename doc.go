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

// Package vectorize converts colour bitmaps into SVG documents.
//
// The conversion runs as a sequence of small steps, so that a host can
// interleave it with other work, show a progress indicator, or display the
// partially traced document. A [Session] first groups the pixels into
// clusters of similar colour, then traces the outline of one cluster per
// step:
//
//	s, err := vectorize.NewSession(img, cfg, vectorize.Options{})
//	if err != nil {
//		return err
//	}
//	s.Init()
//	for {
//		done, err := s.Advance()
//		if err != nil {
//			return err
//		}
//		if done {
//			break
//		}
//	}
//	out := s.Render()
//
// In "stacked" mode the clusters of the first pass are traced directly,
// with smaller clusters drawn on top of the larger ones they were merged
// into. In "cutout" mode the result of the first pass is painted into a new
// image which is clustered a second time, and the clusters of this second
// pass are traced.
package vectorize
