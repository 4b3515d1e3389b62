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

package vectorize

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/vectorize/cluster"
	"seehuhn.de/go/vectorize/testcases"
)

func caseConfig(tc testcases.TestCase) Config {
	cfg := DefaultConfig()
	cfg.Mode = tc.Mode
	cfg.Hierarchical = tc.Hierarchical
	cfg.LayerDifference = 16
	return cfg
}

func traceCase(t *testing.T, tc testcases.TestCase) (*Session, []int) {
	t.Helper()
	s, err := NewSession(tc.Image(), caseConfig(tc), Options{})
	require.NoError(t, err)
	s.Init()
	return s, advanceAll(t, s)
}

func TestUniformBitmap(t *testing.T) {
	col := color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xFF}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = col.R, col.G, col.B, col.A
	}

	cfg := DefaultConfig()
	cfg.Mode = "none"
	cfg.Hierarchical = HierarchicalStacked
	cfg.FilterSpeckle = 0
	s, err := NewSession(img, cfg, Options{})
	require.NoError(t, err)
	s.Init()
	progress := advanceAll(t, s)
	assert.Equal(t, 100, progress[len(progress)-1])

	doc := s.Document()
	require.Equal(t, 1, doc.Len())
	for _, e := range doc.All() {
		assert.Equal(t, col, e.Fill)
	}
	assert.Equal(t, []string{"fill:#123456"}, countPaths(t, s.Render()))
}

func TestAllCases(t *testing.T) {
	for group, cases := range testcases.All {
		for _, tc := range cases {
			t.Run(group+"/"+tc.Name, func(t *testing.T) {
				s1, progress := traceCase(t, tc)
				for i := 1; i < len(progress); i++ {
					assert.GreaterOrEqual(t, progress[i], progress[i-1])
				}
				assert.Equal(t, 100, progress[len(progress)-1])
				assert.Equal(t, "vectorize", s1.Stage())

				done, err := s1.Advance()
				require.NoError(t, err)
				assert.True(t, done)

				s2, _ := traceCase(t, tc)
				assert.Equal(t, s1.Render(), s2.Render())
				assert.NotEmpty(t, countPaths(t, s1.Render()))
			})
		}
	}
}

// TestPathCount checks that one path is written for every cluster of the
// final clustering pass.
func TestPathCount(t *testing.T) {
	for _, tc := range testcases.All["shapes"] {
		t.Run(tc.Name, func(t *testing.T) {
			img := tc.Image()
			b := img.Bounds()
			run := cluster.Start(img, initialConfig(caseConfig(tc), b.Dx(), b.Dy()))
			for !run.Tick() {
			}
			set := run.Result()
			if tc.Hierarchical == HierarchicalCutout {
				flat := set.Flatten()
				run = cluster.Start(flat, cutoutConfig(flat))
				for !run.Tick() {
				}
				set = run.Result()
			}

			s, _ := traceCase(t, tc)
			assert.Equal(t, set.Len(), s.Document().Len())
		})
	}
}

func TestRunPipeline(t *testing.T) {
	tc := testcases.All["shapes"][0]
	s, err := NewSession(tc.Image(), caseConfig(tc), Options{})
	require.NoError(t, err)
	defer s.Close()

	var seen []int
	require.NoError(t, s.Run(context.Background(), func(p int) { seen = append(seen, p) }))
	require.NotEmpty(t, seen)
	assert.Equal(t, 100, seen[len(seen)-1])
}
