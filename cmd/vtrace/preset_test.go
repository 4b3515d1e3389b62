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

package main

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	fileName := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fileName, []byte(contents), 0644))
	return fileName
}

func TestLoadPreset(t *testing.T) {
	fileName := writeFile(t, "preset.toml", `
mode = "polygon"
hierarchical = "stacked"
corner_threshold = 90
filter_speckle = 10
`)
	p := defaultPreset()
	require.NoError(t, loadPreset(fileName, &p))

	cfg := p.config()
	assert.Equal(t, "polygon", cfg.Mode)
	assert.Equal(t, "stacked", cfg.Hierarchical)
	assert.InDelta(t, math.Pi/2, cfg.CornerThreshold, 1e-12)
	assert.Equal(t, 10, cfg.FilterSpeckle)
	assert.Equal(t, 16, cfg.LayerDifference) // from the defaults
	assert.InDelta(t, math.Pi/4, cfg.SpliceThreshold, 1e-12)
}

func TestLoadPresetUnknownKey(t *testing.T) {
	fileName := writeFile(t, "preset.toml", "colour_precision = 3\n")
	p := defaultPreset()
	err := loadPreset(fileName, &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour_precision")
}

func TestLoadPresetMissing(t *testing.T) {
	p := defaultPreset()
	assert.Error(t, loadPreset(filepath.Join(t.TempDir(), "none.toml"), &p))
}

func TestRun(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			c := color.NRGBA{R: 0xFF, A: 0xFF}
			if x >= 2 && x < 6 && y >= 2 && y < 6 {
				c = color.NRGBA{B: 0xFF, A: 0xFF}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	f, err := os.Create(in)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	out := filepath.Join(dir, "out.svg")
	prev := filepath.Join(dir, "prev.png")
	require.NoError(t, run([]string{"-mode", "polygon", "-preview", prev, in, out}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `width="8" height="8"`))
	assert.Equal(t, 2, strings.Count(string(data), "<path"))

	_, err = os.Stat(prev)
	assert.NoError(t, err)

	require.NoError(t, run([]string{in, filepath.Join(dir, "out.pdf")}))
	assert.Error(t, run([]string{in, filepath.Join(dir, "out.txt")}))
	assert.Error(t, run([]string{in}))
}

func TestRunBadScale(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	f, err := os.Create(in)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 2, 2))))
	require.NoError(t, f.Close())

	for _, scale := range []string{"0", "-1", "NaN"} {
		out := filepath.Join(dir, "out.pdf")
		err := run([]string{"-scale", scale, in, out})
		require.Error(t, err, "scale %s", scale)
		assert.Contains(t, err.Error(), "scale")
		_, err = os.Stat(out)
		assert.True(t, os.IsNotExist(err), "scale %s", scale)
	}

	preset := writeFile(t, "preset.toml", "scale = 0.0\n")
	assert.Error(t, run([]string{"-config", preset, in, filepath.Join(dir, "out.svg")}))
}
