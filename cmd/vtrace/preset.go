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
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"seehuhn.de/go/vectorize"
)

// preset is the contents of a configuration file. Angles are given in
// degrees.
type preset struct {
	Mode            string  `toml:"mode"`
	Hierarchical    string  `toml:"hierarchical"`
	CornerThreshold float64 `toml:"corner_threshold"`
	LengthThreshold float64 `toml:"length_threshold"`
	MaxIterations   int     `toml:"max_iterations"`
	SpliceThreshold float64 `toml:"splice_threshold"`
	FilterSpeckle   int     `toml:"filter_speckle"`
	PathPrecision   int     `toml:"path_precision"`
	LayerDifference int     `toml:"layer_difference"`
	ColorPrecision  int     `toml:"color_precision"`

	Invert          bool    `toml:"invert"`
	PathFill        string  `toml:"path_fill"`
	BackgroundColor string  `toml:"background_color"`
	Attributes      string  `toml:"attributes"`
	Scale           float64 `toml:"scale"`
}

// defaultPreset has the values used when neither a configuration file nor
// a flag gives one.
func defaultPreset() preset {
	cfg := vectorize.DefaultConfig()
	return preset{
		Mode:            cfg.Mode,
		Hierarchical:    vectorize.HierarchicalCutout,
		CornerThreshold: toDegrees(cfg.CornerThreshold),
		LengthThreshold: cfg.LengthThreshold,
		MaxIterations:   cfg.MaxIterations,
		SpliceThreshold: toDegrees(cfg.SpliceThreshold),
		FilterSpeckle:   cfg.FilterSpeckle,
		PathPrecision:   cfg.PathPrecision,
		LayerDifference: 16,
		ColorPrecision:  2,
		Scale:           1,
	}
}

// loadPreset reads a configuration file on top of p. Unknown keys are an
// error.
func loadPreset(fileName string, p *preset) error {
	md, err := toml.DecodeFile(fileName, p)
	if err != nil {
		return errors.Wrapf(err, "cannot read configuration %q", fileName)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys in configuration %q: %v", fileName, undecoded)
	}
	return nil
}

func (p *preset) config() vectorize.Config {
	return vectorize.Config{
		Mode:            p.Mode,
		CornerThreshold: toRadians(p.CornerThreshold),
		LengthThreshold: p.LengthThreshold,
		MaxIterations:   p.MaxIterations,
		SpliceThreshold: toRadians(p.SpliceThreshold),
		FilterSpeckle:   p.FilterSpeckle,
		PathPrecision:   p.PathPrecision,
		LayerDifference: p.LayerDifference,
		ColorPrecision:  p.ColorPrecision,
		Hierarchical:    p.Hierarchical,
	}
}

func (p *preset) options() vectorize.Options {
	return vectorize.Options{
		Invert:          p.Invert,
		PathFill:        p.PathFill,
		BackgroundColor: p.BackgroundColor,
		Attributes:      p.Attributes,
		Scale:           p.Scale,
	}
}

func toDegrees(rad float64) float64 {
	return math.Round(rad * 180 / math.Pi)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
