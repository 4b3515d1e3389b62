package testcases

import "image/color"

var textureCases = []TestCase{
	{
		Name:         "gradient",
		Width:        32,
		Height:       8,
		Pattern:      Gradient{From: black, To: white},
		Hierarchical: "stacked",
		Mode:         "polygon",
	},
	{
		Name:         "gradient_alpha",
		Width:        16,
		Height:       8,
		Pattern:      Gradient{From: color.NRGBA{R: 0x80, A: 0}, To: red},
		Hierarchical: "cutout",
		Mode:         "spline",
	},
	{
		Name:   "noise",
		Width:  16,
		Height: 16,
		Pattern: Noise{
			Palette: []color.NRGBA{red, green, blue, white},
			Seed:    1,
		},
		Hierarchical: "stacked",
		Mode:         "spline",
	},
	{
		Name:   "noise_cutout",
		Width:  16,
		Height: 16,
		Pattern: Noise{
			Palette: []color.NRGBA{black, yellow},
			Seed:    7,
		},
		Hierarchical: "cutout",
		Mode:         "none",
	},
}
