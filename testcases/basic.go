package testcases

import "image/color"

var (
	red    = rgb(0xE0, 0x20, 0x20)
	green  = rgb(0x20, 0xB0, 0x40)
	blue   = rgb(0x20, 0x40, 0xD0)
	white  = rgb(0xFF, 0xFF, 0xFF)
	black  = rgb(0x00, 0x00, 0x00)
	yellow = rgb(0xF0, 0xD0, 0x10)
)

var basicCases = []TestCase{
	{
		Name:         "solid",
		Width:        4,
		Height:       4,
		Pattern:      Solid{Color: blue},
		Hierarchical: "stacked",
		Mode:         "none",
	},
	{
		Name:         "solid_spline",
		Width:        16,
		Height:       12,
		Pattern:      Solid{Color: green},
		Hierarchical: "stacked",
		Mode:         "spline",
	},
	{
		Name:   "stripes_vertical",
		Width:  24,
		Height: 16,
		Pattern: Stripes{
			Colors: []color.NRGBA{red, white, blue},
			Width:  4,
		},
		Hierarchical: "stacked",
		Mode:         "polygon",
	},
	{
		Name:   "stripes_horizontal_cutout",
		Width:  16,
		Height: 24,
		Pattern: Stripes{
			Colors:     []color.NRGBA{black, yellow},
			Width:      6,
			Horizontal: true,
		},
		Hierarchical: "cutout",
		Mode:         "spline",
	},
}
