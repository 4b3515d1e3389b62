// Command export writes the input bitmaps and traced documents of all test
// cases to testdata/cases, together with a JSON index.
// Run from the module root directory.
package main

import (
	"context"
	"encoding/json"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/vectorize"
	"seehuhn.de/go/vectorize/testcases"
)

const outDir = "testdata/cases"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			paths, err := export(tc, name)
			if err != nil {
				panic(err)
			}
			out.TestCases = append(out.TestCases, jsonTestCase{
				Name:         name,
				Width:        tc.Width,
				Height:       tc.Height,
				Hierarchical: tc.Hierarchical,
				Mode:         tc.Mode,
				Paths:        paths,
			})
		}
	}

	f, err := os.Create(filepath.Join(outDir, "testcases.json"))
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name         string `json:"name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Hierarchical string `json:"hierarchical"`
	Mode         string `json:"mode"`
	Paths        int    `json:"paths"`
}

// export writes name.png and name.svg and returns the number of paths.
func export(tc testcases.TestCase, name string) (int, error) {
	img := tc.Image()

	f, err := os.Create(filepath.Join(outDir, name+".png"))
	if err != nil {
		return 0, err
	}
	err = png.Encode(f, img)
	if err2 := f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return 0, err
	}

	cfg := vectorize.DefaultConfig()
	cfg.Mode = tc.Mode
	cfg.Hierarchical = tc.Hierarchical
	cfg.LayerDifference = 16
	s, err := vectorize.NewSession(img, cfg, vectorize.Options{})
	if err != nil {
		return 0, err
	}
	defer s.Close()
	if err := s.Run(context.Background(), nil); err != nil {
		return 0, err
	}

	err = os.WriteFile(filepath.Join(outDir, name+".svg"), []byte(s.Render()), 0644)
	return s.Document().Len(), err
}
