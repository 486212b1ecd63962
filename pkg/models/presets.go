package models

import (
	"fmt"
	"math"
	"sort"
)

// Presets are the built-in height functions selectable by name.
var Presets = map[string]SurfaceFunc{
	"ripple": func(x, y float64) float64 {
		r := math.Sqrt(x*x+y*y) * 10
		if r == 0 {
			return 1
		}
		return math.Sin(r) / r
	},
	"saddle": func(x, y float64) float64 {
		return x*x - y*y
	},
	"waves": func(x, y float64) float64 {
		return math.Sin(3*x) * math.Cos(3*y)
	},
	"peaks": func(x, y float64) float64 {
		return 3*(1-x)*(1-x)*math.Exp(-x*x-(y+1)*(y+1)) -
			10*(x/5-x*x*x-y*y*y*y*y)*math.Exp(-x*x-y*y) -
			math.Exp(-(x+1)*(x+1)-y*y)/3
	},
	"pole": func(x, y float64) float64 {
		return 1 / (x*x + y*y)
	},
}

// PresetNames returns the preset names sorted for help output.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset looks up a built-in function by name.
func Preset(name string) (SurfaceFunc, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (have %v)", name, PresetNames())
	}
	return fn, nil
}
