// Package field provides fielding layouts for the simulation engine:
// built-in presets and a YAML loader for custom layouts.
package field

import (
	"fmt"
	"sort"

	"github.com/cricklab/fieldsim/engine"
)

// Layout is a named set of fielder positions. Coordinates follow the engine
// plan: the batter at the origin, +Y toward the bowler, +X to the leg side.
type Layout struct {
	Name     string           `yaml:"name" json:"name"`
	Fielders []engine.Fielder `yaml:"fielders" json:"fielders"`
}

// The built-in presets. Keeper and slips sit behind the batter (-Y);
// the ring and deep fielders face the shot.
var presets = map[string]Layout{
	"standard": {
		Name: "standard",
		Fielders: []engine.Fielder{
			{X: 0, Y: -3, Name: "wicketkeeper"},
			{X: 5, Y: -4, Name: "first slip"},
			{X: 7, Y: -5, Name: "second slip"},
			{X: 8, Y: 2, Name: "gully"},
			{X: 15, Y: 15, Name: "point"},
			{X: 20, Y: 30, Name: "cover"},
			{X: 5, Y: 35, Name: "mid-off"},
			{X: -5, Y: 35, Name: "mid-on"},
			{X: -20, Y: 25, Name: "midwicket"},
			{X: -15, Y: 10, Name: "square leg"},
			{X: -45, Y: 45, Name: "deep midwicket"},
		},
	},
	"attacking": {
		Name: "attacking",
		Fielders: []engine.Fielder{
			{X: 0, Y: -3, Name: "wicketkeeper"},
			{X: 4, Y: -4, Name: "first slip"},
			{X: 6, Y: -5, Name: "second slip"},
			{X: 8, Y: -6, Name: "third slip"},
			{X: 10, Y: -4, Name: "gully"},
			{X: 12, Y: 8, Name: "point"},
			{X: 18, Y: 25, Name: "cover"},
			{X: 5, Y: 30, Name: "mid-off"},
			{X: -5, Y: 30, Name: "mid-on"},
			{X: -18, Y: 20, Name: "midwicket"},
			{X: -12, Y: 8, Name: "square leg"},
		},
	},
	"defensive": {
		Name: "defensive",
		Fielders: []engine.Fielder{
			{X: 0, Y: -3, Name: "wicketkeeper"},
			{X: 5, Y: -4, Name: "first slip"},
			{X: 20, Y: 15, Name: "point"},
			{X: 35, Y: 35, Name: "cover"},
			{X: 50, Y: 40, Name: "deep cover"},
			{X: 10, Y: 45, Name: "long-off"},
			{X: -10, Y: 45, Name: "long-on"},
			{X: -35, Y: 35, Name: "deep midwicket"},
			{X: -50, Y: 20, Name: "deep square leg"},
			{X: -40, Y: -20, Name: "fine leg"},
			{X: 40, Y: -20, Name: "third man"},
		},
	},
}

// Preset returns a copy of the named built-in layout.
func Preset(name string) (Layout, error) {
	l, ok := presets[name]
	if !ok {
		return Layout{}, fmt.Errorf("unknown field preset %q", name)
	}
	return l.clone(), nil
}

// Names lists the built-in preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l Layout) clone() Layout {
	out := l
	out.Fielders = append([]engine.Fielder(nil), l.Fielders...)
	return out
}
