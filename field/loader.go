package field

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// MaxFielders is the most a fielding side can place, keeper included.
	MaxFielders = 11

	// maxCoordinate bounds fielder placement; nothing stands past the
	// biggest grounds.
	maxCoordinate = 120.0
)

// Load reads one layout from a YAML file. A layout with no name takes the
// file's base name without extension.
func Load(path string) (Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}

	var l Layout
	if err := yaml.Unmarshal(b, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}

	if l.Name == "" {
		base := filepath.Base(path)
		l.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if err := l.Validate(); err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// LoadDir reads every .yaml/.yml file in dir and returns the layouts keyed
// by name. A missing directory is not an error; custom layouts are optional.
func LoadDir(dir string) (map[string]Layout, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Layout{}, nil
		}
		return nil, fmt.Errorf("read layout dir: %w", err)
	}

	layouts := make(map[string]Layout)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		l, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if _, dup := layouts[l.Name]; dup {
			return nil, fmt.Errorf("duplicate layout name %q", l.Name)
		}
		layouts[l.Name] = l
	}
	return layouts, nil
}

// Validate checks a layout for use with the engine: at least one fielder,
// no more than a full side, finite in-ground coordinates, no duplicate
// names. Unnamed fielders are allowed; the engine assigns placeholders.
func (l Layout) Validate() error {
	if len(l.Fielders) == 0 {
		return fmt.Errorf("no fielders")
	}
	if len(l.Fielders) > MaxFielders {
		return fmt.Errorf("%d fielders, maximum is %d", len(l.Fielders), MaxFielders)
	}

	seen := make(map[string]bool, len(l.Fielders))
	for i, f := range l.Fielders {
		if math.IsNaN(f.X) || math.IsInf(f.X, 0) || math.IsNaN(f.Y) || math.IsInf(f.Y, 0) {
			return fmt.Errorf("fielder %d (%s): non-finite position", i, f.Name)
		}
		if math.Abs(f.X) > maxCoordinate || math.Abs(f.Y) > maxCoordinate {
			return fmt.Errorf("fielder %d (%s): position (%.0f, %.0f) outside the ground",
				i, f.Name, f.X, f.Y)
		}
		if f.Name != "" {
			if seen[f.Name] {
				return fmt.Errorf("duplicate fielder name %q", f.Name)
			}
			seen[f.Name] = true
		}
	}
	return nil
}

// All merges the built-in presets with the layouts in dir; custom layouts
// shadow presets with the same name.
func All(dir string) (map[string]Layout, error) {
	layouts := make(map[string]Layout, len(presets))
	for name, l := range presets {
		layouts[name] = l.clone()
	}

	custom, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	for name, l := range custom {
		layouts[name] = l
	}
	return layouts, nil
}

// SortedNames returns the layout names from a layout map in sorted order.
func SortedNames(layouts map[string]Layout) []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
