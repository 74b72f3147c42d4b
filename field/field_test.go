package field

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cricklab/fieldsim/engine"
)

type f = engine.Fielder

func TestPreset(t *testing.T) {
	for _, name := range []string{"standard", "attacking", "defensive"} {
		t.Run(name, func(t *testing.T) {
			l, err := Preset(name)
			if err != nil {
				t.Fatalf("Preset(%q): %v", name, err)
			}
			if l.Name != name {
				t.Errorf("Name = %q, want %q", l.Name, name)
			}
			if err := l.Validate(); err != nil {
				t.Errorf("built-in preset invalid: %v", err)
			}
			if l.Fielders[0].Name != "wicketkeeper" {
				t.Errorf("first fielder = %q, want the keeper", l.Fielders[0].Name)
			}
		})
	}

	if _, err := Preset("nonsense"); err == nil {
		t.Error("unknown preset should error")
	}
}

func TestPresetReturnsCopy(t *testing.T) {
	a, _ := Preset("standard")
	a.Fielders[0].X = 99

	b, _ := Preset("standard")
	if b.Fielders[0].X == 99 {
		t.Error("mutating a returned preset leaked into the shared table")
	}
}

func TestNames(t *testing.T) {
	got := Names()
	want := []string{"attacking", "defensive", "standard"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leg-trap.yaml")
	data := `name: leg trap
fielders:
  - {x: 0, y: -3, name: wicketkeeper}
  - {x: -4, y: 2, name: leg slip}
  - {x: -6, y: 6, name: short leg}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Name != "leg trap" {
		t.Errorf("Name = %q, want %q", l.Name, "leg trap")
	}
	if len(l.Fielders) != 3 {
		t.Fatalf("len(Fielders) = %d, want 3", len(l.Fielders))
	}
	if f := l.Fielders[2]; f.Name != "short leg" || f.X != -6 || f.Y != 6 {
		t.Errorf("fielder[2] = %+v", f)
	}
}

func TestLoad_NameFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ring.yml")
	data := "fielders:\n  - {x: 10, y: 12, name: point}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Name != "ring" {
		t.Errorf("Name = %q, want the file base name", l.Name)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.yaml":    "name: one\nfielders:\n  - {x: 1, y: 10, name: point}\n",
		"b.yml":     "name: two\nfielders:\n  - {x: -1, y: 10, name: square leg}\n",
		"ignore.md": "not a layout",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	layouts, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(layouts) != 2 {
		t.Fatalf("got %d layouts, want 2", len(layouts))
	}
	if _, ok := layouts["one"]; !ok {
		t.Error("missing layout one")
	}

	// Missing directory is fine, layouts are optional.
	empty, err := LoadDir(filepath.Join(dir, "does-not-exist"))
	if err != nil {
		t.Fatalf("missing dir: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("missing dir returned %d layouts", len(empty))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		wantErr bool
	}{
		{
			name:    "Empty",
			layout:  Layout{Name: "x"},
			wantErr: true,
		},
		{
			name:    "TooMany", // filled in below
			layout:  Layout{Name: "x"},
			wantErr: true,
		},
		{
			name:    "OutOfGround",
			layout:  Layout{Name: "x", Fielders: []f{{X: 500, Y: 0, Name: "lost"}}},
			wantErr: true,
		},
		{
			name:    "DuplicateName",
			layout:  Layout{Name: "x", Fielders: []f{{X: 1, Y: 1, Name: "a"}, {X: 2, Y: 2, Name: "a"}}},
			wantErr: true,
		},
		{
			name:    "Valid",
			layout:  Layout{Name: "x", Fielders: []f{{X: 1, Y: 1, Name: "a"}, {X: 2, Y: 2}}},
			wantErr: false,
		},
	}

	// Fill the TooMany case with a full side plus one.
	many := make([]f, MaxFielders+1)
	for i := range many {
		many[i] = f{X: float64(i), Y: 10}
	}
	tests[1].layout.Fielders = many

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAll_CustomShadowsPreset(t *testing.T) {
	dir := t.TempDir()
	data := "name: standard\nfielders:\n  - {x: 0, y: -3, name: wicketkeeper}\n"
	if err := os.WriteFile(filepath.Join(dir, "standard.yaml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	layouts, err := All(dir)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if got := len(layouts["standard"].Fielders); got != 1 {
		t.Errorf("custom standard has %d fielders, want the 1-man override", got)
	}
	if _, ok := layouts["attacking"]; !ok {
		t.Error("built-in attacking preset missing from merged set")
	}
}
