package config

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestDefaultLevels(t *testing.T) {
	difficulties := Default()

	names := difficulties.Names()
	want := []string{"easy", "medium", "hard"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	level, err := difficulties.Get("")
	if err != nil {
		t.Fatal(err)
	}
	if level.Name != "easy" {
		t.Errorf("Get(\"\") = %q, want the default easy", level.Name)
	}

	hard, err := difficulties.Get("hard")
	if err != nil {
		t.Fatal(err)
	}
	if hard.Width*hard.Height > 500 {
		t.Errorf("hard board has %d cells, expected a few hundred at most", hard.Width*hard.Height)
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Default().Get("nightmare")
	if !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("Get() error = %v, want ErrUnknownDifficulty", err)
	}
}

func TestDrawMineCountStaysInRange(t *testing.T) {
	level := Difficulty{Name: "t", Width: 10, Height: 10, CellSize: 10, MinMines: 10, MaxMines: 13}
	rng := rand.New(rand.NewSource(3))

	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		n := level.DrawMineCount(rng)
		if n < level.MinMines || n > level.MaxMines {
			t.Fatalf("DrawMineCount() = %d, outside [%d, %d]", n, level.MinMines, level.MaxMines)
		}
		seen[n] = true
	}
	if len(seen) != 4 {
		t.Errorf("drew %d distinct counts in 1000 tries, want all 4", len(seen))
	}

	fixed := Custom(5, 5, 3, 20)
	if n := fixed.DrawMineCount(rng); n != 3 {
		t.Errorf("custom DrawMineCount() = %d, want 3", n)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		level Difficulty
		valid bool
	}{
		{"ok", Difficulty{Name: "a", Width: 3, Height: 3, CellSize: 10, MinMines: 0, MaxMines: 8}, true},
		{"no name", Difficulty{Width: 3, Height: 3, CellSize: 10}, false},
		{"zero width", Difficulty{Name: "a", Height: 3, CellSize: 10}, false},
		{"zero cell size", Difficulty{Name: "a", Width: 3, Height: 3}, false},
		{"max fills board", Difficulty{Name: "a", Width: 3, Height: 3, CellSize: 10, MaxMines: 9}, false},
		{"min above max", Difficulty{Name: "a", Width: 3, Height: 3, CellSize: 10, MinMines: 4, MaxMines: 2}, false},
		{"negative min", Difficulty{Name: "a", Width: 3, Height: 3, CellSize: 10, MinMines: -1, MaxMines: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.level.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidDifficulty) {
				t.Errorf("Validate() = %v, want ErrInvalidDifficulty", err)
			}
		})
	}
}

func TestParseRejectsDuplicatesAndBadDefault(t *testing.T) {
	dupes := []byte(`
levels:
  - {name: a, width: 2, height: 2, cell_size: 10, min_mines: 0, max_mines: 1}
  - {name: a, width: 2, height: 2, cell_size: 10, min_mines: 0, max_mines: 1}
`)
	if _, err := Parse(dupes); !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("Parse(dupes) error = %v, want ErrInvalidDifficulty", err)
	}

	badDefault := []byte(`
default: b
levels:
  - {name: a, width: 2, height: 2, cell_size: 10, min_mines: 0, max_mines: 1}
`)
	if _, err := Parse(badDefault); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("Parse(badDefault) error = %v, want ErrUnknownDifficulty", err)
	}

	if _, err := Parse([]byte("levels: [")); err == nil {
		t.Error("Parse(broken yaml) returned nil error")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yaml")
	data := []byte(`
default: tiny
levels:
  - name: tiny
    width: 4
    height: 3
    cell_size: 50
    min_mines: 1
    max_mines: 2
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	difficulties, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	level, err := difficulties.Get("")
	if err != nil {
		t.Fatal(err)
	}
	if level != (Difficulty{Name: "tiny", Width: 4, Height: 3, CellSize: 50, MinMines: 1, MaxMines: 2}) {
		t.Errorf("Get() = %+v", level)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing custom path) returned nil error")
	}
}
