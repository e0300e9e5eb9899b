package minefield

import (
	"testing"

	"github.com/pkg/errors"
)

func TestGridRoundTrip(t *testing.T) {
	field := mustLayout(t,
		"*...",
		"....",
		"..*.",
	)
	field.ToggleFlag(0, 0)
	field.ToggleFlag(3, 0)
	field.Open(0, 2)

	text, err := field.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	restored, err := UnmarshalGrid(string(text), false)
	if err != nil {
		t.Fatalf("UnmarshalGrid() failed: %v", err)
	}

	for y := 0; y < field.Height(); y++ {
		for x := 0; x < field.Width(); x++ {
			want := mustCell(t, field, x, y)
			if got := mustCell(t, restored, x, y); got != want {
				t.Errorf("cell (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if restored.Flags() != 2 || restored.RevealedCells() != field.RevealedCells() {
		t.Errorf("restored counts: %d flags, %d revealed; want 2, %d",
			restored.Flags(), restored.RevealedCells(), field.RevealedCells())
	}

	again, _ := restored.MarshalText()
	if string(again) != string(text) {
		t.Errorf("second encoding differs:\n%s\n---\n%s", text, again)
	}
}

func TestGridEncoding(t *testing.T) {
	field := mustLayout(t,
		"*.*",
		"...",
		"..*",
	)
	field.ToggleFlag(2, 0)
	field.ToggleFlag(1, 1)
	field.Open(0, 2)
	field.Open(0, 0)
	field.RevealMines()

	text, _ := field.MarshalText()
	want := "*#F\n.f#\n..x"
	if string(text) != want {
		t.Errorf("MarshalText() =\n%s\nwant\n%s", text, want)
	}

	restored, err := UnmarshalGrid(want, false)
	if err != nil {
		t.Fatal(err)
	}
	if !restored.Lost() {
		t.Error("restored grid with an exploded mine is not lost")
	}
}

func TestUnmarshalGridFresh(t *testing.T) {
	restored, err := UnmarshalGrid("*#F\n#f#\n.#x\n", true)
	if err != nil {
		t.Fatal(err)
	}

	if restored.Mines() != 3 {
		t.Errorf("Mines() = %d, want 3", restored.Mines())
	}
	if restored.Flags() != 0 || restored.RevealedCells() != 0 || restored.Lost() {
		t.Error("fresh grid kept play state")
	}
	if c := mustCell(t, restored, 0, 2); c.Status != Unopened {
		t.Errorf("cell (0, 2) = %v, want unopened", c)
	}
}

func TestUnmarshalGridRejectsGarbage(t *testing.T) {
	inputs := []string{
		"",
		"##\n#",
		"#?#",
	}
	for _, in := range inputs {
		if _, err := UnmarshalGrid(in, false); !errors.Is(err, ErrMalformedGrid) {
			t.Errorf("UnmarshalGrid(%q) error = %v, want ErrMalformedGrid", in, err)
		}
	}

	if _, err := UnmarshalGrid("OO\nOO", false); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("UnmarshalGrid(all mines) error = %v, want ErrInvalidConfiguration", err)
	}
}
