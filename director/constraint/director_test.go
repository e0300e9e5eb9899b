package constraint

import (
	"strings"
	"testing"

	"github.com/they4kman/sapper/config"
	"github.com/they4kman/sapper/game"
	"github.com/they4kman/sapper/minefield"
)

func startSession(t *testing.T, rows ...string) (*game.Session, *Director) {
	t.Helper()

	director := &Director{}
	gameConfig := game.NewGameConfig()
	gameConfig.Seed = 5
	gameConfig.Snapshot = &game.BoardSnapshot{SerializedBoard: strings.Join(rows, "\n")}
	gameConfig.LoadSnapshotFresh = false
	gameConfig.NewDirector = func() game.Director { return director }

	session, err := gameConfig.NewSession()
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return session, director
}

func assertActions(t *testing.T, got []game.CellAction, want ...game.CellAction) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Act() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Act()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestActDeliberate(t *testing.T) {
	// (1, 0) shows 1 with a single unopened neighbor; (2, 0) shows 0
	_, director := startSession(t, "O..#")

	assertActions(t, director.Act(),
		game.RightClickAt(0, 0),
		game.ClickAt(3, 0),
	)
}

func TestActSubsets(t *testing.T) {
	// bottom row reads 1 1 1 under three unopened cells; the outer 1s each
	// cover a subset of the middle 1, so the corners are safe
	_, director := startSession(t,
		"#O#",
		"...",
	)

	assertActions(t, director.Act(),
		game.ClickAt(0, 0),
		game.ClickAt(2, 0),
	)
}

func TestActGuessesWhenStuck(t *testing.T) {
	session, director := startSession(t,
		"O#",
		"..",
	)

	actions := director.Act()
	if len(actions) != 1 || actions[0].Action != game.Click {
		t.Fatalf("Act() = %v, want a single click", actions)
	}
	cell, _ := session.Board().VisibleCell(actions[0].X, actions[0].Y)
	if cell.Status != minefield.Unopened {
		t.Errorf("guessed %v, which is %v", actions[0], cell)
	}
}

func TestDirectorFinishesGames(t *testing.T) {
	difficulty, err := config.Default().Get("easy")
	if err != nil {
		t.Fatal(err)
	}

	for seed := int64(1); seed <= 10; seed++ {
		gameConfig := game.NewGameConfig()
		gameConfig.Difficulty = difficulty
		gameConfig.Seed = seed
		gameConfig.NewDirector = func() game.Director { return &Director{} }

		session, err := gameConfig.NewSession()
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i < 200 && session.CanPlay(); i++ {
			n, err := session.Step()
			if err != nil {
				t.Fatalf("seed %d: Step() failed: %v", seed, err)
			}
			if n == 0 {
				t.Fatalf("seed %d: director got stuck", seed)
			}
		}
		if !session.IsOver() {
			t.Errorf("seed %d: game still %v after 200 steps", seed, session.State())
		}
	}
}

func TestObservationString(t *testing.T) {
	observation := Observation{
		origin:   minefield.Point{X: 1, Y: 1},
		numMines: 1,
		cells:    nil,
	}
	if !strings.HasPrefix(observation.String(), "Obs[") {
		t.Errorf("String() = %q", observation.String())
	}
}
