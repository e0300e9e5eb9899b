package constraint

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/sapper/director/random"
	"github.com/they4kman/sapper/game"
	"github.com/they4kman/sapper/minefield"
	"github.com/they4kman/sapper/util/collections"
)

// Director deduces safe cells and mines from the revealed numbers, and
// guesses only when nothing can be deduced.
type Director struct {
	session *game.Session
}

// Observation says that exactly numMines of cells hold a mine
type Observation struct {
	origin   minefield.Point
	numMines int
	cells    collections.Set[minefield.Point]
}

func (observation Observation) String() string {
	points := sortedPoints(observation.cells)
	cellsRepr := make([]string, len(points))
	for i, pt := range points {
		cellsRepr[i] = pt.String()
	}
	return fmt.Sprintf("Obs[%8s, %d ε %s]", observation.origin, observation.numMines, strings.Join(cellsRepr, ", "))
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func (director *Director) Init(session *game.Session) {
	director.session = session
}

func (director *Director) End() {
	director.session = nil
}

func (director *Director) Act() []game.CellAction {
	if director.session == nil {
		return nil
	}

	observations := director.observe()
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		for _, observation := range observations {
			logrus.Trace(observation)
		}
	}

	actors := []func([]*Observation) []game.CellAction{
		director.actDeliberate,
		director.actSubsets,
		director.actLowestProbability,
		director.actRandom,
	}
	for _, actor := range actors {
		if actions := actor(observations); len(actions) > 0 {
			return actions
		}
	}
	return nil
}

// observe builds one observation per revealed number that still borders
// unopened cells. Flags are trusted and subtracted from the count.
func (director *Director) observe() []*Observation {
	board := director.session.Board()

	var observations []*Observation
	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			cell, err := board.VisibleCell(x, y)
			if err != nil || cell.Status != minefield.Revealed {
				continue
			}

			observation := &Observation{
				origin:   minefield.Point{X: x, Y: y},
				numMines: cell.Count,
				cells:    make(collections.Set[minefield.Point]),
			}
			for _, neighbor := range board.Neighbors(x, y) {
				neighborCell, _ := board.VisibleCell(neighbor.X, neighbor.Y)
				switch neighborCell.Status {
				case minefield.Flagged:
					observation.numMines--
				case minefield.Unopened:
					observation.cells.Add(neighbor)
				}
			}

			if observation.cells.Len() > 0 {
				observations = append(observations, observation)
			}
		}
	}
	return observations
}

func (director *Director) actDeliberate(observations []*Observation) []game.CellAction {
	actions := make(collections.Set[game.CellAction])
	for _, observation := range observations {
		addCertain(actions, observation.cells, observation.numMines)
	}
	return sortedActions(actions)
}

// actSubsets compares pairs of observations: when one's cells are contained
// in the other's, the leftover cells hold the difference of their counts.
func (director *Director) actSubsets(observations []*Observation) []game.CellAction {
	actions := make(collections.Set[game.CellAction])
	for _, inner := range observations {
		for _, outer := range observations {
			if inner == outer || inner.cells.Equal(outer.cells) || !inner.cells.IsSubset(outer.cells) {
				continue
			}
			leftover := outer.cells.Difference(inner.cells)
			addCertain(actions, leftover, outer.numMines-inner.numMines)
		}
	}
	return sortedActions(actions)
}

func (director *Director) actLowestProbability(observations []*Observation) []game.CellAction {
	lowestProbability := math.Inf(1)
	var candidates []minefield.Point

	for _, observation := range observations {
		probability := observation.MineProbability()
		if probability < lowestProbability {
			lowestProbability = probability
			candidates = candidates[:0]
		}
		if probability == lowestProbability {
			candidates = append(candidates, sortedPoints(observation.cells)...)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	pick := candidates[director.session.Rand().Intn(len(candidates))]
	logrus.WithFields(logrus.Fields{
		"cell":        pick,
		"probability": lowestProbability,
	}).Debug("guessing lowest mine probability")
	return []game.CellAction{game.ClickAt(pick.X, pick.Y)}
}

func (director *Director) actRandom([]*Observation) []game.CellAction {
	randomDirector := &random.Director{}
	randomDirector.Init(director.session)
	defer randomDirector.End()
	return randomDirector.Act()
}

// addCertain adds the actions implied by "numMines of cells are mines" when
// that leaves no doubt: every cell is a mine, or none is.
func addCertain(actions collections.Set[game.CellAction], cells collections.Set[minefield.Point], numMines int) {
	if cells.Len() == 0 {
		return
	}

	switch numMines {
	case cells.Len():
		for cell := range cells {
			actions.Add(game.RightClickAt(cell.X, cell.Y))
		}
	case 0:
		for cell := range cells {
			actions.Add(game.ClickAt(cell.X, cell.Y))
		}
	}
}

func sortedPoints(points collections.Set[minefield.Point]) []minefield.Point {
	sorted := make([]minefield.Point, 0, points.Len())
	for pt := range points {
		sorted = append(sorted, pt)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})
	return sorted
}

func sortedActions(actions collections.Set[game.CellAction]) []game.CellAction {
	sorted := make([]game.CellAction, 0, actions.Len())
	for action := range actions {
		sorted = append(sorted, action)
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Action < b.Action
	})
	return sorted
}
