package random

import (
	"github.com/they4kman/sapper/game"
	"github.com/they4kman/sapper/minefield"
)

// Director clicks unopened cells in a random order fixed at Init
type Director struct {
	session *game.Session
	order   []minefield.Point
}

func (director *Director) Init(session *game.Session) {
	director.session = session

	board := session.Board()
	director.order = make([]minefield.Point, 0, board.Width()*board.Height())
	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			director.order = append(director.order, minefield.Point{X: x, Y: y})
		}
	}

	session.Rand().Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

func (director *Director) Act() []game.CellAction {
	if director.session == nil {
		return nil
	}

	board := director.session.Board()
	for _, pt := range director.order {
		cell, err := board.VisibleCell(pt.X, pt.Y)
		if err == nil && cell.Status == minefield.Unopened {
			return []game.CellAction{game.ClickAt(pt.X, pt.Y)}
		}
	}
	return nil
}

func (director *Director) End() {
	director.session = nil
}
