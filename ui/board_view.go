package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/sapper/game"
	"github.com/they4kman/sapper/minefield"
	"golang.org/x/image/colornames"
)

var countColors = map[int]color.Color{
	1: colornames.Blue,
	2: colornames.Green,
	3: colornames.Red,
	4: colornames.Navy,
	5: colornames.Maroon,
	6: colornames.Teal,
	7: colornames.Black,
	8: colornames.Gray,
}

// BoardView draws a session's board with its top-left corner at TopLeft and
// turns mouse clicks on it into cell actions.
type BoardView struct {
	Session  *game.Session
	TopLeft  pixel.Vec
	CellSize float64

	// Time between director steps while the game runs unpaused
	DirectorInterval time.Duration

	sinceStep time.Duration
	imd       *imdraw.IMDraw
	txt       *text.Text
}

func NewBoardView(session *game.Session, topLeft pixel.Vec) *BoardView {
	return &BoardView{
		Session:          session,
		TopLeft:          topLeft,
		CellSize:         float64(session.Difficulty().CellSize),
		DirectorInterval: 250 * time.Millisecond,
		imd:              imdraw.New(nil),
		txt:              text.New(pixel.ZV, basicAtlas),
	}
}

// CellAt maps a screen position to grid coordinates. ok is false outside the
// grid.
func (view *BoardView) CellAt(pos pixel.Vec) (x, y int, ok bool) {
	x = int(math.Floor((pos.X - view.TopLeft.X) / view.CellSize))
	y = int(math.Floor((view.TopLeft.Y - pos.Y) / view.CellSize))
	return x, y, view.Session.Board().InBounds(x, y)
}

func (view *BoardView) cellRect(x, y int) pixel.Rect {
	minX := view.TopLeft.X + float64(x)*view.CellSize
	maxY := view.TopLeft.Y - float64(y)*view.CellSize
	return pixel.R(minX, maxY-view.CellSize, minX+view.CellSize, maxY)
}

func (view *BoardView) HandleInput(win *pixelgl.Window) Event {
	session := view.Session

	switch {
	case win.JustPressed(pixelgl.KeyEscape):
		return Event{Kind: EventMenu}
	case session.IsOver() && win.JustPressed(pixelgl.KeyEnter):
		return Event{Kind: EventRestart}
	case win.JustPressed(pixelgl.KeySpace):
		session.TogglePaused()
	}

	// Perform single step while paused with Right Arrow
	if session.State() == game.Paused && (win.JustPressed(pixelgl.KeyRight) || win.Repeated(pixelgl.KeyRight)) {
		session.TogglePaused()
		view.step()
		session.TogglePaused()
	}

	if !win.MouseInsideWindow() {
		return none
	}
	x, y, ok := view.CellAt(win.MousePosition())
	if !ok {
		return none
	}

	var action game.CellAction
	switch {
	case win.JustPressed(pixelgl.MouseButtonLeft):
		action = game.ClickAt(x, y)
	case win.JustPressed(pixelgl.MouseButtonRight):
		action = game.RightClickAt(x, y)
	case win.JustPressed(pixelgl.MouseButtonMiddle):
		action = game.MiddleClickAt(x, y)
	default:
		return none
	}
	if _, err := session.Apply(action); err != nil {
		logrus.WithError(err).Error("could not apply click")
	}
	return none
}

func (view *BoardView) Update(dt time.Duration) {
	if !view.Session.HasDirector() || !view.Session.CanPlay() {
		return
	}

	view.sinceStep += dt
	if view.sinceStep >= view.DirectorInterval {
		view.sinceStep = 0
		view.step()
	}
}

func (view *BoardView) step() {
	if _, err := view.Session.Step(); err != nil {
		logrus.WithError(err).Error("director step failed")
	}
}

func (view *BoardView) Draw(target pixel.Target) {
	board := view.Session.Board()

	view.imd.Clear()
	view.txt.Clear()

	scale := view.CellSize / 20
	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			cell, err := board.VisibleCell(x, y)
			if err != nil {
				continue
			}
			rect := view.cellRect(x, y)
			view.drawCell(rect, cell)

			if cell.Status == minefield.Flagged {
				if wrong, _ := board.WrongFlag(x, y); wrong {
					view.drawCross(rect)
				}
			}

			if cell.Status == minefield.Revealed && cell.Count > 0 {
				view.txt.Color = countColors[cell.Count]
				view.txt.Dot = rect.Center().Scaled(1 / scale).Sub(pixel.V(3.5, 4.5))
				fmt.Fprint(view.txt, cell.Count)
			}
		}
	}

	view.imd.Draw(target)
	view.txt.Draw(target, pixel.IM.Scaled(pixel.ZV, scale))
}

func (view *BoardView) drawCell(rect pixel.Rect, cell minefield.Cell) {
	imd := view.imd

	fill := colornames.Silver
	switch cell.Status {
	case minefield.Revealed, minefield.RevealedMine:
		fill = colornames.Whitesmoke
	case minefield.ExplodedMine:
		fill = colornames.Red
	}
	imd.Color = fill
	imd.Push(rect.Min, rect.Max)
	imd.Rectangle(0)

	imd.Color = colornames.Gray
	imd.Push(rect.Min, rect.Max)
	imd.Rectangle(1)

	switch cell.Status {
	case minefield.Flagged:
		pole := rect.Min.Add(pixel.V(rect.W()*0.35, rect.H()*0.2))
		imd.Color = colornames.Black
		imd.Push(pole, pole.Add(pixel.V(0, rect.H()*0.6)))
		imd.Line(2)
		imd.Color = colornames.Red
		imd.Push(
			pole.Add(pixel.V(0, rect.H()*0.6)),
			pole.Add(pixel.V(rect.W()*0.35, rect.H()*0.45)),
			pole.Add(pixel.V(0, rect.H()*0.3)),
		)
		imd.Polygon(0)
	case minefield.RevealedMine, minefield.ExplodedMine:
		imd.Color = colornames.Black
		imd.Push(rect.Center())
		imd.Circle(rect.W()*0.25, 0)
	}
}

func (view *BoardView) drawCross(rect pixel.Rect) {
	inset := rect.W() * 0.15
	imd := view.imd
	imd.Color = colornames.Darkred
	imd.Push(rect.Min.Add(pixel.V(inset, inset)), rect.Max.Sub(pixel.V(inset, inset)))
	imd.Line(2)
	imd.Push(pixel.V(rect.Min.X+inset, rect.Max.Y-inset), pixel.V(rect.Max.X-inset, rect.Min.Y+inset))
	imd.Line(2)
}
