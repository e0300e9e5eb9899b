package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/sapper/config"
	"github.com/they4kman/sapper/game"
	"github.com/they4kman/sapper/storage"
	"golang.org/x/image/colornames"
)

const (
	pageIntro = "intro"
	pageMenu  = "menu"
	pageGame  = "game"

	headerHeight   = 50
	minWindowWidth = 260
	menuWidth      = 320
	buttonHeight   = 40
	buttonSpacing  = 12
)

// Scoreboard supplies the best time shown next to each level in the menu
type Scoreboard interface {
	BestTimes(difficulty string, limit int) ([]storage.Result, error)
}

type app struct {
	win          *pixelgl.Window
	gui          *GUI
	gameConfig   game.GameConfig
	difficulties config.Difficulties
	scoreboard   Scoreboard

	session *game.Session
	// Time since the session ended
	sinceEnd time.Duration
	// Shown in the menu after a failure to start a game
	lastError string
}

// Run opens the window and runs the intro, menu and games until the window is
// closed or Quit is chosen. It must be called from pixelgl.Run.
//
// If gameConfig carries a snapshot, the menu is skipped and that board is
// played first.
func Run(gameConfig game.GameConfig, difficulties config.Difficulties, scoreboard Scoreboard) error {
	cfg := pixelgl.WindowConfig{
		Title:  "sapper",
		Bounds: pixel.R(0, 0, menuWidth, menuHeight(difficulties)),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return err
	}

	a := &app{
		win:          win,
		gui:          NewGUI(),
		gameConfig:   gameConfig,
		difficulties: difficulties,
		scoreboard:   scoreboard,
	}

	if gameConfig.Snapshot != nil {
		a.startGame()
	} else {
		a.openIntro()
	}

	var (
		frames = 0
		second = time.Tick(time.Second)
		last   = time.Now()
	)

	for !win.Closed() {
		dt := time.Since(last)
		last = time.Now()

		if quit := a.handle(a.gui.HandleInput(win)); quit {
			win.SetClosed(true)
			break
		}
		a.gui.Update(dt)
		a.update(dt)

		win.Clear(colornames.Gainsboro)
		a.gui.Draw(win)
		win.Update()

		frames++
		select {
		case <-second:
			win.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Title, frames))
			frames = 0
		default:
		}
	}

	return nil
}

func menuHeight(difficulties config.Difficulties) float64 {
	rows := len(difficulties.Levels) + 1
	return float64(headerHeight*2 + rows*(buttonHeight+buttonSpacing) + buttonSpacing)
}

// handle acts on an event raised by the GUI. It reports whether to quit.
func (a *app) handle(event Event) bool {
	switch event.Kind {
	case EventQuit:
		logrus.Info("quitting")
		return true
	case EventMenu:
		a.openMenu()
	case EventPlay:
		difficulty, err := a.difficulties.Get(event.Difficulty)
		if err != nil {
			a.lastError = err.Error()
			a.openMenu()
			break
		}
		a.gameConfig.Difficulty = difficulty
		a.startGame()
	case EventRestart:
		a.gameConfig = a.gameConfig.Next(a.session)
		a.startGame()
	}
	return false
}

// update returns to the menu once a finished board was shown long enough
func (a *app) update(dt time.Duration) {
	if a.gui.ActivePage() != pageGame || a.session == nil || !a.session.IsOver() {
		return
	}

	a.sinceEnd += dt
	if a.sinceEnd >= a.gameConfig.EndDelay {
		a.openMenu()
	}
}

func (a *app) openIntro() {
	bounds := a.win.Bounds()
	title := NewLabel(bounds, "sapper", 4)
	a.gui.SetPage(pageIntro, NewIntro(title))
	a.gui.OpenPage(pageIntro)
}

func (a *app) openMenu() {
	if a.session != nil {
		a.gameConfig = a.gameConfig.Next(a.session)
		a.session = nil
	}
	a.win.SetBounds(pixel.R(0, 0, menuWidth, menuHeight(a.difficulties)))
	bounds := a.win.Bounds()

	top := bounds.Max.Y - headerHeight*2
	title := NewLabel(pixel.R(0, top, bounds.W(), bounds.Max.Y), "sapper", 3)

	widgets := []Widget{title}
	if a.lastError != "" {
		errorLabel := NewLabel(pixel.R(0, top, bounds.W(), top+headerHeight/2), a.lastError, 1)
		errorLabel.Color = colornames.Red
		widgets = append(widgets, errorLabel)
		a.lastError = ""
	}

	row := func(i int) pixel.Rect {
		maxY := top - float64(i*(buttonHeight+buttonSpacing)) - buttonSpacing
		return pixel.R(buttonSpacing, maxY-buttonHeight, bounds.W()-buttonSpacing, maxY)
	}

	for i, level := range a.difficulties.Levels {
		name := level.Name
		button := NewButton(row(i), a.levelCaption(level), func() Event {
			return Event{Kind: EventPlay, Difficulty: name}
		})
		widgets = append(widgets, button)
	}
	widgets = append(widgets, NewButton(row(len(a.difficulties.Levels)), "Quit", func() Event {
		return Event{Kind: EventQuit}
	}), menuKeys{})

	a.gui.SetPage(pageMenu, widgets...)
	a.gui.OpenPage(pageMenu)
}

func (a *app) levelCaption(level config.Difficulty) string {
	if a.scoreboard == nil {
		return level.Name
	}

	best, err := a.scoreboard.BestTimes(level.Name, 1)
	if err != nil {
		logrus.WithError(err).WithField("difficulty", level.Name).Warn("could not read best time")
		return level.Name
	}
	if len(best) == 0 {
		return level.Name
	}
	return fmt.Sprintf("%s  %s", level.Name, formatClock(best[0].Duration))
}

func (a *app) startGame() {
	session, err := a.gameConfig.NewSession()
	if err != nil {
		logrus.WithError(err).Error("could not start a game")
		a.lastError = "could not start a game"
		a.gameConfig.Snapshot = nil
		a.openMenu()
		return
	}
	a.session = session
	a.sinceEnd = 0

	difficulty := session.Difficulty()
	cellSize := float64(difficulty.CellSize)
	width := math.Max(float64(session.Board().Width())*cellSize, minWindowWidth)
	height := float64(session.Board().Height())*cellSize + headerHeight
	a.win.SetBounds(pixel.R(0, 0, width, height))

	bounds := a.win.Bounds()
	topLeft := pixel.V(bounds.Min.X, bounds.Max.Y)
	boardTopLeft := topLeft.Sub(pixel.V(0, headerHeight))
	header := func(minX, maxX float64) pixel.Rect {
		return pixel.R(minX, bounds.Max.Y-headerHeight, maxX, bounds.Max.Y)
	}

	view := NewBoardView(session, boardTopLeft)
	counter := &MineCounter{Label: NewLabel(header(0, width/3), "", 2), Session: session}
	clock := NewClock(header(width/3, 2*width/3), session.Elapsed)
	backRect := header(2*width/3, width)
	backRect = pixel.R(
		backRect.Min.X+buttonSpacing/2, backRect.Min.Y+buttonSpacing/2,
		backRect.Max.X-buttonSpacing/2, backRect.Max.Y-buttonSpacing/2,
	)
	back := NewButton(backRect, "Menu", func() Event {
		return Event{Kind: EventMenu}
	})
	back.Scale = 1.5

	a.gui.SetPage(pageGame, view, counter, clock, back)
	a.gui.OpenPage(pageGame)
}

// MineCounter shows how many mines are left unflagged, and the result once
// the game is over
type MineCounter struct {
	*Label
	Session *game.Session
}

func (counter *MineCounter) Update(time.Duration) {
	counter.Color = colornames.Black
	counter.Text = fmt.Sprintf("%03d", counter.Session.MinesLeft())

	switch counter.Session.State() {
	case game.Won:
		counter.Text += " WIN!"
		counter.Color = colornames.Green
	case game.Lost:
		counter.Text += " LOSE"
		counter.Color = colornames.Red
	case game.Paused:
		counter.Text += " ||"
	}
}

type menuKeys struct{}

func (menuKeys) HandleInput(win *pixelgl.Window) Event {
	if win.JustPressed(pixelgl.KeyEscape) {
		return Event{Kind: EventQuit}
	}
	return none
}
