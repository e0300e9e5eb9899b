// Package ui draws the game with pixel: an intro, a menu and the board,
// each a page of widgets.
package ui

import (
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
)

type EventKind int

const (
	EventNone EventKind = iota
	EventQuit
	EventMenu
	EventPlay
	EventRestart
)

// Event is what a widget asks of the application after handling input
type Event struct {
	Kind       EventKind
	Difficulty string
}

var none = Event{Kind: EventNone}

// Widget is anything placed on a page. Widgets opt into drawing, updating
// and input handling by implementing Drawer, Updater and InputHandler.
type Widget interface{}

type Drawer interface {
	Draw(target pixel.Target)
}

type Updater interface {
	Update(dt time.Duration)
}

type InputHandler interface {
	HandleInput(win *pixelgl.Window) Event
}

// GUI holds named pages of widgets and forwards calls to the active one
type GUI struct {
	pages      map[string][]Widget
	activePage string
}

func NewGUI() *GUI {
	return &GUI{pages: make(map[string][]Widget)}
}

// SetPage replaces the widgets of a page
func (gui *GUI) SetPage(name string, widgets ...Widget) {
	gui.pages[name] = widgets
}

func (gui *GUI) OpenPage(name string) {
	gui.activePage = name
}

func (gui *GUI) ActivePage() string {
	return gui.activePage
}

func (gui *GUI) Draw(target pixel.Target) {
	for _, widget := range gui.pages[gui.activePage] {
		if drawer, ok := widget.(Drawer); ok {
			drawer.Draw(target)
		}
	}
}

func (gui *GUI) Update(dt time.Duration) {
	for _, widget := range gui.pages[gui.activePage] {
		if updater, ok := widget.(Updater); ok {
			updater.Update(dt)
		}
	}
}

// HandleInput gives every widget of the active page a look at the input and
// returns the first event raised.
func (gui *GUI) HandleInput(win *pixelgl.Window) Event {
	event := none
	for _, widget := range gui.pages[gui.activePage] {
		handler, ok := widget.(InputHandler)
		if !ok {
			continue
		}
		if raised := handler.HandleInput(win); raised.Kind != EventNone && event.Kind == EventNone {
			event = raised
		}
	}
	return event
}
