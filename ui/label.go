package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var basicAtlas = text.NewAtlas(basicfont.Face7x13, text.ASCII)

// Label draws a line of text centered in its rect, over an optional background
type Label struct {
	Rect       pixel.Rect
	Text       string
	Color      color.Color
	Background color.Color
	Scale      float64

	txt *text.Text
	imd *imdraw.IMDraw
}

func NewLabel(rect pixel.Rect, s string, scale float64) *Label {
	return &Label{
		Rect:  rect,
		Text:  s,
		Color: colornames.Black,
		Scale: scale,
		txt:   text.New(pixel.ZV, basicAtlas),
		imd:   imdraw.New(nil),
	}
}

func (label *Label) Draw(target pixel.Target) {
	label.drawWith(target, label.Color, label.Background)
}

func (label *Label) drawWith(target pixel.Target, fg, bg color.Color) {
	if bg != nil {
		label.imd.Clear()
		label.imd.Color = bg
		label.imd.Push(label.Rect.Min, label.Rect.Max)
		label.imd.Rectangle(0)
		label.imd.Draw(target)
	}

	if label.Text == "" {
		return
	}

	scale := label.Scale
	if scale <= 0 {
		scale = 1
	}

	label.txt.Clear()
	label.txt.Color = fg
	fmt.Fprint(label.txt, label.Text)
	bounds := label.txt.Bounds()
	label.txt.Draw(target, pixel.IM.
		Moved(bounds.Center().Scaled(-1)).
		Scaled(pixel.ZV, scale).
		Moved(label.Rect.Center()))
}

// Button is a label that highlights under the mouse and raises an event when
// clicked
type Button struct {
	*Label
	Hover  color.Color
	Action func() Event

	hovered bool
}

func NewButton(rect pixel.Rect, s string, action func() Event) *Button {
	label := NewLabel(rect, s, 2)
	label.Background = colornames.Silver
	return &Button{
		Label:  label,
		Hover:  colornames.Lightsteelblue,
		Action: action,
	}
}

func (button *Button) HandleInput(win *pixelgl.Window) Event {
	button.hovered = win.MouseInsideWindow() && button.Rect.Contains(win.MousePosition())
	if button.hovered && win.JustPressed(pixelgl.MouseButtonLeft) && button.Action != nil {
		return button.Action()
	}
	return none
}

func (button *Button) Draw(target pixel.Target) {
	bg := button.Background
	if button.hovered {
		bg = button.Hover
	}
	button.drawWith(target, button.Color, bg)
}

// Clock shows a duration as mm:ss
type Clock struct {
	*Label
	Elapsed func() time.Duration
}

func NewClock(rect pixel.Rect, elapsed func() time.Duration) *Clock {
	return &Clock{
		Label:   NewLabel(rect, formatClock(0), 2),
		Elapsed: elapsed,
	}
}

func (clock *Clock) Update(time.Duration) {
	clock.Text = formatClock(clock.Elapsed())
}

func formatClock(d time.Duration) string {
	seconds := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
