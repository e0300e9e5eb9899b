package ui

import (
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
)

// Intro fades its label in, holds it, fades it out, then asks for the menu.
// Any click or key skips it.
type Intro struct {
	Label *Label

	FadeIn, Hold, FadeOut time.Duration

	shown time.Duration
}

func NewIntro(label *Label) *Intro {
	return &Intro{
		Label:   label,
		FadeIn:  time.Second,
		Hold:    time.Second,
		FadeOut: time.Second,
	}
}

func (intro *Intro) total() time.Duration {
	return intro.FadeIn + intro.Hold + intro.FadeOut
}

func (intro *Intro) Update(dt time.Duration) {
	intro.shown += dt
}

func (intro *Intro) alpha() float64 {
	switch {
	case intro.shown < intro.FadeIn:
		return InOutCubic(float64(intro.shown) / float64(intro.FadeIn))
	case intro.shown < intro.FadeIn+intro.Hold:
		return 1
	case intro.shown < intro.total():
		left := intro.total() - intro.shown
		return InOutCubic(float64(left) / float64(intro.FadeOut))
	default:
		return 0
	}
}

func (intro *Intro) Draw(target pixel.Target) {
	fg := pixel.ToRGBA(intro.Label.Color).Mul(pixel.Alpha(intro.alpha()))
	intro.Label.drawWith(target, fg, nil)
}

func (intro *Intro) HandleInput(win *pixelgl.Window) Event {
	skipped := win.JustPressed(pixelgl.MouseButtonLeft) ||
		win.JustPressed(pixelgl.KeyEnter) ||
		win.JustPressed(pixelgl.KeySpace) ||
		win.JustPressed(pixelgl.KeyEscape)
	if skipped || intro.shown >= intro.total() {
		return Event{Kind: EventMenu}
	}
	return none
}

func InOutCubic(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t * t
	} else {
		t -= 2
		return 0.5 * (t*t*t + 2)
	}
}
