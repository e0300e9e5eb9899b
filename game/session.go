package game

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/sapper/config"
	"github.com/they4kman/sapper/minefield"
)

// Board is the read-only side of a minefield, for renderers and directors
type Board interface {
	Width() int
	Height() int
	Mines() int
	Flags() int
	SafeCells() int
	RevealedCells() int
	InBounds(x, y int) bool
	Neighbors(x, y int) []minefield.Point
	VisibleCell(x, y int) (minefield.Cell, error)
	WrongFlag(x, y int) (bool, error)
}

// Session is a single game, from the first click until a win or a loss.
type Session struct {
	difficulty config.Difficulty
	seed       int64
	rand       *rand.Rand
	field      *minefield.Minefield

	state     State
	clock     func() time.Time
	startedAt time.Time
	endedAt   time.Time
	pausedAt  time.Time
	pausedFor time.Duration

	director  Director
	onGameEnd func(*Session)
}

func newSession(difficulty config.Difficulty, seed int64, rng *rand.Rand, field *minefield.Minefield, clock func() time.Time) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		difficulty: difficulty,
		seed:       seed,
		rand:       rng,
		field:      field,
		state:      Ongoing,
		clock:      clock,
		startedAt:  clock(),
	}
}

func (session *Session) Difficulty() config.Difficulty {
	return session.difficulty
}

func (session *Session) Seed() int64 {
	return session.seed
}

// Rand is the session's random source, for directors and follow-up seeds
func (session *Session) Rand() *rand.Rand {
	return session.rand
}

func (session *Session) Board() Board {
	return session.field
}

func (session *Session) State() State {
	return session.state
}

func (session *Session) CanPlay() bool {
	return session.state == Ongoing
}

func (session *Session) IsOver() bool {
	return session.state == Won || session.state == Lost
}

// MinesLeft is the number of mines minus the number of flags placed
func (session *Session) MinesLeft() int {
	return session.field.Mines() - session.field.Flags()
}

// Elapsed is the play time so far, not counting pauses. It stops when the
// game ends.
func (session *Session) Elapsed() time.Duration {
	end := session.clock()
	switch {
	case !session.endedAt.IsZero():
		end = session.endedAt
	case session.state == Paused:
		end = session.pausedAt
	}
	return end.Sub(session.startedAt) - session.pausedFor
}

func (session *Session) TogglePaused() {
	switch session.state {
	case Ongoing:
		session.state = Paused
		session.pausedAt = session.clock()
	case Paused:
		session.state = Ongoing
		session.pausedFor += session.clock().Sub(session.pausedAt)
	}
}

// Apply performs a single input event. It reports whether any cell changed.
// Events arriving after the game ended, or while paused, are ignored.
func (session *Session) Apply(action CellAction) (bool, error) {
	if !session.CanPlay() {
		return false, nil
	}

	var (
		outcome minefield.Outcome
		err     error
	)
	switch action.Action {
	case Click:
		outcome, err = session.field.Open(action.X, action.Y)
	case MiddleClick:
		outcome, err = session.field.Chord(action.X, action.Y)
	case RightClick:
		changed, err := session.field.ToggleFlag(action.X, action.Y)
		return changed, err
	default:
		return false, errors.Errorf("unknown action %v", action.Action)
	}
	if err != nil {
		return false, errors.Wrapf(err, "%v", action)
	}

	switch {
	case outcome == minefield.Loss:
		session.field.RevealMines()
		session.end(Lost)
	case outcome == minefield.Safe && session.field.Cleared():
		session.field.FlagMines()
		session.end(Won)
	}
	return outcome != minefield.Noop, nil
}

// Step asks the director for its next actions and applies them. It returns
// how many actions were applied.
func (session *Session) Step() (int, error) {
	if session.director == nil || !session.CanPlay() {
		return 0, nil
	}

	applied := 0
	for _, action := range session.director.Act() {
		if !session.CanPlay() {
			break
		}

		logrus.WithField("action", action).Debug("director acted")
		if _, err := session.Apply(action); err != nil {
			return applied, errors.Wrap(err, "director")
		}
		applied++
	}
	return applied, nil
}

func (session *Session) HasDirector() bool {
	return session.director != nil
}

func (session *Session) start(director Director, onGameEnd func(*Session)) {
	session.director = director
	session.onGameEnd = onGameEnd
	if session.director != nil {
		session.director.Init(session)
	}

	logrus.WithFields(logrus.Fields{
		"difficulty": session.difficulty.Name,
		"width":      session.field.Width(),
		"height":     session.field.Height(),
		"mines":      session.field.Mines(),
		"seed":       session.seed,
	}).Info("game started")
}

func (session *Session) end(state State) {
	session.state = state
	session.endedAt = session.clock()

	if session.director != nil {
		session.director.End()
	}

	logrus.WithFields(logrus.Fields{
		"state":   state,
		"elapsed": session.Elapsed().Round(time.Millisecond),
	}).Info("game ended")

	if session.onGameEnd != nil {
		session.onGameEnd(session)
	}
}

// Snapshot captures the board and seed of the session
func (session *Session) Snapshot() (*BoardSnapshot, error) {
	text, err := session.field.MarshalText()
	if err != nil {
		return nil, err
	}
	return &BoardSnapshot{
		Seed:            session.seed,
		Difficulty:      session.difficulty.Name,
		SerializedBoard: string(text),
	}, nil
}
