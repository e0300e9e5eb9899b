package game

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/sapper/config"
	"github.com/they4kman/sapper/minefield"
	"github.com/they4kman/sapper/storage"
)

// ResultRecorder persists finished games
type ResultRecorder interface {
	RecordResult(storage.Result) (int64, error)
}

type GameConfig struct {
	Difficulty config.Difficulty

	Seed int64

	// Snapshot to load board configuration from
	Snapshot *BoardSnapshot
	// Whether to set all cells as unopened when loading the Snapshot
	LoadSnapshotFresh bool

	// Constructs the director of each new session, if set
	NewDirector func() Director

	// Path to directory where final snapshots of boards should be saved
	SavedSnapshotsDir string

	// Where finished games are recorded, if set
	Results ResultRecorder

	// How long a finished board stays on screen before returning to the menu
	EndDelay time.Duration

	// Time source of sessions; time.Now when nil
	Clock func() time.Time
}

func NewGameConfig() GameConfig {
	difficulty, _ := config.Default().Get("")

	return GameConfig{
		Difficulty:        difficulty,
		Seed:              time.Now().UnixNano(),
		Snapshot:          nil,
		LoadSnapshotFresh: true,
		NewDirector:       nil,
		EndDelay:          3 * time.Second,
	}
}

// NewSession starts a game. The mine count is drawn from the difficulty's
// range, unless the board comes from a snapshot.
func (gameConfig GameConfig) NewSession() (*Session, error) {
	rng := rand.New(rand.NewSource(gameConfig.Seed))
	difficulty := gameConfig.Difficulty

	var (
		field *minefield.Minefield
		err   error
	)
	if gameConfig.Snapshot == nil {
		if err := difficulty.Validate(); err != nil {
			return nil, err
		}
		numMines := difficulty.DrawMineCount(rng)
		field, err = minefield.New(difficulty.Width, difficulty.Height, numMines, rng.Int63())
	} else {
		field, err = minefield.UnmarshalGrid(gameConfig.Snapshot.SerializedBoard, gameConfig.LoadSnapshotFresh)
		if err == nil {
			if gameConfig.Snapshot.Difficulty != "" {
				difficulty.Name = gameConfig.Snapshot.Difficulty
			}
			difficulty.Width, difficulty.Height = field.Width(), field.Height()
			difficulty.MinMines, difficulty.MaxMines = field.Mines(), field.Mines()
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot create board")
	}

	session := newSession(difficulty, gameConfig.Seed, rng, field, gameConfig.Clock)

	// A snapshot may already be decided; it is shown as is, not replayed
	if field.Lost() || field.Cleared() {
		session.state = Won
		if field.Lost() {
			session.state = Lost
		}
		session.endedAt = session.startedAt
		return session, nil
	}

	var director Director
	if gameConfig.NewDirector != nil {
		director = gameConfig.NewDirector()
	}
	session.start(director, gameConfig.onGameEnd)
	return session, nil
}

// Next returns the config for the game following session: same settings,
// a seed drawn from the session, and no snapshot.
func (gameConfig GameConfig) Next(session *Session) GameConfig {
	next := gameConfig
	next.Seed = session.Rand().Int63()
	next.Snapshot = nil
	return next
}

func (gameConfig GameConfig) onGameEnd(session *Session) {
	gameConfig.saveSnapshot(session)
	gameConfig.recordResult(session)
}

func (gameConfig GameConfig) recordResult(session *Session) {
	if gameConfig.Results == nil {
		return
	}

	_, err := gameConfig.Results.RecordResult(storage.Result{
		Difficulty: session.difficulty.Name,
		Won:        session.state == Won,
		Duration:   session.Elapsed(),
		Mines:      session.field.Mines(),
		Seed:       session.seed,
	})
	if err != nil {
		logrus.WithError(err).Error("cannot record result")
	}
}

func (gameConfig GameConfig) saveSnapshot(session *Session) {
	if gameConfig.SavedSnapshotsDir == "" {
		return
	}

	stat, err := os.Stat(gameConfig.SavedSnapshotsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Error("cannot save snapshot")
			return
		}
		if err := os.MkdirAll(gameConfig.SavedSnapshotsDir, 0o755); err != nil {
			logrus.WithError(err).Error("cannot create snapshots directory")
			return
		}
	} else if !stat.Mode().IsDir() {
		logrus.WithField("path", gameConfig.SavedSnapshotsDir).Error("not a directory; cannot save snapshots to it")
		return
	}

	path := gameConfig.uniqueSnapshotPath(session, session.endedAt)

	snapshot, err := session.Snapshot()
	if err != nil {
		logrus.WithError(err).Error("cannot take snapshot")
		return
	}
	serialized, err := snapshot.Serialize()
	if err != nil {
		logrus.WithError(err).Error("cannot save snapshot")
		return
	}

	if err := os.WriteFile(path, []byte(serialized), 0o644); err != nil {
		logrus.WithError(err).Error("cannot save snapshot")
		return
	}
	logrus.WithField("path", path).Debug("saved snapshot")
}

func (gameConfig GameConfig) uniqueSnapshotPath(session *Session, t time.Time) string {
	filename := generateReplayFilename(session, t, 0)
	path := filepath.Join(gameConfig.SavedSnapshotsDir, filename)

	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(gameConfig.SavedSnapshotsDir, generateReplayFilename(session, t, n))
	}
}

func generateReplayFilename(session *Session, t time.Time, n int) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405_"))

	var stateStr string
	switch session.state {
	case Won:
		stateStr = "win"
	case Lost:
		stateStr = "loss"
	default:
		stateStr = "other"
	}
	filenameBuilder.WriteString(stateStr)

	if n > 0 {
		filenameBuilder.WriteString("_")
		filenameBuilder.WriteString(strconv.Itoa(n))
	}

	filenameBuilder.WriteString(".yaml")

	return filenameBuilder.String()
}
