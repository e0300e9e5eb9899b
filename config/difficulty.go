// Package config provides the named difficulty levels a game can be started
// with, loaded from YAML.
package config

import (
	"math/rand"

	"github.com/pkg/errors"
)

// ErrInvalidDifficulty is returned for levels that cannot produce a board
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// ErrUnknownDifficulty is returned when a level name is not configured
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty describes the board of a named level. The mine count of each
// game is drawn from [MinMines, MaxMines].
type Difficulty struct {
	Name     string `yaml:"name"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	CellSize int    `yaml:"cell_size"` // in pixels
	MinMines int    `yaml:"min_mines"`
	MaxMines int    `yaml:"max_mines"`
}

func (difficulty Difficulty) Validate() error {
	if difficulty.Name == "" {
		return errors.Wrap(ErrInvalidDifficulty, "name must not be empty")
	}
	if difficulty.Width < 1 || difficulty.Height < 1 {
		return errors.Wrapf(ErrInvalidDifficulty, "%s: board must be at least 1x1, got %dx%d",
			difficulty.Name, difficulty.Width, difficulty.Height)
	}
	if difficulty.CellSize < 1 {
		return errors.Wrapf(ErrInvalidDifficulty, "%s: cell size must be positive, got %d",
			difficulty.Name, difficulty.CellSize)
	}
	numCells := difficulty.Width * difficulty.Height
	if difficulty.MinMines < 0 || difficulty.MinMines > difficulty.MaxMines || difficulty.MaxMines >= numCells {
		return errors.Wrapf(ErrInvalidDifficulty, "%s: mine range [%d, %d] must satisfy 0 <= min <= max < %d",
			difficulty.Name, difficulty.MinMines, difficulty.MaxMines, numCells)
	}
	return nil
}

// DrawMineCount picks a mine count uniformly from the level's range
func (difficulty Difficulty) DrawMineCount(rng *rand.Rand) int {
	return difficulty.MinMines + rng.Intn(difficulty.MaxMines-difficulty.MinMines+1)
}

// Custom returns a level with a fixed size and mine count, for boards given
// on the command line.
func Custom(width, height, numMines, cellSize int) Difficulty {
	return Difficulty{
		Name:     "custom",
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		MinMines: numMines,
		MaxMines: numMines,
	}
}

// Difficulties is the full set of configured levels
type Difficulties struct {
	Default string       `yaml:"default"`
	Levels  []Difficulty `yaml:"levels"`
}

func (difficulties Difficulties) Validate() error {
	if len(difficulties.Levels) == 0 {
		return errors.Wrap(ErrInvalidDifficulty, "no levels configured")
	}

	seen := make(map[string]struct{}, len(difficulties.Levels))
	for _, level := range difficulties.Levels {
		if err := level.Validate(); err != nil {
			return err
		}
		if _, dupe := seen[level.Name]; dupe {
			return errors.Wrapf(ErrInvalidDifficulty, "%s: configured twice", level.Name)
		}
		seen[level.Name] = struct{}{}
	}

	if difficulties.Default != "" {
		if _, ok := seen[difficulties.Default]; !ok {
			return errors.Wrapf(ErrUnknownDifficulty, "default %q", difficulties.Default)
		}
	}
	return nil
}

// Get returns the level with the given name. An empty name selects the
// default level, or the first one if no default is set.
func (difficulties Difficulties) Get(name string) (Difficulty, error) {
	if name == "" {
		name = difficulties.Default
	}
	if name == "" && len(difficulties.Levels) > 0 {
		return difficulties.Levels[0], nil
	}

	for _, level := range difficulties.Levels {
		if level.Name == name {
			return level, nil
		}
	}
	return Difficulty{}, errors.Wrapf(ErrUnknownDifficulty, "%q", name)
}

func (difficulties Difficulties) Names() []string {
	names := make([]string, len(difficulties.Levels))
	for i, level := range difficulties.Levels {
		names[i] = level.Name
	}
	return names
}
