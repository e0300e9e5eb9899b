package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/sapper/config"
	"github.com/they4kman/sapper/director/constraint"
	"github.com/they4kman/sapper/director/random"
	"github.com/they4kman/sapper/game"
	"github.com/they4kman/sapper/storage"
	"github.com/they4kman/sapper/ui"
)

var gameConfig = game.NewGameConfig()

var (
	difficultyName string
	width, height  int
	numMines       int
	configPath     string
	snapshotPath   string
	dbPath         string
	directorChoice = directorValue("")
	logLevel       = logLevelValue(logrus.InfoLevel)
	defaultDBPath  = "~/.sapper/results.db"
)

var rootCmd = &cobra.Command{
	Use:   "sapper",
	Short: "Play manual or computer-driven Minesweeper",
	Long: `sapper is a Minesweeper game which supports human- or
computer-driven playing.

Run with no arguments to play manually
	sapper

Use the director flag to make the computer play for you
	sapper -d
	sapper --director random

Replay a saved board
	sapper --snapshot saved/20240101_120000_loss.yaml
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetLevel(logrus.Level(logLevel))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulties, err := config.Load(configPath)
		if err != nil {
			return err
		}

		difficulty, err := difficulties.Get(difficultyName)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("width") || cmd.Flags().Changed("height") || cmd.Flags().Changed("mines") {
			difficulty = customDifficulty(cmd, difficulty)
		}
		if err := difficulty.Validate(); err != nil {
			return err
		}
		gameConfig.Difficulty = difficulty

		if snapshotPath != "" {
			data, err := os.ReadFile(snapshotPath)
			if err != nil {
				return errors.Wrap(err, "cannot read snapshot")
			}
			if gameConfig.Snapshot, err = game.LoadSnapshot(string(data)); err != nil {
				return errors.Wrap(err, snapshotPath)
			}
			if !cmd.Flags().Changed("seed") && gameConfig.Snapshot.Seed != 0 {
				gameConfig.Seed = gameConfig.Snapshot.Seed
			}
		}

		gameConfig.NewDirector = directorChoice.constructor()

		var scoreboard ui.Scoreboard
		if dbPath != "" {
			store, err := storage.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			gameConfig.Results = store
			scoreboard = store
		}

		logrus.WithFields(logrus.Fields{
			"difficulty": difficulty.Name,
			"seed":       gameConfig.Seed,
			"director":   directorChoice.String(),
		}).Debug("starting")

		var runErr error
		pixelgl.Run(func() {
			runErr = ui.Run(gameConfig, difficulties, scoreboard)
		})
		return runErr
	},
}

// customDifficulty overrides the size and mine count of base with the flags
// given on the command line
func customDifficulty(cmd *cobra.Command, base config.Difficulty) config.Difficulty {
	w, h, mines := base.Width, base.Height, base.MinMines
	if cmd.Flags().Changed("width") {
		w = width
	}
	if cmd.Flags().Changed("height") {
		h = height
	}
	if cmd.Flags().Changed("mines") {
		mines = numMines
	}
	return config.Custom(w, h, mines, base.CellSize)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var directors = map[string]func() game.Director{
	"constraint": func() game.Director { return &constraint.Director{} },
	"random":     func() game.Director { return &random.Director{} },
}

type directorValue string

func (value *directorValue) String() string {
	if *value == "" {
		return "none"
	}
	return string(*value)
}

func (value *directorValue) Set(name string) error {
	if name == "none" {
		*value = ""
		return nil
	}
	if _, isValid := directors[name]; !isValid {
		return fmt.Errorf("invalid director %q (want one of %s)", name, strings.Join(directorNames(), ", "))
	}
	*value = directorValue(name)
	return nil
}

func (value *directorValue) Type() string {
	return "director"
}

func (value *directorValue) constructor() func() game.Director {
	return directors[string(*value)]
}

func directorNames() []string {
	names := []string{"none"}
	for name := range directors {
		names = append(names, name)
	}
	sort.Strings(names[1:])
	return names
}

type logLevelValue logrus.Level

func (value *logLevelValue) String() string {
	return logrus.Level(*value).String()
}

func (value *logLevelValue) Set(name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	*value = logLevelValue(level)
	return nil
}

func (value *logLevelValue) Type() string {
	return "level"
}

func init() {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	rootCmd.Flags().StringVar(&difficultyName, "difficulty", "", "Difficulty level to play (see the levels command); the configured default if empty")
	rootCmd.Flags().IntVarP(&width, "width", "w", 0, "Width of game board, in cells, overriding the difficulty")
	rootCmd.Flags().IntVarP(&height, "height", "h", 0, "Height of game board, in cells, overriding the difficulty")
	rootCmd.Flags().IntVarP(&numMines, "mines", "m", 0, "Number of mines to place in the game board, overriding the difficulty")
	rootCmd.Flags().Int64Var(&gameConfig.Seed, "seed", gameConfig.Seed, "Seed of the first game; later games draw theirs from it")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Board snapshot to play first")
	rootCmd.Flags().BoolVar(&gameConfig.LoadSnapshotFresh, "fresh", true, "Hide every cell of the snapshot, instead of resuming it")
	rootCmd.Flags().StringVar(&gameConfig.SavedSnapshotsDir, "snapshots-dir", "", "Directory where boards of finished games are saved")
	rootCmd.Flags().DurationVar(&gameConfig.EndDelay, "end-delay", gameConfig.EndDelay, "How long a finished board is shown before returning to the menu")
	rootCmd.Flags().VarP(&directorChoice, "director", "d", fmt.Sprintf("Make the computer play (%s)", strings.Join(directorNames(), ", ")))
	rootCmd.Flags().Lookup("director").NoOptDefVal = "constraint"

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Difficulties file (default ~/.sapper/difficulties.yaml, then configs/difficulties.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath, "Results database; empty to keep no results")
	rootCmd.PersistentFlags().Var(&logLevel, "log-level", "Logging level (trace, debug, info, warn, error)")
}
