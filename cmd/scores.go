package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/they4kman/sapper/config"
	"github.com/they4kman/sapper/storage"
)

const bestTimesShown = 10

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show the best times of a difficulty",
	Long: `Display the fastest won games of a difficulty, and how many games
were won and played. Without a difficulty, the configured default is shown.

Examples:
  sapper scores
  sapper scores hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(cmd *cobra.Command, args []string) error {
	difficulties, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	difficulty, err := difficulties.Get(name)
	if err != nil {
		return err
	}

	if dbPath == "" {
		return errors.New("no results database given")
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	best, err := store.BestTimes(difficulty.Name, bestTimesShown)
	if err != nil {
		return err
	}
	stats, err := store.Stats(difficulty.Name)
	if err != nil {
		return err
	}

	fmt.Printf("Best times - %s\n", difficulty.Name)
	fmt.Println()

	if len(best) == 0 {
		fmt.Println("No games won yet.")
	} else {
		fmt.Printf("  %-4s  %-6s  %-5s  %s\n", "Rank", "Time", "Mines", "Date")
		fmt.Printf("  %-4s  %-6s  %-5s  %s\n", "----", "----", "-----", "----")
		for i, result := range best {
			fmt.Printf("  %-4d  %-6s  %-5d  %s\n", i+1, formatDuration(result), result.Mines, result.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	fmt.Println()
	fmt.Printf("Won %d of %d games played\n", stats.Won, stats.Played)
	return nil
}

func formatDuration(result storage.Result) string {
	seconds := int(result.Duration.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func init() {
	rootCmd.AddCommand(scoresCmd)
}
