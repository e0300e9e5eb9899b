package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/they4kman/sapper/config"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the difficulty levels",
	Long:  `Shows the configured difficulty levels, their board size and mine range.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulties, err := config.Load(configPath)
		if err != nil {
			return err
		}

		// Room for the default marker
		nameLen := len("Name")
		for _, level := range difficulties.Levels {
			if len(level.Name)+1 > nameLen {
				nameLen = len(level.Name) + 1
			}
		}

		fmt.Printf("  %-*s  %-7s  %s\n", nameLen, "Name", "Size", "Mines")
		fmt.Printf("  %-*s  %-7s  %s\n", nameLen, "----", "----", "-----")
		for _, level := range difficulties.Levels {
			name := level.Name
			if name == difficulties.Default {
				name += "*"
			}
			size := fmt.Sprintf("%dx%d", level.Width, level.Height)
			fmt.Printf("  %-*s  %-7s  %d-%d\n", nameLen, name, size, level.MinMines, level.MaxMines)
		}

		fmt.Println()
		fmt.Println("* default. Run 'sapper --difficulty <name>' to play a level.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(levelsCmd)
}
