package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snek/internal/config"
	"github.com/vovakirdan/tui-snek/internal/games/snek/levels"
	"github.com/vovakirdan/tui-snek/internal/games/snek/levels/formats"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [level]",
	Short: "List levels or show a level layout",
	Long: `Shows the built-in levels plus any found under --levels-dir.
With a level ID, prints that level's layout in level-file glyphs:

  .  empty     #  wall     S  start
  a  apple     l  lemon    b  bomb

Examples:
  snek levels
  snek levels 02-arena
  snek levels --levels-dir ./levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	if err := listLevels(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listLevels(args []string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.LoadSnek(flagConfig)
	if err != nil {
		return err
	}

	loader := levels.NewLoader(flagLevelsDir, cfg.Board.Width, cfg.Board.Height)
	loader.Logger = logger
	catalog, err := loader.Catalog()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		lvl, err := levels.Find(catalog, args[0])
		if err != nil {
			return err
		}
		printLevel(lvl)
		return nil
	}

	if len(catalog) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, lvl := range catalog {
		if len(lvl.ID) > maxIDLen {
			maxIDLen = len(lvl.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Size", "Name")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "----")

	// Print levels
	for _, lvl := range catalog {
		size := fmt.Sprintf("%dx%d", lvl.Data.Width, lvl.Data.Height)
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, lvl.ID, size, lvl.Name)
	}

	fmt.Println()
	fmt.Println("Run 'snek play <id>' to play a level.")
	return nil
}

// printLevel prints a level's header and layout.
func printLevel(lvl levels.Level) {
	fmt.Printf("%s (%s) %dx%d\n", lvl.Name, lvl.ID, lvl.Data.Width, lvl.Data.Height)
	if lvl.FilePath != "" {
		fmt.Printf("file: %s\n", lvl.FilePath)
	}
	if desc := lvl.Metadata["description"]; desc != "" {
		fmt.Println(desc)
	}
	fmt.Println()
	for _, row := range formats.FormatLayout(lvl.Data) {
		fmt.Println(row)
	}
}
