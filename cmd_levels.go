package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hellgrid/internal/world"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [n]",
	Short: "List the campaign levels",
	Long: `Shows every level of the campaign with its size, enemy count and exit
requirements. With a level number, prints that level's normalised grid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	defs, err := loadCampaign()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(defs) {
			return fmt.Errorf("level must be 1..%d, got %q", len(defs), args[0])
		}
		return printLevel(out, defs[n-1])
	}
	return listLevels(out, defs)
}

func listLevels(out io.Writer, defs []world.LevelDef) error {
	nameLen := len("Name")
	for _, d := range defs {
		if len(d.Name) > nameLen {
			nameLen = len(d.Name)
		}
	}

	fmt.Fprintf(out, "  #  %-*s  %-7s  %7s  %7s  %s\n", nameLen, "Name", "Size", "Enemies", "Pickups", "Exit")
	fmt.Fprintf(out, "  -  %-*s  %-7s  %7s  %7s  %s\n", nameLen, "----", "----", "-------", "-------", "----")
	for i, d := range defs {
		level, err := world.BuildLevel(d)
		if err != nil {
			return err
		}
		size := fmt.Sprintf("%dx%d", level.Width, level.Height)
		fmt.Fprintf(out, "%3d  %-*s  %-7s  %7d  %7d  %s\n",
			i+1, nameLen, level.Name, size, level.TotalEnemies, len(level.Pickups), exitRule(level))
	}
	return nil
}

// exitRule describes what the lift needs before it opens.
func exitRule(l *world.Level) string {
	if !l.HasExit {
		return "none"
	}
	var needs []string
	if l.RequireKey {
		needs = append(needs, "keycard")
	}
	if l.RequireClear {
		needs = append(needs, "clear")
	}
	if len(needs) == 0 {
		return "open"
	}
	return strings.Join(needs, "+")
}

func printLevel(out io.Writer, def world.LevelDef) error {
	level, err := world.BuildLevel(def)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%dx%d, exit: %s)\n", level.Name, level.Width, level.Height, exitRule(level))
	if level.Intro != "" {
		fmt.Fprintln(out, level.Intro)
	}
	fmt.Fprintln(out)
	for _, row := range level.Rows() {
		fmt.Fprintln(out, row)
	}
	return nil
}
