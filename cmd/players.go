package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"scouting-hub/feature/scouting/drivesync"

	"github.com/spf13/cobra"
)

var (
	playersScope string
	playersForce bool
	playersJSON  bool
)

// playersCmd prints the reconciled players of a team.
var playersCmd = &cobra.Command{
	Use:   "players [team]",
	Short: "List the reconciled players of a team",
	Long: `Joins the cached player photos with the roster spreadsheet and prints the result.

Examples:
  # Configured team, rows of that team only
  players

  # Another team, matching against every roster row
  players "CB Rival" --scope all

  # JSON for scripting
  players --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		players := rt.feature.Service().Players(cmd.Context(), teamArg(args), drivesync.ParseScope(playersScope), playersForce)

		if playersJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(players)
		}

		fmt.Printf("\n%-4s %-30s %-24s %6s %6s  %s\n", "#", "Surnames", "Name", "PTS", "MIN", "Photo")
		for _, p := range players {
			mark := ""
			if !p.Matched {
				mark = " (no roster row)"
			}
			fmt.Printf("%-4d %-30s %-24s %6d %6.1f  %s%s\n", p.Jersey, p.Surnames, p.Given, p.Points, p.Minutes, p.ImageFile, mark)
		}
		fmt.Printf("\n%d players\n", len(players))
		return nil
	},
}

func init() {
	playersCmd.Flags().StringVar(&playersScope, "scope", "team", "Roster rows to match against: team or all")
	playersCmd.Flags().BoolVar(&playersForce, "force", false, "Purge the team cache and sync before listing")
	playersCmd.Flags().BoolVar(&playersJSON, "json", false, "Print JSON")
	RootCmd.AddCommand(playersCmd)
}
