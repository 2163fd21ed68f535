package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var forceSync bool

// syncCmd runs one sync pass from the command line.
var syncCmd = &cobra.Command{
	Use:   "sync [team]",
	Short: "Mirror a team's report and player photos into the local cache",
	Long: `Runs one sync pass for the team (the configured team when omitted).

Files younger than the cache expiry are kept; --force purges the team cache
and downloads everything again.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		res := rt.feature.Service().Sync(cmd.Context(), teamArg(args), forceSync)

		fmt.Println("\n--- Sync Result ---")
		fmt.Printf("Team:        %s (%s)\n", res.Team, res.TeamSlug)
		fmt.Printf("State:       %s\n", res.State)
		fmt.Printf("Success:     %v\n", res.Success)
		fmt.Printf("Report:      %s (%d pages)\n", orDash(res.ReportPath), res.ReportPages)
		fmt.Printf("Assets:      %d\n", len(res.Assets))
		fmt.Printf("Players:     %d\n", len(res.Players))
		fmt.Printf("Downloaded:  %d  Cached: %d  Failed: %d\n", res.Downloaded, res.Cached, res.Failed)
		fmt.Printf("Duration:    %s\n", res.Duration)
		for _, w := range res.Warnings {
			fmt.Printf("- %s\n", w)
		}
		fmt.Println("-------------------")

		if !res.Success {
			rt.logger.Warn("Sync produced no data", zap.String("state", string(res.State)))
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&forceSync, "force", false, "Purge the team cache and download everything")
	RootCmd.AddCommand(syncCmd)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
