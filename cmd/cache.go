package cmd

import (
	"fmt"

	"scouting-hub/core/cache"
	"scouting-hub/core/team"

	"github.com/spf13/cobra"
)

// cacheCmd is the parent command for local cache maintenance.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or purge the local asset cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge [team]",
	Short: "Delete the cached files of a team",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		return rt.feature.Service().Purge(cmd.Context(), teamArg(args))
	},
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status [team]",
	Short: "Show what is cached for a team",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		st := rt.feature.Service().Status(cmd.Context(), teamArg(args))

		fmt.Println("\n--- Cache Status ---")
		fmt.Printf("Team:            %s (%s)\n", st.Team, st.TeamSlug)
		fmt.Printf("Cache dir:       %s\n", st.CacheDir)
		fmt.Printf("Storage online:  %v\n", st.StoreAvailable)
		fmt.Printf("Report cached:   %v\n", st.ReportCached)
		fmt.Printf("Images:          %d\n", st.ImageCount)
		if st.LastRun != nil {
			fmt.Printf("Last sync:       %s (%s, %d downloaded)\n",
				st.LastRun.StartedAt.Format("2006-01-02 15:04:05"), st.LastRun.State, st.LastRun.Downloaded)
		}

		entries, err := rt.cache.Stat(team.Slug(st.Team), cache.CategoryPlayers)
		if err != nil {
			return err
		}
		stale := 0
		for _, e := range entries {
			if e.Expired {
				stale++
			}
		}
		fmt.Printf("Stale files:     %d of %d (expiry %s)\n", stale, len(entries), rt.cache.Expiry())
		fmt.Println("--------------------")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	RootCmd.AddCommand(cacheCmd)
}
