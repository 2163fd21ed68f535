package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// teamsCmd lists the team folders of remote storage.
var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the team folders",
	Long:  `Lists the team folders of remote storage, or the cached teams when storage is unavailable.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		teams, err := rt.feature.Service().Teams(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list teams: %w", err)
		}

		for _, t := range teams {
			mark := " "
			if t.Slug == rt.cfg.Team.Slug() {
				mark = "*"
			}
			fmt.Printf("%s %-40s %s\n", mark, t.Name, t.Slug)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(teamsCmd)
}
