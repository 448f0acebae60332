package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Recommend learning resources for a candidate",
	Run: func(cmd *cobra.Command, _ []string) {
		resources(cmd)
	},
}

func init() {
	rootCmd.AddCommand(resourcesCmd)

	resourcesCmd.Flags().StringP("user", "u", "", "candidate id")
	resourcesCmd.Flags().IntP("limit", "l", 0, "how many resources to return (default from recommend.resources-limit)")

	resourcesCmd.MarkFlagRequired("user")
}

func resources(cmd *cobra.Command) {
	ctx := context.Background()

	d := mustDeps(ctx)
	defer d.Close()

	rawUser, _ := cmd.Flags().GetString("user")
	limit, _ := cmd.Flags().GetInt("limit")

	userID, err := parseUserID(rawUser)
	if err != nil {
		d.logger.Fatal("parsing flags", zap.Error(err))
	}

	recs, err := d.service.LearningRecommendations(ctx, userID, limit)
	if err != nil {
		d.logger.Fatal("recommending resources", zap.Error(err))
	}

	if err := printJSON(cmd.OutOrStdout(), recs); err != nil {
		d.logger.Fatal("printing result", zap.Error(err))
	}
}
