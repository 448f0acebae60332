package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one candidate against one job and explain the result",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("user", "u", "", "candidate id")
	matchCmd.Flags().Int("job", 0, "job id")

	matchCmd.MarkFlagRequired("user")
	matchCmd.MarkFlagRequired("job")
}

func match(cmd *cobra.Command) {
	ctx := context.Background()

	d := mustDeps(ctx)
	defer d.Close()

	rawUser, _ := cmd.Flags().GetString("user")
	jobID, _ := cmd.Flags().GetInt("job")

	userID, err := parseUserID(rawUser)
	if err != nil {
		d.logger.Fatal("parsing flags", zap.Error(err))
	}

	candidate, err := d.source.Candidate(ctx, userID)
	if err != nil {
		d.logger.Fatal("loading candidate", zap.Error(err), zap.Stringer("user_id", userID))
	}

	job, err := d.source.Job(ctx, jobID)
	if err != nil {
		d.logger.Fatal("loading job", zap.Error(err), zap.Int("job_id", jobID))
	}

	analysis, err := d.service.Score(ctx, candidate, job)
	if err != nil {
		d.logger.Fatal("scoring", zap.Error(err))
	}

	if err := printJSON(cmd.OutOrStdout(), analysis); err != nil {
		d.logger.Fatal("printing result", zap.Error(err))
	}
}
