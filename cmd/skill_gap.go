package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var skillGapCmd = &cobra.Command{
	Use:   "skill-gap",
	Short: "Compare a candidate's skills with what jobs for a role require",
	Run: func(cmd *cobra.Command, _ []string) {
		skillGap(cmd)
	},
}

func init() {
	rootCmd.AddCommand(skillGapCmd)

	skillGapCmd.Flags().StringP("user", "u", "", "candidate id")
	skillGapCmd.Flags().StringP("role", "r", "", "target role (default is the candidate's first target role)")

	skillGapCmd.MarkFlagRequired("user")
}

func skillGap(cmd *cobra.Command) {
	ctx := context.Background()

	d := mustDeps(ctx)
	defer d.Close()

	rawUser, _ := cmd.Flags().GetString("user")
	role, _ := cmd.Flags().GetString("role")

	userID, err := parseUserID(rawUser)
	if err != nil {
		d.logger.Fatal("parsing flags", zap.Error(err))
	}

	report, err := d.service.SkillGap(ctx, userID, role)
	if err != nil {
		d.logger.Fatal("analyzing skill gap", zap.Error(err), zap.String("role", role))
	}

	if err := printJSON(cmd.OutOrStdout(), report); err != nil {
		d.logger.Fatal("printing result", zap.Error(err))
	}
}
