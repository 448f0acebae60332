package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-matcher/internal/career"
	"github.com/spigell/career-matcher/internal/recommend"
)

const (
	PromptBack                = "back"
	PromptAppendToExcludeFile = "Append all jobs to exclude file"
	PromptPrintAll            = "Print all recommendations"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend jobs for a candidate ranked by match score",
	Run: func(cmd *cobra.Command, _ []string) {
		recommendJobs(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("user", "u", "", "candidate id")
	recommendCmd.Flags().IntP("limit", "l", 0, "how many jobs to return (default is all ranked jobs)")
	recommendCmd.Flags().String("experience", "", "experience level to search (fresher, junior, mid). Default is the candidate's level")
	recommendCmd.Flags().Float64("min-score", 0, "drop jobs scoring below this value")
	recommendCmd.Flags().BoolP("do-not-exclude-applied", "f", false, "do not exclude jobs if already applied")
	recommendCmd.Flags().StringP("exclude-file", "e", "", "special file with job ids to exclude. Default is unset.")
	recommendCmd.Flags().BoolP("interactive", "i", false, "browse recommendations interactively")

	recommendCmd.MarkFlagRequired("user")

	viper.BindPFlag("exclude-file", recommendCmd.Flags().Lookup("exclude-file"))
}

func recommendJobs(cmd *cobra.Command) {
	ctx := context.Background()

	d := mustDeps(ctx)
	defer d.Close()

	req, err := jobsRequest(cmd, d.config)
	if err != nil {
		d.logger.Fatal("parsing flags", zap.Error(err))
	}

	d.logger.Info("starting the recommendation",
		zap.Stringer("user_id", req.UserID),
		zap.String("experience_level", req.ExperienceLevel.String()),
	)

	results, err := d.service.RecommendJobs(ctx, req)
	if err != nil {
		d.logger.Fatal("recommending jobs", zap.Error(err))
	}

	if len(results) == 0 {
		d.logger.Info("exiting", zap.String("reason", "no jobs left after filters"))
		return
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive {
		if err := printJSON(cmd.OutOrStdout(), results); err != nil {
			d.logger.Fatal("printing result", zap.Error(err))
		}
		return
	}

	if err := browse(cmd, d.logger, results, req.ExcludeFile); err != nil {
		d.logger.Fatal("exiting", zap.Error(err))
	}
}

func jobsRequest(cmd *cobra.Command, config *Config) (recommend.JobsRequest, error) {
	rawUser, _ := cmd.Flags().GetString("user")
	rawLevel, _ := cmd.Flags().GetString("experience")
	limit, _ := cmd.Flags().GetInt("limit")
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	keepApplied, _ := cmd.Flags().GetBool("do-not-exclude-applied")

	userID, err := parseUserID(rawUser)
	if err != nil {
		return recommend.JobsRequest{}, err
	}

	level, err := career.ParseExperienceLevel(rawLevel)
	if err != nil {
		return recommend.JobsRequest{}, err
	}

	if minScore < 0 || minScore > 100 {
		return recommend.JobsRequest{}, fmt.Errorf("min-score must be within 0..100, got %v", minScore)
	}

	req := recommend.JobsRequest{
		UserID:          userID,
		ExperienceLevel: level,
		Limit:           limit,
		MinScore:        minScore,
		KeepApplied:     keepApplied,
		ExcludeFile:     viper.GetString("exclude-file"),
	}
	if config.Exclude != nil {
		req.ExcludeCompanies = config.Exclude.Companies
	}

	return req, nil
}

// browse lets the user inspect recommendations one by one until they go back.
func browse(cmd *cobra.Command, logger *zap.Logger, results []recommend.MatchAnalysis, excludeFile string) error {
	for {
		items := make([]string, 0, len(results)+3)
		for _, r := range results {
			items = append(items, fmt.Sprintf("%d %s / %s / %.1f", r.Job.ID, r.Job.Title, r.Job.Company, r.MatchScore))
		}

		if excludeFile != "" && len(results) != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}
		items = append(items, PromptPrintAll, PromptBack)

		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: items,
			Size:  10,
		}

		_, selected, err := jobPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		switch selected {
		case PromptBack:
			return nil
		case PromptPrintAll:
			if err := printJSON(cmd.OutOrStdout(), results); err != nil {
				return err
			}
		case PromptAppendToExcludeFile:
			if err := appendToExcludeFile(excludeFile, results); err != nil {
				return err
			}
			logger.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", len(results)))
			results = nil
		default:
			idx, err := findSelected(results, selected)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), results[idx]); err != nil {
				return err
			}
		}

		if len(results) == 0 {
			return nil
		}
	}
}

func findSelected(results []recommend.MatchAnalysis, label string) (int, error) {
	id, err := strconv.Atoi(strings.Split(label, " ")[0])
	if err != nil {
		return 0, fmt.Errorf("invalid selection %q", label)
	}

	for i := range results {
		if results[i].Job.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("there is no such job id %d", id)
}

func appendToExcludeFile(path string, results []recommend.MatchAnalysis) error {
	excluded, err := career.GetExcludedJobsFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		excluded, err = &career.ExcludedJobs{}, nil
	}
	if err != nil {
		return fmt.Errorf("reading exclude file: %w", err)
	}

	ids := make([]int, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.Job.ID)
	}
	excluded.Append(ids)

	return excluded.ToFile(path)
}
