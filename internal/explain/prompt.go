package explain

import (
	_ "embed"
	"strconv"
	"strings"

	"github.com/spigell/career-matcher/internal/utils"
)

//go:embed prompt.md
var promptTemplate string

const (
	descriptionLimit = 200
	notSpecified     = "Not specified"
)

// BuildPrompt fills the explanation template for one candidate and job.
func BuildPrompt(in *Input) string {
	if !in.valid() {
		return ""
	}

	r := strings.NewReplacer(
		"{{CANDIDATE_SKILLS}}", strings.Join(in.Candidate.Skills, ", "),
		"{{CANDIDATE_EXPERIENCE}}", orDefault(in.Candidate.ExperienceLevel.String(), notSpecified),
		"{{CANDIDATE_TRACK}}", orDefault(in.Candidate.PreferredTrack.String(), notSpecified),
		"{{JOB_TITLE}}", in.Job.Title,
		"{{JOB_SKILLS}}", strings.Join(in.Job.RequiredSkills, ", "),
		"{{JOB_EXPERIENCE}}", orDefault(in.Job.ExperienceLevel.String(), notSpecified),
		"{{JOB_DESCRIPTION}}", utils.TruncateRunes(in.Job.Description, descriptionLimit),
		"{{MATCH_SCORE}}", strconv.FormatFloat(in.Scores.MatchScore, 'f', 1, 64),
	)

	return strings.TrimSpace(r.Replace(promptTemplate))
}
