package matching

import (
	"sort"

	"github.com/spigell/career-matcher/internal/career"
	"github.com/spigell/career-matcher/internal/skills"
)

type ResourceRecommendation struct {
	Resource       career.LearningResource `json:"resource"`
	RelevanceScore float64                 `json:"relevance_score"`
	TargetSkills   []string                `json:"target_skills"`
}

// ResourceRelevance returns the share of skills taught by a resource that are new to the candidate,
// along with those new skills.
func ResourceRelevance(candidateSkills []string, resource *career.LearningResource) (float64, []string) {
	return relevance(skills.New(candidateSkills...), resource)
}

func relevance(have *skills.Set, resource *career.LearningResource) (float64, []string) {
	taught := skills.New(resource.RelatedSkills...)
	if taught.Len() == 0 {
		return 0, []string{}
	}

	fresh := taught.Difference(have)
	return float64(fresh.Len()) / float64(taught.Len()) * 100, fresh.Items()
}

// RankResources orders resources by relevance, most relevant first.
// Resources that teach nothing new are dropped. Ties keep input order.
func RankResources(candidateSkills []string, resources []career.LearningResource) []ResourceRecommendation {
	have := skills.New(candidateSkills...)

	ranked := make([]ResourceRecommendation, 0, len(resources))
	for i := range resources {
		score, target := relevance(have, &resources[i])
		if score <= 0 {
			continue
		}
		ranked = append(ranked, ResourceRecommendation{
			Resource:       resources[i],
			RelevanceScore: score,
			TargetSkills:   target,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	return ranked
}
