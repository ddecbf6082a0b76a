package algo

import (
	"sort"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// RankScores sorts scores by final score in descending order, breaking ties
// by ascending solution id so the ordering never depends on map iteration,
// then assigns 1-based ranks and returns the top 'limit' entries. If limit
// is greater than the number of scores, all scores are returned.
func RankScores(scores []schema.PriorityScore, limit int) []schema.PriorityScore {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].FinalScore != scores[j].FinalScore {
			return scores[i].FinalScore > scores[j].FinalScore
		}
		return scores[i].SbNID < scores[j].SbNID
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
	if len(scores) > limit {
		return scores[:limit]
	}
	return scores
}
