package service

import (
	"context"
	"encoding/json"
	"math"

	"github.com/talentops/talentops/internal/domain"
	"github.com/talentops/talentops/internal/schema"
)

// FeedbackSummary aggregates interviewer scorecards for one candidate.
type FeedbackSummary struct {
	CandidateID     string             `json:"candidateId"`
	Count           int                `json:"count"`
	AverageRatings  map[string]float64 `json:"averageRatings"`
	Overall         float64            `json:"overall"`
	Recommendations map[string]int     `json:"recommendations"`
}

// AggregateFeedback computes per-criterion rating averages, an overall
// average across all criteria, and a recommendation tally from raw feedback
// records. Entries without ratings still count toward the recommendation
// tally.
func AggregateFeedback(candidateID string, entries []schema.Record) FeedbackSummary {
	summary := FeedbackSummary{
		CandidateID:    candidateID,
		Count:          len(entries),
		AverageRatings: map[string]float64{},
		Recommendations: map[string]int{
			string(domain.RecommendHire):   0,
			string(domain.RecommendHold):   0,
			string(domain.RecommendReject): 0,
		},
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	for _, entry := range entries {
		if rec, _ := entry["recommendation"].(string); rec != "" {
			summary.Recommendations[rec]++
		}
		for criterion, v := range asRatings(entry["ratings"]) {
			score, ok := asFloat(v)
			if !ok {
				continue
			}
			sums[criterion] += score
			counts[criterion]++
		}
	}

	var total float64
	for criterion, sum := range sums {
		avg := round2(sum / float64(counts[criterion]))
		summary.AverageRatings[criterion] = avg
		total += avg
	}
	if len(summary.AverageRatings) > 0 {
		summary.Overall = round2(total / float64(len(summary.AverageRatings)))
	}
	return summary
}

// CandidateFeedback loads all feedback rows for one candidate and aggregates
// them.
func (s *ATSService) CandidateFeedback(ctx context.Context, candidateID string, sess domain.Session) FeedbackSummary {
	var entries []schema.Record
	for _, f := range s.gw.List(ctx, schema.TableFeedback, sess.OrgID) {
		if f["candidateId"] == candidateID {
			entries = append(entries, f)
		}
	}
	return AggregateFeedback(candidateID, entries)
}

// asRatings accepts ratings either as a decoded map or as the raw JSON text
// the ratings column holds in storage.
func asRatings(v any) map[string]any {
	switch r := v.(type) {
	case map[string]any:
		return r
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			return nil
		}
		return m
	default:
		return nil
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
