package service

import (
	"context"
	"time"

	"github.com/talentops/talentops/internal/domain"
	"github.com/talentops/talentops/internal/schema"
)

// asTime tolerates timestamps surfacing either parsed or as text, depending
// on the driver.
func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// HiringAnalytics is the recruitment overview shown on the executive
// dashboard.
type HiringAnalytics struct {
	TotalJobs       int            `json:"totalJobs"`
	PublishedJobs   int            `json:"publishedJobs"`
	TotalCandidates int            `json:"totalCandidates"`
	StageCounts     map[string]int `json:"stageCounts"`
	ScheduledRounds int            `json:"scheduledRounds"`
	OffersByStatus  map[string]int `json:"offersByStatus"`
	// RecentCandidates counts applications from the last 30 days.
	RecentCandidates int `json:"recentCandidates"`
	// ConversionRate is hired candidates over all candidates, 0 when the
	// pipeline is empty.
	ConversionRate float64 `json:"conversionRate"`
}

// Analytics computes the hiring overview for one org. Built on fail-soft
// reads, so a storage outage yields zeroed numbers rather than an error.
func (s *ATSService) Analytics(ctx context.Context, sess domain.Session) HiringAnalytics {
	out := HiringAnalytics{
		StageCounts:    map[string]int{},
		OffersByStatus: map[string]int{},
	}
	for _, stage := range domain.PipelineStages {
		out.StageCounts[string(stage)] = 0
	}

	for _, job := range s.gw.List(ctx, schema.TableJobs, sess.OrgID) {
		out.TotalJobs++
		if status, _ := job["status"].(string); status == string(domain.JobStatusPublished) {
			out.PublishedJobs++
		}
	}

	hired := 0
	cutoff := time.Now().UTC().AddDate(0, 0, -30)
	for _, c := range s.gw.List(ctx, schema.TableCandidates, sess.OrgID) {
		out.TotalCandidates++
		if ts, ok := asTime(c["createdAt"]); ok && ts.After(cutoff) {
			out.RecentCandidates++
		}
		stage, _ := c["stage"].(string)
		if _, ok := out.StageCounts[stage]; ok {
			out.StageCounts[stage]++
		}
		if stage == string(domain.StageHired) {
			hired++
		}
	}
	if out.TotalCandidates > 0 {
		out.ConversionRate = round2(float64(hired) / float64(out.TotalCandidates))
	}

	for _, iv := range s.gw.List(ctx, schema.TableInterviews, sess.OrgID) {
		if status, _ := iv["status"].(string); status == string(domain.InterviewScheduled) {
			out.ScheduledRounds++
		}
	}

	for _, offer := range s.gw.List(ctx, schema.TableOffers, sess.OrgID) {
		status, _ := offer["status"].(string)
		out.OffersByStatus[status]++
	}

	return out
}
