package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/talentops/talentops/internal/domain"
	"github.com/talentops/talentops/internal/gateway"
	"github.com/talentops/talentops/internal/logger"
	"github.com/talentops/talentops/internal/schema"
)

// ATSService implements the recruitment workflows on top of the generic
// gateway: jobs, candidates, interviews, feedback, and offers.
type ATSService struct {
	gw *gateway.Gateway
}

// NewATSService creates an ATSService bound to a gateway.
func NewATSService(gw *gateway.Gateway) *ATSService {
	return &ATSService{gw: gw}
}

// CreateJob creates a job posting. The applicants counter always starts at
// zero regardless of what the caller sends.
func (s *ATSService) CreateJob(ctx context.Context, fields schema.Record, sess domain.Session) (schema.Record, error) {
	fields["applicants"] = 0
	if _, ok := fields["status"]; !ok {
		fields["status"] = string(domain.JobStatusDraft)
	}
	return s.gw.Create(ctx, schema.TableJobs, fields, sess.UserID, sess.OrgID)
}

// CreateCandidate creates a candidate and bumps the applicants counter of the
// referenced job. The counter adjustment is atomic in the store, so two
// concurrent applications both land.
func (s *ATSService) CreateCandidate(ctx context.Context, fields schema.Record, sess domain.Session) (schema.Record, error) {
	if _, ok := fields["stage"]; !ok {
		fields["stage"] = string(domain.StageApplied)
	}
	if _, ok := fields["appliedAt"]; !ok {
		fields["appliedAt"] = time.Now().UTC()
	}

	created, err := s.gw.Create(ctx, schema.TableCandidates, fields, sess.UserID, sess.OrgID)
	if err != nil {
		return nil, err
	}

	if jobID, _ := created["jobId"].(string); jobID != "" {
		if err := s.gw.AdjustCounter(ctx, schema.TableJobs, jobID, "applicants", 1, sess.UserID, sess.OrgID); err != nil {
			logger.FromContext(ctx).WithError(err).WithField(logger.FieldEntityID, jobID).
				Warn("failed to increment applicants counter")
		}
	}
	return created, nil
}

// DeleteCandidate removes a candidate and decrements the applicants counter
// of the job they applied for. The candidate is read first so the job
// reference survives the delete.
func (s *ATSService) DeleteCandidate(ctx context.Context, id string, sess domain.Session) error {
	candidate, err := s.gw.Get(ctx, schema.TableCandidates, id, sess.OrgID)
	if err != nil {
		return fmt.Errorf("load candidate %s: %w", id, err)
	}

	if _, err := s.gw.Remove(ctx, schema.TableCandidates, id, sess.UserID, sess.OrgID); err != nil {
		return err
	}

	if jobID, _ := candidate["jobId"].(string); jobID != "" {
		if err := s.gw.AdjustCounter(ctx, schema.TableJobs, jobID, "applicants", -1, sess.UserID, sess.OrgID); err != nil {
			logger.FromContext(ctx).WithError(err).WithField(logger.FieldEntityID, jobID).
				Warn("failed to decrement applicants counter")
		}
	}
	return nil
}

// MoveCandidateToStage advances (or rewinds) a candidate on the pipeline
// board.
// Parameters:
//   - id: candidate id.
//   - stage: target stage, must be one of the known pipeline stages.
// Returns:
//   - schema.Record: the updated candidate in application shape.
//   - error: non-nil if the stage is unknown or the update fails.
func (s *ATSService) MoveCandidateToStage(ctx context.Context, id string, stage domain.CandidateStage, sess domain.Session) (schema.Record, error) {
	valid := false
	for _, known := range domain.PipelineStages {
		if stage == known {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("unknown pipeline stage %q", stage)
	}
	return s.gw.Update(ctx, schema.TableCandidates, id, schema.Record{"stage": string(stage)}, sess.UserID, sess.OrgID)
}

// Pipeline returns the org's candidates grouped by stage, in board order.
// Stages with no candidates are present with an empty slice.
func (s *ATSService) Pipeline(ctx context.Context, sess domain.Session) map[domain.CandidateStage][]schema.Record {
	board := make(map[domain.CandidateStage][]schema.Record, len(domain.PipelineStages))
	for _, stage := range domain.PipelineStages {
		board[stage] = []schema.Record{}
	}
	for _, c := range s.gw.List(ctx, schema.TableCandidates, sess.OrgID) {
		stage := domain.CandidateStage(fmt.Sprint(c["stage"]))
		if _, ok := board[stage]; !ok {
			continue
		}
		board[stage] = append(board[stage], c)
	}
	return board
}

// InterviewInput carries everything needed to schedule or reschedule an
// interview. Mode and Interviewers have no columns of their own and are
// packed into the notes field before storage.
type InterviewInput struct {
	CandidateID   string
	CandidateName string
	JobID         string
	JobTitle      string
	PanelType     string
	ScheduledAt   string // ISO 8601 date-time
	Mode          string
	Interviewers  []string
	Notes         string
}

// ScheduleInterview creates an interview round for a candidate.
func (s *ATSService) ScheduleInterview(ctx context.Context, in InterviewInput, sess domain.Session) (schema.Record, error) {
	fields := schema.Record{
		"candidateId":   in.CandidateID,
		"candidateName": in.CandidateName,
		"jobId":         in.JobID,
		"jobTitle":      in.JobTitle,
		"panelType":     in.PanelType,
		"scheduledAt":   in.ScheduledAt,
		"status":        string(domain.InterviewScheduled),
		"notes":         schema.PackNotes(in.Notes, in.Mode, in.Interviewers),
	}
	return s.gw.Create(ctx, schema.TableInterviews, fields, sess.UserID, sess.OrgID)
}

// RescheduleInterview updates the timing and panel details of an existing
// interview, repacking the notes metadata.
func (s *ATSService) RescheduleInterview(ctx context.Context, id string, in InterviewInput, sess domain.Session) (schema.Record, error) {
	fields := schema.Record{
		"panelType":   in.PanelType,
		"scheduledAt": in.ScheduledAt,
		"notes":       schema.PackNotes(in.Notes, in.Mode, in.Interviewers),
	}
	return s.gw.Update(ctx, schema.TableInterviews, id, fields, sess.UserID, sess.OrgID)
}

// SetInterviewStatus marks an interview completed or cancelled.
func (s *ATSService) SetInterviewStatus(ctx context.Context, id string, status domain.InterviewStatus, sess domain.Session) (schema.Record, error) {
	return s.gw.Update(ctx, schema.TableInterviews, id, schema.Record{"status": string(status)}, sess.UserID, sess.OrgID)
}

// UpcomingInterviews lists interviews still in the scheduled state whose date
// is today or later, soonest first.
func (s *ATSService) UpcomingInterviews(ctx context.Context, sess domain.Session) []schema.Record {
	today := time.Now().UTC().Format("2006-01-02")

	var out []schema.Record
	for _, iv := range s.gw.List(ctx, schema.TableInterviews, sess.OrgID) {
		status, _ := iv["status"].(string)
		if status != string(domain.InterviewScheduled) {
			continue
		}
		scheduledAt, _ := iv["scheduledAt"].(string)
		if len(scheduledAt) >= 10 && scheduledAt[:10] < today {
			continue
		}
		out = append(out, iv)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := out[i]["scheduledAt"].(string)
		b, _ := out[j]["scheduledAt"].(string)
		return a < b
	})
	return out
}

// SubmitFeedback records an interviewer scorecard for a candidate.
func (s *ATSService) SubmitFeedback(ctx context.Context, fields schema.Record, sess domain.Session) (schema.Record, error) {
	return s.gw.Create(ctx, schema.TableFeedback, fields, sess.UserID, sess.OrgID)
}

// CreateOffer extends an offer to a candidate.
func (s *ATSService) CreateOffer(ctx context.Context, fields schema.Record, sess domain.Session) (schema.Record, error) {
	if _, ok := fields["status"]; !ok {
		fields["status"] = string(domain.OfferDraft)
	}
	return s.gw.Create(ctx, schema.TableOffers, fields, sess.UserID, sess.OrgID)
}

// SetOfferStatus moves an offer through its lifecycle. Accepting an offer
// also moves the candidate to the hired stage.
func (s *ATSService) SetOfferStatus(ctx context.Context, id string, status domain.OfferStatus, sess domain.Session) (schema.Record, error) {
	updated, err := s.gw.Update(ctx, schema.TableOffers, id, schema.Record{"status": string(status)}, sess.UserID, sess.OrgID)
	if err != nil {
		return nil, err
	}

	if status == domain.OfferAccepted {
		if candidateID, _ := updated["candidateId"].(string); candidateID != "" {
			if _, err := s.MoveCandidateToStage(ctx, candidateID, domain.StageHired, sess); err != nil {
				logger.FromContext(ctx).WithError(err).WithField(logger.FieldEntityID, candidateID).
					Warn("offer accepted but candidate stage update failed")
			}
		}
	}
	return updated, nil
}
