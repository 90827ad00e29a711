package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentops/talentops/internal/api/middleware"
	"github.com/talentops/talentops/internal/domain"
	"github.com/talentops/talentops/internal/schema"
	"github.com/talentops/talentops/internal/service"
)

// PipelineHandler exposes the recruitment workflows: the candidate board,
// interview scheduling, feedback, offers, and the hiring overview.
type PipelineHandler struct {
	svc *service.ATSService
}

// NewPipelineHandler creates a PipelineHandler.
func NewPipelineHandler(svc *service.ATSService) *PipelineHandler {
	return &PipelineHandler{svc: svc}
}

// Board returns candidates grouped by pipeline stage.
func (h *PipelineHandler) Board(c *gin.Context) {
	sess := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{"data": h.svc.Pipeline(c.Request.Context(), sess)})
}

// CreateJob creates a job posting.
func (h *PipelineHandler) CreateJob(c *gin.Context) {
	var fields schema.Record
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	sess := middleware.GetSession(c)
	record, err := h.svc.CreateJob(c.Request.Context(), fields, sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": record})
}

// CreateCandidate adds a candidate and bumps the job's applicants counter.
func (h *PipelineHandler) CreateCandidate(c *gin.Context) {
	var fields schema.Record
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	sess := middleware.GetSession(c)
	record, err := h.svc.CreateCandidate(c.Request.Context(), fields, sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": record})
}

// DeleteCandidate removes a candidate and decrements the applicants counter.
func (h *PipelineHandler) DeleteCandidate(c *gin.Context) {
	sess := middleware.GetSession(c)
	if err := h.svc.DeleteCandidate(c.Request.Context(), c.Param("id"), sess); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MoveStage moves a candidate on the board.
func (h *PipelineHandler) MoveStage(c *gin.Context) {
	var body struct {
		Stage string `json:"stage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stage is required"})
		return
	}
	sess := middleware.GetSession(c)
	record, err := h.svc.MoveCandidateToStage(c.Request.Context(), c.Param("id"), domain.CandidateStage(body.Stage), sess)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}

type interviewBody struct {
	CandidateID   string   `json:"candidateId"`
	CandidateName string   `json:"candidateName"`
	JobID         string   `json:"jobId"`
	JobTitle      string   `json:"jobTitle"`
	PanelType     string   `json:"panelType"`
	ScheduledAt   string   `json:"scheduledAt" binding:"required"`
	Mode          string   `json:"mode"`
	Interviewers  []string `json:"interviewers"`
	Notes         string   `json:"notes"`
}

func (b interviewBody) input() service.InterviewInput {
	return service.InterviewInput{
		CandidateID:   b.CandidateID,
		CandidateName: b.CandidateName,
		JobID:         b.JobID,
		JobTitle:      b.JobTitle,
		PanelType:     b.PanelType,
		ScheduledAt:   b.ScheduledAt,
		Mode:          b.Mode,
		Interviewers:  b.Interviewers,
		Notes:         b.Notes,
	}
}

// ScheduleInterview books an interview round.
func (h *PipelineHandler) ScheduleInterview(c *gin.Context) {
	var body interviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduledAt is required"})
		return
	}
	sess := middleware.GetSession(c)
	record, err := h.svc.ScheduleInterview(c.Request.Context(), body.input(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": record})
}

// RescheduleInterview updates an interview's timing and panel.
func (h *PipelineHandler) RescheduleInterview(c *gin.Context) {
	var body interviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduledAt is required"})
		return
	}
	sess := middleware.GetSession(c)
	record, err := h.svc.RescheduleInterview(c.Request.Context(), c.Param("id"), body.input(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}

// SetInterviewStatus marks an interview completed or cancelled.
func (h *PipelineHandler) SetInterviewStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	sess := middleware.GetSession(c)
	record, err := h.svc.SetInterviewStatus(c.Request.Context(), c.Param("id"), domain.InterviewStatus(body.Status), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}

// UpcomingInterviews lists scheduled interviews from today on.
func (h *PipelineHandler) UpcomingInterviews(c *gin.Context) {
	sess := middleware.GetSession(c)
	interviews := h.svc.UpcomingInterviews(c.Request.Context(), sess)
	c.JSON(http.StatusOK, gin.H{"data": interviews, "count": len(interviews)})
}

// SubmitFeedback records an interviewer scorecard.
func (h *PipelineHandler) SubmitFeedback(c *gin.Context) {
	var fields schema.Record
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	sess := middleware.GetSession(c)
	record, err := h.svc.SubmitFeedback(c.Request.Context(), fields, sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": record})
}

// CandidateFeedback aggregates all scorecards for one candidate.
func (h *PipelineHandler) CandidateFeedback(c *gin.Context) {
	sess := middleware.GetSession(c)
	summary := h.svc.CandidateFeedback(c.Request.Context(), c.Param("id"), sess)
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// CreateOffer extends an offer.
func (h *PipelineHandler) CreateOffer(c *gin.Context) {
	var fields schema.Record
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	sess := middleware.GetSession(c)
	record, err := h.svc.CreateOffer(c.Request.Context(), fields, sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": record})
}

// SetOfferStatus moves an offer through its lifecycle.
func (h *PipelineHandler) SetOfferStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	sess := middleware.GetSession(c)
	record, err := h.svc.SetOfferStatus(c.Request.Context(), c.Param("id"), domain.OfferStatus(body.Status), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}

// Analytics returns the hiring overview for the org.
func (h *PipelineHandler) Analytics(c *gin.Context) {
	sess := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{"data": h.svc.Analytics(c.Request.Context(), sess)})
}
