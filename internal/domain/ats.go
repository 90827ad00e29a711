package domain

import "time"

// JobStatus represents the publication status of a job posting.
type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusArchived  JobStatus = "archived"
)

// CandidateStage represents a candidate's position in the hiring pipeline.
type CandidateStage string

const (
	StageApplied     CandidateStage = "applied"
	StageShortlisted CandidateStage = "shortlisted"
	StageInterview   CandidateStage = "interview"
	StageOffer       CandidateStage = "offer"
	StageHired       CandidateStage = "hired"
	StageRejected    CandidateStage = "rejected"
)

// PipelineStages lists the pipeline stages in board order.
var PipelineStages = []CandidateStage{
	StageApplied, StageShortlisted, StageInterview, StageOffer, StageHired, StageRejected,
}

// InterviewStatus represents the lifecycle of a scheduled interview.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
)

// OfferStatus represents the lifecycle of an offer.
type OfferStatus string

const (
	OfferDraft    OfferStatus = "draft"
	OfferSent     OfferStatus = "sent"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
	OfferExpired  OfferStatus = "expired"
)

// Recommendation is an interviewer's hiring recommendation.
type Recommendation string

const (
	RecommendHire   Recommendation = "hire"
	RecommendHold   Recommendation = "hold"
	RecommendReject Recommendation = "reject"
)

// Job represents an open position. The applicants column is a denormalized
// count of non-deleted candidates referencing the job.
type Job struct {
	ID             string      `gorm:"type:text;primaryKey" json:"id"`
	OrgID          string      `gorm:"type:text;index:idx_jobs_org" json:"orgId"`
	Title          string      `gorm:"type:text;not null" json:"title"`
	Department     string      `gorm:"type:text" json:"department"`
	Location       string      `gorm:"type:text" json:"location"`
	Experience     string      `gorm:"type:text" json:"experience"`
	EmploymentType string      `gorm:"column:type" json:"employmentType"`
	Skills         StringArray `gorm:"type:text" json:"skills"`
	Description    string      `gorm:"type:text" json:"description"`
	Status         JobStatus   `gorm:"type:text;index:idx_jobs_status;default:draft" json:"status"`
	Applicants     int         `json:"applicants"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func (Job) TableName() string { return "jobs" }

// Candidate represents an applicant in the pipeline. JobID is a weak reference
// to the job the candidate applied for.
type Candidate struct {
	ID         string         `gorm:"type:text;primaryKey" json:"id"`
	OrgID      string         `gorm:"type:text;index:idx_candidates_org" json:"orgId"`
	Name       string         `gorm:"type:text;not null" json:"name"`
	Email      string         `gorm:"type:text" json:"email"`
	Phone      string         `gorm:"type:text" json:"phone"`
	JobID      string         `gorm:"column:job_id;index:idx_candidates_job" json:"jobId"`
	JobTitle   string         `gorm:"column:job_title" json:"jobTitle"`
	Stage      CandidateStage `gorm:"type:text;index:idx_candidates_stage;default:applied" json:"stage"`
	Score      int            `json:"score"`
	Source     string         `gorm:"type:text" json:"source"`
	Experience string         `gorm:"type:text" json:"experience"`
	Notes      string         `gorm:"type:text" json:"notes"`
	ResumeURL  string         `gorm:"column:resume_url" json:"resumeUrl"`
	AppliedAt  time.Time      `gorm:"column:applied_date" json:"appliedAt"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (Candidate) TableName() string { return "candidates" }

// Interview represents a scheduled interview round. The storage schema has no
// native columns for mode and interviewers; they travel packed inside the
// notes column and are split back out by the schema mapper.
type Interview struct {
	ID            string          `gorm:"type:text;primaryKey" json:"id"`
	OrgID         string          `gorm:"type:text;index:idx_interviews_org" json:"orgId"`
	CandidateID   string          `gorm:"column:candidate_id;index:idx_interviews_candidate" json:"candidateId"`
	CandidateName string          `gorm:"column:candidate_name" json:"candidateName"`
	JobID         string          `gorm:"column:job_id" json:"jobId"`
	JobTitle      string          `gorm:"column:job_title" json:"jobTitle"`
	PanelType     string          `gorm:"column:type" json:"panelType"`
	Date          string          `gorm:"column:date" json:"date"`
	Time          string          `gorm:"column:time" json:"time"`
	Status        InterviewStatus `gorm:"type:text;default:scheduled" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (Interview) TableName() string { return "interviews" }

// Feedback represents an interviewer's scorecard for a candidate.
type Feedback struct {
	ID             string         `gorm:"type:text;primaryKey" json:"id"`
	OrgID          string         `gorm:"type:text;index:idx_feedback_org" json:"orgId"`
	CandidateID    string         `gorm:"column:candidate_id;index:idx_feedback_candidate" json:"candidateId"`
	InterviewID    string         `gorm:"column:interview_id" json:"interviewId"`
	Ratings        RatingMap      `gorm:"type:text" json:"ratings"`
	Recommendation Recommendation `gorm:"type:text" json:"recommendation"`
	Comments       string         `gorm:"type:text" json:"comments"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (Feedback) TableName() string { return "feedback" }

// Offer represents an offer extended to a candidate.
type Offer struct {
	ID          string      `gorm:"type:text;primaryKey" json:"id"`
	OrgID       string      `gorm:"type:text;index:idx_offers_org" json:"orgId"`
	CandidateID string      `gorm:"column:candidate_id;index:idx_offers_candidate" json:"candidateId"`
	JobID       string      `gorm:"column:job_id" json:"jobId"`
	Salary      float64     `json:"salary"`
	Status      OfferStatus `gorm:"type:text;default:draft" json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (Offer) TableName() string { return "offers" }
