package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/talentops/talentops/internal/domain"
	"github.com/talentops/talentops/internal/gateway"
	"github.com/talentops/talentops/internal/repository"
	"github.com/talentops/talentops/internal/schema"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testSession = domain.Session{UserID: "u1", OrgID: "org1"}

func newTestGateway(t *testing.T) *gateway.Gateway {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gateway.New(db, nil)
}

func applicants(t *testing.T, gw *gateway.Gateway, jobID string) int64 {
	t.Helper()
	job, err := gw.Get(context.Background(), schema.TableJobs, jobID, "org1")
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	switch n := job["applicants"].(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		t.Fatalf("unexpected applicants type %T", job["applicants"])
		return 0
	}
}

func TestCandidateLifecycleAdjustsApplicants(t *testing.T) {
	gw := newTestGateway(t)
	svc := NewATSService(gw)
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, schema.Record{"title": "Platform Engineer", "applicants": 99}, testSession)
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	jobID := job["id"].(string)

	if n := applicants(t, gw, jobID); n != 0 {
		t.Fatalf("new job applicants = %d, want 0", n)
	}

	c1, err := svc.CreateCandidate(ctx, schema.Record{"name": "Ada", "jobId": jobID}, testSession)
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	if _, err := svc.CreateCandidate(ctx, schema.Record{"name": "Grace", "jobId": jobID}, testSession); err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	if n := applicants(t, gw, jobID); n != 2 {
		t.Fatalf("applicants after two candidates = %d, want 2", n)
	}

	if err := svc.DeleteCandidate(ctx, c1["id"].(string), testSession); err != nil {
		t.Fatalf("delete candidate: %v", err)
	}
	if n := applicants(t, gw, jobID); n != 1 {
		t.Errorf("applicants after delete = %d, want 1", n)
	}

	// Deleting again must not drive the counter negative.
	if err := svc.DeleteCandidate(ctx, c1["id"].(string), testSession); err == nil {
		t.Error("delete of missing candidate succeeded, want error")
	}
	if n := applicants(t, gw, jobID); n != 1 {
		t.Errorf("applicants after failed delete = %d, want 1", n)
	}
}

func TestMoveCandidateValidatesStage(t *testing.T) {
	gw := newTestGateway(t)
	svc := NewATSService(gw)
	ctx := context.Background()

	c, err := svc.CreateCandidate(ctx, schema.Record{"name": "Ada"}, testSession)
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	id := c["id"].(string)

	moved, err := svc.MoveCandidateToStage(ctx, id, domain.StageInterview, testSession)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved["stage"] != string(domain.StageInterview) {
		t.Errorf("stage = %v, want interview", moved["stage"])
	}

	if _, err := svc.MoveCandidateToStage(ctx, id, "limbo", testSession); err == nil {
		t.Error("move to unknown stage succeeded, want error")
	}
}

func TestScheduleInterviewPacksMetadata(t *testing.T) {
	gw := newTestGateway(t)
	svc := NewATSService(gw)
	ctx := context.Background()

	created, err := svc.ScheduleInterview(ctx, InterviewInput{
		CandidateID:  "c1",
		PanelType:    "technical",
		ScheduledAt:  "2026-09-15T14:30:00Z",
		Mode:         "online",
		Interviewers: []string{"alex", "sam"},
		Notes:        "Focus on system design",
	}, testSession)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	if created["notes"] != "Focus on system design" {
		t.Errorf("notes = %q, want the plain body", created["notes"])
	}
	if created["mode"] != "online" {
		t.Errorf("mode = %v, want online", created["mode"])
	}
	interviewers, _ := created["interviewers"].([]any)
	if len(interviewers) != 2 {
		t.Errorf("interviewers = %v, want two entries", created["interviewers"])
	}
	if created["panelType"] != "technical" {
		t.Errorf("panelType = %v, want technical", created["panelType"])
	}
	if scheduledAt, _ := created["scheduledAt"].(string); !strings.HasPrefix(scheduledAt, "2026-09-15") {
		t.Errorf("scheduledAt = %v, want the scheduled date", created["scheduledAt"])
	}
	if time, _ := created["time"].(string); time != "14:30:00" {
		t.Errorf("time = %v, want 14:30:00", created["time"])
	}
}

func TestAcceptedOfferHiresCandidate(t *testing.T) {
	gw := newTestGateway(t)
	svc := NewATSService(gw)
	ctx := context.Background()

	c, err := svc.CreateCandidate(ctx, schema.Record{"name": "Ada", "stage": "offer"}, testSession)
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	candidateID := c["id"].(string)

	offer, err := svc.CreateOffer(ctx, schema.Record{"candidateId": candidateID, "salary": 120000.0}, testSession)
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}
	if offer["status"] != string(domain.OfferDraft) {
		t.Fatalf("new offer status = %v, want draft", offer["status"])
	}

	if _, err := svc.SetOfferStatus(ctx, offer["id"].(string), domain.OfferAccepted, testSession); err != nil {
		t.Fatalf("accept offer: %v", err)
	}

	got, err := gw.Get(ctx, schema.TableCandidates, candidateID, "org1")
	if err != nil {
		t.Fatalf("get candidate: %v", err)
	}
	if got["stage"] != string(domain.StageHired) {
		t.Errorf("candidate stage after acceptance = %v, want hired", got["stage"])
	}
}

func TestPipelineGroupsAllStages(t *testing.T) {
	gw := newTestGateway(t)
	svc := NewATSService(gw)
	ctx := context.Background()

	if _, err := svc.CreateCandidate(ctx, schema.Record{"name": "Ada", "stage": "applied"}, testSession); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateCandidate(ctx, schema.Record{"name": "Grace", "stage": "interview"}, testSession); err != nil {
		t.Fatalf("create: %v", err)
	}

	board := svc.Pipeline(ctx, testSession)
	if len(board) != len(domain.PipelineStages) {
		t.Fatalf("board has %d stages, want %d", len(board), len(domain.PipelineStages))
	}
	if len(board[domain.StageApplied]) != 1 || len(board[domain.StageInterview]) != 1 {
		t.Errorf("unexpected grouping: applied=%d interview=%d",
			len(board[domain.StageApplied]), len(board[domain.StageInterview]))
	}
	if board[domain.StageHired] == nil {
		t.Error("empty stage missing from board, want empty slice")
	}
}
