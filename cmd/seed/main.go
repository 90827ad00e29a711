// Command seed loads a demo tenant into the database so the dashboard has
// something to show on first run.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/talentops/talentops/internal/config"
	"github.com/talentops/talentops/internal/domain"
	"github.com/talentops/talentops/internal/gateway"
	"github.com/talentops/talentops/internal/logger"
	"github.com/talentops/talentops/internal/repository"
	"github.com/talentops/talentops/internal/schema"
	"github.com/talentops/talentops/internal/service"
)

func main() {
	orgName := flag.String("org", "Acme Robotics", "name of the demo organization")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := logger.DefaultConfig()
	logCfg.ServiceName = "talentops-seed"
	appLogger := logger.New(logCfg)
	logger.SetDefault(appLogger)
	defer logger.Sync()

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	gw := gateway.New(db, nil)
	ats := service.NewATSService(gw)
	ctx := appLogger.WithContext(context.Background())

	seeder := domain.Session{UserID: "seed"}

	org, err := gw.Create(ctx, schema.TableOrgs, schema.Record{
		"name":     *orgName,
		"industry": "Robotics",
		"size":     "51-200",
	}, seeder.UserID, "")
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to create demo org")
	}
	sess := domain.Session{UserID: "seed", OrgID: org["id"].(string)}

	if _, err := gw.Create(ctx, schema.TableProfiles, schema.Record{
		"fullName":   "Dana Reyes",
		"email":      "dana@example.com",
		"role":       "HR Manager",
		"department": "People",
	}, sess.UserID, sess.OrgID); err != nil {
		appLogger.WithError(err).Fatal("Failed to create demo profile")
	}

	job, err := ats.CreateJob(ctx, schema.Record{
		"title":          "Senior Backend Engineer",
		"department":     "Engineering",
		"location":       "Remote",
		"experience":     "5+ years",
		"employmentType": "Full-time",
		"skills":         []string{"Go", "PostgreSQL", "Kubernetes"},
		"description":    "Own the services behind the talent platform.",
		"status":         string(domain.JobStatusPublished),
	}, sess)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to create demo job")
	}
	jobID := job["id"].(string)

	candidates := []schema.Record{
		{"name": "Ada Lovelace", "email": "ada@example.com", "jobId": jobID, "jobTitle": job["title"], "stage": "applied", "source": "referral"},
		{"name": "Grace Hopper", "email": "grace@example.com", "jobId": jobID, "jobTitle": job["title"], "stage": "interview", "source": "linkedin"},
	}
	var first schema.Record
	for i, fields := range candidates {
		created, err := ats.CreateCandidate(ctx, fields, sess)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to create demo candidate")
		}
		if i == 0 {
			first = created
		}
	}

	if _, err := ats.ScheduleInterview(ctx, service.InterviewInput{
		CandidateID:   first["id"].(string),
		CandidateName: first["name"].(string),
		JobID:         jobID,
		JobTitle:      job["title"].(string),
		PanelType:     "technical",
		ScheduledAt:   "2026-09-10T10:00:00Z",
		Mode:          "online",
		Interviewers:  []string{"dana@example.com"},
		Notes:         "First technical round",
	}, sess); err != nil {
		appLogger.WithError(err).Fatal("Failed to schedule demo interview")
	}

	appLogger.WithFields(logger.Fields{
		logger.FieldOrgID: sess.OrgID,
		logger.FieldCount: len(candidates),
	}).Info("Demo tenant seeded")
}
