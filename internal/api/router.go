package api

import (
	"github.com/gin-gonic/gin"
	"github.com/talentops/talentops/internal/api/handler"
	"github.com/talentops/talentops/internal/api/middleware"
	"github.com/talentops/talentops/internal/gateway"
	"github.com/talentops/talentops/internal/logger"
	"github.com/talentops/talentops/internal/service"
)

// SetupRouter configures the Gin router with all routes.
func SetupRouter(
	gw *gateway.Gateway,
	ats *service.ATSService,
	payroll *service.PayrollService,
	notifications *service.NotificationService,
	log *logger.Logger,
	mode string,
	cors middleware.CORSConfig,
) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cors))

	healthHandler := handler.NewHealthHandler()
	recordsHandler := handler.NewRecordsHandler(gw)
	auditHandler := handler.NewAuditHandler(gw)
	attachmentsHandler := handler.NewAttachmentsHandler(gw)
	pipelineHandler := handler.NewPipelineHandler(ats)
	payrollHandler := handler.NewPayrollHandler(payroll)
	notificationsHandler := handler.NewNotificationsHandler(notifications)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Session())
	{
		// Generic table access
		v1.GET("/tables/:table", recordsHandler.List)
		v1.POST("/tables/:table", recordsHandler.Create)
		v1.GET("/tables/:table/:id", recordsHandler.Get)
		v1.PUT("/tables/:table/:id", recordsHandler.Update)
		v1.DELETE("/tables/:table/:id", recordsHandler.Delete)
		v1.POST("/tables/:table/:id/attachment", attachmentsHandler.Upload)

		// Audit trail
		v1.GET("/audit", auditHandler.List)

		// Recruitment pipeline
		v1.GET("/pipeline", pipelineHandler.Board)
		v1.GET("/pipeline/analytics", pipelineHandler.Analytics)
		v1.POST("/jobs", pipelineHandler.CreateJob)
		v1.POST("/candidates", pipelineHandler.CreateCandidate)
		v1.DELETE("/candidates/:id", pipelineHandler.DeleteCandidate)
		v1.PUT("/candidates/:id/stage", pipelineHandler.MoveStage)
		v1.GET("/candidates/:id/feedback", pipelineHandler.CandidateFeedback)
		v1.POST("/interviews", pipelineHandler.ScheduleInterview)
		v1.GET("/interviews/upcoming", pipelineHandler.UpcomingInterviews)
		v1.PUT("/interviews/:id/reschedule", pipelineHandler.RescheduleInterview)
		v1.PUT("/interviews/:id/status", pipelineHandler.SetInterviewStatus)
		v1.POST("/feedback", pipelineHandler.SubmitFeedback)
		v1.POST("/offers", pipelineHandler.CreateOffer)
		v1.PUT("/offers/:id/status", pipelineHandler.SetOfferStatus)

		// Payroll
		v1.POST("/payroll/generate", payrollHandler.Generate)
		v1.POST("/payroll/:id/payslip", payrollHandler.IssuePayslip)

		// Notifications
		v1.GET("/notifications", notificationsHandler.Inbox)
		v1.GET("/notifications/unread-count", notificationsHandler.UnreadCount)
		v1.PUT("/notifications/read-all", notificationsHandler.MarkAllRead)
		v1.PUT("/notifications/:id/read", notificationsHandler.MarkRead)
	}

	return r
}
