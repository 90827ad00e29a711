package schema

// Table names owned by the dashboard. The gateway refuses operations on
// anything not listed here, which also keeps table names safe to splice into
// generated SQL.
const (
	TableJobs          = "jobs"
	TableCandidates    = "candidates"
	TableInterviews    = "interviews"
	TableFeedback      = "feedback"
	TableOffers        = "offers"
	TableAuditLog      = "audit_log"
	TableProfiles      = "profiles"
	TableOrgs          = "orgs"
	TableAttendance    = "attendance"
	TableLeaves        = "leaves"
	TableTasks         = "tasks"
	TableProjects      = "projects"
	TableTeams         = "teams"
	TableAnnouncements = "announcements"
	TablePayroll       = "payroll"
	TablePayslips      = "payslips"
	TableNotifications = "notifications"
	TableConversations = "conversations"
	TableMessages      = "messages"
)

// TableInfo carries per-table metadata consumed by the gateway.
type TableInfo struct {
	// AttachmentColumn is the denormalized URL column written after an
	// upload; empty means the table accepts no attachments.
	AttachmentColumn string
	// AttachmentKind prefixes object storage keys for this table's blobs.
	AttachmentKind string
	// JSONFields lists application-shape keys whose values are stored as
	// JSON in text columns; they are encoded on write and decoded on read.
	JSONFields []string
}

var tables = map[string]TableInfo{
	TableJobs:          {JSONFields: []string{"skills"}},
	TableCandidates:    {AttachmentColumn: "resume_url", AttachmentKind: "resumes"},
	TableInterviews:    {},
	TableFeedback:      {JSONFields: []string{"ratings"}},
	TableOffers:        {},
	TableAuditLog:      {},
	TableProfiles:      {AttachmentColumn: "avatar_url", AttachmentKind: "avatars"},
	TableOrgs:          {},
	TableAttendance:    {},
	TableLeaves:        {},
	TableTasks:         {},
	TableProjects:      {},
	TableTeams:         {},
	TableAnnouncements: {},
	TablePayroll:       {},
	TablePayslips:      {AttachmentColumn: "file_url", AttachmentKind: "payslips"},
	TableNotifications: {},
	TableConversations: {},
	TableMessages:      {},
}

// Known reports whether table is one the dashboard owns.
func Known(table string) bool {
	_, ok := tables[table]
	return ok
}

// Info returns the metadata for a known table.
func Info(table string) (TableInfo, bool) {
	info, ok := tables[table]
	return info, ok
}

// Field renames that apply regardless of table, storage to application
// direction. Anything not listed falls through to the generic snake_case to
// camelCase conversion.
var toAppGlobal = map[string]string{
	"applied_date": "appliedAt",
}

// Per-table renames, storage to application direction.
var toAppByTable = map[string]map[string]string{
	TableJobs: {
		"type": "employmentType",
	},
	TableInterviews: {
		"type": "panelType",
		"date": "scheduledAt",
	},
	TableCandidates: {
		"job_id":    "jobId",
		"job_title": "jobTitle",
	},
	TableAuditLog: {
		"entity_type": "entity",
	},
}

// Field renames that apply regardless of table, application to storage
// direction.
var toStorageGlobal = map[string]string{
	"appliedAt": "applied_date",
	"jobId":     "job_id",
	"jobTitle":  "job_title",
}

// Per-table renames, application to storage direction.
var toStorageByTable = map[string]map[string]string{
	TableJobs: {
		"employmentType": "type",
	},
	TableInterviews: {
		"panelType": "type",
	},
	TableAuditLog: {
		"entity": "entity_type",
	},
}
