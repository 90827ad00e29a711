package domain

import "time"

// Sibling dashboard tables. The recruitment gateway is generic over table
// names, so these share the same storage conventions as the ATS entities.

// Org is a tenant organization. Every other record is scoped to one.
type Org struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Industry  string    `gorm:"type:text" json:"industry"`
	Size      string    `gorm:"type:text" json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Org) TableName() string { return "orgs" }

// Profile is an employee profile within an org.
type Profile struct {
	ID         string    `gorm:"type:text;primaryKey" json:"id"`
	OrgID      string    `gorm:"type:text;index:idx_profiles_org" json:"orgId"`
	FullName   string    `gorm:"column:full_name" json:"fullName"`
	Email      string    `gorm:"type:text" json:"email"`
	Role       string    `gorm:"type:text" json:"role"`
	Department string    `gorm:"type:text" json:"department"`
	AvatarURL  string    `gorm:"column:avatar_url" json:"avatarUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Profile) TableName() string { return "profiles" }

// Attendance is one employee-day of clock records. A day counts as present
// only when both clock_in and clock_out are set.
type Attendance struct {
	ID         string     `gorm:"type:text;primaryKey" json:"id"`
	OrgID      string     `gorm:"type:text;index:idx_attendance_org" json:"orgId"`
	EmployeeID string     `gorm:"column:employee_id;index:idx_attendance_employee" json:"employeeId"`
	Date       string     `gorm:"column:date" json:"date"` // YYYY-MM-DD
	ClockIn    *time.Time `gorm:"column:clock_in" json:"clockIn,omitempty"`
	ClockOut   *time.Time `gorm:"column:clock_out" json:"clockOut,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (Attendance) TableName() string { return "attendance" }

// Leave is a leave request over an inclusive date range.
type Leave struct {
	ID         string    `gorm:"type:text;primaryKey" json:"id"`
	OrgID      string    `gorm:"type:text;index:idx_leaves_org" json:"orgId"`
	EmployeeID string    `gorm:"column:employee_id;index:idx_leaves_employee" json:"employeeId"`
	Type       string    `gorm:"type:text" json:"type"`
	FromDate   string    `gorm:"column:from_date" json:"fromDate"` // YYYY-MM-DD
	ToDate     string    `gorm:"column:to_date" json:"toDate"`     // YYYY-MM-DD
	Status     string    `gorm:"type:text;default:pending" json:"status"`
	Reason     string    `gorm:"type:text" json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Leave) TableName() string { return "leaves" }

// Task is a work item, optionally tied to a project.
type Task struct {
	ID          string    `gorm:"type:text;primaryKey" json:"id"`
	OrgID       string    `gorm:"type:text;index:idx_tasks_org" json:"orgId"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	AssigneeID  string    `gorm:"column:assignee_id;index:idx_tasks_assignee" json:"assigneeId"`
	ProjectID   string    `gorm:"column:project_id" json:"projectId"`
	Status      string    `gorm:"type:text;default:todo" json:"status"`
	Priority    string    `gorm:"type:text;default:medium" json:"priority"`
	DueDate     string    `gorm:"column:due_date" json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Task) TableName() string { return "tasks" }

// Project groups tasks under a lead.
type Project struct {
	ID          string    `gorm:"type:text;primaryKey" json:"id"`
	OrgID       string    `gorm:"type:text;index:idx_projects_org" json:"orgId"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	LeadID      string    `gorm:"column:lead_id" json:"leadId"`
	Status      string    `gorm:"type:text;default:active" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Project) TableName() string { return "projects" }

// Team is a named group of employees under a lead.
type Team struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	OrgID     string    `gorm:"type:text;index:idx_teams_org" json:"orgId"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	LeadID    string    `gorm:"column:lead_id" json:"leadId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Team) TableName() string { return "teams" }

// Announcement is an org-wide post.
type Announcement struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	OrgID     string    `gorm:"type:text;index:idx_announcements_org" json:"orgId"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	AuthorID  string    `gorm:"column:author_id" json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Announcement) TableName() string { return "announcements" }

// Payroll is one employee-month of pay computation.
type Payroll struct {
	ID         string    `gorm:"type:text;primaryKey" json:"id"`
	OrgID      string    `gorm:"type:text;index:idx_payroll_org" json:"orgId"`
	EmployeeID string    `gorm:"column:employee_id;index:idx_payroll_employee" json:"employeeId"`
	Month      string    `gorm:"column:month" json:"month"` // YYYY-MM
	BaseSalary float64   `gorm:"column:base_salary" json:"baseSalary"`
	Allowances float64   `json:"allowances"`
	Deductions float64   `json:"deductions"`
	NetPay     float64   `gorm:"column:net_pay" json:"netPay"`
	Status     string    `gorm:"type:text;default:draft" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Payroll) TableName() string { return "payroll" }

// Payslip is the issued document for a payroll row. FileURL points at the
// generated PDF in object storage.
type Payslip struct {
	ID            string    `gorm:"type:text;primaryKey" json:"id"`
	OrgID         string    `gorm:"type:text;index:idx_payslips_org" json:"orgId"`
	EmployeeID    string    `gorm:"column:employee_id;index:idx_payslips_employee" json:"employeeId"`
	PayrollID     string    `gorm:"column:payroll_id" json:"payrollId"`
	PayslipNumber string    `gorm:"column:payslip_number;uniqueIndex:idx_payslips_number" json:"payslipNumber"`
	Month         string    `gorm:"column:month" json:"month"` // YYYY-MM
	FileURL       string    `gorm:"column:file_url" json:"fileUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Payslip) TableName() string { return "payslips" }

// Notification is a per-receiver event row; read tracks acknowledgement.
type Notification struct {
	ID         string    `gorm:"type:text;primaryKey" json:"id"`
	OrgID      string    `gorm:"type:text;index:idx_notifications_org" json:"orgId"`
	ReceiverID string    `gorm:"column:receiver_id;index:idx_notifications_receiver" json:"receiverId"`
	SenderID   string    `gorm:"column:sender_id" json:"senderId"`
	Type       string    `gorm:"type:text" json:"type"`
	Message    string    `gorm:"type:text" json:"message"`
	Read       bool      `gorm:"column:read;default:false" json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Notification) TableName() string { return "notifications" }

// Conversation is a two-party message thread.
type Conversation struct {
	ID            string    `gorm:"type:text;primaryKey" json:"id"`
	OrgID         string    `gorm:"type:text;index:idx_conversations_org" json:"orgId"`
	ParticipantA  string    `gorm:"column:participant_a" json:"participantA"`
	ParticipantB  string    `gorm:"column:participant_b" json:"participantB"`
	LastMessageAt time.Time `gorm:"column:last_message_at" json:"lastMessageAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Conversation) TableName() string { return "conversations" }

// Message is one message within a conversation.
type Message struct {
	ID             string    `gorm:"type:text;primaryKey" json:"id"`
	ConversationID string    `gorm:"column:conversation_id;index:idx_messages_conversation" json:"conversationId"`
	SenderID       string    `gorm:"column:sender_id" json:"senderId"`
	Body           string    `gorm:"type:text" json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Message) TableName() string { return "messages" }
