package domain

import "time"

// AuditAction identifies the kind of mutation an audit entry records.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// AuditLogEntry is a single append-only record of a mutation. Entries are
// never updated or deleted once written.
type AuditLogEntry struct {
	ID        string      `gorm:"type:text;primaryKey" json:"id"`
	OrgID     string      `gorm:"type:text;index:idx_audit_org" json:"orgId"`
	Action    AuditAction `gorm:"type:text" json:"action"`
	Entity    string      `gorm:"column:entity_type;index:idx_audit_entity" json:"entity"`
	EntityID  string      `gorm:"column:entity_id;index:idx_audit_entity_id" json:"entityId"`
	UserID    string      `gorm:"column:user_id;index:idx_audit_user" json:"userId"`
	Details   string      `gorm:"type:text" json:"details"`
	Changes   string      `gorm:"type:text" json:"changes,omitempty"`
	Timestamp time.Time   `gorm:"index:idx_audit_ts" json:"timestamp"`
}

func (AuditLogEntry) TableName() string { return "audit_log" }
