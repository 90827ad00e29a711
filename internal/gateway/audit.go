package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/talentops/talentops/internal/domain"
	"github.com/talentops/talentops/internal/logger"
	"github.com/talentops/talentops/internal/schema"
)

// AuditEntry describes one mutation for the audit trail.
type AuditEntry struct {
	Action   domain.AuditAction
	Entity   string
	EntityID string
	UserID   string
	OrgID    string
	Details  string
	// Changes optionally carries the raw application-shape fields of an
	// update, serialized as JSON in storage.
	Changes schema.Record
}

// AuditFilter narrows an audit log query. Zero-valued fields are ignored.
type AuditFilter struct {
	Entity   string
	EntityID string
	UserID   string
	Action   string
}

// AppendAudit writes one entry to the append-only audit log. Best-effort:
// any failure is logged and swallowed, so audit writes never block or fail
// a primary operation.
func (g *Gateway) AppendAudit(ctx context.Context, entry AuditEntry) {
	rec := schema.Record{
		"id":        uuid.New().String(),
		"action":    string(entry.Action),
		"entity":    entry.Entity,
		"entityId":  entry.EntityID,
		"userId":    entry.UserID,
		"details":   entry.Details,
		"timestamp": time.Now().UTC(),
	}
	if entry.OrgID != "" {
		rec["orgId"] = entry.OrgID
	}
	if entry.Changes != nil {
		changes, err := json.Marshal(entry.Changes)
		if err != nil {
			logger.FromContext(ctx).WithError(err).Warn("failed to encode audit changes payload")
		} else {
			rec["changes"] = string(changes)
		}
	}

	stored := schema.ToStorage(rec, schema.TableAuditLog)
	if err := g.db.WithContext(ctx).Table(schema.TableAuditLog).Create(map[string]interface{}(stored)).Error; err != nil {
		logger.FromContext(ctx).WithError(err).WithFields(logger.Fields{
			logger.FieldAction:   string(entry.Action),
			logger.FieldTable:    entry.Entity,
			logger.FieldEntityID: entry.EntityID,
		}).Error("failed to append audit entry")
	}
}

// AuditLog reads the audit trail, newest first, narrowed by the filter and
// the organization. Fail-soft like List: errors are logged and an empty slice
// returned.
func (g *Gateway) AuditLog(ctx context.Context, filter AuditFilter, orgID string) []schema.Record {
	q := g.db.WithContext(ctx).Table(schema.TableAuditLog).Order("timestamp DESC")

	if filter.Entity != "" {
		q = q.Where("entity_type = ?", filter.Entity)
	}
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if orgID != "" {
		q = q.Where("org_id = ?", orgID)
	}

	var rows []map[string]interface{}
	if err := q.Find(&rows).Error; err != nil {
		logger.FromContext(ctx).WithError(err).Warn("audit log query failed, returning empty result")
		return []schema.Record{}
	}

	out := make([]schema.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, schema.ToApplication(row, schema.TableAuditLog))
	}
	return out
}
