// Package gateway provides generic, organization-scoped persistence
// operations over the dashboard's tables. Every mutation emits an audit log
// entry; audit failures never fail the primary operation.
//
// Two error policies coexist: reads and audit writes are
// fail-soft (failures are logged and masked behind a safe default), while
// create/update/delete/upload are fail-hard and propagate to the caller.
// Nothing here retries.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/talentops/talentops/internal/domain"
	"github.com/talentops/talentops/internal/logger"
	"github.com/talentops/talentops/internal/schema"
	"github.com/talentops/talentops/internal/storage"
	"gorm.io/gorm"
)

// ErrUnknownTable is returned for operations on tables outside the registry.
var ErrUnknownTable = fmt.Errorf("gateway: unknown table")

// ErrImmutableTable is returned when a mutation targets the append-only
// audit trail.
var ErrImmutableTable = fmt.Errorf("gateway: audit log is append-only")

var columnName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Gateway executes per-table CRUD operations against the relational store
// and mirrors every mutation into the audit log.
type Gateway struct {
	db    *gorm.DB
	store storage.ObjectStorage
}

// New creates a Gateway bound to a database handle. The object storage client
// may be nil when attachment uploads are not needed (tests, seeding).
func New(db *gorm.DB, store storage.ObjectStorage) *Gateway {
	return &Gateway{db: db, store: store}
}

// List fetches all records of a table, newest first, optionally filtered by
// organization. Storage errors are logged and masked behind an empty slice so
// read paths never interrupt the caller.
func (g *Gateway) List(ctx context.Context, table, orgID string) []schema.Record {
	if !schema.Known(table) {
		logger.CtxWarn(ctx, "list on unknown table %q", table)
		return []schema.Record{}
	}

	orderCol := "created_at"
	if table == schema.TableAuditLog {
		orderCol = "timestamp"
	}

	q := g.db.WithContext(ctx).Table(table).Order(orderCol + " DESC")
	if orgID != "" {
		q = q.Where("org_id = ?", orgID)
	}

	var rows []map[string]interface{}
	if err := q.Find(&rows).Error; err != nil {
		logger.FromContext(ctx).WithError(err).WithField(logger.FieldTable, table).
			Warn("list failed, returning empty result")
		return []schema.Record{}
	}

	out := make([]schema.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, schema.ToApplication(row, table))
	}
	return out
}

// Get fetches a single record by id in application shape.
func (g *Gateway) Get(ctx context.Context, table, id, orgID string) (schema.Record, error) {
	if !schema.Known(table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	q := g.db.WithContext(ctx).Table(table).Where("id = ?", id)
	if orgID != "" {
		q = q.Where("org_id = ?", orgID)
	}

	var row map[string]interface{}
	if err := q.Take(&row).Error; err != nil {
		return nil, fmt.Errorf("get %s %s: %w", table, id, err)
	}
	return schema.ToApplication(row, table), nil
}

// Create inserts a record. Any caller-supplied id is discarded and replaced
// with a server-assigned one. The created record is read back, a CREATE audit
// entry is appended best-effort, and the application-shape result returned.
func (g *Gateway) Create(ctx context.Context, table string, fields schema.Record, userID, orgID string) (schema.Record, error) {
	if !schema.Known(table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	stored := schema.ToStorage(fields, table)
	delete(stored, "id")
	normalizeValues(stored)

	id := uuid.New().String()
	now := time.Now().UTC()
	stored["id"] = id
	stored["created_at"] = now
	stored["updated_at"] = now
	if orgID != "" {
		stored["org_id"] = orgID
	}

	if err := g.db.WithContext(ctx).Table(table).Create(map[string]interface{}(stored)).Error; err != nil {
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}

	var row map[string]interface{}
	if err := g.db.WithContext(ctx).Table(table).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, fmt.Errorf("read back %s %s: %w", table, id, err)
	}

	g.AppendAudit(ctx, AuditEntry{
		Action:   domain.AuditCreate,
		Entity:   table,
		EntityID: id,
		UserID:   userID,
		OrgID:    orgID,
		Details:  fmt.Sprintf("Created %s: %s", table, displayName(fields)),
	})

	return schema.ToApplication(row, table), nil
}

// Update applies the given application-shape fields to the row matched by id
// (and orgID when set). Matching zero rows is an error. The UPDATE audit
// entry carries the raw pre-conversion fields as a changes payload.
func (g *Gateway) Update(ctx context.Context, table, id string, fields schema.Record, userID, orgID string) (schema.Record, error) {
	if !schema.Known(table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if table == schema.TableAuditLog {
		return nil, ErrImmutableTable
	}

	stored := schema.ToStorage(fields, table)
	delete(stored, "id")
	normalizeValues(stored)
	stored["updated_at"] = time.Now().UTC()

	q := g.db.WithContext(ctx).Table(table).Where("id = ?", id)
	if orgID != "" {
		q = q.Where("org_id = ?", orgID)
	}

	res := q.Updates(map[string]interface{}(stored))
	if res.Error != nil {
		return nil, fmt.Errorf("update %s %s: %w", table, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("update %s %s: %w", table, id, gorm.ErrRecordNotFound)
	}

	var row map[string]interface{}
	if err := g.db.WithContext(ctx).Table(table).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, fmt.Errorf("read back %s %s: %w", table, id, err)
	}

	g.AppendAudit(ctx, AuditEntry{
		Action:   domain.AuditUpdate,
		Entity:   table,
		EntityID: id,
		UserID:   userID,
		OrgID:    orgID,
		Details:  fmt.Sprintf("Updated %s", table),
		Changes:  fields,
	})

	return schema.ToApplication(row, table), nil
}

// Remove deletes the row matched by id (and orgID when set). Deleting zero
// rows counts as success; exactly one DELETE audit entry is appended either
// way.
func (g *Gateway) Remove(ctx context.Context, table, id, userID, orgID string) (bool, error) {
	if !schema.Known(table) {
		return false, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if table == schema.TableAuditLog {
		return false, ErrImmutableTable
	}

	// Table names come from the registry, never from the caller verbatim.
	query := "DELETE FROM " + table + " WHERE id = ?"
	args := []interface{}{id}
	if orgID != "" {
		query += " AND org_id = ?"
		args = append(args, orgID)
	}

	if err := g.db.WithContext(ctx).Exec(query, args...).Error; err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}

	g.AppendAudit(ctx, AuditEntry{
		Action:   domain.AuditDelete,
		Entity:   table,
		EntityID: id,
		UserID:   userID,
		OrgID:    orgID,
		Details:  fmt.Sprintf("Deleted %s item %s", table, id),
	})

	return true, nil
}

// AdjustCounter atomically adds delta to a numeric column of one row. A
// negative delta only applies while the column stays non-negative, so
// concurrent decrements cannot push a counter below zero. Applying to zero
// rows is a no-op, not an error.
func (g *Gateway) AdjustCounter(ctx context.Context, table, id, column string, delta int, userID, orgID string) error {
	if !schema.Known(table) {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if !columnName.MatchString(column) {
		return fmt.Errorf("gateway: invalid counter column %q", column)
	}

	q := g.db.WithContext(ctx).Table(table).Where("id = ?", id)
	if orgID != "" {
		q = q.Where("org_id = ?", orgID)
	}
	if delta < 0 {
		q = q.Where(column+" >= ?", -delta)
	}

	res := q.UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("adjust %s.%s: %w", table, column, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil
	}

	g.AppendAudit(ctx, AuditEntry{
		Action:   domain.AuditUpdate,
		Entity:   table,
		EntityID: id,
		UserID:   userID,
		OrgID:    orgID,
		Details:  fmt.Sprintf("Adjusted %s by %+d", column, delta),
	})
	return nil
}

// normalizeValues JSON-encodes slice and map values so they land in text
// columns the same way the typed models store them.
func normalizeValues(stored schema.Record) {
	for k, v := range stored {
		switch v.(type) {
		case []string, []interface{}, map[string]interface{}:
			encoded, err := json.Marshal(v)
			if err != nil {
				continue
			}
			stored[k] = string(encoded)
		}
	}
}

// displayName picks a human-readable label for audit details.
func displayName(fields schema.Record) string {
	if v, ok := fields["title"].(string); ok && v != "" {
		return v
	}
	if v, ok := fields["name"].(string); ok && v != "" {
		return v
	}
	return "item"
}
