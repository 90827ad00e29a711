package gateway

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/talentops/talentops/internal/domain"
	"github.com/talentops/talentops/internal/schema"
	"gorm.io/gorm"
)

var whitespace = regexp.MustCompile(`\s+`)

// ErrNoAttachments is returned when a table has no attachment URL column.
var ErrNoAttachments = fmt.Errorf("gateway: table does not accept attachments")

// UploadAttachment stores a blob (resume, avatar, payslip PDF) in object
// storage under a key namespaced by the owning record, then writes the public
// URL onto the owner's denormalized URL column and appends an UPDATE audit
// entry. Fail-hard on either the upload or the record update; a blob orphaned
// by a failed update is not cleaned up.
func (g *Gateway) UploadAttachment(ctx context.Context, table, ownerID, filename, contentType string, body io.Reader, size int64, userID, orgID string) (schema.Record, error) {
	info, ok := schema.Info(table)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if info.AttachmentColumn == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoAttachments, table)
	}
	if g.store == nil {
		return nil, fmt.Errorf("gateway: object storage not configured")
	}

	key := fmt.Sprintf("%s/%s/%d_%s",
		info.AttachmentKind, ownerID, time.Now().UnixMilli(),
		whitespace.ReplaceAllString(filename, "_"))

	if err := g.store.Upload(ctx, key, body, size, contentType); err != nil {
		return nil, fmt.Errorf("upload attachment for %s %s: %w", table, ownerID, err)
	}
	url := g.store.GetURL(key)

	q := g.db.WithContext(ctx).Table(table).Where("id = ?", ownerID)
	if orgID != "" {
		q = q.Where("org_id = ?", orgID)
	}
	res := q.Updates(map[string]interface{}{
		info.AttachmentColumn: url,
		"updated_at":          time.Now().UTC(),
	})
	if res.Error != nil {
		return nil, fmt.Errorf("record %s %s after upload: %w", table, ownerID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("record %s %s after upload: %w", table, ownerID, gorm.ErrRecordNotFound)
	}

	var row map[string]interface{}
	if err := g.db.WithContext(ctx).Table(table).Where("id = ?", ownerID).Take(&row).Error; err != nil {
		return nil, fmt.Errorf("read back %s %s: %w", table, ownerID, err)
	}

	g.AppendAudit(ctx, AuditEntry{
		Action:   domain.AuditUpdate,
		Entity:   table,
		EntityID: ownerID,
		UserID:   userID,
		OrgID:    orgID,
		Details:  fmt.Sprintf("Uploaded attachment for %s", table),
	})

	return schema.ToApplication(row, table), nil
}
