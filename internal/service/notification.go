package service

import (
	"context"

	"github.com/talentops/talentops/internal/domain"
	"github.com/talentops/talentops/internal/gateway"
	"github.com/talentops/talentops/internal/schema"
)

// NotificationService manages per-user notification rows.
type NotificationService struct {
	gw *gateway.Gateway
}

// NewNotificationService creates a NotificationService bound to a gateway.
func NewNotificationService(gw *gateway.Gateway) *NotificationService {
	return &NotificationService{gw: gw}
}

// Notify creates a notification for one receiver.
func (s *NotificationService) Notify(ctx context.Context, receiverID, kind, message string, sess domain.Session) (schema.Record, error) {
	return s.gw.Create(ctx, schema.TableNotifications, schema.Record{
		"receiverId": receiverID,
		"senderId":   sess.UserID,
		"type":       kind,
		"message":    message,
		"read":       false,
	}, sess.UserID, sess.OrgID)
}

// Inbox lists a receiver's notifications, newest first.
func (s *NotificationService) Inbox(ctx context.Context, receiverID string, sess domain.Session) []schema.Record {
	out := []schema.Record{}
	for _, n := range s.gw.List(ctx, schema.TableNotifications, sess.OrgID) {
		if n["receiverId"] == receiverID {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount counts a receiver's unacknowledged notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, receiverID string, sess domain.Session) int {
	count := 0
	for _, n := range s.Inbox(ctx, receiverID, sess) {
		if !isRead(n["read"]) {
			count++
		}
	}
	return count
}

// MarkRead acknowledges one notification.
func (s *NotificationService) MarkRead(ctx context.Context, id string, sess domain.Session) (schema.Record, error) {
	return s.gw.Update(ctx, schema.TableNotifications, id, schema.Record{"read": true}, sess.UserID, sess.OrgID)
}

// MarkAllRead acknowledges every unread notification of a receiver. Errors on
// individual rows abort the sweep.
func (s *NotificationService) MarkAllRead(ctx context.Context, receiverID string, sess domain.Session) error {
	for _, n := range s.Inbox(ctx, receiverID, sess) {
		if isRead(n["read"]) {
			continue
		}
		id, _ := n["id"].(string)
		if id == "" {
			continue
		}
		if _, err := s.MarkRead(ctx, id, sess); err != nil {
			return err
		}
	}
	return nil
}

// isRead tolerates the boolean coming back from sqlite as an integer.
func isRead(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case int:
		return b != 0
	case float64:
		return b != 0
	default:
		return false
	}
}
