// Package notify turns the audit trail into a change feed. A Poller tails a
// Source on a paced schedule and fans events out to sinks; sink failures are
// logged and never stall the feed.
package notify

import (
	"context"
	"time"

	"github.com/talentops/talentops/internal/logger"
	"github.com/talentops/talentops/internal/schema"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Event is one observed mutation.
type Event struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId"`
	UserID    string    `json:"userId"`
	OrgID     string    `json:"orgId"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// Source yields the events recorded strictly after a watermark, oldest first.
type Source interface {
	Changes(ctx context.Context, since time.Time) ([]Event, error)
}

// Sink receives events from the poller.
type Sink interface {
	Deliver(ctx context.Context, ev Event) error
}

// AuditSource reads the change feed from the audit_log table.
type AuditSource struct {
	db *gorm.DB
}

// NewAuditSource creates an AuditSource over a database handle.
func NewAuditSource(db *gorm.DB) *AuditSource {
	return &AuditSource{db: db}
}

// Changes returns audit entries recorded after since, oldest first.
func (s *AuditSource) Changes(ctx context.Context, since time.Time) ([]Event, error) {
	var rows []map[string]interface{}
	err := s.db.WithContext(ctx).
		Table(schema.TableAuditLog).
		Where("timestamp > ?", since).
		Order("timestamp ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		rec := schema.ToApplication(row, schema.TableAuditLog)
		ev := Event{
			ID:       str(rec["id"]),
			Action:   str(rec["action"]),
			Entity:   str(rec["entity"]),
			EntityID: str(rec["entityId"]),
			UserID:   str(rec["userId"]),
			OrgID:    str(rec["orgId"]),
			Details:  str(rec["details"]),
		}
		if ts, ok := eventTime(rec["timestamp"]); ok {
			ev.Timestamp = ts
		}
		events = append(events, ev)
	}
	return events, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// eventTime tolerates the timestamp column surfacing either parsed or as
// text, depending on the driver. A zeroed timestamp would stall the poller's
// watermark and redeliver the same events forever.
func eventTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// Poller tails a Source and fans events out to sinks. Pacing goes through a
// rate limiter whose rate is lowered exponentially after source failures and
// restored on the next success, so a struggling store is not hammered.
type Poller struct {
	source     Source
	sinks      []Sink
	limiter    *rate.Limiter
	interval   time.Duration
	maxBackoff time.Duration

	backoff   time.Duration
	watermark time.Time
}

// NewPoller creates a Poller that polls source every interval and delivers to
// sinks. Events older than the construction time are never replayed.
func NewPoller(source Source, interval, maxBackoff time.Duration, sinks ...Sink) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if maxBackoff < interval {
		maxBackoff = 8 * interval
	}
	return &Poller{
		source:     source,
		sinks:      sinks,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		interval:   interval,
		maxBackoff: maxBackoff,
		watermark:  time.Now().UTC(),
	}
}

// Run polls until the context is cancelled. Blocks; run it on its own
// goroutine.
func (p *Poller) Run(ctx context.Context) error {
	for {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
		p.poll(ctx)
	}
}

func (p *Poller) poll(ctx context.Context) {
	events, err := p.source.Changes(ctx, p.watermark)
	if err != nil {
		p.slowDown(ctx, err)
		return
	}
	p.restorePace()

	for _, ev := range events {
		if ev.Timestamp.After(p.watermark) {
			p.watermark = ev.Timestamp
		}
		for _, sink := range p.sinks {
			if err := sink.Deliver(ctx, ev); err != nil {
				logger.FromContext(ctx).WithError(err).WithFields(logger.Fields{
					logger.FieldAction:   ev.Action,
					logger.FieldEntityID: ev.EntityID,
				}).Warn("change feed delivery failed")
			}
		}
	}
}

func (p *Poller) slowDown(ctx context.Context, err error) {
	if p.backoff == 0 {
		p.backoff = p.interval
	}
	p.backoff *= 2
	if p.backoff > p.maxBackoff {
		p.backoff = p.maxBackoff
	}
	p.limiter.SetLimit(rate.Every(p.backoff))
	logger.FromContext(ctx).WithError(err).
		WithField("backoff", p.backoff.String()).
		Warn("change feed poll failed, backing off")
}

func (p *Poller) restorePace() {
	if p.backoff == 0 {
		return
	}
	p.backoff = 0
	p.limiter.SetLimit(rate.Every(p.interval))
}

// ChannelSink bridges the feed onto a channel for in-process subscribers.
// Delivery never blocks: when the buffer is full the event is dropped.
type ChannelSink struct {
	ch chan Event
}

// NewChannelSink creates a ChannelSink with the given buffer size.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 64
	}
	return &ChannelSink{ch: make(chan Event, buffer)}
}

// Events returns the receive side of the sink.
func (c *ChannelSink) Events() <-chan Event {
	return c.ch
}

// Deliver enqueues the event, dropping it when the buffer is full.
func (c *ChannelSink) Deliver(ctx context.Context, ev Event) error {
	select {
	case c.ch <- ev:
	default:
		logger.FromContext(ctx).WithField(logger.FieldEntityID, ev.EntityID).
			Debug("subscriber buffer full, dropping event")
	}
	return nil
}
