package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hooks/internal/domain"
	"hooks/internal/metrics"
)

// Alerter surfaces a freshly added notification to the user (the toast in
// the web UI). Failures never block the state mutation.
type Alerter interface {
	Alert(n domain.Notification) error
}

// AlertFunc adapts a function to the Alerter interface.
type AlertFunc func(n domain.Notification) error

func (f AlertFunc) Alert(n domain.Notification) error { return f(n) }

// Notifications maintains the notification feed, newest first, and persists
// the whole feed to its snapshot slot after every mutation. The unread count
// is always derived from the feed, never assigned.
type Notifications struct {
	mu   sync.RWMutex
	feed []domain.Notification

	snapshot Snapshot
	alerter  Alerter
	logger   *zap.Logger
}

func NewNotifications(snapshot Snapshot, alerter Alerter, logger *zap.Logger) *Notifications {
	if snapshot == nil || logger == nil {
		panic("store: notifications constructed without snapshot or logger")
	}
	return &Notifications{snapshot: snapshot, alerter: alerter, logger: logger}
}

// seedFeed returns the two welcome notifications written on first activation.
func seedFeed(now time.Time) []domain.Notification {
	return []domain.Notification{
		{
			ID:        "1",
			Title:     "Welcome to Hooks!",
			Message:   "Thanks for joining our tech community. Start exploring our products.",
			Type:      domain.NotificationSystem,
			Priority:  domain.PriorityMedium,
			CreatedAt: now,
		},
		{
			ID:        "2",
			Title:     "Special Offer",
			Message:   "Get 20% off on all audio products this week!",
			Type:      domain.NotificationPromotion,
			Priority:  domain.PriorityHigh,
			Link:      "/deals",
			CreatedAt: now.Add(-24 * time.Hour),
		},
	}
}

// Start loads the persisted feed. A missing snapshot seeds the welcome
// notifications and persists them immediately; an unparseable one is
// discarded and treated the same way.
func (s *Notifications) Start(ctx context.Context) {
	feed, err := s.snapshot.Load(ctx)
	switch {
	case err == nil:
		s.mu.Lock()
		s.feed = feed
		s.mu.Unlock()
		return
	case errors.Is(err, ErrNoSnapshot):
		// first activation
	default:
		s.logger.Warn("notification snapshot unreadable, reseeding", zap.Error(err))
	}

	s.mu.Lock()
	s.feed = seedFeed(time.Now())
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// persistLocked overwrites the snapshot with the current feed. Callers hold
// the write lock. Write failure is soft: logged, state kept.
func (s *Notifications) persistLocked(ctx context.Context) {
	feed := make([]domain.Notification, len(s.feed))
	copy(feed, s.feed)
	if err := s.snapshot.Save(ctx, feed); err != nil {
		metrics.SnapshotWriteFailures.Inc()
		s.logger.Warn("notification snapshot write failed", zap.Error(err))
	}
}

// Add assigns a fresh id and timestamp, prepends the notification, persists,
// and fires the best-effort alert.
func (s *Notifications) Add(ctx context.Context, draft domain.NotificationDraft) domain.Notification {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Title:     draft.Title,
		Message:   draft.Message,
		Type:      draft.Type,
		Priority:  draft.Priority,
		Link:      draft.Link,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.feed = append([]domain.Notification{n}, s.feed...)
	s.persistLocked(ctx)
	s.mu.Unlock()
	metrics.NotificationsAdded.Inc()

	if s.alerter != nil {
		if err := s.alerter.Alert(n); err != nil {
			s.logger.Warn("notification alert failed", zap.String("id", n.ID), zap.Error(err))
		}
	}
	return n
}

// MarkAsRead sets the read flag. Idempotent; re-marking is a no-op in effect.
func (s *Notifications) MarkAsRead(ctx context.Context, id string) {
	s.mu.Lock()
	for i := range s.feed {
		if s.feed[i].ID == id {
			s.feed[i].Read = true
			break
		}
	}
	s.persistLocked(ctx)
	s.mu.Unlock()
}

func (s *Notifications) MarkAllAsRead(ctx context.Context) {
	s.mu.Lock()
	for i := range s.feed {
		s.feed[i].Read = true
	}
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// Delete removes by id; absent ids are a no-op.
func (s *Notifications) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	for i := range s.feed {
		if s.feed[i].ID == id {
			s.feed = append(s.feed[:i], s.feed[i+1:]...)
			break
		}
	}
	s.persistLocked(ctx)
	s.mu.Unlock()
}

func (s *Notifications) ClearAll(ctx context.Context) {
	s.mu.Lock()
	s.feed = nil
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// Notifications returns a copy of the feed, newest first.
func (s *Notifications) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Notification, len(s.feed))
	copy(out, s.feed)
	return out
}

// UnreadCount is recomputed from the feed on every call.
func (s *Notifications) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.feed {
		if !n.Read {
			count++
		}
	}
	return count
}
