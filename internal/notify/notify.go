// Package notify creates in-app notifications and mirrors them to web
// push subscriptions when push is configured.
package notify

import (
	"errors"
	"log/slog"

	"github.com/ewhitfield/hearthside/internal/store"
)

type Service struct {
	notifications *store.NotificationStore
	subscriptions *store.PushStore
	push          *Push
	logger        *slog.Logger
}

// NewService creates a notification service. push may be nil, in which
// case only in-app notifications are created.
func NewService(notifications *store.NotificationStore, subscriptions *store.PushStore, push *Push, logger *slog.Logger) *Service {
	return &Service{
		notifications: notifications,
		subscriptions: subscriptions,
		push:          push,
		logger:        logger.With("component", "notify"),
	}
}

// Notify records a notification for each recipient and sends web push
// to their subscriptions. Push failures are logged, never returned;
// the in-app notification is the source of truth.
func (s *Service) Notify(userIDs []int64, typ, title, message string, refID *int64) {
	for _, userID := range userIDs {
		n, err := s.notifications.Create(userID, typ, title, message, refID)
		if err != nil {
			s.logger.Error("create notification", "user_id", userID, "type", typ, "error", err)
			continue
		}
		s.sendPush(userID, title, message, typ, n.ID)
	}
}

func (s *Service) sendPush(userID int64, title, message, tag string, notificationID int64) {
	if s.push == nil {
		return
	}
	subs, err := s.subscriptions.ListByUser(userID)
	if err != nil {
		s.logger.Error("list push subscriptions", "user_id", userID, "error", err)
		return
	}
	for i := range subs {
		sub := &subs[i]
		err := s.push.Send(sub, Payload{
			Title: title,
			Body:  message,
			URL:   "/notifications",
			Tag:   tag,
		})
		if errors.Is(err, ErrExpired) {
			if err := s.subscriptions.DeleteByEndpoint(sub.Endpoint); err != nil {
				s.logger.Error("prune expired subscription", "endpoint", sub.Endpoint, "error", err)
			}
			continue
		}
		if err != nil {
			s.logger.Error("send push", "user_id", userID, "notification_id", notificationID, "error", err)
		}
	}
}
