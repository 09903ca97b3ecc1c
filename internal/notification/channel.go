// Package notification manages the user-facing notification feed: listing,
// unread counting and the one-directional mark-as-read transition.
package notification

import (
	"context"
	"sort"
	"sync"

	"scholarhub-client/internal/common/errors"
	"scholarhub-client/internal/common/logger"
	"scholarhub-client/internal/common/metrics"
	"scholarhub-client/internal/models"
)

// Session supplies the bearer token and routes backend errors through the
// central auth handler. *session.Manager satisfies it.
type Session interface {
	AccessToken() string
	HandleAuthError(ctx context.Context, err error) error
}

// API is the slice of the backend client the channel needs.
type API interface {
	ListNotifications(ctx context.Context, accessToken string, userID int64) ([]models.Notification, error)
	ListUnreadNotifications(ctx context.Context, accessToken string, userID int64) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, accessToken string, notificationID int64) (*models.Notification, error)
}

// Channel is a user's notification feed.
type Channel struct {
	api     API
	session Session
	logger  logger.Logger
}

// NewChannel creates the notification channel.
func NewChannel(apiClient API, sess Session, log logger.Logger) *Channel {
	return &Channel{api: apiClient, session: sess, logger: log}
}

// ListForUser returns the user's notifications, newest first.
func (c *Channel) ListForUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	list, err := c.api.ListNotifications(ctx, c.session.AccessToken(), userID)
	if err != nil {
		return nil, c.session.HandleAuthError(ctx, err)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// UnreadCount derives the unread total from the unread listing. The count is
// never cached; every call reflects the list it was computed from.
func (c *Channel) UnreadCount(ctx context.Context, userID int64) (int, error) {
	unread, err := c.api.ListUnreadNotifications(ctx, c.session.AccessToken(), userID)
	if err != nil {
		return 0, c.session.HandleAuthError(ctx, err)
	}
	return models.UnreadCount(unread), nil
}

// MarkRead flips one notification to read. Marking an already-read
// notification is a no-op that skips the backend entirely.
func (c *Channel) MarkRead(ctx context.Context, notif models.Notification) (*models.Notification, error) {
	if notif.IsRead {
		return &notif, nil
	}
	updated, err := c.api.MarkNotificationRead(ctx, c.session.AccessToken(), notif.ID)
	if err != nil {
		return nil, c.session.HandleAuthError(ctx, err)
	}
	return updated, nil
}

// MarkAllRead marks every unread notification in list concurrently, as when
// the user opens the notification panel. Failures are independent: the
// notifications that did get marked stay marked, and the returned slice
// reflects the per-item outcomes. The first error is returned so the caller
// can offer a retry.
func (c *Channel) MarkAllRead(ctx context.Context, list []models.Notification) ([]models.Notification, error) {
	out := make([]models.Notification, len(list))
	copy(out, list)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		failed   int
	)
	for i := range out {
		if out[i].IsRead {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			updated, err := c.api.MarkNotificationRead(ctx, c.session.AccessToken(), out[i].ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				metrics.NotificationMarksFailed.Inc()
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			out[i] = *updated
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		c.logger.Warn("bulk mark-read completed with failures", map[string]interface{}{
			"failed": failed,
			"total":  len(list),
			"error":  firstErr.Error(),
		})
		if errors.IsAuth(firstErr) {
			return out, c.session.HandleAuthError(ctx, firstErr)
		}
		return out, firstErr
	}
	return out, nil
}
