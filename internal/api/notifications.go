package api

import (
	"context"
	"fmt"
	"net/http"

	"scholarhub-client/internal/models"
)

// NotificationCreateInput creates a notice for a user. Used by the reviewer
// assignment side effect.
type NotificationCreateInput struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// ListNotifications returns all notifications for a user. Order is not part
// of the contract; callers sort by CreatedAt when they care.
func (c *Client) ListNotifications(ctx context.Context, accessToken string, userID int64) ([]models.Notification, error) {
	var list []models.Notification
	path := fmt.Sprintf("/notifications/user/%d", userID)
	if err := c.doJSON(ctx, "notifications.list", http.MethodGet, path, accessToken, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListUnreadNotifications returns only the unread notifications for a user.
func (c *Client) ListUnreadNotifications(ctx context.Context, accessToken string, userID int64) ([]models.Notification, error) {
	var list []models.Notification
	path := fmt.Sprintf("/notifications/user/%d/unread", userID)
	if err := c.doJSON(ctx, "notifications.list_unread", http.MethodGet, path, accessToken, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateNotification posts a new notification.
func (c *Client) CreateNotification(ctx context.Context, accessToken string, input NotificationCreateInput) (*models.Notification, error) {
	var notif models.Notification
	if err := c.doJSON(ctx, "notifications.create", http.MethodPost, "/notifications/", accessToken, input, &notif); err != nil {
		return nil, err
	}
	return &notif, nil
}

// MarkNotificationRead flips a notification to read.
func (c *Client) MarkNotificationRead(ctx context.Context, accessToken string, notificationID int64) (*models.Notification, error) {
	var notif models.Notification
	path := fmt.Sprintf("/notifications/%d/read", notificationID)
	if err := c.doJSON(ctx, "notifications.mark_read", http.MethodPost, path, accessToken, nil, &notif); err != nil {
		return nil, err
	}
	return &notif, nil
}
