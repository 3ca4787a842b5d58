package api

import (
	"context"
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/tigreau/nto-music/pkg/apierror"
	"github.com/tigreau/nto-music/pkg/client"
	"github.com/tigreau/nto-music/pkg/logger"
)

// GetNotifications retrieves the full notification history, newest first
func GetNotifications(ctx context.Context) ([]Notification, error) {
	logger.Debug("Fetching notifications")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Get("/api/notifications")

	if err := apierror.CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var notifications []Notification
	if err := json.Unmarshal(resp.Body(), &notifications); err != nil {
		return nil, apierror.FromUnknown(err)
	}

	return notifications, nil
}

// MarkNotificationRead marks a single notification as read
func MarkNotificationRead(ctx context.Context, id int64) error {
	logger.Debug("Marking notification as read", "id", id)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Patch(fmt.Sprintf("/api/notifications/%d/read", id))

	return apierror.CheckResponse(resp, err)
}

// MarkAllNotificationsRead marks every notification as read
func MarkAllNotificationsRead(ctx context.Context) error {
	logger.Debug("Marking all notifications as read")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Patch("/api/notifications/read-all")

	return apierror.CheckResponse(resp, err)
}

// DeleteNotification deletes a notification
func DeleteNotification(ctx context.Context, id int64) error {
	logger.Debug("Deleting notification", "id", id)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/notifications/%d", id))

	return apierror.CheckResponse(resp, err)
}

// StreamURL returns the absolute URL of the notification event stream
func StreamURL() string {
	return client.BaseURL() + "/api/notifications/stream"
}
