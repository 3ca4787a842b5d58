package notifications

import (
	"context"

	"github.com/tigreau/nto-music/pkg/api"
	"github.com/tigreau/nto-music/pkg/client"
	"github.com/tigreau/nto-music/pkg/stream"
)

// restAPI adapts the REST wrappers to the engine's API interface
type restAPI struct{}

func (restAPI) List(ctx context.Context) ([]api.Notification, error) {
	return api.GetNotifications(ctx)
}

func (restAPI) MarkRead(ctx context.Context, id int64) error {
	return api.MarkNotificationRead(ctx, id)
}

func (restAPI) MarkAllRead(ctx context.Context) error {
	return api.MarkAllNotificationsRead(ctx)
}

func (restAPI) Delete(ctx context.Context, id int64) error {
	return api.DeleteNotification(ctx, id)
}

// NewRest builds an engine wired to the REST API and the notification
// event stream. The stream shares the HTTP client's cookie jar, so it
// authenticates with the same session.
func NewRest() *Engine {
	return NewEngine(restAPI{}, func() Conn {
		return stream.NewClient(stream.ConfigFromSettings(api.StreamURL(), client.HTTPClient()))
	})
}
