package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/tigreau/nto-music/pkg/api"
	"github.com/tigreau/nto-music/pkg/logger"
	"github.com/tigreau/nto-music/pkg/notifications"
	"github.com/tigreau/nto-music/pkg/output"
	"github.com/tigreau/nto-music/pkg/session"
)

// NotificationService drives the notification commands
type NotificationService struct {
	coordinator *session.Coordinator
	engine      *notifications.Engine
}

// NewNotificationService creates a new notification service
func NewNotificationService(coordinator *session.Coordinator, engine *notifications.Engine) *NotificationService {
	return &NotificationService{coordinator: coordinator, engine: engine}
}

// List shows the notification feed, newest first
func (s *NotificationService) List(ctx context.Context) error {
	if err := s.engine.Refresh(ctx); err != nil {
		reportError(err)
		return err
	}

	items := s.engine.Notifications()
	if len(items) == 0 {
		output.PrintInfo("No notifications")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, n := range items {
		marker := "●"
		if n.Read {
			marker = " "
		}
		rows = append(rows, []string{
			marker,
			fmt.Sprintf("%d", n.ID),
			string(n.Type),
			n.Message,
			n.Timestamp,
		})
	}

	if err := output.PrintTable([]string{"", "ID", "TYPE", "MESSAGE", "WHEN"}, rows, items); err != nil {
		return err
	}

	if unread := s.engine.UnreadCount(); unread > 0 {
		fmt.Println()
		output.PrintInfo("%d unread", unread)
	}
	return nil
}

// MarkRead marks one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	if err := s.engine.Refresh(ctx); err != nil {
		reportError(err)
		return err
	}
	if err := s.engine.MarkAsRead(ctx, id); err != nil {
		reportError(err)
		return err
	}
	output.PrintSuccess("✓ Notification %d marked read", id)
	return nil
}

// MarkAllRead marks every notification as read
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	if err := s.engine.Refresh(ctx); err != nil {
		reportError(err)
		return err
	}
	if err := s.engine.MarkAllAsRead(ctx); err != nil {
		reportError(err)
		return err
	}
	output.PrintSuccess("✓ All notifications marked read")
	return nil
}

// Delete removes one notification
func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	if err := s.engine.Refresh(ctx); err != nil {
		reportError(err)
		return err
	}
	if err := s.engine.Delete(ctx, id); err != nil {
		reportError(err)
		return err
	}
	output.PrintSuccess("✓ Notification %d deleted", id)
	return nil
}

// Watch streams notifications live until interrupted
func (s *NotificationService) Watch(ctx context.Context) error {
	s.coordinator.Initialize(ctx)

	snap := s.coordinator.Snapshot()
	if !snap.IsAuthenticated {
		output.PrintError("Not logged in")
		output.PrintInfo("Run 'nto auth login' to sign in.")
		return fmt.Errorf("not logged in")
	}

	unsubDisplay := s.engine.OnNotification(s.displayNotification)
	defer unsubDisplay()

	// Binding connects the engine to the live session: it loads history
	// and opens the event stream.
	s.engine.Bind(s.coordinator)
	defer s.engine.Close()

	fmt.Println()
	output.PrintInfo("🔔 Watching for notifications")
	fmt.Printf("Connected as: %s\n", snap.User.Email)
	fmt.Printf("Press Ctrl+C to stop\n")
	fmt.Printf("%s\n\n", strings.Repeat("─", 60))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		fmt.Println()
		output.PrintSuccess("Notification watcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *NotificationService) displayNotification(n api.Notification) {
	logger.Debug("Notification received", "id", n.ID, "type", n.Type)

	icon := notificationIcon(n.Type)
	bold := color.New(color.Bold)
	fmt.Printf("%s %s %s\n", icon, bold.Sprint(n.Type), n.Message)
}

func notificationIcon(t api.NotificationType) string {
	switch t {
	case api.NotificationPriceDrop, api.NotificationWishlistSale:
		return "💸"
	case api.NotificationBackInStock:
		return "📦"
	case api.NotificationOrderConfirmed, api.NotificationOrderShipped:
		return "🚚"
	case api.NotificationCartReminder:
		return "🛒"
	default:
		return "📬"
	}
}
