package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tigreau/nto-music/pkg/service"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "Notification commands",
	Long:    "View and manage your notifications",
}

var notifListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewNotificationService(newCoordinator(), newEngine())
		return svc.List(cmd.Context())
	},
}

var notifReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		svc := service.NewNotificationService(newCoordinator(), newEngine())
		return svc.MarkRead(cmd.Context(), id)
	},
}

var notifReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewNotificationService(newCoordinator(), newEngine())
		return svc.MarkAllRead(cmd.Context())
	},
}

var notifDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		svc := service.NewNotificationService(newCoordinator(), newEngine())
		return svc.Delete(cmd.Context(), id)
	},
}

var notifWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream notifications live until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewNotificationService(newCoordinator(), newEngine())
		return svc.Watch(cmd.Context())
	},
}

func init() {
	notificationsCmd.AddCommand(notifListCmd)
	notificationsCmd.AddCommand(notifReadCmd)
	notificationsCmd.AddCommand(notifReadAllCmd)
	notificationsCmd.AddCommand(notifDeleteCmd)
	notificationsCmd.AddCommand(notifWatchCmd)
}
