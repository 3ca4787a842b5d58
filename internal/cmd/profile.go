package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tigreau/nto-music/pkg/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Account profile commands",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService(newCoordinator()).Show(cmd.Context())
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProfileService(newCoordinator()).Edit(cmd.Context())
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileEditCmd)
}
