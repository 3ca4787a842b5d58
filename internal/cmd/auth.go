package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tigreau/nto-music/pkg/service"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage your NTO Music session",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to NTO Music",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(newCoordinator())
		return authSvc.Login(cmd.Context())
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new NTO Music account",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(newCoordinator())
		return authSvc.Register(cmd.Context())
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from NTO Music",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(newCoordinator())
		return authSvc.Logout(cmd.Context())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Display the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(newCoordinator())
		return authSvc.WhoAmI(cmd.Context())
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)
}
