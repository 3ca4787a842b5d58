package service

import (
	"context"
	"fmt"

	"github.com/tigreau/nto-music/pkg/logger"
	"github.com/tigreau/nto-music/pkg/output"
	"github.com/tigreau/nto-music/pkg/prompter"
	"github.com/tigreau/nto-music/pkg/session"
)

// AuthService drives the interactive sign-in flows
type AuthService struct {
	coordinator *session.Coordinator
}

// NewAuthService creates a new auth service
func NewAuthService(coordinator *session.Coordinator) *AuthService {
	return &AuthService{coordinator: coordinator}
}

// Login handles user login
func (s *AuthService) Login(ctx context.Context) error {
	snap := s.coordinator.Snapshot()
	if snap.IsAuthenticated {
		output.PrintWarning("Already logged in as %s", snap.User.Email)
		confirm, err := prompter.PromptConfirm("Continue with new login?")
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	email, err := prompter.PromptString("Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	output.PrintInfo("Authenticating...")
	if err := s.coordinator.Login(ctx, email, password); err != nil {
		reportError(err)
		return err
	}

	snap = s.coordinator.Snapshot()
	output.PrintSuccess("✓ Login successful!")
	if snap.IsAdmin {
		output.PrintInfo("Logged in as %s (ADMIN)", snap.User.Email)
	} else {
		output.PrintInfo("Logged in as %s", snap.User.Email)
	}
	return nil
}

// Register handles account creation followed by sign-in
func (s *AuthService) Register(ctx context.Context) error {
	firstName, err := prompter.PromptString("First name: ")
	if err != nil {
		return err
	}
	if firstName == "" {
		return fmt.Errorf("first name cannot be empty")
	}

	lastName, err := prompter.PromptString("Last name: ")
	if err != nil {
		return err
	}

	email, err := prompter.PromptString("Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	confirm, err := prompter.PromptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if confirm != password {
		return fmt.Errorf("passwords do not match")
	}

	output.PrintInfo("Creating account...")
	if err := s.coordinator.Register(ctx, firstName, lastName, email, password); err != nil {
		reportError(err)
		return err
	}

	output.PrintSuccess("✓ Account created, you are now signed in")
	return nil
}

// Logout ends the session
func (s *AuthService) Logout(ctx context.Context) error {
	if !s.coordinator.Snapshot().IsAuthenticated {
		output.PrintInfo("Not logged in")
		return nil
	}

	s.coordinator.Logout(ctx)
	output.PrintSuccess("✓ Logged out")
	return nil
}

// WhoAmI verifies the session against the server and shows the result
func (s *AuthService) WhoAmI(ctx context.Context) error {
	s.coordinator.Initialize(ctx)

	snap := s.coordinator.Snapshot()
	if !snap.IsAuthenticated {
		output.PrintInfo("Not logged in")
		return nil
	}

	logger.Debug("Session verified", "user_id", snap.User.UserID)

	fields := [][2]string{
		{"Name", fmt.Sprintf("%s %s", snap.User.FirstName, snap.User.LastName)},
		{"Email", snap.User.Email},
		{"Role", snap.User.Role},
	}
	return output.PrintRecord("Signed in", fields)
}
