package service

import (
	"context"
	"fmt"

	"github.com/tigreau/nto-music/pkg/api"
	"github.com/tigreau/nto-music/pkg/output"
	"github.com/tigreau/nto-music/pkg/prompter"
	"github.com/tigreau/nto-music/pkg/session"
)

// ProfileService drives the account profile commands
type ProfileService struct {
	coordinator *session.Coordinator
}

// NewProfileService creates a new profile service
func NewProfileService(coordinator *session.Coordinator) *ProfileService {
	return &ProfileService{coordinator: coordinator}
}

// Show displays the signed-in user's profile
func (s *ProfileService) Show(ctx context.Context) error {
	snap := s.coordinator.Snapshot()
	if !snap.IsAuthenticated {
		output.PrintError("Not logged in")
		output.PrintInfo("Run 'nto auth login' to sign in.")
		return fmt.Errorf("not logged in")
	}

	profile, err := api.GetUserProfile(ctx, snap.User.UserID)
	if err != nil {
		reportError(err)
		return err
	}

	fields := [][2]string{
		{"Name", fmt.Sprintf("%s %s", profile.FirstName, profile.LastName)},
		{"Email", profile.Email},
		{"Phone", profile.PhoneNumber},
		{"Address", fmt.Sprintf("%s %s, %s %s, %s",
			profile.Street, profile.Number, profile.PostalCode, profile.City, profile.Country)},
	}
	return output.PrintRecord("Profile", fields)
}

// Edit walks through the profile fields, keeping current values on enter
func (s *ProfileService) Edit(ctx context.Context) error {
	snap := s.coordinator.Snapshot()
	if !snap.IsAuthenticated {
		output.PrintError("Not logged in")
		output.PrintInfo("Run 'nto auth login' to sign in.")
		return fmt.Errorf("not logged in")
	}

	current, err := api.GetUserProfile(ctx, snap.User.UserID)
	if err != nil {
		reportError(err)
		return err
	}

	updated := *current
	prompts := []struct {
		label string
		dest  *string
	}{
		{"First name", &updated.FirstName},
		{"Last name", &updated.LastName},
		{"Phone", &updated.PhoneNumber},
		{"Street", &updated.Street},
		{"Number", &updated.Number},
		{"Postal code", &updated.PostalCode},
		{"City", &updated.City},
		{"Country", &updated.Country},
	}
	for _, p := range prompts {
		value, err := prompter.PromptStringDefault(p.label, *p.dest)
		if err != nil {
			return err
		}
		*p.dest = value
	}

	if _, err := api.UpdateUserProfile(ctx, snap.User.UserID, updated); err != nil {
		reportError(err)
		return err
	}

	output.PrintSuccess("✓ Profile updated")

	// The display name may have changed; refresh the session copy
	s.coordinator.Refresh(ctx)
	return nil
}
