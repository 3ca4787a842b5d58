package api

import (
	"context"
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/tigreau/nto-music/pkg/apierror"
	"github.com/tigreau/nto-music/pkg/client"
	"github.com/tigreau/nto-music/pkg/logger"
)

// GetUserProfile retrieves a user's account profile
func GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	logger.Debug("Fetching profile", "user_id", userID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Get(fmt.Sprintf("/api/users/%d", userID))

	if err := apierror.CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var profile UserProfile
	if err := json.Unmarshal(resp.Body(), &profile); err != nil {
		return nil, apierror.FromUnknown(err)
	}

	return &profile, nil
}

// UpdateUserProfile replaces a user's account profile
func UpdateUserProfile(ctx context.Context, userID int64, profile UserProfile) (*UserProfile, error) {
	logger.Debug("Updating profile", "user_id", userID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(profile).
		Put(fmt.Sprintf("/api/users/%d", userID))

	if err := apierror.CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var updated UserProfile
	if err := json.Unmarshal(resp.Body(), &updated); err != nil {
		return nil, apierror.FromUnknown(err)
	}

	return &updated, nil
}
