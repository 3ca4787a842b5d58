package api

import (
	"context"

	json "github.com/json-iterator/go"
	"github.com/tigreau/nto-music/pkg/apierror"
	"github.com/tigreau/nto-music/pkg/client"
	"github.com/tigreau/nto-music/pkg/logger"
)

// Login authenticates user with email and password
func Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	logger.Debug("Attempting login", "email", email)

	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/login")

	if err := apierror.CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := json.Unmarshal(resp.Body(), &authResp); err != nil {
		return nil, apierror.FromUnknown(err)
	}

	logger.Debug("Login successful", "email", authResp.Email)
	return &authResp, nil
}

// Register creates a new account and signs it in
func Register(ctx context.Context, firstName, lastName, email, password string) (*AuthResponse, error) {
	logger.Debug("Attempting registration", "email", email)

	req := RegisterRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	}

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/register")

	if err := apierror.CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := json.Unmarshal(resp.Body(), &authResp); err != nil {
		return nil, apierror.FromUnknown(err)
	}

	logger.Debug("Registration successful", "email", authResp.Email)
	return &authResp, nil
}

// Logout ends the server-side session. 204 on success.
func Logout(ctx context.Context) error {
	logger.Debug("Logging out")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Post("/api/auth/logout")

	return apierror.CheckResponse(resp, err)
}

// Me fetches the authoritative current identity
func Me(ctx context.Context) (*AuthResponse, error) {
	logger.Debug("Verifying session")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Get("/api/auth/me")

	if err := apierror.CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := json.Unmarshal(resp.Body(), &authResp); err != nil {
		return nil, apierror.FromUnknown(err)
	}

	logger.Debug("Session verified", "email", authResp.Email)
	return &authResp, nil
}
