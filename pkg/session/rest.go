package session

import (
	"context"

	"github.com/tigreau/nto-music/pkg/api"
	"github.com/tigreau/nto-music/pkg/client"
	"github.com/tigreau/nto-music/pkg/credentials"
)

// restAuth drives the real auth endpoints and keeps the shared HTTP
// client's bearer header in step with token-issuing responses.
type restAuth struct{}

func (restAuth) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	resp, err := api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if resp.Token != "" {
		client.SetAuthToken(resp.Token)
	}
	return resp, nil
}

func (restAuth) Register(ctx context.Context, firstName, lastName, email, password string) (*api.AuthResponse, error) {
	resp, err := api.Register(ctx, firstName, lastName, email, password)
	if err != nil {
		return nil, err
	}
	if resp.Token != "" {
		client.SetAuthToken(resp.Token)
	}
	return resp, nil
}

func (restAuth) Logout(ctx context.Context) error {
	err := api.Logout(ctx)
	// The transport session (cookies, bearer header) dies with the logout
	// regardless of whether the server acknowledged it.
	client.ClearSession()
	return err
}

func (restAuth) Me(ctx context.Context) (*api.AuthResponse, error) {
	return api.Me(ctx)
}

// fileStore persists the cached identity through the credentials file
type fileStore struct{}

func (fileStore) Load() (*Identity, string, error) {
	creds, err := credentials.Load()
	if err != nil || creds == nil {
		return nil, "", err
	}
	return &Identity{
		UserID:    creds.UserID,
		Email:     creds.Email,
		FirstName: creds.FirstName,
		LastName:  creds.LastName,
		Role:      creds.Role,
	}, creds.Token, nil
}

func (fileStore) Save(identity *Identity, token string) error {
	return credentials.Save(&credentials.Credentials{
		UserID:    identity.UserID,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Role:      identity.Role,
		Token:     token,
	})
}

func (fileStore) Delete() error {
	return credentials.Delete()
}

// NewRest wires a coordinator to the storefront API and the on-disk
// identity cache. A cached bearer token is restored into the HTTP client
// so a fresh process resumes the previous session.
func NewRest() *Coordinator {
	c := New(restAuth{}, fileStore{})
	if c.token != "" {
		client.SetAuthToken(c.token)
	}
	return c
}
