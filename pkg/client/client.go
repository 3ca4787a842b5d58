package client

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tigreau/nto-music/pkg/config"
	"github.com/tigreau/nto-music/pkg/logger"
)

var httpClient *resty.Client

// Init initializes the HTTP client. The resty client carries a cookie jar;
// the storefront API authenticates with a session cookie, so the jar is
// shared with the notification stream via HTTPClient.
func Init() {
	httpClient = newClient()
}

func newClient() *resty.Client {
	c := resty.New()

	baseURL := config.GetString("api.base_url")
	timeout := time.Duration(config.GetInt("api.timeout")) * time.Second

	c.SetBaseURL(baseURL)
	c.SetTimeout(timeout)
	c.SetHeader("User-Agent", "nto-music/0.1.0")

	c.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})

	c.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode())
		return nil
	})

	return c
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// HTTPClient returns the underlying net/http client. It shares the cookie
// jar and auth headers with the REST client, which is what lets the SSE
// stream authenticate with the same session.
func HTTPClient() *http.Client {
	return GetClient().GetClient()
}

// BaseURL returns the configured API base URL
func BaseURL() string {
	return GetClient().BaseURL
}

// SetAuthToken sets the authorization token
func SetAuthToken(token string) {
	GetClient().SetHeader("Authorization", "Bearer "+token)
}

// ClearSession drops auth headers and the cookie jar by rebuilding the
// client, so nothing from the previous session leaks into the next one.
func ClearSession() {
	httpClient = newClient()
}
