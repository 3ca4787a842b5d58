package credentials

import (
	"encoding/json"
	"os"

	"github.com/tigreau/nto-music/pkg/config"
)

// Credentials is the locally cached session identity. It is the last-known
// identity only: authorization decisions go through the session coordinator,
// which re-verifies against the server.
type Credentials struct {
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role"`
	Token     string `json:"token,omitempty"`
}

// IsAdmin reports whether the cached identity has the admin role
func (c *Credentials) IsAdmin() bool {
	return c.Role == "ADMIN"
}

// Load loads credentials from disk. A missing file is not an error; a
// corrupt file is treated as absent and removed.
func Load() (*Credentials, error) {
	path := config.GetSessionPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		_ = os.Remove(path)
		return nil, nil
	}

	if creds.UserID == 0 || creds.Email == "" {
		_ = os.Remove(path)
		return nil, nil
	}

	return &creds, nil
}

// Save saves credentials to disk
func Save(creds *Credentials) error {
	path := config.GetSessionPath()

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	// Owner read/write only
	return os.WriteFile(path, data, 0600)
}

// Delete deletes credentials from disk
func Delete() error {
	err := os.Remove(config.GetSessionPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
