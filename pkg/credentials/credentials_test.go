package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tigreau/nto-music/pkg/config"
)

func initConfig(t *testing.T) {
	t.Helper()
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	initConfig(t)

	saved := &Credentials{
		UserID:    42,
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      "CUSTOMER",
	}
	if err := Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil for saved credentials")
	}
	if *loaded != *saved {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", loaded, saved)
	}
}

func TestLoadMissingFile(t *testing.T) {
	initConfig(t)

	creds, err := Load()
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if creds != nil {
		t.Error("missing file should yield nil credentials")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	initConfig(t)

	if err := os.WriteFile(config.GetSessionPath(), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	creds, err := Load()
	if err != nil {
		t.Fatalf("corrupt file should not be an error: %v", err)
	}
	if creds != nil {
		t.Error("corrupt file should yield nil credentials")
	}

	// The corrupt file must also be cleared
	if _, statErr := os.Stat(config.GetSessionPath()); !os.IsNotExist(statErr) {
		t.Error("corrupt cache file should be removed")
	}
}

func TestLoadIncompleteIdentity(t *testing.T) {
	initConfig(t)

	if err := os.WriteFile(config.GetSessionPath(), []byte(`{"email":"x@y.z"}`), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	creds, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if creds != nil {
		t.Error("identity without a user id should be discarded")
	}
}

func TestDelete(t *testing.T) {
	initConfig(t)

	if err := Save(&Credentials{UserID: 1, Email: "a@b.c", FirstName: "A", Role: "CUSTOMER"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := Delete(); err != nil {
		t.Errorf("Delete of missing file should be a no-op: %v", err)
	}

	creds, _ := Load()
	if creds != nil {
		t.Error("credentials should be gone after Delete")
	}
}

func TestFilePermissions(t *testing.T) {
	initConfig(t)

	if err := Save(&Credentials{UserID: 1, Email: "a@b.c", FirstName: "A", Role: "ADMIN"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(config.GetSessionPath())
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("credentials file should be 0600, got %v", info.Mode().Perm())
	}
}

func TestIsAdmin(t *testing.T) {
	admin := &Credentials{Role: "ADMIN"}
	customer := &Credentials{Role: "CUSTOMER"}

	if !admin.IsAdmin() {
		t.Error("ADMIN role should report IsAdmin")
	}
	if customer.IsAdmin() {
		t.Error("CUSTOMER role should not report IsAdmin")
	}
}
