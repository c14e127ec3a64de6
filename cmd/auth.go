package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/arf3lix/songorder/internal/server"
	"github.com/arf3lix/songorder/internal/shared"
	"github.com/urfave/cli/v3"
)

// storedSession is the validated login state persisted between invocations.
type storedSession struct {
	Token string `json:"token"`
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
}

func sessionPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".songorder", "session.json"), nil
}

func loadSession() (*storedSession, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: corrupt session file: %v", shared.ErrNotAuthenticated, err)
	}
	if stored.Token == "" {
		return nil, fmt.Errorf("%w: session file has no token", shared.ErrNotAuthenticated)
	}

	return &stored, nil
}

func saveSession(stored *storedSession) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// AuthLogin opens the storefront login page, captures the ?token= redirect on
// a localhost listener, validates the token, and stores the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.config.Order.LoginURL == "" {
		return fmt.Errorf("%w: order.login_url is not set", shared.ErrMissingConfig)
	}

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	redirect := fmt.Sprintf("http://%s/callback", addr)
	loginURL := fmt.Sprintf("%s?redirect=%s", r.config.Order.LoginURL, url.QueryEscape(redirect))

	if cmd.Bool("no-browser") {
		r.writePlain("Open this URL to log in:\n%s\n", loginURL)
	} else if err := shared.OpenBrowser(loginURL); err != nil {
		r.logger.Warn("failed to open browser", "err", err)
		r.writePlain("Open this URL to log in:\n%s\n", loginURL)
	}

	r.logger.Info("waiting for login redirect", "addr", addr)

	timeout := time.Duration(cmd.Int("timeout")) * time.Second
	token, err := server.CaptureToken(ctx, addr, timeout)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	user, err := r.auth.ValidateToken(ctx, token)
	if err != nil {
		return err
	}

	stored := &storedSession{Token: token, Phone: user.Phone, Name: user.Name}
	if err := saveSession(stored); err != nil {
		return err
	}
	r.stored = stored

	r.logger.Info("login successful", "phone", user.Phone)
	return r.writePlain("✓ Logged in as %s (%s)\n", user.Name, user.Phone)
}

// AuthStatus validates the stored session token and reports who it belongs to.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	stored := r.stored
	if stored == nil {
		var err error
		if stored, err = loadSession(); err != nil {
			return r.writePlain("✗ Not logged in\nRun 'songorder auth login' to authenticate\n")
		}
	}

	user, err := r.auth.ValidateToken(ctx, stored.Token)
	if err != nil {
		r.writePlain("✗ Session is no longer valid: %v\n", err)
		return r.writePlain("Run 'songorder auth login' to authenticate again\n")
	}

	r.writePlain("✓ Logged in as %s (%s)\n", user.Name, user.Phone)
	if user.ExpiresAt != "" {
		r.writePlain("Session expires: %s\n", user.ExpiresAt)
	}
	return nil
}
