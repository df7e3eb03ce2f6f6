package commands_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

// writeAuthFiles populates dir with the given oauth client and token files.
// Empty content skips the file.
func writeAuthFiles(t *testing.T, dir, oauthClient, token string) {
	t.Helper()
	files := map[string]string{
		config.OAuthClientFile: oauthClient,
		config.TokenFile:       token,
	}
	for name, content := range files {
		if content == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func runAuthCommand(ctx context.Context, cmd commands.Command, dir string, quiet bool) (stdout, stderr string, code int) {
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: dir, Quiet: quiet}
	code = cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestLoginCommand_NoOAuthClient(t *testing.T) {
	stdout, stderr, code := runAuthCommand(context.Background(), &commands.LoginCmd{}, t.TempDir(), false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr == "" {
		t.Error("expected error message about missing oauth_client.json")
	}
}

// Tokens that cannot be refreshed must not short-circuit as "already logged in".
func TestLoginCommand_UnusableToken(t *testing.T) {
	tokens := map[string]string{
		"no refresh token": `{"access_token":"test","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`,
		"corrupt":          `{not json`,
	}

	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeAuthFiles(t, dir, testOAuthClient, token)

			// Cancel immediately so login does not wait for a browser callback
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			stdout, _, code := runAuthCommand(ctx, &commands.LoginCmd{}, dir, false)
			if stdout == "already logged in\n" {
				t.Error("should not say 'already logged in'")
			}
			if code != exitcode.AuthError {
				t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
			}
		})
	}
}

func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	dir := t.TempDir()
	writeAuthFiles(t, dir, testOAuthClient, `{"access_token":"test","refresh_token":"test"}`)

	stdout, stderr, code := runAuthCommand(context.Background(), &commands.LogoutCmd{}, dir, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, config.TokenFile)); !os.IsNotExist(err) {
		t.Error("token.json should have been deleted")
	}
	if _, err := os.Stat(filepath.Join(dir, config.OAuthClientFile)); err != nil {
		t.Error("oauth_client.json should NOT have been deleted")
	}
}

func TestLogoutCommand_ClientFlag(t *testing.T) {
	dir := t.TempDir()
	writeAuthFiles(t, dir, testOAuthClient, "")

	stdout, _, code := runAuthCommand(context.Background(), &commands.LogoutCmd{}, dir, false)
	if code != exitcode.Success || stdout != "not logged in\n" {
		t.Errorf("without --client: code=%d stdout=%q", code, stdout)
	}

	cmd := &commands.LogoutCmd{}
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	cmd.RegisterFlags(fs)
	if err := fs.Parse([]string{"--client"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	stdout, _, code = runAuthCommand(context.Background(), cmd, dir, false)
	if code != exitcode.Success || stdout != "ok\n" {
		t.Errorf("with --client: code=%d stdout=%q", code, stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, config.OAuthClientFile)); !os.IsNotExist(err) {
		t.Error("oauth_client.json should have been deleted")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	tests := []struct {
		quiet bool
		want  string
	}{
		{false, "not logged in\n"},
		{true, ""},
	}
	for _, tt := range tests {
		stdout, stderr, code := runAuthCommand(context.Background(), &commands.LogoutCmd{}, t.TempDir(), tt.quiet)

		if code != exitcode.Success {
			t.Errorf("quiet=%v: expected exit code %d, got %d", tt.quiet, exitcode.Success, code)
		}
		if stderr != "" {
			t.Errorf("quiet=%v: expected no stderr, got %q", tt.quiet, stderr)
		}
		if stdout != tt.want {
			t.Errorf("quiet=%v: expected %q, got %q", tt.quiet, tt.want, stdout)
		}
	}
}
