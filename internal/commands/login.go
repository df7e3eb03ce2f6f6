package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"

	"todo/internal/backend/googletasks"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

const (
	// OAuth callback timeout
	oauthCallbackTimeout = 5 * time.Minute

	// Token exchange timeout
	tokenExchangeTimeout = 30 * time.Second

	// Starting port for OAuth callback server
	oauthStartPort = 8085

	// Max port attempts
	oauthMaxPortAttempts = 5
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command for the google backend.
type LoginCmd struct{}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Authenticate with Google Tasks" }
func (c *LoginCmd) Usage() string      { return "todo login" }
func (c *LoginCmd) NeedsService() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n\n", cfg.Dir)
		fmt.Fprintln(errOut, "Create a Desktop OAuth client for the Google Tasks API at")
		fmt.Fprintln(errOut, "https://console.cloud.google.com/apis/credentials, download its JSON and save it as:")
		fmt.Fprintf(errOut, "   %s\n", cfg.OAuthClientPath())
		return exitcode.AuthError
	}

	if cfg.HasToken() && isTokenValid(ctx, cfg) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	oauthConfig, err := googletasks.OAuthConfig(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	port, listener, err := findAvailablePort()
	if err != nil {
		fmt.Fprintln(errOut, "error: could not bind to local port for OAuth callback")
		return exitcode.AuthError
	}
	defer listener.Close()

	oauthConfig.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)

	verifier := oauth2.GenerateVerifier()
	authURL := oauthConfig.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	fmt.Fprintln(errOut, "Open this URL in your browser:")
	fmt.Fprintln(errOut, authURL)

	code, err := waitForCode(ctx, listener)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancel()

	token, err := oauthConfig.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to exchange code for token: %v\n", err)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := saveToken(cfg.TokenPath(), token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// waitForCode serves the OAuth redirect on listener until a code arrives.
func waitForCode(ctx context.Context, listener net.Listener) (string, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			errCh <- fmt.Errorf("no code in callback")
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		codeCh <- code
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	select {
	case code := <-codeCh:
		return code, nil
	case err := <-errCh:
		return "", err
	case <-time.After(oauthCallbackTimeout):
		return "", fmt.Errorf("oauth callback timed out")
	case <-ctx.Done():
		return "", fmt.Errorf("cancelled")
	}
}

// findAvailablePort tries to find an available port starting from oauthStartPort.
func findAvailablePort() (int, net.Listener, error) {
	for i := 0; i < oauthMaxPortAttempts; i++ {
		port := oauthStartPort + i
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, fmt.Errorf("no available port found")
}

// isTokenValid reports whether the stored token has a refresh token that
// can still mint access tokens.
func isTokenValid(ctx context.Context, cfg *config.Config) bool {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return false
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return false
	}
	if token.RefreshToken == "" {
		return false
	}

	oauthConfig, err := googletasks.OAuthConfig(cfg)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err = oauthConfig.TokenSource(ctx, &token).Token()
	return err == nil
}

// saveToken saves an OAuth token to a file with mode 0600.
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
