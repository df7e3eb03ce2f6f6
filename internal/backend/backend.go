// Package backend selects and builds the configured service.Service.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"todo/internal/backend/googletasks"
	"todo/internal/backend/rest"
	"todo/internal/config"
	"todo/internal/service"
)

var (
	// ErrNoAPIURL is returned when the rest backend has no base URL configured.
	ErrNoAPIURL = errors.New("no API URL configured (set " + config.EnvAPIURL + " or api_url in config.toml)")

	// ErrNotLoggedIn is returned when the google backend has no stored credentials.
	ErrNotLoggedIn = errors.New("not logged in (run: todo login)")
)

// New returns the service selected by cfg.Backend.
func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (service.Service, error) {
	switch cfg.Backend {
	case config.BackendREST, "":
		if cfg.APIURL == "" {
			return nil, ErrNoAPIURL
		}
		log.WithFields(logrus.Fields{
			"backend":  config.BackendREST,
			"base_url": cfg.APIURL,
			"breaker":  cfg.BreakerFailures > 0,
		}).Debug("using task backend")
		return rest.New(rest.Config{
			BaseURL:         cfg.APIURL,
			Token:           cfg.APIToken,
			BreakerFailures: cfg.BreakerFailures,
			BreakerTimeout:  cfg.BreakerTimeout,
		}, rest.WithLogger(log)), nil

	case config.BackendGoogle:
		if !cfg.HasOAuthClient() || !cfg.HasToken() {
			return nil, ErrNotLoggedIn
		}
		log.WithField("backend", config.BackendGoogle).Debug("using task backend")
		return googletasks.New(ctx, cfg)

	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}

// IsAuthError reports whether err means the user has to authenticate first.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotLoggedIn)
}
