package cmd

import (
	"fmt"
	"time"

	"github.com/klwxsrx/go-storefront/pkg/env"
	"github.com/klwxsrx/go-storefront/pkg/log"
	"github.com/klwxsrx/go-storefront/pkg/session"
)

type SessionStoreKind string

const (
	SessionStoreMemory   SessionStoreKind = "memory"
	SessionStoreFile     SessionStoreKind = "file"
	SessionStoreRedis    SessionStoreKind = "redis"
	SessionStorePostgres SessionStoreKind = "postgres"
)

const defaultSessionNamespace = "storefront"

type SessionConfig struct {
	Store          SessionStoreKind
	File           string
	Namespace      string
	TTL            time.Duration
	CleanupPolicy  session.CleanupPolicy
	RefreshTimeout time.Duration
}

// Options turns the config into session manager options.
func (c SessionConfig) Options() []session.Option {
	opts := []session.Option{session.WithCleanupPolicy(c.CleanupPolicy)}
	if c.RefreshTimeout > 0 {
		opts = append(opts, session.WithRefreshTimeout(c.RefreshTimeout))
	}
	return opts
}

// ParseSessionConfig reads SESSION_* variables, falling back to the given store kind and file.
func ParseSessionConfig(defaultStore SessionStoreKind, defaultFile string) (SessionConfig, error) {
	store, err := env.ParseOptional[string]("SESSION_STORE", string(defaultStore))
	if err != nil {
		return SessionConfig{}, err
	}

	kind := SessionStoreKind(store)
	switch kind {
	case SessionStoreMemory, SessionStoreFile, SessionStoreRedis, SessionStorePostgres:
	default:
		return SessionConfig{}, fmt.Errorf("unknown session store %q", store)
	}

	policyName, err := env.ParseOptional[string]("SESSION_CLEANUP_POLICY", session.CleanupToken.String())
	if err != nil {
		return SessionConfig{}, err
	}
	policy, err := session.ParseCleanupPolicy(policyName)
	if err != nil {
		return SessionConfig{}, err
	}

	config := SessionConfig{
		Store:         kind,
		CleanupPolicy: policy,
	}
	if config.File, err = env.ParseOptional[string]("SESSION_FILE", defaultFile); err != nil {
		return SessionConfig{}, err
	}
	if config.Namespace, err = env.ParseOptional[string]("SESSION_NAMESPACE", defaultSessionNamespace); err != nil {
		return SessionConfig{}, err
	}
	if config.TTL, err = env.ParseOptional[time.Duration]("SESSION_TTL", 0); err != nil {
		return SessionConfig{}, err
	}
	if config.RefreshTimeout, err = env.ParseOptional[time.Duration]("SESSION_REFRESH_TIMEOUT", 0); err != nil {
		return SessionConfig{}, err
	}
	if kind == SessionStoreFile && config.File == "" {
		return SessionConfig{}, fmt.Errorf("%w: SESSION_FILE is required for the file session store", env.ErrNotFound)
	}

	return config, nil
}

func parseLogLevel(fallback log.Level) log.Level {
	name, err := env.Parse[string]("LOG_LEVEL")
	if err != nil {
		return fallback
	}

	level, err := log.ParseLevel(name)
	if err != nil {
		return fallback
	}
	return level
}
