package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/jcastellanos/parcelflow-backend/pkg/config"
	redisclient "github.com/jcastellanos/parcelflow-backend/pkg/redis"
)

type revocationStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

type revocationKeyer interface {
	AccessRevocationKey(accessID string) string
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
// A token whose jti appears on the revocation list no longer has a live
// session.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// Manager tracks revoked access tokens in Redis. Revocation entries expire
// together with the token itself, so the list stays bounded.
type Manager struct {
	store revocationStore
	keyer revocationKeyer
	ttl   time.Duration
}

// NewManager constructs a revocation-backed session manager.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.AccessTokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("access token ttl must be positive")
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Revoke marks the access identifier as dead for the remaining token lifetime.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Set(ctx, m.keyer.AccessRevocationKey(accessID), "1", m.ttl)
}

// HasSession reports whether the provided access ID is still live.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, fmt.Errorf("access id is required")
	}
	if _, err := m.store.Get(ctx, m.keyer.AccessRevocationKey(accessID)); err != nil {
		if errors.Is(err, redislib.Nil) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
