package auth

import (
	"testing"
	"time"

	"github.com/dskendzo/eventplanner/config"
	"github.com/dskendzo/eventplanner/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", Expiration: time.Hour}
	user := &entity.User{ID: 42, Role: entity.RoleOrganizer}

	token, err := GenerateToken(cfg, user)
	require.NoError(t, err)

	claims, err := ParseToken(cfg.Secret, token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, string(entity.RoleOrganizer), claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", Expiration: time.Hour}

	token, err := GenerateToken(cfg, &entity.User{ID: 1, Role: entity.RoleUser})
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", Expiration: -time.Minute}

	token, err := GenerateToken(cfg, &entity.User{ID: 1, Role: entity.RoleUser})
	require.NoError(t, err)

	_, err = ParseToken(cfg.Secret, token)
	assert.Error(t, err)
}
