package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobly/internal/domain"
)

func TestRequireElevatedOrSelf(t *testing.T) {
	tests := []struct {
		name  string
		id    *Identity
		owner string
		allow bool
	}{
		{name: "anonymous", id: nil, owner: "u1", allow: false},
		{name: "self", id: &Identity{Username: "u1"}, owner: "u1", allow: true},
		{name: "other user", id: &Identity{Username: "u2"}, owner: "u1", allow: false},
		{name: "admin", id: &Identity{Username: "admin", IsAdmin: true}, owner: "u1", allow: true},
		{name: "admin self", id: &Identity{Username: "u1", IsAdmin: true}, owner: "u1", allow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireElevatedOrSelf(tt.id, tt.owner)
			if tt.allow {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
			}
		})
	}
}

func TestRequireAuthenticatedAndElevated(t *testing.T) {
	assert.ErrorIs(t, RequireAuthenticated(nil), domain.ErrUnauthorized)
	assert.NoError(t, RequireAuthenticated(&Identity{Username: "u1"}))

	assert.ErrorIs(t, RequireElevated(nil), domain.ErrUnauthorized)
	assert.ErrorIs(t, RequireElevated(&Identity{Username: "u1"}), domain.ErrUnauthorized)
	assert.NoError(t, RequireElevated(&Identity{Username: "admin", IsAdmin: true}))
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Issue(&domain.User{Username: "u1", IsAdmin: true})
	require.NoError(t, err)

	id, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, &Identity{Username: "u1", IsAdmin: true}, id)
}

func TestTokenRejections(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Issue(&domain.User{Username: "u1"})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenIssuer("other", time.Hour).Parse(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewTokenIssuer("secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Username: "u1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = issuer.Parse(unsigned)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-token")
		assert.Error(t, err)
	})
}
