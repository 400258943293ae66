package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	auth := NewAuthService(newTestDB(t), "test-secret")
	ctx := context.Background()

	user, err := auth.Register(ctx, "cook@example.com", "longpassword", "cook")
	require.NoError(t, err)
	assert.NotEqual(t, "longpassword", user.PasswordHash)

	// registration creates an empty profile so refresh works immediately
	profiles := NewProfileService(auth.db)
	_, err = profiles.GetProfile(ctx, user.ID)
	assert.NoError(t, err)

	loggedIn, token, err := auth.Login(ctx, "cook@example.com", "longpassword")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "cook", claims.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	auth := NewAuthService(newTestDB(t), "test-secret")
	ctx := context.Background()

	_, err := auth.Register(ctx, "cook@example.com", "longpassword", "cook")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "cook@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "nobody@example.com", "longpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	auth := NewAuthService(newTestDB(t), "test-secret")
	_, err := auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(newTestDB(t), "other-secret")
	token, err := other.GenerateToken(&TokenClaims{Username: "x"})
	require.NoError(t, err)
	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "tokens signed with another secret are invalid")
}
