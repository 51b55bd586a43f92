package auth_test

import (
	"testing"
	"time"

	"github.com/dangerclosesec/crm/internal/auth"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTripCarriesPrincipal(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", time.Hour)
	team := uuid.New()
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesManager, TeamID: &team}

	token, err := tm.Generate(p, "manager@example.com")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "manager@example.com", claims.Email)

	got, err := claims.Principal()
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, policy.RoleSalesManager, got.Role)
	require.NotNil(t, got.TeamID)
	assert.Equal(t, team, *got.TeamID)
	assert.Nil(t, got.ManagerID)
}

func TestTokenRejectsForeignSecret(t *testing.T) {
	token, err := auth.NewTokenManager("one", time.Hour).Generate(policy.Principal{ID: uuid.New()}, "a@example.com")
	require.NoError(t, err)

	_, err = auth.NewTokenManager("two", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", -time.Minute)
	token, err := tm.Generate(policy.Principal{ID: uuid.New()}, "a@example.com")
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.Error(t, err)
}

func TestClaimsUnknownRoleFailsClosed(t *testing.T) {
	claims := &auth.Claims{UserID: uuid.NewString(), Role: "superuser"}

	p, err := claims.Principal()
	require.NoError(t, err)
	assert.Equal(t, policy.RoleSalesExecutive, p.Role)
}

func TestClaimsInvalidSubject(t *testing.T) {
	_, err := (&auth.Claims{UserID: "not-a-uuid"}).Principal()
	assert.Error(t, err)
}

func TestPasswordHasher(t *testing.T) {
	hasher := auth.NewPasswordHasher()
	hash, err := hasher.Hash("correct_password")
	require.NoError(t, err)

	ok, err := hasher.Verify("correct_password", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong_password", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = hasher.Verify("x", "not-a-hash")
	assert.Error(t, err)
}
