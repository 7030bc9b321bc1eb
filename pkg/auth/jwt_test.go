package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "loanbook",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_RequiresKeyMaterial(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateToken("ST0001", "A. Wanjiku", []string{RoleAdmin, RoleLoanOfficer})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ST0001", claims.StaffID)
	assert.Equal(t, "loanbook", claims.Issuer)
	assert.True(t, claims.HasRole(RoleAdmin))
	assert.True(t, claims.HasRole(RoleLoanOfficer))
	assert.False(t, claims.HasRole(RoleAuditor))
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateToken_RejectsWrongIssuer(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "someone-else", Expiration: time.Hour})
	require.NoError(t, err)

	token, err := issuer.GenerateToken("ST0002", "", []string{RoleLoanOfficer})
	require.NoError(t, err)

	svc := newTestService(t)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "loanbook",
		Expiration: -time.Minute,
	})
	require.NoError(t, err)

	token, err := svc.GenerateToken("ST0003", "", []string{RoleLoanOfficer})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
