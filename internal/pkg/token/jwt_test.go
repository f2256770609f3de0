package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winestore/internal/pkg/token"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := token.NewService("segredo", time.Hour)

	signed, err := svc.GenerateToken("ops", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, token.Issuer, claims.Issuer)
}

func TestValidate_WrongSecret(t *testing.T) {
	signed, err := token.NewService("a", time.Hour).GenerateToken("ops", "admin")
	require.NoError(t, err)

	_, err = token.NewService("b", time.Hour).ValidateToken(signed)

	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	svc := token.NewService("segredo", -time.Minute)

	signed, err := svc.GenerateToken("ops", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := token.NewService("segredo", time.Hour).ValidateToken("nao.e.jwt")

	assert.Error(t, err)
}
