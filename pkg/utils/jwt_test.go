package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken(12, 34, "caja@tienda.co", []string{"cashier"}, []string{"pos-sell"})
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.CompanyID)
	assert.Equal(t, int64(34), claims.UserID)
	assert.Equal(t, []string{"pos-sell"}, claims.Permissions)
}

func TestAccessTokenRejectsOtherSecret(t *testing.T) {
	token, err := NewJWTManager("a", time.Hour).GenerateAccessToken(1, 1, "", nil, nil)
	require.NoError(t, err)

	_, err = NewJWTManager("b", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestAccessTokenNeedsCompany(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, err := m.GenerateAccessToken(0, 5, "", nil, nil)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseID("0")
	assert.Error(t, err)
	_, err = ParseID("abc")
	assert.Error(t, err)
}
