package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenderTypeLabel(t *testing.T) {
	assert.Equal(t, "Efectivo", TenderCash.Label())
	assert.Equal(t, "Financiado", TenderFinanced.Label())
	assert.Equal(t, "gift", TenderType("gift").Label())
}

func TestTenderTypeUnmarshal(t *testing.T) {
	var tt TenderType
	require.NoError(t, json.Unmarshal([]byte(`"transfer"`), &tt))
	assert.Equal(t, TenderTransfer, tt)

	assert.Error(t, json.Unmarshal([]byte(`"barter"`), &tt))
}

func TestSessionStatusJSON(t *testing.T) {
	raw, err := json.Marshal(SessionSubmitting)
	require.NoError(t, err)
	assert.JSONEq(t, `"Submitting"`, string(raw))

	var s SessionStatus
	require.NoError(t, json.Unmarshal([]byte(`"Committed"`), &s))
	assert.Equal(t, SessionCommitted, s)

	require.NoError(t, json.Unmarshal([]byte(`2`), &s))
	assert.Equal(t, SessionClearing, s)
}
