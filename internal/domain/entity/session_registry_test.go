package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryNumbersKeepIncreasing(t *testing.T) {
	r := NewSessionRegistry()
	now := time.Now()

	a := r.Open(now)
	b := r.Open(now)
	assert.Equal(t, "FV-001", a.InvoiceNumber)
	assert.Equal(t, "FV-002", b.InvoiceNumber)
	assert.Equal(t, b.ID, r.ActiveID())

	r.Retire(a.ID, now)
	c := r.Open(now)
	assert.Equal(t, "FV-003", c.InvoiceNumber)
}

func TestRetireActivatesFirstRemaining(t *testing.T) {
	r := NewSessionRegistry()
	now := time.Now()
	a := r.Open(now)
	b := r.Open(now)
	c := r.Open(now)
	require.NoError(t, r.Activate(b.ID))

	next := r.Retire(b.ID, now)

	assert.Equal(t, a.ID, next.ID)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 1, c.Index)
}

func TestRetireLastOpensFresh(t *testing.T) {
	r := NewSessionRegistry()
	now := time.Now()
	a := r.Open(now)

	next := r.Retire(a.ID, now)

	assert.NotEqual(t, a.ID, next.ID)
	assert.Equal(t, 1, r.Len())
	assert.Empty(t, next.Lines)
}

func TestRetireInactiveKeepsActive(t *testing.T) {
	r := NewSessionRegistry()
	now := time.Now()
	a := r.Open(now)
	b := r.Open(now)

	active := r.Retire(a.ID, now)

	assert.Equal(t, b.ID, active.ID)
	assert.Equal(t, 0, b.Index)
}

func TestActivateUnknown(t *testing.T) {
	r := NewSessionRegistry()
	assert.ErrorIs(t, r.Activate(uuid.New()), ErrSessionNotFound)
}
