package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantityPhases(t *testing.T) {
	var q Quantity
	assert.Equal(t, 3, q.Request(3))
	assert.True(t, q.Pending())

	q.Confirm()
	assert.False(t, q.Pending())
	assert.Equal(t, 3, q.Confirmed)

	assert.Equal(t, -2, q.Request(1))
	q.Rollback()
	assert.Equal(t, 3, q.Desired)
}
