package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	u := User{Password: "hunter2secret"}
	require.NoError(t, u.HashPassword())

	assert.NotEqual(t, "hunter2secret", u.Password)
	assert.True(t, u.ComparePassword("hunter2secret"))
	assert.False(t, u.ComparePassword("wrong"))
}
