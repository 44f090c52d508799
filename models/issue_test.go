package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus("Pending"))
	assert.True(t, ValidStatus("InProgress"))
	assert.True(t, ValidStatus("Resolved"))

	assert.False(t, ValidStatus("Closed"))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus("In Progress"))
	assert.False(t, ValidStatus(""))
}

func TestValidCategory(t *testing.T) {
	for _, category := range []string{"Road", "Waste", "Water", "Electricity", "Other"} {
		assert.True(t, ValidCategory(category), category)
	}

	assert.False(t, ValidCategory("Parks"))
	assert.False(t, ValidCategory("road"))
	assert.False(t, ValidCategory(""))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleStaff))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("superuser"))
}
