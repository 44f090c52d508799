package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"civicreport-be/models"
)

func TestAuthorizeStatusChange(t *testing.T) {
	issue := models.Issue{Category: models.Waste}

	tests := []struct {
		name      string
		principal models.Principal
		wantErr   error
	}{
		{
			name:      "admin updates any category",
			principal: models.Principal{ID: "a1", Role: models.RoleAdmin},
			wantErr:   nil,
		},
		{
			name:      "staff updates own category",
			principal: models.Principal{ID: "s1", Role: models.RoleStaff, Category: models.Waste},
			wantErr:   nil,
		},
		{
			name:      "staff blocked outside own category",
			principal: models.Principal{ID: "s2", Role: models.RoleStaff, Category: models.Road},
			wantErr:   models.ErrForbidden,
		},
		{
			name:      "plain user blocked",
			principal: models.Principal{ID: "u1", Role: models.RoleUser},
			wantErr:   models.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorizeStatusChange(tt.principal, issue)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestActorDescription(t *testing.T) {
	staff := models.Principal{Role: models.RoleStaff, Category: models.Road}
	assert.Equal(t, "Jane (Road Staff)", actorDescription("Jane", staff))

	admin := models.Principal{Role: models.RoleAdmin}
	assert.Equal(t, "Bob (Administrator)", actorDescription("Bob", admin))
}
