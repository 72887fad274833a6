package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/whatsport/whatsport-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestUserFieldsPatchesOnlyPresentFields(t *testing.T) {
	birth := time.Date(1999, 5, 10, 0, 0, 0, 0, time.UTC)

	fields := userFields(UpdateProfileRequest{
		FullName:  strPtr("Ana Souza"),
		BirthDate: &birth,
	})

	assert.Equal(t, map[string]any{
		"full_name":  "Ana Souza",
		"birth_date": birth,
	}, fields)

	assert.Empty(t, userFields(UpdateProfileRequest{}))
}

func TestPlayerProfileFields(t *testing.T) {
	sports := []models.PlayerSport{
		{SportType: "futsal", SkillLevel: "intermediate"},
		{SportType: "volei", SkillLevel: "beginner"},
	}

	fields := playerProfileFields(UpdateProfileRequest{Sports: &sports})
	assert.Equal(t, map[string]any{"sports": sports}, fields)

	// Company fields never leak into the player sub-profile.
	fields = playerProfileFields(UpdateProfileRequest{
		CompanyName: strPtr("Arena Ltda"),
	})
	assert.Empty(t, fields)

	// An explicit empty list clears the sports.
	empty := []models.PlayerSport{}
	fields = playerProfileFields(UpdateProfileRequest{Sports: &empty})
	assert.Equal(t, map[string]any{"sports": empty}, fields)
}

func TestManagerProfileFields(t *testing.T) {
	fields := managerProfileFields(UpdateProfileRequest{
		CompanyName:     strPtr("Arena Ltda"),
		CompanyDocument: strPtr("12.345.678/0001-90"),
	})

	assert.Equal(t, map[string]any{
		"company_name":     "Arena Ltda",
		"company_document": "12.345.678/0001-90",
	}, fields)

	sports := []models.PlayerSport{{SportType: "futsal", SkillLevel: "advanced"}}
	assert.Empty(t, managerProfileFields(UpdateProfileRequest{Sports: &sports}))
}
