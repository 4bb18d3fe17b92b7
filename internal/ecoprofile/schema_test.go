package ecoprofile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShopProfile(t *testing.T) {
	raw := json.RawMessage(`{
		"recycledPackaging": true,
		"localSourcing": true,
		"renewableEnergyShare": 75,
		"certifications": "GOTS"
	}`)

	profile, err := ParseShopProfile(raw)
	require.NoError(t, err)

	assert.True(t, profile.RecycledPackaging)
	assert.True(t, profile.LocalSourcing)
	assert.False(t, profile.PlasticFreePackaging)
	require.NotNil(t, profile.RenewableEnergyShare)
	assert.Equal(t, 75.0, *profile.RenewableEnergyShare)
	require.NotNil(t, profile.Certifications)
	assert.Equal(t, "GOTS", *profile.Certifications)
}

func TestParseShopProfile_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"wrong type for toggle", `{"recycledPackaging": "yes"}`},
		{"unknown field", `{"solarPanels": true}`},
		{"share above 100", `{"renewableEnergyShare": 120}`},
		{"negative audit", `{"annualCarbonAuditKg": -5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseShopProfile(json.RawMessage(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestParseProductProfile(t *testing.T) {
	raw := json.RawMessage(`{
		"organicMaterial": true,
		"plasticFree": true,
		"carbonFootprintKg": 3.2,
		"productionCountry": "PT"
	}`)

	profile, err := ParseProductProfile(raw)
	require.NoError(t, err)

	assert.True(t, profile.OrganicMaterial)
	assert.True(t, profile.PlasticFree)
	require.NotNil(t, profile.CarbonFootprintKg)
	assert.Equal(t, 3.2, *profile.CarbonFootprintKg)
}

func TestParseProductProfile_EmptyObjectIsValid(t *testing.T) {
	profile, err := ParseProductProfile(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 0, ProductCompleteness(profile))
}
