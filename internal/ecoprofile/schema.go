package ecoprofile

import (
	"encoding/json"
	"fmt"
	"strings"

	"evercraft/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// Eco-profile submissions arrive as loosely-typed JSON. They are validated
// against a fixed schema exactly once here, then decoded into the typed
// struct; downstream code never re-checks field shapes.

const shopProfileSchema = `{
	"type": "object",
	"properties": {
		"recycledPackaging":      {"type": "boolean"},
		"plasticFreePackaging":   {"type": "boolean"},
		"localSourcing":          {"type": "boolean"},
		"organicMaterials":       {"type": "boolean"},
		"renewableEnergy":        {"type": "boolean"},
		"carbonNeutralShipping":  {"type": "boolean"},
		"fairTradeCertified":     {"type": "boolean"},
		"zeroWasteProduction":    {"type": "boolean"},
		"repairService":          {"type": "boolean"},
		"takeBackProgram":        {"type": "boolean"},
		"annualCarbonAuditKg":    {"type": "number", "minimum": 0},
		"renewableEnergyShare":   {"type": "number", "minimum": 0, "maximum": 100},
		"recycledMaterialShare":  {"type": "number", "minimum": 0, "maximum": 100},
		"waterUsageLiters":       {"type": "number", "minimum": 0},
		"certifications":         {"type": "string"},
		"supplyChainNotes":       {"type": "string"},
		"offsetProgram":          {"type": "string"}
	},
	"additionalProperties": false
}`

const productProfileSchema = `{
	"type": "object",
	"properties": {
		"organicMaterial":    {"type": "boolean"},
		"recycledMaterial":   {"type": "boolean"},
		"materialShare":      {"type": "number", "minimum": 0, "maximum": 100},
		"materialOrigin":     {"type": "string"},
		"plasticFree":        {"type": "boolean"},
		"recyclablePackage":  {"type": "boolean"},
		"packagingNotes":     {"type": "string"},
		"localProduction":    {"type": "boolean"},
		"carbonFootprintKg":  {"type": "number", "minimum": 0},
		"productionCountry":  {"type": "string"},
		"recyclable":         {"type": "boolean"},
		"compostable":        {"type": "boolean"},
		"disposalNotes":      {"type": "string"}
	},
	"additionalProperties": false
}`

var (
	shopSchemaLoader    = gojsonschema.NewStringLoader(shopProfileSchema)
	productSchemaLoader = gojsonschema.NewStringLoader(productProfileSchema)
)

// ParseShopProfile validates raw questionnaire JSON and decodes it.
func ParseShopProfile(raw json.RawMessage) (models.ShopEcoProfile, error) {
	var profile models.ShopEcoProfile
	if err := validate(shopSchemaLoader, raw); err != nil {
		return profile, err
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		return profile, fmt.Errorf("decode shop eco-profile: %w", err)
	}
	return profile, nil
}

// ParseProductProfile validates raw eco-attribute JSON and decodes it.
func ParseProductProfile(raw json.RawMessage) (models.ProductEcoProfile, error) {
	var profile models.ProductEcoProfile
	if err := validate(productSchemaLoader, raw); err != nil {
		return profile, err
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		return profile, fmt.Errorf("decode product eco-profile: %w", err)
	}
	return profile, nil
}

func validate(schema gojsonschema.JSONLoader, raw json.RawMessage) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("invalid eco-profile: %s", strings.Join(msgs, "; "))
	}
	return nil
}
