package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"evercraft/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ShopStore struct {
	db *sql.DB
}

func NewShopStore(db *sql.DB) *ShopStore {
	return &ShopStore{db: db}
}

// CreateFromApplication opens the shop for an approved application in a
// single transaction: insert the shop, seed its eco profile from the
// application answers, and promote the owner to seller. A unique index on
// shops.owner_id makes concurrent approvals race-safe; the loser's insert
// fails with 23505 and the whole transaction rolls back.
func (s *ShopStore) CreateFromApplication(ctx context.Context, app *models.SellerApplication) (*models.Shop, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin shop creation: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	shop := &models.Shop{
		ID:          uuid.New().String(),
		OwnerID:     app.ApplicantID,
		Name:        app.ShopName,
		Slug:        slugify(app.ShopName),
		Description: app.BusinessDescription,
		Tier:        app.Tier,
		CreatedAt:   now,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO shops (id, owner_id, name, slug, description, tier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		shop.ID, shop.OwnerID, shop.Name, shop.Slug, shop.Description, shop.Tier, now)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert shop: %w", err)
	}

	profile := app.EcoProfile
	profile.ShopID = shop.ID
	profile.CompletenessPercent = app.CompletenessScore
	if err := upsertShopEcoProfile(ctx, tx, &profile, now); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET role = $2 WHERE id = $1`,
		app.ApplicantID, models.UserRoleSeller)
	if err != nil {
		return nil, fmt.Errorf("promote owner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit shop creation: %w", err)
	}
	return shop, nil
}

func (s *ShopStore) GetByID(ctx context.Context, id string) (*models.Shop, error) {
	return s.getShop(ctx, `WHERE id = $1`, id)
}

func (s *ShopStore) GetBySlug(ctx context.Context, slug string) (*models.Shop, error) {
	return s.getShop(ctx, `WHERE slug = $1`, slug)
}

func (s *ShopStore) GetByOwner(ctx context.Context, ownerID string) (*models.Shop, error) {
	return s.getShop(ctx, `WHERE owner_id = $1`, ownerID)
}

func (s *ShopStore) getShop(ctx context.Context, where string, arg interface{}) (*models.Shop, error) {
	var shop models.Shop
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, slug, description, tier, created_at
		FROM shops `+where, arg).Scan(
		&shop.ID, &shop.OwnerID, &shop.Name, &shop.Slug,
		&shop.Description, &shop.Tier, &shop.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query shop: %w", err)
	}
	return &shop, nil
}

func (s *ShopStore) GetEcoProfile(ctx context.Context, shopID string) (*models.ShopEcoProfile, error) {
	var p models.ShopEcoProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT shop_id,
		       recycled_packaging, plastic_free_packaging, local_sourcing,
		       organic_materials, renewable_energy, carbon_neutral_shipping,
		       fair_trade_certified, zero_waste_production, repair_service,
		       take_back_program,
		       annual_carbon_audit_kg, renewable_energy_share,
		       recycled_material_share, water_usage_liters,
		       certifications, supply_chain_notes, offset_program,
		       completeness_percent, updated_at
		FROM shop_eco_profiles
		WHERE shop_id = $1`, shopID).Scan(
		&p.ShopID,
		&p.RecycledPackaging, &p.PlasticFreePackaging, &p.LocalSourcing,
		&p.OrganicMaterials, &p.RenewableEnergy, &p.CarbonNeutralShipping,
		&p.FairTradeCertified, &p.ZeroWasteProduction, &p.RepairService,
		&p.TakeBackProgram,
		&p.AnnualCarbonAuditKg, &p.RenewableEnergyShare,
		&p.RecycledMaterialShare, &p.WaterUsageLiters,
		&p.Certifications, &p.SupplyChainNotes, &p.OffsetProgram,
		&p.CompletenessPercent, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query shop eco profile: %w", err)
	}
	return &p, nil
}

// SaveEcoProfile replaces the shop's eco profile with the given answers.
func (s *ShopStore) SaveEcoProfile(ctx context.Context, profile *models.ShopEcoProfile) error {
	return upsertShopEcoProfile(ctx, s.db, profile, time.Now().UTC())
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func upsertShopEcoProfile(ctx context.Context, db execer, p *models.ShopEcoProfile, now time.Time) error {
	p.UpdatedAt = now
	_, err := db.ExecContext(ctx, `
		INSERT INTO shop_eco_profiles (
			shop_id,
			recycled_packaging, plastic_free_packaging, local_sourcing,
			organic_materials, renewable_energy, carbon_neutral_shipping,
			fair_trade_certified, zero_waste_production, repair_service,
			take_back_program,
			annual_carbon_audit_kg, renewable_energy_share,
			recycled_material_share, water_usage_liters,
			certifications, supply_chain_notes, offset_program,
			completeness_percent, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		          $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (shop_id) DO UPDATE SET
			recycled_packaging = EXCLUDED.recycled_packaging,
			plastic_free_packaging = EXCLUDED.plastic_free_packaging,
			local_sourcing = EXCLUDED.local_sourcing,
			organic_materials = EXCLUDED.organic_materials,
			renewable_energy = EXCLUDED.renewable_energy,
			carbon_neutral_shipping = EXCLUDED.carbon_neutral_shipping,
			fair_trade_certified = EXCLUDED.fair_trade_certified,
			zero_waste_production = EXCLUDED.zero_waste_production,
			repair_service = EXCLUDED.repair_service,
			take_back_program = EXCLUDED.take_back_program,
			annual_carbon_audit_kg = EXCLUDED.annual_carbon_audit_kg,
			renewable_energy_share = EXCLUDED.renewable_energy_share,
			recycled_material_share = EXCLUDED.recycled_material_share,
			water_usage_liters = EXCLUDED.water_usage_liters,
			certifications = EXCLUDED.certifications,
			supply_chain_notes = EXCLUDED.supply_chain_notes,
			offset_program = EXCLUDED.offset_program,
			completeness_percent = EXCLUDED.completeness_percent,
			updated_at = EXCLUDED.updated_at`,
		p.ShopID,
		p.RecycledPackaging, p.PlasticFreePackaging, p.LocalSourcing,
		p.OrganicMaterials, p.RenewableEnergy, p.CarbonNeutralShipping,
		p.FairTradeCertified, p.ZeroWasteProduction, p.RepairService,
		p.TakeBackProgram,
		p.AnnualCarbonAuditKg, p.RenewableEnergyShare,
		p.RecycledMaterialShare, p.WaterUsageLiters,
		p.Certifications, p.SupplyChainNotes, p.OffsetProgram,
		p.CompletenessPercent, now,
	)
	if err != nil {
		return fmt.Errorf("upsert shop eco profile: %w", err)
	}
	return nil
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
