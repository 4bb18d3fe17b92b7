package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"evercraft/internal/models"

	"github.com/google/uuid"
)

type ShippingStore struct {
	db *sql.DB
}

func NewShippingStore(db *sql.DB) *ShippingStore {
	return &ShippingStore{db: db}
}

func (s *ShippingStore) Create(ctx context.Context, p *models.ShippingProfile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shipping_profiles (
			id, shop_id, name, carrier_name, base_rate_cents,
			per_item_cents, min_days, max_days, carbon_neutral,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		p.ID, p.ShopID, p.Name, p.CarrierName, p.BaseRateCents,
		p.PerItemCents, p.MinDays, p.MaxDays, p.CarbonNeutral, now,
	)
	if err != nil {
		return fmt.Errorf("insert shipping profile: %w", err)
	}
	return nil
}

func (s *ShippingStore) GetByID(ctx context.Context, id string) (*models.ShippingProfile, error) {
	var p models.ShippingProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT id, shop_id, name, carrier_name, base_rate_cents,
		       per_item_cents, min_days, max_days, carbon_neutral,
		       created_at, updated_at
		FROM shipping_profiles
		WHERE id = $1`, id).Scan(
		&p.ID, &p.ShopID, &p.Name, &p.CarrierName, &p.BaseRateCents,
		&p.PerItemCents, &p.MinDays, &p.MaxDays, &p.CarbonNeutral,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query shipping profile: %w", err)
	}
	return &p, nil
}

func (s *ShippingStore) ListByShop(ctx context.Context, shopID string) ([]models.ShippingProfile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, shop_id, name, carrier_name, base_rate_cents,
		       per_item_cents, min_days, max_days, carbon_neutral,
		       created_at, updated_at
		FROM shipping_profiles
		WHERE shop_id = $1
		ORDER BY created_at ASC`, shopID)
	if err != nil {
		return nil, fmt.Errorf("list shipping profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.ShippingProfile
	for rows.Next() {
		var p models.ShippingProfile
		if err := rows.Scan(
			&p.ID, &p.ShopID, &p.Name, &p.CarrierName, &p.BaseRateCents,
			&p.PerItemCents, &p.MinDays, &p.MaxDays, &p.CarbonNeutral,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan shipping profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *ShippingStore) Update(ctx context.Context, p *models.ShippingProfile) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE shipping_profiles
		SET name = $2, carrier_name = $3, base_rate_cents = $4,
		    per_item_cents = $5, min_days = $6, max_days = $7,
		    carbon_neutral = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, p.Name, p.CarrierName, p.BaseRateCents,
		p.PerItemCents, p.MinDays, p.MaxDays, p.CarbonNeutral, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shipping profile: %w", err)
	}
	return requireAffected(res)
}

func (s *ShippingStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM shipping_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipping profile: %w", err)
	}
	return requireAffected(res)
}
