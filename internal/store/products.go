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

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) Create(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = models.ProductStatusDraft
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (
			id, shop_id, category_id, name, description,
			price_cents, stock, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		p.ID, p.ShopID, p.CategoryID, p.Name, p.Description,
		p.PriceCents, p.Stock, p.Status, now,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *ProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, shop_id, category_id, name, description,
		       price_cents, stock, status, created_at, updated_at
		FROM products
		WHERE id = $1`, id).Scan(
		&p.ID, &p.ShopID, &p.CategoryID, &p.Name, &p.Description,
		&p.PriceCents, &p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (s *ProductStore) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET category_id = $2, name = $3, description = $4,
		    price_cents = $5, stock = $6, status = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.CategoryID, p.Name, p.Description,
		p.PriceCents, p.Stock, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireAffected(res)
}

// Archive is the soft delete: archived products disappear from browse and
// search but keep their ledger history intact.
func (s *ProductStore) Archive(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET status = $2, updated_at = $3 WHERE id = $1`,
		id, models.ProductStatusArchived, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("archive product: %w", err)
	}
	return requireAffected(res)
}

func (s *ProductStore) ListByShop(ctx context.Context, shopID string, includeArchived bool) ([]models.Product, error) {
	query := `
		SELECT id, shop_id, category_id, name, description,
		       price_cents, stock, status, created_at, updated_at
		FROM products
		WHERE shop_id = $1`
	if !includeArchived {
		query += ` AND status != 'ARCHIVED'`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.ShopID, &p.CategoryID, &p.Name, &p.Description,
			&p.PriceCents, &p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *ProductStore) GetEcoProfile(ctx context.Context, productID string) (*models.ProductEcoProfile, error) {
	var p models.ProductEcoProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT product_id,
		       organic_material, recycled_material, material_share, material_origin,
		       plastic_free, recyclable_package, packaging_notes,
		       local_production, carbon_footprint_kg, production_country,
		       recyclable, compostable, disposal_notes,
		       completeness_percent, updated_at
		FROM product_eco_profiles
		WHERE product_id = $1`, productID).Scan(
		&p.ProductID,
		&p.OrganicMaterial, &p.RecycledMaterial, &p.MaterialShare, &p.MaterialOrigin,
		&p.PlasticFree, &p.RecyclablePackage, &p.PackagingNotes,
		&p.LocalProduction, &p.CarbonFootprintKg, &p.ProductionCountry,
		&p.Recyclable, &p.Compostable, &p.DisposalNotes,
		&p.CompletenessPercent, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product eco profile: %w", err)
	}
	return &p, nil
}

func (s *ProductStore) SaveEcoProfile(ctx context.Context, p *models.ProductEcoProfile) error {
	p.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO product_eco_profiles (
			product_id,
			organic_material, recycled_material, material_share, material_origin,
			plastic_free, recyclable_package, packaging_notes,
			local_production, carbon_footprint_kg, production_country,
			recyclable, compostable, disposal_notes,
			completeness_percent, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (product_id) DO UPDATE SET
			organic_material = EXCLUDED.organic_material,
			recycled_material = EXCLUDED.recycled_material,
			material_share = EXCLUDED.material_share,
			material_origin = EXCLUDED.material_origin,
			plastic_free = EXCLUDED.plastic_free,
			recyclable_package = EXCLUDED.recyclable_package,
			packaging_notes = EXCLUDED.packaging_notes,
			local_production = EXCLUDED.local_production,
			carbon_footprint_kg = EXCLUDED.carbon_footprint_kg,
			production_country = EXCLUDED.production_country,
			recyclable = EXCLUDED.recyclable,
			compostable = EXCLUDED.compostable,
			disposal_notes = EXCLUDED.disposal_notes,
			completeness_percent = EXCLUDED.completeness_percent,
			updated_at = EXCLUDED.updated_at`,
		p.ProductID,
		p.OrganicMaterial, p.RecycledMaterial, p.MaterialShare, p.MaterialOrigin,
		p.PlasticFree, p.RecyclablePackage, p.PackagingNotes,
		p.LocalProduction, p.CarbonFootprintKg, p.ProductionCountry,
		p.Recyclable, p.Compostable, p.DisposalNotes,
		p.CompletenessPercent, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert product eco profile: %w", err)
	}
	return nil
}

func (s *ProductStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
