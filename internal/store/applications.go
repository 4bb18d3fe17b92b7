package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"evercraft/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ApplicationStore persists seller applications. The eco-profile answers are
// kept as a JSONB document; the derived score fields live in their own
// columns so review queues can filter on them.
type ApplicationStore struct {
	db *sql.DB
}

func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

func (s *ApplicationStore) Create(ctx context.Context, app *models.SellerApplication) error {
	profileJSON, err := json.Marshal(app.EcoProfile)
	if err != nil {
		return fmt.Errorf("marshal eco profile: %w", err)
	}

	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO seller_applications (
			id, applicant_id, shop_name, business_description, eco_profile,
			completeness_score, tier, auto_approval_eligible, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		app.ID,
		app.ApplicantID,
		app.ShopName,
		app.BusinessDescription,
		profileJSON,
		app.CompletenessScore,
		app.Tier,
		app.AutoApprovalEligible,
		app.Status,
		now,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *ApplicationStore) GetByID(ctx context.Context, id string) (*models.SellerApplication, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, applicant_id, shop_name, business_description, eco_profile,
		       completeness_score, tier, auto_approval_eligible, status,
		       reviewed_by, review_note, created_at, updated_at
		FROM seller_applications
		WHERE id = $1`, id)
	return scanApplication(row)
}

// HasOpen reports whether the applicant already has a pending or approved
// application. Used to reject duplicate submissions before scoring.
func (s *ApplicationStore) HasOpen(ctx context.Context, applicantID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM seller_applications
			WHERE applicant_id = $1 AND status IN ('PENDING', 'UNDER_REVIEW', 'APPROVED')
		)`, applicantID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("open application check: %w", err)
	}
	return exists, nil
}

// ListByStatus returns the review queue, oldest first.
func (s *ApplicationStore) ListByStatus(ctx context.Context, status models.ApplicationStatus, limit, offset int) ([]models.SellerApplication, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, applicant_id, shop_name, business_description, eco_profile,
		       completeness_score, tier, auto_approval_eligible, status,
		       reviewed_by, review_note, created_at, updated_at
		FROM seller_applications
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []models.SellerApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// SetStatus records a review decision. Only pending or under-review rows may
// transition; anything else reports not found so stale reviews fail loudly.
func (s *ApplicationStore) SetStatus(ctx context.Context, id string, status models.ApplicationStatus, reviewerID, note string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE seller_applications
		SET status = $2, reviewed_by = $3, review_note = $4, updated_at = $5
		WHERE id = $1 AND status IN ('PENDING', 'UNDER_REVIEW')`,
		id, status, reviewerID, note, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (*models.SellerApplication, error) {
	var (
		app         models.SellerApplication
		profileJSON []byte
		reviewedBy  sql.NullString
		reviewNote  sql.NullString
	)
	err := row.Scan(
		&app.ID, &app.ApplicantID, &app.ShopName, &app.BusinessDescription,
		&profileJSON, &app.CompletenessScore, &app.Tier,
		&app.AutoApprovalEligible, &app.Status,
		&reviewedBy, &reviewNote, &app.CreatedAt, &app.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan application: %w", err)
	}
	if err := json.Unmarshal(profileJSON, &app.EcoProfile); err != nil {
		return nil, fmt.Errorf("unmarshal eco profile: %w", err)
	}
	if reviewedBy.Valid {
		app.ReviewedBy = &reviewedBy.String
	}
	if reviewNote.Valid {
		app.ReviewNote = &reviewNote.String
	}
	return &app, nil
}
