package store

import (
	"context"
	"testing"
	"time"

	"evercraft/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApplication() *models.SellerApplication {
	return &models.SellerApplication{
		ApplicantID:         "user-1",
		ShopName:            "Willow & Wool",
		BusinessDescription: "Hand-knitted goods from reclaimed yarn, produced in small batches.",
		EcoProfile: models.ShopEcoProfile{
			RecycledPackaging: true,
			LocalSourcing:     true,
		},
		CompletenessScore:    56,
		Tier:                 models.TierEstablished,
		AutoApprovalEligible: false,
		Status:               models.ApplicationStatusPending,
	}
}

func TestApplicationStore_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO seller_applications`).
		WithArgs(
			sqlmock.AnyArg(), "user-1", "Willow & Wool", sqlmock.AnyArg(),
			sqlmock.AnyArg(), 56, string(models.TierEstablished), false,
			string(models.ApplicationStatusPending), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app := testApplication()
	err = NewApplicationStore(db).Create(context.Background(), app)

	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.False(t, app.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationStore_Create_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO seller_applications`).
		WillReturnError(&pq.Error{Code: "23505"})

	err = NewApplicationStore(db).Create(context.Background(), testApplication())

	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationStore_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "applicant_id", "shop_name", "business_description", "eco_profile",
		"completeness_score", "tier", "auto_approval_eligible", "status",
		"reviewed_by", "review_note", "created_at", "updated_at",
	}).AddRow(
		"app-1", "user-1", "Willow & Wool", "reclaimed yarn goods",
		[]byte(`{"recycledPackaging":true}`),
		56, "ESTABLISHED", false, "PENDING", nil, nil, now, now,
	)
	mock.ExpectQuery(`SELECT .+ FROM seller_applications\s+WHERE id = \$1`).
		WithArgs("app-1").
		WillReturnRows(rows)

	app, err := NewApplicationStore(db).GetByID(context.Background(), "app-1")

	require.NoError(t, err)
	assert.Equal(t, "app-1", app.ID)
	assert.Equal(t, models.TierEstablished, app.Tier)
	assert.True(t, app.EcoProfile.RecycledPackaging)
	assert.Nil(t, app.ReviewedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationStore_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM seller_applications`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewApplicationStore(db).GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplicationStore_HasOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	open, err := NewApplicationStore(db).HasOpen(context.Background(), "user-1")

	require.NoError(t, err)
	assert.True(t, open)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationStore_SetStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE seller_applications`).
		WithArgs("app-1", string(models.ApplicationStatusApproved), "admin-1", "looks solid", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewApplicationStore(db).SetStatus(context.Background(),
		"app-1", models.ApplicationStatusApproved, "admin-1", "looks solid")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationStore_SetStatus_AlreadyDecided(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE seller_applications`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewApplicationStore(db).SetStatus(context.Background(),
		"app-1", models.ApplicationStatusRejected, "admin-1", "")

	assert.ErrorIs(t, err, ErrNotFound)
}
