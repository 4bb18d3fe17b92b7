package store

import (
	"context"
	"testing"

	"evercraft/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopStore_CreateFromApplication(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := testApplication()
	app.ID = "app-1"

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO shops`).
		WithArgs(sqlmock.AnyArg(), "user-1", "Willow & Wool", "willow-wool",
			app.BusinessDescription, string(models.TierEstablished), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO shop_eco_profiles`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET role = \$2`).
		WithArgs("user-1", string(models.UserRoleSeller)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	shop, err := NewShopStore(db).CreateFromApplication(context.Background(), app)

	require.NoError(t, err)
	assert.NotEmpty(t, shop.ID)
	assert.Equal(t, "user-1", shop.OwnerID)
	assert.Equal(t, "willow-wool", shop.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two concurrent approvals of the same applicant: the second insert hits the
// unique owner index and the whole transaction rolls back.
func TestShopStore_CreateFromApplication_Race(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO shops`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "shops_owner_id_key"})
	mock.ExpectRollback()

	_, err = NewShopStore(db).CreateFromApplication(context.Background(), testApplication())

	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopStore_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM shops`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewShopStore(db).GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Willow & Wool", "willow-wool"},
		{"  Green  Things  ", "green-things"},
		{"UPPER case 42", "upper-case-42"},
		{"trailing!", "trailing"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), tt.in)
	}
}
