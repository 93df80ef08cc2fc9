package bundle

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
)

func newAutoBundle() *domain.Bundle {
	return &domain.Bundle{
		Name:          "1× Relax 60",
		Price:         decimal.RequireFromString("30.00"),
		UsesCapacity:  true,
		UsesMassagist: true,
		SignatureHash: ptr.Ptr("abc"),
		Lines: []domain.BundleLine{
			{CatalogUnitID: 7, Key: domain.CatalogKey{Category: domain.CategoryRelax, Duration: domain.Duration60}, Quantity: 1},
		},
	}
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO bundles .* ON CONFLICT \(signature_hash\) DO NOTHING RETURNING id, created_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), now))
	mock.ExpectExec(`INSERT INTO bundle_lines`).
		WithArgs(int64(11), int64(7), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRepository(db)
	created, err := repo.Create(context.Background(), newAutoBundle())

	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateSignature(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO bundles`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

	repo := NewRepository(db)
	_, err = repo.Create(context.Background(), newAutoBundle())

	assert.ErrorIs(t, err, ErrDuplicateSignature)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByPrice_LoadsLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM bundles WHERE price = \$1 ORDER BY id ASC`).
		WithArgs("30.00").
		WillReturnRows(sqlmock.NewRows(bundleColumns).
			AddRow(int64(3), "1× Relax 60", nil, "30.00", false, true, true, "abc", now).
			AddRow(int64(4), "Promo", "visible promo", "30.00", true, true, true, nil, now))
	mock.ExpectQuery(`SELECT .* FROM bundle_lines bl JOIN catalog_units cu`).
		WillReturnRows(sqlmock.NewRows([]string{"bundle_id", "catalog_unit_id", "category", "duration_minutes", "price", "quantity"}).
			AddRow(int64(3), int64(7), "relax", int64(60), "30.00", int64(1)).
			AddRow(int64(4), int64(1), "none", int64(0), "25.00", int64(1)).
			AddRow(int64(4), int64(2), "rock", int64(15), "5.00", int64(1)))

	repo := NewRepository(db)
	bundles, err := repo.FindByPrice(context.Background(), decimal.RequireFromString("30"))

	require.NoError(t, err)
	require.Len(t, bundles, 2)
	assert.Nil(t, bundles[0].Description)
	require.NotNil(t, bundles[0].SignatureHash)
	assert.Len(t, bundles[0].Lines, 1)
	assert.Equal(t, domain.CategoryRelax, bundles[0].Lines[0].Key.Category)
	assert.Len(t, bundles[1].Lines, 2)
	assert.Nil(t, bundles[1].SignatureHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM bundles WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(bundleColumns))

	repo := NewRepository(db)
	_, err = repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrBundleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
