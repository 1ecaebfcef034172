package parcels

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
)

func setupParcelsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	parcels := `
CREATE TABLE IF NOT EXISTS parcels (
  id TEXT PRIMARY KEY,
  owner_email TEXT NOT NULL,
  recipient_name TEXT,
  delivery_address TEXT,
  weight TEXT,
  price_cents INTEGER NOT NULL DEFAULT 0,
  payment_status TEXT NOT NULL DEFAULT 'unpaid',
  transaction_id TEXT,
  paid_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(parcels).Error)
	return db
}

func seedParcel(t *testing.T, db *gorm.DB, owner string, createdAt time.Time) *models.Parcel {
	t.Helper()

	parcel := &models.Parcel{
		ID:            uuid.New(),
		OwnerEmail:    owner,
		PriceCents:    1500,
		PaymentStatus: enums.PaymentStatusUnpaid,
		CreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(parcel).Error)
	return parcel
}

func TestRepositoryCreateDefaultsUnpaid(t *testing.T) {
	db := setupParcelsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateParcelDTO{OwnerEmail: "sender@example.com", PriceCents: 2500})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, enums.PaymentStatusUnpaid, created.PaymentStatus)
	assert.Nil(t, created.PaidAt)
	assert.Nil(t, created.TransactionID)
}

func TestRepositoryListNewestFirst(t *testing.T) {
	db := setupParcelsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	old := seedParcel(t, db, "sender@example.com", base)
	recent := seedParcel(t, db, "sender@example.com", base.Add(time.Hour))
	seedParcel(t, db, "other@example.com", base.Add(2*time.Hour))

	rows, err := repo.List(ctx, "sender@example.com")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, recent.ID, rows[0].ID)
	assert.Equal(t, old.ID, rows[1].ID)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepositoryDeleteReportsMatches(t *testing.T) {
	db := setupParcelsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	parcel := seedParcel(t, db, "sender@example.com", time.Now().UTC())

	affected, err := repo.Delete(ctx, parcel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, parcel.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	_, err = repo.FindByID(ctx, parcel.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
