package record

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"truthchain/internal/database"
	"truthchain/internal/models"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewRepository(db)
}

func insertFor(hash, tx string) models.InsertNewsRecord {
	return models.InsertNewsRecord{
		Text:      "Breaking news",
		CID:       "bafy123",
		Hash:      hash,
		Tx:        &tx,
		FileName:  "photo.jpg",
		FileType:  "image/jpeg",
		Timestamp: "2024-01-01T00:00:00.000Z",
		Mode:      "trusted",
	}
}

func TestCreateAssignsIDAndCreatedAt(t *testing.T) {
	repo := newTestRepository(t)

	rec, err := repo.Create(context.Background(), insertFor("hash-1", "tx-1"))
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.False(t, rec.CreatedAt.IsZero())
	require.Equal(t, "Breaking news", rec.Text)
	require.Equal(t, "trusted", rec.Mode)

	records, err := repo.GetAll()
	require.NoError(t, err)
	require.Equal(t, "trusted", records[0].Mode)
}

func TestGetAllCreationOrder(t *testing.T) {
	repo := newTestRepository(t)

	first, err := repo.Create(context.Background(), insertFor("hash-1", "tx-1"))
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), insertFor("hash-2", "tx-2"))
	require.NoError(t, err)

	records, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, first.ID, records[0].ID)
	require.Equal(t, second.ID, records[1].ID)
	require.NotNil(t, records[0].Tx)
	require.Equal(t, "tx-1", *records[0].Tx)
}

func TestGetAllEmpty(t *testing.T) {
	repo := newTestRepository(t)

	records, err := repo.GetAll()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestUniqueHashConstraint(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Create(context.Background(), insertFor("hash-1", "tx-1"))
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), insertFor("hash-1", "tx-2"))
	require.Error(t, err)
}

func TestUniqueTxConstraint(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Create(context.Background(), insertFor("hash-1", "tx-1"))
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), insertFor("hash-2", "tx-1"))
	require.Error(t, err)
}

func TestNullTxNotUnique(t *testing.T) {
	// Records saved before a ledger is configured carry no transaction; the
	// partial index must not collapse them onto each other.
	repo := newTestRepository(t)

	a := insertFor("hash-1", "")
	a.Tx = nil
	b := insertFor("hash-2", "")
	b.Tx = nil

	_, err := repo.Create(context.Background(), a)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), b)
	require.NoError(t, err)
}
