package record

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"truthchain/internal/models"
)

// Repository provides access to the news record storage.
type Repository struct {
	DB *sql.DB
}

// NewRepository creates a new record repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

// GetAll lists every record in creation order.
func (r *Repository) GetAll() ([]models.NewsRecord, error) {
	rows, err := r.DB.Query("SELECT id, text, cid, hash, tx, file_name, file_type, timestamp, wallet_address, mode, created_at FROM news_records ORDER BY created_at ASC, rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("error querying records: %w", err)
	}
	defer rows.Close()

	var records []models.NewsRecord
	for rows.Next() {
		var rec models.NewsRecord
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.CID, &rec.Hash, &rec.Tx, &rec.FileName, &rec.FileType, &rec.Timestamp, &rec.WalletAddress, &rec.Mode, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Create inserts a new record, assigning a fresh id and creation time.
func (r *Repository) Create(ctx context.Context, insert models.InsertNewsRecord) (models.NewsRecord, error) {
	rec := models.NewsRecord{
		ID:            uuid.NewString(),
		Text:          insert.Text,
		CID:           insert.CID,
		Hash:          insert.Hash,
		Tx:            insert.Tx,
		FileName:      insert.FileName,
		FileType:      insert.FileType,
		Timestamp:     insert.Timestamp,
		WalletAddress: insert.WalletAddress,
		Mode:          insert.Mode,
		CreatedAt:     time.Now().UTC(),
	}

	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO news_records (id, text, cid, hash, tx, file_name, file_type, timestamp, wallet_address, mode, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Text, rec.CID, rec.Hash, rec.Tx, rec.FileName, rec.FileType, rec.Timestamp, rec.WalletAddress, rec.Mode, rec.CreatedAt)
	if err != nil {
		return models.NewsRecord{}, fmt.Errorf("error creating record: %w", err)
	}
	return rec, nil
}
