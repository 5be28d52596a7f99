// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Backup records one library export uploaded to object storage.
type Backup struct {
	ID          uuid.UUID `json:"id"`
	ObjectKey   string    `json:"objectKey"`
	RecordCount int       `json:"recordCount"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BackupStore keeps the log of library backups.
type BackupStore struct {
	db *sql.DB
}

// NewBackupStore creates a new BackupStore with the given database connection.
func NewBackupStore(db *sql.DB) *BackupStore {
	return &BackupStore{db: db}
}

// Record logs an uploaded backup and returns the stored row.
func (s *BackupStore) Record(objectKey string, recordCount int, sizeBytes int64) (*Backup, error) {
	b := &Backup{}
	err := s.db.QueryRow(`
		INSERT INTO library_backups (object_key, record_count, size_bytes)
		VALUES ($1, $2, $3)
		RETURNING id, object_key, record_count, size_bytes, created_at
	`, objectKey, recordCount, sizeBytes).Scan(&b.ID, &b.ObjectKey, &b.RecordCount, &b.SizeBytes, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("record backup: %w", err)
	}
	return b, nil
}

// Recent returns the latest backups, newest first.
func (s *BackupStore) Recent(limit int) ([]Backup, error) {
	rows, err := s.db.Query(`
		SELECT id, object_key, record_count, size_bytes, created_at
		FROM library_backups
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	var backups []Backup
	for rows.Next() {
		var b Backup
		if err := rows.Scan(&b.ID, &b.ObjectKey, &b.RecordCount, &b.SizeBytes, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		backups = append(backups, b)
	}
	return backups, rows.Err()
}
