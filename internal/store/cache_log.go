// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache_log.go records AI response cache purges in the database for
// audit and debugging purposes. Each entry captures why the cache was
// cleared, which provider was active and how many keys went away.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Purge reasons.
const (
	PurgeManual         = "manual"
	PurgeProviderSwitch = "provider_switch"
)

// CacheLogStore handles the AI cache purge log.
type CacheLogStore struct {
	db *sql.DB
}

// NewCacheLogStore creates a new CacheLogStore.
func NewCacheLogStore(db *sql.DB) *CacheLogStore {
	return &CacheLogStore{db: db}
}

// Log records a cache purge. Failures are logged, not returned.
func (s *CacheLogStore) Log(reason, provider string, deleted int) {
	_, err := s.db.Exec(`
		INSERT INTO ai_cache_purges (reason, provider, deleted_keys)
		VALUES ($1, $2, $3)
	`, reason, provider, deleted)
	if err != nil {
		slog.Warn("failed to log ai cache purge",
			"reason", reason,
			"provider", provider,
			"deleted", deleted,
			"error", err,
		)
		return
	}
	slog.Debug("ai cache purge logged", "reason", reason, "provider", provider, "deleted", deleted)
}

// RecentEntries returns the most recent purges, newest first.
func (s *CacheLogStore) RecentEntries(limit int) ([]CacheLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, reason, provider, deleted_keys, purged_at
		FROM ai_cache_purges
		ORDER BY purged_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query cache log: %w", err)
	}
	defer rows.Close()

	var entries []CacheLogEntry
	for rows.Next() {
		var e CacheLogEntry
		if err := rows.Scan(&e.ID, &e.Reason, &e.Provider, &e.DeletedKeys, &e.PurgedAt); err != nil {
			return nil, fmt.Errorf("scan cache log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CacheLogEntry represents a single cache purge.
type CacheLogEntry struct {
	ID          int64     `json:"id"`
	Reason      string    `json:"reason"`
	Provider    string    `json:"provider"`
	DeletedKeys int       `json:"deletedKeys"`
	PurgedAt    time.Time `json:"purgedAt"`
}
