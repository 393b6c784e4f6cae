package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/leasetx/internal/model"
)

// HistoryEntry records one submitted search.
type HistoryEntry struct {
	SearchedAt  time.Time
	Filters     model.FilterSet
	ID          int64
	ResultCount int
}

// RecordSearch appends a search to the history.
func (s *SQLiteStorage) RecordSearch(ctx context.Context, filters model.FilterSet, resultCount int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data, err := encodeFilters(filters)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO search_history (filters, result_count, searched_at)
		VALUES (?, ?, ?)
	`, data, resultCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// RecentSearches returns up to limit searches, newest first.
func (s *SQLiteStorage) RecentSearches(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filters, result_count, searched_at
		FROM search_history
		ORDER BY searched_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			e    HistoryEntry
			data string
		)
		if err := rows.Scan(&e.ID, &data, &e.ResultCount, &e.SearchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		if e.Filters, err = decodeFilters(data); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearHistory deletes every history entry and returns how many were removed.
func (s *SQLiteStorage) ClearHistory(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM search_history`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return res.RowsAffected()
}
