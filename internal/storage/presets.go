package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/leasetx/internal/common"
	"github.com/Veraticus/leasetx/internal/model"
)

// Preset is a named, reusable filter set.
type Preset struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Filters   model.FilterSet
	UseCount  int
}

// SavePreset creates or replaces a preset. The use count and creation time of
// an existing preset are kept.
func (s *SQLiteStorage) SavePreset(ctx context.Context, name string, filters model.FilterSet) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if err := validatePresetName(name); err != nil {
		return err
	}

	data, err := encodeFilters(filters)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saved_filters (name, filters, created_at, updated_at, use_count)
		VALUES (?, ?, ?, ?, 0)
		ON CONFLICT(name) DO UPDATE SET
			filters = excluded.filters,
			updated_at = excluded.updated_at
	`, name, data, now, now)
	if err != nil {
		return fmt.Errorf("failed to save preset %q: %w", name, err)
	}
	return nil
}

// GetPreset returns a preset by name.
func (s *SQLiteStorage) GetPreset(ctx context.Context, name string) (*Preset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT name, filters, created_at, updated_at, use_count
		FROM saved_filters
		WHERE name = ?
	`, strings.TrimSpace(name))

	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("preset %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}
	return p, nil
}

// ListPresets returns every preset, most used first.
func (s *SQLiteStorage) ListPresets(ctx context.Context) ([]Preset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, filters, created_at, updated_at, use_count
		FROM saved_filters
		ORDER BY use_count DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var presets []Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		presets = append(presets, *p)
	}
	return presets, rows.Err()
}

// DeletePreset removes a preset.
func (s *SQLiteStorage) DeletePreset(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_filters WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	return requireAffected(res, name)
}

// MarkPresetUsed bumps a preset's use count.
func (s *SQLiteStorage) MarkPresetUsed(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE saved_filters SET use_count = use_count + 1 WHERE name = ?
	`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to update preset: %w", err)
	}
	return requireAffected(res, name)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (*Preset, error) {
	var (
		p    Preset
		data string
	)
	if err := row.Scan(&p.Name, &data, &p.CreatedAt, &p.UpdatedAt, &p.UseCount); err != nil {
		return nil, err
	}
	f, err := decodeFilters(data)
	if err != nil {
		return nil, err
	}
	p.Filters = f
	return &p, nil
}

func requireAffected(res sql.Result, name string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("preset %q: %w", name, common.ErrNotFound)
	}
	return nil
}

// encodeFilters stores filters without page state.
func encodeFilters(f model.FilterSet) (string, error) {
	f = f.WithPage(1, f.PageSize)
	data, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("failed to encode filters: %w", err)
	}
	return string(data), nil
}

func decodeFilters(data string) (model.FilterSet, error) {
	f := model.DefaultFilterSet()
	if err := json.Unmarshal([]byte(data), &f); err != nil {
		return model.FilterSet{}, fmt.Errorf("failed to decode filters: %w", err)
	}
	return f, nil
}
