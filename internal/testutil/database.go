// Package testutil provides shared test fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/storage"
)

// SetupTestStore opens a migrated in-memory store that is closed when the
// test ends.
func SetupTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.Open(context.Background(), storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// SetupTestStoreWithPresets opens a test store and saves the given presets.
func SetupTestStoreWithPresets(t *testing.T, presets map[string]model.FilterSet) *storage.SQLiteStorage {
	t.Helper()

	store := SetupTestStore(t)
	for name, f := range presets {
		if err := store.SavePreset(context.Background(), name, f); err != nil {
			t.Fatalf("failed to seed preset %q: %v", name, err)
		}
	}
	return store
}

// SearchFilters returns a valid filter set for the default test district.
func SearchFilters(contractEnd string) model.FilterSet {
	f := model.DefaultFilterSet()
	f.Sido = "서울특별시"
	f.Sigungu = []string{"강남구"}
	f.ContractEnd = contractEnd
	return f
}
