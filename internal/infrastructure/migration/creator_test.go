package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/erp/saleproject/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add sale lines", "add_sale_lines"},
		{"Add-Work-Progress", "add_work_progress"},
		{"ADD__UOM__RATE", "add_uom_rate"},
		{"  spaces  ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	mf, err := CreateMigration(dir, "add work progress", "Track progress on works", now)
	require.NoError(t, err)

	assert.Equal(t, "20240506070809", mf.Version)
	assert.Equal(t, filepath.Join(dir, "20240506070809_add_work_progress.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "20240506070809_add_work_progress.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- add work progress")
	assert.Contains(t, string(up), "-- Track progress on works")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")

	_, err = CreateMigration(dir, "add work progress", "", now)
	assert.Error(t, err, "an existing pair is never overwritten")
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "", time.Now())
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	t.Run("sorted stems", func(t *testing.T) {
		fsys := fstest.MapFS{
			"20240102000000_b.up.sql":   {},
			"20240102000000_b.down.sql": {},
			"20240101000000_a.up.sql":   {},
			"20240101000000_a.down.sql": {},
			"README.md":                 {},
			"nested/x.up.sql":           {},
		}

		stems, err := ListMigrations(fsys)
		require.NoError(t, err)
		assert.Equal(t, []string{"20240101000000_a", "20240102000000_b"}, stems)
	})

	t.Run("missing down file", func(t *testing.T) {
		fsys := fstest.MapFS{"20240101000000_a.up.sql": {}}

		_, err := ListMigrations(fsys)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no .down.sql file")
	})

	t.Run("missing directory", func(t *testing.T) {
		stems, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "absent")))
		require.NoError(t, err)
		assert.Empty(t, stems)
	})
}

func TestEmbeddedMigrations(t *testing.T) {
	stems, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, stems)

	var schema strings.Builder
	for _, stem := range stems {
		b, err := migrations.FS.ReadFile(stem + upSuffix)
		require.NoError(t, err)
		schema.Write(b)
	}
	for _, table := range []string{"uoms", "products", "works", "sales", "sale_lines"} {
		assert.Contains(t, schema.String(), "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
	assert.Contains(t, schema.String(), "ON sales (company_id, number)")
	assert.Contains(t, schema.String(), "ON products (company_id, code)")
}
