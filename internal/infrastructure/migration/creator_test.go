package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigrationWritesPair(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Product Index")
	require.NoError(t, err)

	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)
	assert.Contains(t, filepath.Base(mf.UpPath), "add_product_index.up.sql")
	assert.Contains(t, filepath.Base(mf.DownPath), "add_product_index.down.sql")
	assert.Len(t, mf.Version, 14)
}

func TestListMigrationsSorted(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"2_b.up.sql", "1_a.up.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- x"), 0o644))
	}

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"1_a.up.sql", "2_b.up.sql"}, names)
}

func TestListMigrationsMissingDir(t *testing.T) {
	names, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "them_bang_don_hang", sanitizeName("Them bang don hang"))
	assert.Equal(t, "v2_orders", sanitizeName("  V2--Orders  "))
}
