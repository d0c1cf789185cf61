package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Product Index", "index on sku")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)
	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_product_index.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_product_index.down.sql"))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Product Index")
	assert.Contains(t, string(up), "index on sku")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(down)")
}

func TestCreateMigrationMakesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(dir, "init", "")
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	for _, base := range []string{"20250102000000_second", "20250101000000_first"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, base+".up.sql"), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, base+".down.sql"), nil, 0o644))
	}
	// stray files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), nil, 0o644))

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"20250101000000_first", "20250102000000_second"}, names)
}

func TestListMigrationsMissingDir(t *testing.T) {
	names, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Add Users Table":      "add_users_table",
		"add--users__table":    "add_users_table",
		"  spaced out  ":       "spaced_out",
		"MixedCase123":         "mixedcase123",
		"weird!@#chars":        "weirdchars",
		"trailing separator -": "trailing_separator",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "input %q", in)
	}
}
