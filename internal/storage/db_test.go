package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tigerwm/internal/wm"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, path
}

func TestSaveAndLoadLayouts(t *testing.T) {
	db, path := openTestDB(t)

	layouts := []wm.Layout{
		{MasterSize: 50, Mode: wm.Vertical},
		{MasterSize: 70, Mode: wm.Horizontal},
		{MasterSize: 10, Mode: wm.Vertical},
	}
	require.NoError(t, db.SaveLayouts(layouts))
	require.NoError(t, db.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadLayouts(len(layouts))
	require.NoError(t, err)
	assert.Equal(t, map[int]wm.Layout{0: layouts[0], 1: layouts[1], 2: layouts[2]}, got)
}

func TestSaveLayoutsOverwrites(t *testing.T) {
	db, _ := openTestDB(t)

	require.NoError(t, db.SaveLayouts([]wm.Layout{{MasterSize: 60, Mode: wm.Vertical}}))
	require.NoError(t, db.SaveLayouts([]wm.Layout{{MasterSize: 80, Mode: wm.Horizontal}}))

	got, err := db.LoadLayouts(1)
	require.NoError(t, err)
	assert.Equal(t, map[int]wm.Layout{0: {MasterSize: 80, Mode: wm.Horizontal}}, got)
}

func TestLoadLayoutsSkipsOutOfRangeAndInvalid(t *testing.T) {
	db, _ := openTestDB(t)

	require.NoError(t, db.SaveLayouts([]wm.Layout{
		{MasterSize: 40, Mode: wm.Vertical},
		{MasterSize: 55, Mode: wm.Horizontal},
		{MasterSize: 65, Mode: wm.Vertical},
	}))
	_, err := db.db.Exec(`UPDATE desktop_layouts SET master_size = 99 WHERE desktop = 1`)
	require.NoError(t, err)

	got, err := db.LoadLayouts(2)
	require.NoError(t, err)
	assert.Equal(t, map[int]wm.Layout{0: {MasterSize: 40, Mode: wm.Vertical}}, got)
}

func TestReset(t *testing.T) {
	db, _ := openTestDB(t)

	require.NoError(t, db.SaveLayouts([]wm.Layout{wm.DefaultLayout()}))
	require.NoError(t, db.reset())

	got, err := db.LoadLayouts(10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
