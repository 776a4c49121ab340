package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"kageo/backend/internal/models"
	"kageo/backend/internal/storage"
)

// TestLoadMissingFile verifies that a missing backing file yields empty
// collections and establishes the file on first run.
func TestLoadMissingFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "bot_data.json")
	store := storage.NewFileStore(path)

	// Act
	data, err := store.Load()

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, data.Moderators)
	assert.Empty(t, data.SavedTables)
	assert.Empty(t, data.Challengers)
	assert.FileExists(t, path, "Load must persist the empty document immediately")
}

// TestSaveLoadRoundTrip verifies the whole document survives a save/load cycle.
func TestSaveLoadRoundTrip(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "bot_data.json")
	store := storage.NewFileStore(path)

	data := models.NewBotData()
	data.Moderators = []int64{111, 222}
	data.SavedTables["tableau 1"] = "A | B | C"
	data.Challengers["333"] = &models.Challenger{Name: "Izumi", DuelsCount: 3, JoinDate: "2026-08-30"}

	// Act
	assert.NoError(t, store.Save(data))
	loaded, err := store.Load()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []int64{111, 222}, loaded.Moderators)
	assert.Equal(t, "A | B | C", loaded.SavedTables["tableau 1"])
	assert.Equal(t, &models.Challenger{Name: "Izumi", DuelsCount: 3, JoinDate: "2026-08-30"}, loaded.Challengers["333"])
}

// TestLoadMalformedFile verifies malformed content is treated as absent data.
func TestLoadMalformedFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "bot_data.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := storage.NewFileStore(path)

	// Act
	data, err := store.Load()

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, data.Moderators)
	assert.Empty(t, data.SavedTables)
	assert.Empty(t, data.Challengers)
}

// TestLoadPartialDocument verifies that missing collections come back as
// empty, initialized maps rather than nil.
func TestLoadPartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot_data.json")
	assert.NoError(t, os.WriteFile(path, []byte(`{"moderators": [42]}`), 0o644))

	data, err := storage.NewFileStore(path).Load()

	assert.NoError(t, err)
	assert.Equal(t, []int64{42}, data.Moderators)
	assert.NotNil(t, data.SavedTables)
	assert.NotNil(t, data.Challengers)
}

// TestSaveLeavesNoTempFiles verifies the atomic rewrite cleans up after itself.
func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(filepath.Join(dir, "bot_data.json"))

	assert.NoError(t, store.Save(models.NewBotData()))

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1, "only the data file itself should remain")
	assert.Equal(t, "bot_data.json", entries[0].Name())
}
