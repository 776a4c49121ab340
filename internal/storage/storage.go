package storage

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"

	"kageo/backend/internal/models"
)

// Store is the persistence contract for the bot's durable state. Load and
// Save always move the whole document: moderators, saved tables and
// challengers are never persisted separately.
type Store interface {
	Load() (*models.BotData, error)
	Save(data *models.BotData) error
}

// FileStore persists the document as a single JSON file. Writes go through a
// temp file followed by a rename so a crash mid-write cannot truncate the
// previous state, and a mutex keeps one writer at a time.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted document. A missing file is not an error: the
// empty document is persisted immediately so the file exists from first run.
// Malformed content is treated as absent, with a logged diagnostic.
func (s *FileStore) Load() (*models.BotData, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		data := models.NewBotData()
		if saveErr := s.Save(data); saveErr != nil {
			return nil, saveErr
		}
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	data := models.NewBotData()
	if err := json.Unmarshal(raw, data); err != nil {
		log.Printf("ERROR: Persisted data in %s is malformed, starting empty: %v", s.path, err)
		return models.NewBotData(), nil
	}
	if data.Moderators == nil {
		data.Moderators = []int64{}
	}
	if data.SavedTables == nil {
		data.SavedTables = make(map[string]string)
	}
	if data.Challengers == nil {
		data.Challengers = make(map[string]*models.Challenger)
	}
	return data, nil
}

// Save rewrites the whole document atomically.
func (s *FileStore) Save(data *models.BotData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".botdata-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}
