package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

const credentialsFile = "credentials.json"

// FileStore keeps the whole key/value map in one JSON file under the user
// config dir. Writes go through a temp file and rename, so a crash never
// leaves a half-written credentials file.
//
// When the config dir cannot be resolved or created the store degrades to
// a silent no-op: Get reports absence, Set and Delete do nothing. Nothing
// here ever panics or returns an error to the caller.
type FileStore struct {
	mu       sync.Mutex
	path     string
	disabled bool
	logger   *zap.Logger
}

// NewFileStore places the store under dir, or under the user config dir
// (~/.config/hostdeck) when dir is empty.
func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	s := &FileStore{logger: logger}

	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			logger.Debug("no user config dir, credential store disabled", zap.Error(err))
			s.disabled = true
			return s
		}
		dir = filepath.Join(base, "hostdeck")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		logger.Debug("cannot create credential dir, store disabled", zap.String("dir", dir), zap.Error(err))
		s.disabled = true
		return s
	}

	s.path = filepath.Join(dir, credentialsFile)
	return s
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return "", false
	}
	data := s.load()
	v, ok := data[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return
	}
	data := s.load()
	data[key] = value
	s.save(data)
}

func (s *FileStore) Delete(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled || len(keys) == 0 {
		return
	}
	data := s.load()
	changed := false
	for _, k := range keys {
		if _, ok := data[k]; ok {
			delete(data, k)
			changed = true
		}
	}
	if changed {
		s.save(data)
	}
}

func (s *FileStore) load() map[string]string {
	data := map[string]string{}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return data
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Debug("credentials file unreadable, starting fresh", zap.Error(err))
		return map[string]string{}
	}
	return data
}

// save writes atomically: temp file in the same dir, then rename.
func (s *FileStore) save(data map[string]string) {
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, credentialsFile+".tmp-*")
	if err != nil {
		s.logger.Debug("credential write skipped", zap.Error(err))
		return
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return
	}
	if err := os.Chmod(tmpName, 0o600); err == nil {
		if err := os.Rename(tmpName, s.path); err != nil {
			os.Remove(tmpName)
		}
	} else {
		os.Remove(tmpName)
	}
}
