package speech

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store manages temporary audio artifacts for utterance playback. Each
// utterance gets a uniquely named file and all previous artifacts are
// removed before a new one is written, so a long session never grows the
// directory unboundedly.
type Store struct {
	dir    string
	logger *zap.Logger
}

const artifactPattern = "utterance_*.mp3"

func NewStore(dir string, logger *zap.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger,
	}
}

// Save removes prior artifacts and writes the audio under a fresh unique
// name, returning its path.
func (s *Store) Save(audio []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	s.Cleanup()

	path := filepath.Join(s.dir, fmt.Sprintf("utterance_%s.mp3", uuid.NewString()))
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return "", fmt.Errorf("write audio artifact: %w", err)
	}

	return path, nil
}

// Cleanup deletes every artifact previously produced by this store.
func (s *Store) Cleanup() {
	matches, err := filepath.Glob(filepath.Join(s.dir, artifactPattern))
	if err != nil {
		return
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil {
			s.logger.Warn("failed to delete audio artifact",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}
}
