package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/addisride/admin-console/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the serialized session in a single file on disk.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

type FileStoreOption func(*FileStore)

// WithLogger sets the logger used to report swallowed storage failures.
func WithLogger(logger zerolog.Logger) FileStoreOption {
	return func(fs *FileStore) {
		fs.logger = logger
	}
}

func NewFileStore(path string, options ...FileStoreOption) *FileStore {
	fs := &FileStore{
		path:   path,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(fs)
	}
	return fs
}

// Save overwrites any previously stored session. Storage being
// unavailable is not an error the session lifecycle should fail on: the
// session simply won't survive a restart, so the failure is logged and
// swallowed.
func (fs *FileStore) Save(s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] marshal session")
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		fs.logger.Warn().Err(err).Str("path", fs.path).Msg("credential store unavailable, session will not persist")
		return nil
	}
	if err := os.WriteFile(fs.path, data, 0o600); err != nil {
		fs.logger.Warn().Err(err).Str("path", fs.path).Msg("credential store unavailable, session will not persist")
		return nil
	}
	return nil
}

// Load returns the last saved session, or (nil, nil) when nothing is
// stored or the stored blob fails to decode.
func (fs *FileStore) Load() (*session.Session, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return nil, nil
	}
	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		fs.logger.Warn().Err(err).Str("path", fs.path).Msg("discarding corrupt stored session")
		return nil, nil
	}
	if !s.Valid() {
		return nil, nil
	}
	return &s, nil
}

// Clear removes the stored session unconditionally.
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] remove")
	}
	return nil
}
