package sessionrepo

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/basebase-ai/basebase-go/session"
)

const sessionFileName = "session.json"

// FileRepo persists the session as a single JSON file under the data
// folder. A missing or unreadable file is reported as ErrNoSession so the
// process hydrates as anonymous.
type FileRepo struct {
	path string
}

var _ session.Repo = (*FileRepo)(nil)

// NewFileRepo creates a file-backed session repository rooted at folder.
func NewFileRepo(folder string) *FileRepo {
	return &FileRepo{path: filepath.Join(folder, sessionFileName)}
}

func (r *FileRepo) Load() (*session.Session, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, session.ErrNoSession
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileRepo.Load] read session file")
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt durable state is treated as absent, never as fatal.
		return nil, errors.Wrap(session.ErrNoSession, "corrupt session file")
	}
	return &sess, nil
}

func (r *FileRepo) Save(sess *session.Session) error {
	if sess == nil {
		return errors.New("[FileRepo.Save] session cannot be nil")
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return errors.Wrap(err, "[FileRepo.Save] create data folder")
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileRepo.Save] marshal session")
	}
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileRepo.Save] write session file")
	}
	return nil
}

func (r *FileRepo) Clear() error {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileRepo.Clear] remove session file")
	}
	return nil
}
