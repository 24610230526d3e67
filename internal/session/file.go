package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/micro-blogger/telegram-client/pkg/config"
	"github.com/micro-blogger/telegram-client/pkg/errors"
	"github.com/micro-blogger/telegram-client/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// FileStore keeps the single session token in a file so it survives
// process restarts, the way the browser kept it in localStorage.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger logger.Logger
}

var _ Store = (*FileStore)(nil)

func New(opts Opts) *FileStore {
	return NewFileStore(opts.Config.Session.Path, opts.Logger)
}

func NewFileStore(path string, log logger.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: log.WithComponent("SessionStore"),
	}
}

func (s *FileStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errors.Wrap(err, "create session directory")
		}
	}

	// Write-then-rename so a crash never leaves a torn token behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return errors.Wrap(err, "write session file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "store session file")
	}
	return nil
}

func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read session file", "path", s.path, "error", err)
		}
		return "", false
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "clear session file")
	}
	return nil
}
