package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"vibe/internal/types"
)

const (
	BackendFile  = "file"
	BackendBbolt = "bbolt"
)

// StateStore persists UI preferences between runs.
type StateStore interface {
	Load(ctx context.Context) (*types.UIState, error)
	Save(ctx context.Context, state *types.UIState) error
	Backend() string
	Close() error
}

// Open returns the store for backend rooted at path. An empty backend means bbolt.
func Open(backend, path string) (StateStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("state store path is required")
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendBbolt:
		return NewBboltStateStore(path)
	case BackendFile, "json":
		return NewFileStateStore(path), nil
	default:
		return nil, errors.New("unsupported state store backend: " + backend)
	}
}

type FileStateStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

func (s *FileStateStore) Load(ctx context.Context) (*types.UIState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &types.UIState{}
	err := readJSON(s.path, state)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return nil, err
	}
	return state, nil
}

func (s *FileStateStore) Save(ctx context.Context, state *types.UIState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == nil {
		return errors.New("state is required")
	}
	return writeJSONAtomic(s.path, state)
}

func (s *FileStateStore) Backend() string {
	return BackendFile
}

func (s *FileStateStore) Close() error {
	return nil
}
