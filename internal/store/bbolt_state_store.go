package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"vibe/internal/types"
)

var (
	bucketUIState = []byte("ui_state")
	keyUIState    = []byte("state")
)

type BboltStateStore struct {
	db *bolt.DB
}

func NewBboltStateStore(path string) (*BboltStateStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketUIState)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BboltStateStore{db: db}, nil
}

func (s *BboltStateStore) Load(ctx context.Context) (*types.UIState, error) {
	state := &types.UIState{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUIState)
		if b == nil {
			return nil
		}
		raw := b.Get(keyUIState)
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, state)
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *BboltStateStore) Save(ctx context.Context, state *types.UIState) error {
	if state == nil {
		return errors.New("state is required")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUIState)
		if b == nil {
			return errors.New("ui state bucket missing")
		}
		return b.Put(keyUIState, raw)
	})
}

func (s *BboltStateStore) Backend() string {
	return BackendBbolt
}

func (s *BboltStateStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
