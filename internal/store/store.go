// Package store persists the analytics document as a single JSON
// file. The whole document is read and written in one piece; there is
// no sharding or rotation, and durability is best effort.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"site-analytics-service/internal/model"
)

// Store defines persistence operations for the analytics document.
type Store interface {
	// Load returns the full document, creating an empty one if no
	// persisted file exists.
	Load(ctx context.Context) (*model.Log, error)

	// Save stamps LastUpdated, derives FirstDay when unset, and
	// writes the whole document back. No retry on failure.
	Save(ctx context.Context, log *model.Log) error
}

type fileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore creates a Store backed by the JSON file at path.
func NewFileStore(path string) Store {
	return &fileStore{path: path, now: time.Now}
}

func (s *fileStore) Load(ctx context.Context) (*model.Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.NewLog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read analytics file: %w", err)
	}

	doc := model.NewLog()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parse analytics file: %w", err)
	}
	if doc.Sessions == nil {
		doc.Sessions = map[string]*model.Session{}
	}
	return doc, nil
}

func (s *fileStore) Save(ctx context.Context, log *model.Log) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log.LastUpdated = s.now().UnixMilli()
	if log.FirstDay == 0 {
		log.FirstDay = earliestPageView(log)
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("encode analytics document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	// Write-then-rename keeps a readable document on disk even when
	// the process dies mid-write.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write analytics file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace analytics file: %w", err)
	}
	return nil
}

func earliestPageView(log *model.Log) int64 {
	var min int64
	for _, pv := range log.PageViews {
		if min == 0 || pv.Timestamp < min {
			min = pv.Timestamp
		}
	}
	return min
}
