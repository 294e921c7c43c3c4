// Package storage keeps generated plugin files on disk and tracks their
// metadata for the API.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Polyhaze/qmk2srgb/internal/models"
	"github.com/google/uuid"
)

// Store defines the interface for plugin storage.
type Store interface {
	Save(fileName, boardName string, content []byte) (*models.PluginInfo, error)
	Get(id string) (*models.PluginInfo, error)
	List(limit int) ([]*models.PluginInfo, error)
	Delete(id string) error
	GetFilePath(id string) (string, error)
}

// LocalStore implements Store using the local filesystem. Plugins are
// written under their derived file name, so the directory doubles as the
// deliverable output directory of the CLI.
type LocalStore struct {
	mu      sync.RWMutex
	outDir  string
	plugins map[string]*models.PluginInfo
}

// NewLocalStore creates a new LocalStore rooted at outDir.
func NewLocalStore(outDir string) (*LocalStore, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &LocalStore{
		outDir:  outDir,
		plugins: make(map[string]*models.PluginInfo),
	}, nil
}

// Save writes a rendered plugin to the output directory. Re-generating a
// board overwrites its file and replaces the previous metadata entry.
func (s *LocalStore) Save(fileName, boardName string, content []byte) (*models.PluginInfo, error) {
	path := filepath.Join(s.outDir, fileName)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return nil, fmt.Errorf("writing plugin: %w", err)
	}

	info := &models.PluginInfo{
		ID:        uuid.New().String(),
		FileName:  fileName,
		BoardName: boardName,
		Size:      int64(len(content)),
		WrittenAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, prev := range s.plugins {
		if prev.FileName == fileName {
			delete(s.plugins, id)
		}
	}
	s.plugins[info.ID] = info

	return info, nil
}

// Get retrieves plugin metadata by ID.
func (s *LocalStore) Get(id string) (*models.PluginInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.plugins[id]
	if !ok {
		return nil, fmt.Errorf("plugin not found: %s", id)
	}

	return info, nil
}

// List returns the most recently written plugins.
func (s *LocalStore) List(limit int) ([]*models.PluginInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*models.PluginInfo, 0, len(s.plugins))
	for _, info := range s.plugins {
		list = append(list, info)
	}

	// Sort by WrittenAt desc
	sort.Slice(list, func(i, j int) bool {
		return list[i].WrittenAt.After(list[j].WrittenAt)
	})

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	return list, nil
}

// Delete removes a plugin from disk and from the index.
func (s *LocalStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.plugins[id]
	if !ok {
		return fmt.Errorf("plugin not found: %s", id)
	}

	path := filepath.Join(s.outDir, info.FileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting plugin: %w", err)
	}

	delete(s.plugins, id)
	return nil
}

// GetFilePath returns the on-disk path of a stored plugin.
func (s *LocalStore) GetFilePath(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.plugins[id]
	if !ok {
		return "", fmt.Errorf("plugin not found: %s", id)
	}

	return filepath.Join(s.outDir, info.FileName), nil
}
