package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aryannaik/advocate-directory/internal/advocate"
)

// snapshot is the persisted form of a File store.
type snapshot struct {
	NextID    int64               `json:"nextId"`
	Entries   []advocate.Advocate `json:"entries"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// File keeps advocates in memory and persists them to a JSON file after
// every insert. Suitable for development and tests.
type File struct {
	mu        sync.RWMutex
	entries   []advocate.Advocate
	nextID    int64
	updatedAt time.Time
	path      string
	logger    *zap.Logger
}

// NewFile opens the store under dataDir, loading any existing snapshot.
func NewFile(dataDir string, logger *zap.Logger) (*File, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &File{
		path:   filepath.Join(dataDir, "advocates.json"),
		logger: logger,
	}
	if err := f.loadFromDisk(); err != nil {
		return nil, err
	}
	logger.Info("File store ready", zap.String("path", f.path), zap.Int("entries", len(f.entries)))
	return f, nil
}

// loadFromDisk replaces the in-memory state with the snapshot on disk.
// A missing file leaves the store empty.
func (f *File) loadFromDisk() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read store file: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode store file: %w", err)
	}

	f.entries = snap.Entries
	f.nextID = snap.NextID
	f.updatedAt = snap.UpdatedAt
	return nil
}

// saveLocked writes the snapshot. f.mu must be held.
func (f *File) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	updatedAt := time.Now().UTC()
	data, err := json.Marshal(snapshot{
		NextID:    f.nextID,
		Entries:   f.entries,
		UpdatedAt: updatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	f.updatedAt = updatedAt
	return nil
}

// Insert appends the batch and persists it. On a write failure the batch is
// dropped from memory too.
func (f *File) Insert(ctx context.Context, batch []advocate.NewAdvocate) ([]advocate.Advocate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	prevLen, prevID := len(f.entries), f.nextID
	now := time.Now().UTC()
	out := make([]advocate.Advocate, 0, len(batch))
	for _, n := range batch {
		f.nextID++
		a := n.WithID(strconv.FormatInt(f.nextID, 10), now)
		f.entries = append(f.entries, a)
		out = append(out, a)
	}

	if err := f.saveLocked(); err != nil {
		f.entries = f.entries[:prevLen]
		f.nextID = prevID
		return nil, err
	}
	return out, nil
}

func (f *File) List(ctx context.Context) ([]advocate.Advocate, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]advocate.Advocate, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *File) Count(ctx context.Context) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries), nil
}

// UpdatedAt returns when the snapshot was last written, or zero if never.
func (f *File) UpdatedAt() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.updatedAt
}

func (f *File) Driver() string { return DriverFile }

func (f *File) Close() error { return nil }
