package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoRecord is returned by Load when nothing has been saved yet.
var ErrNoRecord = errors.New("no saved progress")

// Store persists a Record.
type Store interface {
	Load() (Record, error)
	Save(Record) error
}

// MemoryStore keeps the record in memory. The zero value is empty.
type MemoryStore struct {
	mu  sync.Mutex
	rec *Record
}

// Load implements Store.
func (m *MemoryStore) Load() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return Record{}, ErrNoRecord
	}
	return m.rec.Clone(), nil
}

// Save implements Store.
func (m *MemoryStore) Save(r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := r.Clone()
	m.rec = &c
	return nil
}

// FileStore keeps the record in a JSON file. Saves write a temporary file
// next to the target and rename it into place.
type FileStore struct {
	Path string
}

// NewFileStore returns a store for path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load implements Store.
func (f *FileStore) Load() (Record, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, ErrNoRecord
	}
	if err != nil {
		return Record{}, fmt.Errorf("reading progress: %w", err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("parsing progress: %w", err)
	}
	r.normalize()
	return r, nil
}

// Save implements Store.
func (f *FileStore) Save(r Record) error {
	r.normalize()
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding progress: %w", err)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating progress directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing progress: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing progress: %w", err)
	}
	return nil
}

// AsyncStore saves through an inner Store on a background goroutine so the
// caller never waits on I/O. Only the most recent pending record is written;
// a failed save is logged and dropped.
type AsyncStore struct {
	inner Store

	mu      sync.Mutex
	pending *Record
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewAsyncStore starts the background writer for inner.
func NewAsyncStore(inner Store) *AsyncStore {
	a := &AsyncStore{
		inner: inner,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

// Load reads synchronously from the inner store.
func (a *AsyncStore) Load() (Record, error) {
	return a.inner.Load()
}

// Save queues r and returns immediately. It replaces any record that has not
// been written yet. Saving after Close is an error.
func (a *AsyncStore) Save(r Record) error {
	c := r.Clone()
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return errors.New("progress store is closed")
	}
	a.pending = &c
	select {
	case a.wake <- struct{}{}:
	default:
	}
	a.mu.Unlock()
	return nil
}

// Close writes any pending record and stops the writer.
func (a *AsyncStore) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.wake)
	a.mu.Unlock()

	<-a.done
	return nil
}

func (a *AsyncStore) run() {
	defer close(a.done)
	for range a.wake {
		a.flush()
	}
	a.flush()
}

func (a *AsyncStore) flush() {
	a.mu.Lock()
	r := a.pending
	a.pending = nil
	a.mu.Unlock()
	if r == nil {
		return
	}
	if err := a.inner.Save(*r); err != nil {
		slog.Error("failed to save progress", "error", err)
	}
}
