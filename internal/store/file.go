package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/i474232898/mood-tracker/internal/mood"
)

// ErrClosed is returned by a FileStore after Close.
var ErrClosed = errors.New("store is closed")

type appendRequest struct {
	entry mood.Entry
	done  chan error
}

// FileStore keeps the entry collection in a single pretty-printed JSON
// document. Every write is a full read-modify-write performed by one writer
// goroutine; the document is replaced through a rename so readers never see
// a partial file.
type FileStore struct {
	path       string
	maxEntries int

	appends   chan appendRequest
	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewFileStore creates a FileStore for path and starts its writer.
// If maxEntries is <= 0, mood.DefaultMaxEntries is used.
func NewFileStore(path string, maxEntries int) *FileStore {
	if maxEntries <= 0 {
		maxEntries = mood.DefaultMaxEntries
	}
	s := &FileStore{
		path:       path,
		maxEntries: maxEntries,
		appends:    make(chan appendRequest),
		quit:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
	go s.run()
	return s
}

// Path returns the location of the backing document.
func (s *FileStore) Path() string {
	return s.path
}

// Init creates the backing document holding an empty collection if it does
// not exist yet.
func (s *FileStore) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := s.write([]mood.Entry{}); err != nil {
		return err
	}
	log.Printf("INFO: created empty mood file at %s", s.path)
	return nil
}

// List reads the whole document. A missing, unreadable or malformed document
// yields an empty collection; entries failing validation are skipped.
func (s *FileStore) List(ctx context.Context) ([]mood.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case <-s.quit:
		return nil, ErrClosed
	default:
	}

	return s.read(), nil
}

// Append queues entry for the writer and waits for it to be persisted.
func (s *FileStore) Append(ctx context.Context, entry mood.Entry) error {
	req := appendRequest{entry: entry, done: make(chan error, 1)}

	select {
	case s.appends <- req:
	case <-s.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	// Once accepted the write completes regardless of ctx.
	return <-req.done
}

// Close stops the writer after the in-flight write, if any.
func (s *FileStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.quit)
	})
	<-s.stopped
	return nil
}

func (s *FileStore) run() {
	defer close(s.stopped)

	for {
		select {
		case req := <-s.appends:
			entries := prependCapped(s.read(), req.entry, s.maxEntries)
			req.done <- s.write(entries)
		case <-s.quit:
			return
		}
	}
}

func (s *FileStore) read() []mood.Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("WARN: reading %s failed, treating as empty: %v", s.path, err)
		}
		return []mood.Entry{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("WARN: %s is not a valid mood document, treating as empty: %v", s.path, err)
		return []mood.Entry{}
	}

	valid := make([]mood.Entry, 0, len(raw))
	for i, item := range raw {
		var e mood.Entry
		if err := json.Unmarshal(item, &e); err != nil {
			log.Printf("WARN: skipping unreadable entry %d in %s: %v", i, s.path, err)
			continue
		}
		if err := e.Validate(); err != nil {
			log.Printf("WARN: skipping invalid entry %d in %s: %v", i, s.path, err)
			continue
		}
		valid = append(valid, e)
	}
	return valid
}

func (s *FileStore) write(entries []mood.Entry) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		log.Printf("WARN: chmod %s: %v", tmpName, err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
