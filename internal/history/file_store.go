package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/rshade/ecotrack/internal/logging"
)

// FileStoreVersion is the current schema version of the history file.
const FileStoreVersion = 1

// fileStoreData is the serialized form of the history file.
type fileStoreData struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// FileStore keeps the whole history as one JSON document.
// Writes are atomic (temp file + rename) and serialized across processes
// with an advisory lockfile.
type FileStore struct {
	mu       sync.Mutex
	filePath string
}

// NewFileStore creates a FileStore backed by filePath.
// If filePath is empty, it defaults to ~/.ecotrack/history.json.
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determining home directory: %w", err)
		}
		filePath = filepath.Join(homeDir, ".ecotrack", "history.json")
	}
	return &FileStore{filePath: filePath}, nil
}

// FilePath returns the path of the history file.
func (s *FileStore) FilePath() string {
	return s.filePath
}

// Load returns all entries. A missing file is an empty history; a corrupt
// file is logged and also read as empty.
func (s *FileStore) Load(ctx context.Context) []Entry {
	entries, err := s.ReadAll(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "history").
			Str("path", s.filePath).
			Err(err).
			Msg("history unreadable, treating as empty")
		return []Entry{}
	}
	return entries
}

// ReadAll is Load with the read error surfaced.
func (s *FileStore) ReadAll(_ context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// Append adds e to the end of the history file.
//
// If the existing file is corrupt it is moved aside to <path>.corrupt and
// a new history is started with e.
func (s *FileStore) Append(ctx context.Context, e Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, lockErr := s.acquireFileLock()
	if lockErr != nil {
		return fmt.Errorf("acquiring file lock: %w", lockErr)
	}
	defer unlock()

	entries, err := s.readLocked()
	if err != nil {
		if !errors.Is(err, ErrStoreCorrupted) {
			return err
		}
		backup := s.filePath + ".corrupt"
		logging.FromContext(ctx).Warn().
			Str("component", "history").
			Str("path", s.filePath).
			Str("backup", backup).
			Err(err).
			Msg("moving corrupt history aside")
		if renameErr := os.Rename(s.filePath, backup); renameErr != nil {
			return fmt.Errorf("moving corrupt history aside: %w", renameErr)
		}
		entries = nil
	}

	entries = append(entries, e)
	return s.writeLocked(entries)
}

// readLocked reads the history file. Must be called with s.mu held.
func (s *FileStore) readLocked() ([]Entry, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []Entry{}, nil
	}

	// Bare arrays are the legacy browser layout.
	if trimmed[0] == '[' {
		var legacy []Entry
		if unmarshalErr := json.Unmarshal(trimmed, &legacy); unmarshalErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreCorrupted, unmarshalErr)
		}
		return nonNil(legacy), nil
	}

	var storeData fileStoreData
	if unmarshalErr := json.Unmarshal(trimmed, &storeData); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreCorrupted, unmarshalErr)
	}
	if storeData.Version != FileStoreVersion {
		return nil, fmt.Errorf("%w: unsupported version %d (expected %d)",
			ErrStoreCorrupted, storeData.Version, FileStoreVersion)
	}
	return nonNil(storeData.Entries), nil
}

// writeLocked replaces the history file atomically. Must be called with s.mu held.
func (s *FileStore) writeLocked(entries []Entry) error {
	data, err := json.MarshalIndent(fileStoreData{Version: FileStoreVersion, Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(s.filePath), 0o750); mkdirErr != nil {
		return fmt.Errorf("creating history directory: %w", mkdirErr)
	}

	tmpPath := s.filePath + ".tmp"
	if writeErr := os.WriteFile(tmpPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing history temp file: %w", writeErr)
	}
	if renameErr := os.Rename(tmpPath, s.filePath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming history temp file: %w", renameErr)
	}
	return nil
}

// acquireFileLock acquires a cross-process advisory lockfile.
// Returns a cleanup function that releases the lock.
func (s *FileStore) acquireFileLock() (func(), error) {
	lockPath := s.filePath + ".lock"

	if err := os.MkdirAll(filepath.Dir(lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	const maxRetries = 10
	const retryDelay = 100 * time.Millisecond
	const staleLockAge = 30 * time.Second

	for range maxRetries {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}

		if removeStaleLock(lockPath, staleLockAge) {
			continue
		}
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("could not acquire lock on %s after retries", lockPath)
}

// removeStaleLock removes a lock older than staleLockAge whose owner is gone.
// Returns true if the lock was removed.
func removeStaleLock(lockPath string, staleLockAge time.Duration) bool {
	info, statErr := os.Stat(lockPath)
	if statErr != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}
	if isLockHeldByLiveProcess(lockPath) {
		return false
	}
	_ = os.Remove(lockPath)
	return true
}

func isLockHeldByLiveProcess(lockPath string) bool {
	pidData, readErr := os.ReadFile(lockPath)
	if readErr != nil || len(pidData) == 0 {
		return false
	}
	var pid int
	if _, scanErr := fmt.Sscanf(string(pidData), "%d", &pid); scanErr != nil || pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 tests process existence without delivering a signal.
	return proc.Signal(syscall.Signal(0)) == nil
}

func nonNil(entries []Entry) []Entry {
	if entries == nil {
		return []Entry{}
	}
	return entries
}
