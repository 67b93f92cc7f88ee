package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const manifestName = "manifest.json"

type Kind string

const (
	KindStill    Kind = "still"
	KindAnimated Kind = "animated"
	KindVector   Kind = "vector"
)

// Artifact is one finished export.
type Artifact struct {
	Name   string
	Kind   Kind
	Frames int
	Data   []byte
}

// Entry is the manifest record written for each saved artifact.
type Entry struct {
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	Frames    int       `json:"frames"`
	Bytes     int       `json:"bytes"`
	Timestamp time.Time `json:"timestamp"`
}

// Store writes export artifacts into one directory.
type Store struct {
	baseDir string

	// mu serializes manifest read-modify-write cycles.
	mu sync.Mutex
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes the artifact atomically and records it in the manifest. A
// file with the same name is replaced.
func (s *Store) Save(a Artifact) (string, error) {
	if a.Name == "" || filepath.Base(a.Name) != a.Name {
		return "", fmt.Errorf("storage: invalid artifact name %q", a.Name)
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	path := filepath.Join(s.baseDir, a.Name)
	if err := writeAtomic(path, a.Data); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.List()
	if err != nil {
		return "", err
	}
	entries = append(entries, Entry{
		Name:      a.Name,
		Kind:      a.Kind,
		Frames:    a.Frames,
		Bytes:     len(a.Data),
		Timestamp: time.Now(),
	})
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	if err := writeAtomic(filepath.Join(s.baseDir, manifestName), data); err != nil {
		return "", err
	}
	return path, nil
}

// List returns the manifest entries in the order they were saved.
func (s *Store) List() ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("storage: corrupt manifest: %w", err)
	}
	return entries, nil
}

// Load reads a saved artifact's bytes.
func (s *Store) Load(name string) ([]byte, error) {
	if filepath.Base(name) != name {
		return nil, fmt.Errorf("storage: invalid artifact name %q", name)
	}
	return os.ReadFile(filepath.Join(s.baseDir, name))
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pixanim-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
