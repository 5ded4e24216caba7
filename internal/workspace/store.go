package workspace

import (
	"errors"
	"os"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/oscarlic/angular-cli/internal/jsonutil"
)

// Scope identifies which configuration document a lookup targets.
type Scope string

const (
	// Local is the project-level workspace discovered by walking up
	// from the working directory.
	Local Scope = "local"
	// Global is the user-level configuration under the home or XDG
	// config directory.
	Global Scope = "global"
)

// Store resolves and caches configuration documents per scope. A scope
// is resolved from disk at most once per Store; later lookups, lookups
// that found nothing included, are served from the cache. Store is safe
// for concurrent use.
type Store struct {
	// StartDir optionally overrides where the local-scope upward
	// search begins. Defaults to the working directory.
	StartDir string

	mu    sync.Mutex
	cache map[Scope]*Document // nil value records a resolved absence
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{cache: make(map[Scope]*Document)}
}

// Workspace returns the document for scope, or (nil, nil) when no
// configuration file exists for it. The first call per scope reads from
// disk; the result, absence included, is cached for the Store lifetime
// and never re-read.
func (s *Store) Workspace(scope Scope) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.cache[scope]; ok {
		return doc, nil
	}
	path, err := s.configPath(scope)
	if err != nil {
		return nil, err
	}
	if path == "" {
		s.cache[scope] = nil
		return nil, nil
	}
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	s.cache[scope] = doc
	return doc, nil
}

func (s *Store) configPath(scope Scope) (string, error) {
	if scope == Global {
		return GlobalConfigPath()
	}
	return ProjectConfigPath(s.StartDir), nil
}

func loadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return newDocument(path, data)
}

// defaultGlobalSettings is the document written when global
// configuration is first created.
const defaultGlobalSettings = "{\n  \"version\": 1\n}\n"

// CreateGlobalSettings writes a minimal global configuration file at the
// conventional home-directory location and returns its path. An existing
// file at that location is overwritten.
func (s *Store) CreateGlobalSettings() (string, error) {
	path, err := defaultGlobalPath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultGlobalSettings), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// RawConfig is the editable view of a configuration file. Unlike
// Document it is not cached: every call to WorkspaceRaw re-reads the
// file so edits observe the latest content. Writes through Set keep the
// untouched parts of the file's layout intact.
type RawConfig struct {
	Path string

	data []byte
	root gjson.Result
}

// Root returns the parsed top-level object.
func (r *RawConfig) Root() gjson.Result {
	return r.root
}

// Get returns the value at a dot-separated path, or the whole document
// when path is empty.
func (r *RawConfig) Get(path string) gjson.Result {
	if path == "" {
		return r.root
	}
	return r.root.Get(path)
}

// Set writes value at a dot-separated path, creating intermediate
// objects as needed.
func (r *RawConfig) Set(path string, value any) error {
	data, err := sjson.SetBytes(r.data, path, value)
	if err != nil {
		return err
	}
	r.data = data
	r.root = gjson.ParseBytes(data)
	return nil
}

// Bytes returns the current document content.
func (r *RawConfig) Bytes() []byte {
	return r.data
}

// Save writes the current content back to Path.
func (r *RawConfig) Save() error {
	return os.WriteFile(r.Path, r.data, 0o644)
}

// WorkspaceRaw returns the raw view of the scope's configuration file.
// Returns (nil, nil) when no local-scope file exists. For the global
// scope a missing file is first created with minimal default content at
// the conventional home-directory path.
func (s *Store) WorkspaceRaw(scope Scope) (*RawConfig, error) {
	path, err := s.configPath(scope)
	if err != nil {
		return nil, err
	}
	if path == "" {
		if scope != Global {
			return nil, nil
		}
		if path, err = s.CreateGlobalSettings(); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	norm := jsonutil.Normalize(data)
	if _, err := jsonutil.ParseObject(norm); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	root := gjson.ParseBytes(norm)
	if !root.IsObject() {
		return nil, &LoadError{Path: path, Err: errors.New("top-level value must be a JSON object")}
	}
	return &RawConfig{Path: path, data: norm, root: root}, nil
}
