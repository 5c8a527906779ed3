package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/karrick/godirwalk"

	"github.com/stringcat/stringcat/pkg/errors"
	"github.com/stringcat/stringcat/pkg/logging"
)

// CatalogExtension is the file extension catalog files carry.
const CatalogExtension = ".xcstrings"

// Directories skipped during discovery, compared case-insensitively.
var skippedDirs = map[string]bool{
	"target":       true,
	".git":         true,
	"node_modules": true,
}

// Manager resolves logical paths to Stores and caches one Store per canonical
// path for the process lifetime. It also maintains a discovered list of
// catalog files under the search root.
type Manager struct {
	defaultPath string
	searchRoot  string

	mu     sync.RWMutex
	stores map[string]*Store

	discoveredMu sync.RWMutex
	discovered   []string
}

// NewManager creates a manager rooted at the default catalog path's directory
// when one is given, or the working directory otherwise. Discovery runs once
// up front, and the default store is opened eagerly so a bad default path
// fails at startup instead of on first request.
func NewManager(defaultPath string) (*Manager, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	if defaultPath != "" && !filepath.IsAbs(defaultPath) {
		defaultPath = filepath.Join(cwd, defaultPath)
	}

	searchRoot := cwd
	if defaultPath != "" {
		searchRoot = filepath.Dir(defaultPath)
	}

	m := &Manager{
		defaultPath: defaultPath,
		searchRoot:  searchRoot,
		stores:      make(map[string]*Store),
	}

	if _, err := m.RefreshDiscovered(); err != nil {
		return nil, err
	}
	if m.defaultPath != "" {
		if _, err := m.DefaultStore(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DefaultPath returns the configured default catalog path, or "".
func (m *Manager) DefaultPath() string {
	return m.defaultPath
}

// SearchRoot returns the directory discovery scans.
func (m *Manager) SearchRoot() string {
	return m.searchRoot
}

// StoreFor resolves a logical path to its cached store, creating the store on
// first access. An empty path selects the default catalog and fails with
// ErrPathRequired when none is configured. On a cache hit the store's content
// is opportunistically reloaded from disk; a failed reload is ignored and the
// cached state served as-is.
func (m *Manager) StoreFor(path string) (*Store, error) {
	resolved, err := m.resolve(path)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	cached, ok := m.stores[resolved]
	m.mu.RUnlock()
	if ok {
		if err := cached.Reload(); err != nil {
			logging.Debug().
				Err(err).
				Str("path", resolved).
				Msg("Reload failed, serving cached catalog")
		}
		return cached, nil
	}

	created, err := LoadOrCreate(resolved)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.stores[resolved]; ok {
		return existing, nil
	}
	m.stores[resolved] = created
	return created, nil
}

// DefaultStore returns the store for the configured default path.
func (m *Manager) DefaultStore() (*Store, error) {
	return m.StoreFor("")
}

func (m *Manager) resolve(path string) (string, error) {
	if path == "" {
		if m.defaultPath == "" {
			return "", errors.ErrPathRequired
		}
		return canonicalPath(m.defaultPath), nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.searchRoot, path)
	}
	return canonicalPath(path), nil
}

// canonicalPath resolves symlinks so that aliased paths share one store. A
// path that does not exist yet resolves to its cleaned absolute form.
func canonicalPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// AvailablePaths returns the most recently discovered catalog files.
func (m *Manager) AvailablePaths() []string {
	m.discoveredMu.RLock()
	defer m.discoveredMu.RUnlock()
	paths := make([]string, len(m.discovered))
	copy(paths, m.discovered)
	return paths
}

// RefreshDiscovered rescans the search root for catalog files and replaces
// the discovered list as a whole. The default path is always included.
func (m *Manager) RefreshDiscovered() ([]string, error) {
	discovered, err := discoverCatalogs(m.searchRoot)
	if err != nil {
		return nil, err
	}

	if m.defaultPath != "" {
		canonical := canonicalPath(m.defaultPath)
		found := false
		for _, existing := range discovered {
			if existing == canonical {
				found = true
				break
			}
		}
		if !found {
			discovered = append(discovered, canonical)
		}
	}

	sort.Strings(discovered)
	discovered = dedupe(discovered)

	m.discoveredMu.Lock()
	m.discovered = discovered
	m.discoveredMu.Unlock()

	logging.Debug().
		Int("count", len(discovered)).
		Str("root", m.searchRoot).
		Msg("Catalog discovery refreshed")

	paths := make([]string, len(discovered))
	copy(paths, discovered)
	return paths, nil
}

// PathToken is the stable identifier clients pass back to select a catalog:
// the search-root-relative path with forward slashes, or the absolute path
// for catalogs outside the root.
func (m *Manager) PathToken(path string) string {
	if relative, err := filepath.Rel(m.searchRoot, path); err == nil &&
		relative != "" && !strings.HasPrefix(relative, "..") {
		return filepath.ToSlash(relative)
	}
	return filepath.ToSlash(path)
}

// PathLabel is the human-readable name for a catalog: like PathToken, but
// falling back to the bare file name for catalogs outside the root.
func (m *Manager) PathLabel(path string) string {
	if relative, err := filepath.Rel(m.searchRoot, path); err == nil &&
		relative != "" && !strings.HasPrefix(relative, "..") {
		return filepath.ToSlash(relative)
	}
	if name := filepath.Base(path); name != "" && name != "." {
		return name
	}
	return filepath.ToSlash(path)
}

func discoverCatalogs(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("walk", root, err)
	}

	var results []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, entry *godirwalk.Dirent) error {
			if entry.IsDir() {
				if skippedDirs[strings.ToLower(entry.Name())] {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(entry.Name()), CatalogExtension) {
				results = append(results, canonicalPath(path))
			}
			return nil
		},
		ErrorCallback: func(_ string, _ error) godirwalk.ErrorAction {
			// Unreadable subtrees are skipped, matching plain directory listing.
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		return nil, errors.WrapIO("walk", root, err)
	}
	return results, nil
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, path := range sorted {
		if i == 0 || path != sorted[i-1] {
			out = append(out, path)
		}
	}
	return out
}
