package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
)

// document holds one named store's in-memory state
type document struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

// manager owns the documents and their on-disk files
type manager struct {
	dir  string
	mu   sync.Mutex
	docs map[string]*document
}

func newManager(dir string) *manager {
	return &manager{dir: dir, docs: make(map[string]*document)}
}

// validName rejects store names that could leave the stores directory
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}

func (m *manager) path(name string) string {
	return filepath.Join(m.dir, name+".json")
}

// get returns the document for name, loading it from disk on first use
func (m *manager) get(name string) (*document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if doc, ok := m.docs[name]; ok {
		return doc, nil
	}

	doc := &document{entries: make(map[string]interface{})}
	raw, err := os.ReadFile(m.path(name))
	if err == nil {
		if err := sonic.Unmarshal(raw, &doc.entries); err != nil {
			return nil, fmt.Errorf("store %s is corrupt: %v", name, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("store %s unreadable: %v", name, err)
	}

	m.docs[name] = doc
	return doc, nil
}

// persist writes the document atomically via temp file and rename.
// Callers must hold the document lock.
func (m *manager) persist(name string, doc *document) error {
	raw, err := sonic.MarshalIndent(doc.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize failed: %v", err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("persist failed: %v", err)
	}

	tmp, err := os.CreateTemp(m.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("persist failed: %v", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("persist failed: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist failed: %v", err)
	}

	if err := os.Rename(tmpName, m.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist failed: %v", err)
	}
	return nil
}

// names lists stores known in memory or on disk
func (m *manager) names() []string {
	seen := make(map[string]bool)

	m.mu.Lock()
	for name := range m.docs {
		seen[name] = true
	}
	m.mu.Unlock()

	if entries, err := os.ReadDir(m.dir); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if name, ok := strings.CutSuffix(e.Name(), ".json"); ok {
				seen[name] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	return names
}
