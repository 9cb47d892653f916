package filesystem

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// Entry describes a directory listing entry
type Entry struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	IsDir    bool      `json:"is_dir"`
	Modified time.Time `json:"modified"`
}

// Ops holds the shared state for all filesystem operations. Every path is
// resolved inside Root; nothing outside the data directory is reachable.
type Ops struct {
	Root string
}

// resolve maps a webview-supplied path onto the data directory. Relative
// paths join the root; absolute paths must already lie inside it.
func (ops *Ops) resolve(path string) (string, error) {
	if path == "" {
		return "", errors.New("path cannot be empty")
	}

	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(ops.Root, full)
	}
	full = filepath.Clean(full)

	if full != ops.Root && !strings.HasPrefix(full, ops.Root+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes data directory: %s", path)
	}
	return full, nil
}

// rel converts a resolved path back to a root-relative one for results
func (ops *Ops) rel(full string) string {
	if r, err := filepath.Rel(ops.Root, full); err == nil {
		return r
	}
	return full
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
