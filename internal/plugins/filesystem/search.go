package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

const defaultSearchLimit = 1000

// SearchOps handles file search operations
type SearchOps struct {
	*Ops
}

// GetTools returns search tool definitions
func (s *SearchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.find",
			Name:        "Find Files",
			Description: "Find files by name substring",
			Parameters: []types.Parameter{
				{Name: "query", Type: "string", Description: "Name substring, case-insensitive", Required: true},
				{Name: "path", Type: "string", Description: "Directory to search from", Required: false},
				{Name: "limit", Type: "number", Description: "Maximum results", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.glob",
			Name:        "Glob",
			Description: "Match files against a glob pattern, ** supported",
			Parameters: []types.Parameter{
				{Name: "pattern", Type: "string", Description: "Glob pattern relative to the data directory", Required: true},
			},
			Returns: "array",
		},
	}
}

// Find searches for files whose name contains the query
func (s *SearchOps) Find(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	query, err := types.GetString(params, "query", true)
	if err != nil {
		return Failure(err.Error())
	}

	startPath, _ := types.GetString(params, "path", false)

	limitParam, err := types.GetNumber(params, "limit", false)
	if err != nil {
		return Failure(err.Error())
	}
	limit := int(limitParam)
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	root := s.Root
	if startPath != "" {
		root, err = s.resolve(startPath)
		if err != nil {
			return Failure(err.Error())
		}
	}

	needle := strings.ToLower(query)

	var mu sync.Mutex
	matches := []string{}

	conf := fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !strings.Contains(strings.ToLower(d.Name()), needle) {
			return nil
		}

		mu.Lock()
		matches = append(matches, s.rel(path))
		mu.Unlock()
		return nil
	})
	if walkErr != nil {
		if ctx.Err() != nil {
			return Failure(fmt.Sprintf("search cancelled: %v", ctx.Err()))
		}
		return Failure(fmt.Sprintf("search failed: %v", walkErr))
	}

	if len(matches) > limit {
		matches = matches[:limit]
	}

	return Success(map[string]interface{}{
		"query":   query,
		"matches": matches,
		"count":   len(matches),
	})
}

// Glob matches files against a doublestar pattern
func (s *SearchOps) Glob(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	pattern, err := types.GetString(params, "pattern", true)
	if err != nil {
		return Failure(err.Error())
	}

	full := filepath.Join(s.Root, filepath.FromSlash(pattern))
	paths, err := doublestar.FilepathGlob(full)
	if err != nil {
		return Failure(fmt.Sprintf("invalid pattern: %v", err))
	}

	matches := make([]string, 0, len(paths))
	for _, p := range paths {
		matches = append(matches, s.rel(p))
	}

	return Success(map[string]interface{}{
		"pattern": pattern,
		"matches": matches,
		"count":   len(matches),
	})
}

// walkFiles walks the tree under root, calling fn for every regular file.
// The walk itself runs in parallel, callbacks are serialized.
func walkFiles(root string, fn func(path string, info os.FileInfo)) error {
	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}
	return fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		mu.Lock()
		fn(path, info)
		mu.Unlock()
		return nil
	})
}
