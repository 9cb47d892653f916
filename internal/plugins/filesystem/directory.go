package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// DirectoryOps handles directory operations and file manipulation
type DirectoryOps struct {
	*Ops
}

// GetTools returns directory operation tool definitions
func (d *DirectoryOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.mkdir",
			Name:        "Create Directory",
			Description: "Create directory including parents",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.list",
			Name:        "List Directory",
			Description: "List directory entries",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.copy",
			Name:        "Copy File",
			Description: "Copy a file",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.move",
			Name:        "Move",
			Description: "Move file or directory",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.rename",
			Name:        "Rename",
			Description: "Rename file or directory in place",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Current path", Required: true},
				{Name: "new_name", Type: "string", Description: "New name", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// Mkdir creates a directory tree
func (d *DirectoryOps) Mkdir(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	full, err := d.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	if err := os.MkdirAll(full, 0o755); err != nil {
		return Failure(fmt.Sprintf("mkdir failed: %v", err))
	}

	return Success(map[string]interface{}{"created": true, "path": path})
}

// List lists directory entries
func (d *DirectoryOps) List(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	full, err := d.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	dirEntries, err := os.ReadDir(full)
	if err != nil {
		return Failure(fmt.Sprintf("list failed: %v", err))
	}

	entries := []map[string]interface{}{}
	for _, de := range dirEntries {
		entry := map[string]interface{}{
			"name":   de.Name(),
			"path":   d.rel(filepath.Join(full, de.Name())),
			"is_dir": de.IsDir(),
		}
		if info, err := de.Info(); err == nil {
			entry["size"] = info.Size()
			entry["modified"] = info.ModTime().Unix()
		}
		entries = append(entries, entry)
	}

	return Success(map[string]interface{}{"path": path, "entries": entries, "count": len(entries)})
}

// Copy copies a single file
func (d *DirectoryOps) Copy(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	source, err := types.GetString(params, "source", true)
	if err != nil {
		return Failure(err.Error())
	}
	destination, err := types.GetString(params, "destination", true)
	if err != nil {
		return Failure(err.Error())
	}

	src, err := d.resolve(source)
	if err != nil {
		return Failure(err.Error())
	}
	dst, err := d.resolve(destination)
	if err != nil {
		return Failure(err.Error())
	}

	in, err := os.Open(src)
	if err != nil {
		return Failure(fmt.Sprintf("copy failed: %v", err))
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return Failure(fmt.Sprintf("copy failed: %v", err))
	}
	if info.IsDir() {
		return Failure("copy supports files only, use move for directories")
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return Failure(fmt.Sprintf("copy failed: %v", err))
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return Failure(fmt.Sprintf("copy failed: %v", err))
	}
	defer out.Close()

	written, err := io.Copy(out, in)
	if err != nil {
		return Failure(fmt.Sprintf("copy failed: %v", err))
	}

	return Success(map[string]interface{}{
		"copied":      true,
		"source":      source,
		"destination": destination,
		"size":        written,
	})
}

// Move moves a file or directory
func (d *DirectoryOps) Move(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	source, err := types.GetString(params, "source", true)
	if err != nil {
		return Failure(err.Error())
	}
	destination, err := types.GetString(params, "destination", true)
	if err != nil {
		return Failure(err.Error())
	}

	src, err := d.resolve(source)
	if err != nil {
		return Failure(err.Error())
	}
	dst, err := d.resolve(destination)
	if err != nil {
		return Failure(err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return Failure(fmt.Sprintf("move failed: %v", err))
	}
	if err := os.Rename(src, dst); err != nil {
		return Failure(fmt.Sprintf("move failed: %v", err))
	}

	return Success(map[string]interface{}{"moved": true, "source": source, "destination": destination})
}

// Rename renames in place
func (d *DirectoryOps) Rename(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}
	newName, err := types.GetString(params, "new_name", true)
	if err != nil {
		return Failure(err.Error())
	}
	if newName != filepath.Base(newName) {
		return Failure("new_name must be a bare name, not a path")
	}

	full, err := d.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	dst := filepath.Join(filepath.Dir(full), newName)
	if err := os.Rename(full, dst); err != nil {
		return Failure(fmt.Sprintf("rename failed: %v", err))
	}

	return Success(map[string]interface{}{"renamed": true, "path": d.rel(dst)})
}
