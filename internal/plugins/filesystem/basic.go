package filesystem

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// BasicOps handles core file operations
type BasicOps struct {
	*Ops
}

// GetTools returns basic operation tool definitions
func (b *BasicOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.read",
			Name:        "Read File",
			Description: "Read file contents as text",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.write",
			Name:        "Write File",
			Description: "Write text to file, creating parent directories",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "content", Type: "string", Description: "Text content", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.read_bytes",
			Name:        "Read Binary",
			Description: "Read file contents as base64",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.write_bytes",
			Name:        "Write Binary",
			Description: "Write base64 data to file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "string", Description: "Base64 data", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.append",
			Name:        "Append File",
			Description: "Append text to file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "content", Type: "string", Description: "Text content", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.create",
			Name:        "Create File",
			Description: "Create an empty file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.delete",
			Name:        "Delete",
			Description: "Delete file or directory (recursive)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Path to delete", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.exists",
			Name:        "Exists",
			Description: "Check whether a path exists",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Path to check", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// Read reads a file as text
func (b *BasicOps) Read(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	full, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "content": string(data), "size": len(data)})
}

// Write writes text to a file
func (b *BasicOps) Write(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	content, ok := params["content"].(string)
	if !ok {
		return Failure("content parameter required")
	}

	full, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}

	return Success(map[string]interface{}{"written": true, "path": path, "size": len(content)})
}

// ReadBytes reads a file as base64
func (b *BasicOps) ReadBytes(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	full, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}

	return Success(map[string]interface{}{
		"path": path,
		"data": base64.StdEncoding.EncodeToString(data),
		"size": len(data),
	})
}

// WriteBytes writes base64 data to a file
func (b *BasicOps) WriteBytes(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	encoded, err := types.GetString(params, "data", true)
	if err != nil {
		return Failure(err.Error())
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Failure(fmt.Sprintf("invalid base64 data: %v", err))
	}

	full, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}

	return Success(map[string]interface{}{"written": true, "path": path, "size": len(data)})
}

// Append appends text to a file
func (b *BasicOps) Append(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	content, ok := params["content"].(string)
	if !ok {
		return Failure("content parameter required")
	}

	full, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	f, err := os.OpenFile(full, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Failure(fmt.Sprintf("append failed: %v", err))
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return Failure(fmt.Sprintf("append failed: %v", err))
	}

	return Success(map[string]interface{}{"appended": true, "path": path, "size": len(content)})
}

// Create creates an empty file
func (b *BasicOps) Create(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	full, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Failure(fmt.Sprintf("create failed: %v", err))
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Failure(fmt.Sprintf("create failed: %v", err))
	}
	f.Close()

	return Success(map[string]interface{}{"created": true, "path": path})
}

// Delete removes a file or directory
func (b *BasicOps) Delete(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	full, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}
	if full == b.Root {
		return Failure("cannot delete the data directory itself")
	}

	if err := os.RemoveAll(full); err != nil {
		return Failure(fmt.Sprintf("delete failed: %v", err))
	}

	return Success(map[string]interface{}{"deleted": true, "path": path})
}

// Exists checks whether a path exists
func (b *BasicOps) Exists(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	full, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	info, statErr := os.Stat(full)
	exists := statErr == nil

	data := map[string]interface{}{"path": path, "exists": exists}
	if exists {
		data["is_dir"] = info.IsDir()
	}
	return Success(data)
}
