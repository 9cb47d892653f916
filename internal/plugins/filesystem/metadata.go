package filesystem

import (
	"context"
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// MetadataOps handles file metadata inspection
type MetadataOps struct {
	*Ops
}

// GetTools returns metadata tool definitions
func (m *MetadataOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.stat",
			Name:        "Stat",
			Description: "Get file metadata",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.mime",
			Name:        "Detect MIME Type",
			Description: "Detect MIME type from file content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.size",
			Name:        "Size",
			Description: "Get file or directory size in bytes",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Path", Required: true},
			},
			Returns: "number",
		},
	}
}

// Stat returns file metadata
func (m *MetadataOps) Stat(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	full, err := m.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	info, err := os.Stat(full)
	if err != nil {
		return Failure(fmt.Sprintf("stat failed: %v", err))
	}

	return Success(map[string]interface{}{
		"path":     path,
		"name":     info.Name(),
		"size":     info.Size(),
		"is_dir":   info.IsDir(),
		"mode":     info.Mode().String(),
		"modified": info.ModTime().Unix(),
	})
}

// Mime detects the MIME type by sniffing content
func (m *MetadataOps) Mime(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	full, err := m.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	mtype, err := mimetype.DetectFile(full)
	if err != nil {
		return Failure(fmt.Sprintf("mime detection failed: %v", err))
	}

	return Success(map[string]interface{}{
		"path":      path,
		"mime":      mtype.String(),
		"extension": mtype.Extension(),
	})
}

// Size returns the total size of a file or directory tree
func (m *MetadataOps) Size(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	path, err := types.GetString(params, "path", true)
	if err != nil {
		return Failure(err.Error())
	}

	full, err := m.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	info, err := os.Stat(full)
	if err != nil {
		return Failure(fmt.Sprintf("size failed: %v", err))
	}

	if !info.IsDir() {
		return Success(map[string]interface{}{"path": path, "size": info.Size()})
	}

	total, err := m.dirSize(full)
	if err != nil {
		return Failure(fmt.Sprintf("size failed: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "size": total})
}

func (m *MetadataOps) dirSize(root string) (int64, error) {
	var total int64
	err := walkFiles(root, func(path string, info os.FileInfo) {
		total += info.Size()
	})
	return total, err
}
