package filesystem

import (
	"archive/tar"
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// ArchiveOps handles archive creation and extraction
type ArchiveOps struct {
	*Ops
}

// GetTools returns archive tool definitions
func (a *ArchiveOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.zip.create",
			Name:        "Create ZIP",
			Description: "Create a ZIP archive from a file or directory",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "output", Type: "string", Description: "Archive output path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.zip.extract",
			Name:        "Extract ZIP",
			Description: "Extract a ZIP archive",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "Archive path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.zip.list",
			Name:        "List ZIP",
			Description: "List ZIP archive contents",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "Archive path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.tar.create",
			Name:        "Create Tarball",
			Description: "Create a tar archive, optionally compressed",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "output", Type: "string", Description: "Archive output path", Required: true},
				{Name: "compression", Type: "string", Description: "gzip, zstd or none (default by extension)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.tar.extract",
			Name:        "Extract Tarball",
			Description: "Extract a tar archive, optionally compressed",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "Archive path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
				{Name: "compression", Type: "string", Description: "gzip, zstd or none (default by extension)", Required: false},
			},
			Returns: "object",
		},
	}
}

// ZIPCreate creates a ZIP archive
func (a *ArchiveOps) ZIPCreate(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	source, err := types.GetString(params, "source", true)
	if err != nil {
		return Failure(err.Error())
	}
	output, err := types.GetString(params, "output", true)
	if err != nil {
		return Failure(err.Error())
	}

	fullSource, err := a.resolve(source)
	if err != nil {
		return Failure(err.Error())
	}
	fullOutput, err := a.resolve(output)
	if err != nil {
		return Failure(err.Error())
	}

	info, err := os.Stat(fullSource)
	if err != nil {
		return Failure(fmt.Sprintf("zip creation failed: %v", err))
	}

	if err := os.MkdirAll(filepath.Dir(fullOutput), 0o755); err != nil {
		return Failure(fmt.Sprintf("zip creation failed: %v", err))
	}
	out, err := os.Create(fullOutput)
	if err != nil {
		return Failure(fmt.Sprintf("zip creation failed: %v", err))
	}
	zipWriter := zip.NewWriter(out)

	var (
		mu        sync.Mutex
		fileCount int
		totalSize int64
	)

	addFile := func(path, name string) error {
		writer, err := zipWriter.Create(name)
		if err != nil {
			return err
		}
		file, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer file.Close()

		size, err := io.Copy(writer, file)
		if err != nil {
			return err
		}
		totalSize += size
		fileCount++
		return nil
	}

	if !info.IsDir() {
		err = addFile(fullSource, filepath.Base(fullSource))
	} else {
		conf := fastwalk.Config{Follow: false}
		err = fastwalk.Walk(&conf, fullSource, func(path string, d fs.DirEntry, walkErr error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if walkErr != nil || path == fullSource {
				return nil
			}

			relPath, _ := filepath.Rel(fullSource, path)
			relPath = filepath.ToSlash(relPath)

			mu.Lock()
			defer mu.Unlock()
			if d.IsDir() {
				_, err := zipWriter.Create(relPath + "/")
				return err
			}
			return addFile(path, relPath)
		})
	}

	if err != nil {
		zipWriter.Close()
		out.Close()
		os.Remove(fullOutput)
		return Failure(fmt.Sprintf("zip creation failed: %v", err))
	}
	if err := zipWriter.Close(); err != nil {
		out.Close()
		return Failure(fmt.Sprintf("zip creation failed: %v", err))
	}
	if err := out.Close(); err != nil {
		return Failure(fmt.Sprintf("zip creation failed: %v", err))
	}

	return Success(map[string]interface{}{
		"created":    true,
		"output":     output,
		"files":      fileCount,
		"total_size": totalSize,
	})
}

// ZIPExtract extracts a ZIP archive
func (a *ArchiveOps) ZIPExtract(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	archive, err := types.GetString(params, "archive", true)
	if err != nil {
		return Failure(err.Error())
	}
	destination, err := types.GetString(params, "destination", true)
	if err != nil {
		return Failure(err.Error())
	}

	fullArchive, err := a.resolve(archive)
	if err != nil {
		return Failure(err.Error())
	}
	fullDest, err := a.resolve(destination)
	if err != nil {
		return Failure(err.Error())
	}

	reader, err := zip.OpenReader(fullArchive)
	if err != nil {
		return Failure(fmt.Sprintf("open failed: %v", err))
	}
	defer reader.Close()

	fileCount := 0
	for _, file := range reader.File {
		select {
		case <-ctx.Done():
			return Failure(fmt.Sprintf("extraction cancelled: %v", ctx.Err()))
		default:
		}

		// Prevent zip-slip attacks
		destPath := filepath.Join(fullDest, file.Name)
		if !strings.HasPrefix(destPath, filepath.Clean(fullDest)+string(os.PathSeparator)) {
			continue
		}

		if file.FileInfo().IsDir() {
			os.MkdirAll(destPath, 0o755)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			continue
		}

		srcFile, err := file.Open()
		if err != nil {
			continue
		}

		dstFile, err := os.Create(destPath)
		if err != nil {
			srcFile.Close()
			continue
		}

		_, err = io.Copy(dstFile, srcFile)
		srcFile.Close()
		dstFile.Close()

		if err == nil {
			fileCount++
		}
	}

	return Success(map[string]interface{}{
		"extracted":   true,
		"destination": destination,
		"files":       fileCount,
	})
}

// ZIPList lists ZIP archive contents
func (a *ArchiveOps) ZIPList(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	archive, err := types.GetString(params, "archive", true)
	if err != nil {
		return Failure(err.Error())
	}

	fullArchive, err := a.resolve(archive)
	if err != nil {
		return Failure(err.Error())
	}

	reader, err := zip.OpenReader(fullArchive)
	if err != nil {
		return Failure(fmt.Sprintf("open failed: %v", err))
	}
	defer reader.Close()

	entries := []map[string]interface{}{}
	for _, file := range reader.File {
		info := file.FileInfo()
		entries = append(entries, map[string]interface{}{
			"name":            file.Name,
			"size":            info.Size(),
			"compressed_size": file.CompressedSize64,
			"modified":        info.ModTime().Unix(),
			"is_dir":          info.IsDir(),
		})
	}

	return Success(map[string]interface{}{"archive": archive, "entries": entries, "count": len(entries)})
}

// TarCreate creates a tar archive with optional compression
func (a *ArchiveOps) TarCreate(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	source, err := types.GetString(params, "source", true)
	if err != nil {
		return Failure(err.Error())
	}
	output, err := types.GetString(params, "output", true)
	if err != nil {
		return Failure(err.Error())
	}

	fullSource, err := a.resolve(source)
	if err != nil {
		return Failure(err.Error())
	}
	fullOutput, err := a.resolve(output)
	if err != nil {
		return Failure(err.Error())
	}

	compression, err := compressionFor(fullOutput, params)
	if err != nil {
		return Failure(err.Error())
	}

	info, err := os.Stat(fullSource)
	if err != nil {
		return Failure(fmt.Sprintf("tar creation failed: %v", err))
	}

	if err := os.MkdirAll(filepath.Dir(fullOutput), 0o755); err != nil {
		return Failure(fmt.Sprintf("tar creation failed: %v", err))
	}
	out, err := os.Create(fullOutput)
	if err != nil {
		return Failure(fmt.Sprintf("tar creation failed: %v", err))
	}

	var compressed io.WriteCloser
	switch compression {
	case "gzip":
		compressed = gzip.NewWriter(out)
	case "zstd":
		enc, err := zstd.NewWriter(out)
		if err != nil {
			out.Close()
			return Failure(fmt.Sprintf("tar creation failed: %v", err))
		}
		compressed = enc
	default:
		compressed = nopWriteCloser{out}
	}
	tarWriter := tar.NewWriter(compressed)

	var (
		mu        sync.Mutex
		fileCount int
		totalSize int64
	)

	addEntry := func(path, name string, d fs.FileInfo) error {
		header, err := tar.FileInfoHeader(d, "")
		if err != nil {
			return err
		}
		header.Name = name
		if d.IsDir() {
			header.Name += "/"
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return err
		}
		if d.IsDir() || !d.Mode().IsRegular() {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer file.Close()

		size, err := io.Copy(tarWriter, file)
		if err != nil {
			return err
		}
		totalSize += size
		fileCount++
		return nil
	}

	if !info.IsDir() {
		err = addEntry(fullSource, filepath.Base(fullSource), info)
	} else {
		conf := fastwalk.Config{Follow: false}
		err = fastwalk.Walk(&conf, fullSource, func(path string, d fs.DirEntry, walkErr error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if walkErr != nil || path == fullSource {
				return nil
			}

			entryInfo, err := d.Info()
			if err != nil {
				return nil
			}
			relPath, _ := filepath.Rel(fullSource, path)
			relPath = filepath.ToSlash(relPath)

			mu.Lock()
			defer mu.Unlock()
			return addEntry(path, relPath, entryInfo)
		})
	}

	if err != nil {
		tarWriter.Close()
		compressed.Close()
		out.Close()
		os.Remove(fullOutput)
		return Failure(fmt.Sprintf("tar creation failed: %v", err))
	}
	if err := tarWriter.Close(); err != nil {
		compressed.Close()
		out.Close()
		return Failure(fmt.Sprintf("tar creation failed: %v", err))
	}
	if err := compressed.Close(); err != nil {
		out.Close()
		return Failure(fmt.Sprintf("tar creation failed: %v", err))
	}
	if err := out.Close(); err != nil {
		return Failure(fmt.Sprintf("tar creation failed: %v", err))
	}

	return Success(map[string]interface{}{
		"created":     true,
		"output":      output,
		"files":       fileCount,
		"total_size":  totalSize,
		"compression": compression,
	})
}

// TarExtract extracts a tar archive with optional compression
func (a *ArchiveOps) TarExtract(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	archive, err := types.GetString(params, "archive", true)
	if err != nil {
		return Failure(err.Error())
	}
	destination, err := types.GetString(params, "destination", true)
	if err != nil {
		return Failure(err.Error())
	}

	fullArchive, err := a.resolve(archive)
	if err != nil {
		return Failure(err.Error())
	}
	fullDest, err := a.resolve(destination)
	if err != nil {
		return Failure(err.Error())
	}

	compression, err := compressionFor(fullArchive, params)
	if err != nil {
		return Failure(err.Error())
	}

	in, err := os.Open(fullArchive)
	if err != nil {
		return Failure(fmt.Sprintf("open failed: %v", err))
	}
	defer in.Close()

	var decompressed io.Reader
	switch compression {
	case "gzip":
		gz, err := gzip.NewReader(in)
		if err != nil {
			return Failure(fmt.Sprintf("open failed: %v", err))
		}
		defer gz.Close()
		decompressed = gz
	case "zstd":
		dec, err := zstd.NewReader(in)
		if err != nil {
			return Failure(fmt.Sprintf("open failed: %v", err))
		}
		defer dec.Close()
		decompressed = dec
	default:
		decompressed = in
	}

	tarReader := tar.NewReader(decompressed)
	fileCount := 0

	for {
		select {
		case <-ctx.Done():
			return Failure(fmt.Sprintf("extraction cancelled: %v", ctx.Err()))
		default:
		}

		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Failure(fmt.Sprintf("extraction failed: %v", err))
		}

		// Prevent path traversal
		destPath := filepath.Join(fullDest, header.Name)
		if !strings.HasPrefix(destPath, filepath.Clean(fullDest)+string(os.PathSeparator)) {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			os.MkdirAll(destPath, 0o755)
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
				continue
			}
			dstFile, err := os.Create(destPath)
			if err != nil {
				continue
			}
			_, err = io.Copy(dstFile, tarReader)
			dstFile.Close()
			if err == nil {
				fileCount++
			}
		}
	}

	return Success(map[string]interface{}{
		"extracted":   true,
		"destination": destination,
		"files":       fileCount,
	})
}

func compressionFor(path string, params map[string]interface{}) (string, error) {
	if c, _ := types.GetString(params, "compression", false); c != "" {
		switch c {
		case "gzip", "zstd", "none":
			return c, nil
		default:
			return "", fmt.Errorf("unsupported compression: %s", c)
		}
	}
	switch filepath.Ext(path) {
	case ".gz", ".tgz":
		return "gzip", nil
	case ".zst", ".zstd":
		return "zstd", nil
	default:
		return "none", nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
