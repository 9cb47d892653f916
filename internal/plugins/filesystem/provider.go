package filesystem

import (
	"context"
	"fmt"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// Provider composes the filesystem operation groups
type Provider struct {
	basic     *BasicOps
	directory *DirectoryOps
	metadata  *MetadataOps
	search    *SearchOps
	formats   *FormatOps
	archives  *ArchiveOps
}

// NewProvider creates a filesystem provider scoped to root
func NewProvider(root string) *Provider {
	ops := &Ops{Root: root}
	return &Provider{
		basic:     &BasicOps{Ops: ops},
		directory: &DirectoryOps{Ops: ops},
		metadata:  &MetadataOps{Ops: ops},
		search:    &SearchOps{Ops: ops},
		formats:   &FormatOps{Ops: ops},
		archives:  &ArchiveOps{Ops: ops},
	}
}

// Definition returns plugin metadata with all tools
func (p *Provider) Definition() types.Plugin {
	tools := []types.Tool{}
	tools = append(tools, p.basic.GetTools()...)
	tools = append(tools, p.directory.GetTools()...)
	tools = append(tools, p.metadata.GetTools()...)
	tools = append(tools, p.search.GetTools()...)
	tools = append(tools, p.formats.GetTools()...)
	tools = append(tools, p.archives.GetTools()...)

	return types.Plugin{
		ID:          "filesystem",
		Name:        "Filesystem",
		Description: "File and directory operations scoped to the notes data directory",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"read",
			"write",
			"search",
			"formats",
			"archives",
		},
		Tools: tools,
	}
}

// Execute runs a filesystem operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	switch toolID {
	// Basic operations
	case "filesystem.read":
		return p.basic.Read(ctx, params, invCtx)
	case "filesystem.write":
		return p.basic.Write(ctx, params, invCtx)
	case "filesystem.read_bytes":
		return p.basic.ReadBytes(ctx, params, invCtx)
	case "filesystem.write_bytes":
		return p.basic.WriteBytes(ctx, params, invCtx)
	case "filesystem.append":
		return p.basic.Append(ctx, params, invCtx)
	case "filesystem.create":
		return p.basic.Create(ctx, params, invCtx)
	case "filesystem.delete":
		return p.basic.Delete(ctx, params, invCtx)
	case "filesystem.exists":
		return p.basic.Exists(ctx, params, invCtx)

	// Directory operations
	case "filesystem.mkdir":
		return p.directory.Mkdir(ctx, params, invCtx)
	case "filesystem.list":
		return p.directory.List(ctx, params, invCtx)
	case "filesystem.copy":
		return p.directory.Copy(ctx, params, invCtx)
	case "filesystem.move":
		return p.directory.Move(ctx, params, invCtx)
	case "filesystem.rename":
		return p.directory.Rename(ctx, params, invCtx)

	// Metadata
	case "filesystem.stat":
		return p.metadata.Stat(ctx, params, invCtx)
	case "filesystem.mime":
		return p.metadata.Mime(ctx, params, invCtx)
	case "filesystem.size":
		return p.metadata.Size(ctx, params, invCtx)

	// Search
	case "filesystem.find":
		return p.search.Find(ctx, params, invCtx)
	case "filesystem.glob":
		return p.search.Glob(ctx, params, invCtx)

	// Structured formats
	case "filesystem.json.read":
		return p.formats.JSONRead(ctx, params, invCtx)
	case "filesystem.json.write":
		return p.formats.JSONWrite(ctx, params, invCtx)
	case "filesystem.yaml.read":
		return p.formats.YAMLRead(ctx, params, invCtx)
	case "filesystem.yaml.write":
		return p.formats.YAMLWrite(ctx, params, invCtx)
	case "filesystem.toml.read":
		return p.formats.TOMLRead(ctx, params, invCtx)
	case "filesystem.toml.write":
		return p.formats.TOMLWrite(ctx, params, invCtx)
	case "filesystem.csv.read":
		return p.formats.CSVRead(ctx, params, invCtx)
	case "filesystem.csv.write":
		return p.formats.CSVWrite(ctx, params, invCtx)

	// Archives
	case "filesystem.zip.create":
		return p.archives.ZIPCreate(ctx, params, invCtx)
	case "filesystem.zip.extract":
		return p.archives.ZIPExtract(ctx, params, invCtx)
	case "filesystem.zip.list":
		return p.archives.ZIPList(ctx, params, invCtx)
	case "filesystem.tar.create":
		return p.archives.TarCreate(ctx, params, invCtx)
	case "filesystem.tar.extract":
		return p.archives.TarExtract(ctx, params, invCtx)

	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}
