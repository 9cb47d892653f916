// Package filesystem provides file and directory operations for the
// notes data directory.
//
// This package is organized into specialized modules:
//   - basic: Core file operations (read, write, append, create, delete)
//   - directory: Directory operations (mkdir, list, copy, move, rename)
//   - metadata: File metadata, MIME detection and sizing
//   - search: File search (substring find, glob patterns)
//   - formats: Structured formats (JSON, YAML, TOML, CSV)
//   - archives: Archive operations (ZIP, TAR with compression)
//
// All paths are interpreted relative to the configured data directory
// and operations refuse paths that escape it. Results are returned as
// structured maps inside the standard invocation envelope.
package filesystem
