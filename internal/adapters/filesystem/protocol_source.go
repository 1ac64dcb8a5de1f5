// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/qris/internal/adapters/protocolxml"
	"github.com/example/qris/internal/models"
	"github.com/example/qris/internal/ports/secondary"
)

// ProtocolExt is the file extension of protocol documents.
const ProtocolExt = ".xml"

// ProtocolSource implements secondary.ProtocolSource over local directories.
// Directories are scanned one level deep.
type ProtocolSource struct{}

// NewProtocolSource creates a new filesystem protocol source.
func NewProtocolSource() *ProtocolSource {
	return &ProtocolSource{}
}

// ListProtocolFiles returns the .xml files directly inside dir, sorted by name.
func (s *ProtocolSource) ListProtocolFiles(ctx context.Context, dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", secondary.ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ProtocolExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadProtocol decodes the protocol document at path.
// The file is closed before returning on every path.
func (s *ProtocolSource) ReadProtocol(ctx context.Context, path string) (models.Protocol, error) {
	if err := ctx.Err(); err != nil {
		return models.Protocol{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return models.Protocol{}, fmt.Errorf("failed to open protocol file: %w", err)
	}
	defer f.Close()

	p, err := protocolxml.Decode(f)
	if err != nil {
		return models.Protocol{}, fmt.Errorf("failed to parse protocol %s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// Ensure ProtocolSource implements the interface
var _ secondary.ProtocolSource = (*ProtocolSource)(nil)
