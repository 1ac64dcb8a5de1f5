package primary

import (
	"context"
	"fmt"

	"github.com/example/qris/internal/models"
)

// ProtocolCatalogService defines the primary port for loading protocol definitions.
type ProtocolCatalogService interface {
	// LoadProtocolDefinitions loads every protocol file found in the request
	// directories, in directory order then file name order. Deprecated
	// protocols are always dropped; experimental ones unless shown.
	LoadProtocolDefinitions(ctx context.Context, req LoadRequest) (*LoadResponse, error)

	// ProtocolDirectories returns the search order: the project directory,
	// the user's local protocol folder, then the installation-shared folder.
	// Empty entries are omitted.
	ProtocolDirectories(ctx context.Context, projectDir string) ([]string, error)
}

// LoadRequest contains parameters for loading protocol definitions.
type LoadRequest struct {
	Directories []string

	// ShowExperimental overrides the stored preference when non-nil.
	ShowExperimental *bool
}

// LoadResponse contains the loaded protocols and the files that failed to load.
type LoadResponse struct {
	Protocols []models.Protocol
	Failures  []FileError
}

// FileError records why one protocol file was excluded.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}
