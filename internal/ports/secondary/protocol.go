// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"

	"github.com/example/qris/internal/models"
)

var (
	// ErrNotDirectory is returned when a scan target is missing or is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrNotProtocol is returned when an XML document's root element is not Protocol.
	ErrNotProtocol = errors.New("root element is not Protocol")
)

// ProtocolSource defines the secondary port for reading protocol documents.
type ProtocolSource interface {
	// ListProtocolFiles returns the paths of the .xml files directly inside dir,
	// sorted by file name. Returns an error wrapping ErrNotDirectory when dir is
	// missing or not a directory.
	ListProtocolFiles(ctx context.Context, dir string) ([]string, error)

	// ReadProtocol opens, decodes and closes one protocol document.
	// Returns an error wrapping ErrNotProtocol for non-protocol documents.
	ReadProtocol(ctx context.Context, path string) (models.Protocol, error)
}
