package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/example/qris/internal/core/protocol"
	"github.com/example/qris/internal/ports/primary"
	"github.com/example/qris/internal/ports/secondary"
)

// ProjectProtocolDir is the protocol folder inside a project directory.
const ProjectProtocolDir = "protocols"

// ErrInvalidDefinition marks a protocol file excluded by definition lint.
var ErrInvalidDefinition = errors.New("invalid protocol definition")

// ProtocolCatalogServiceImpl implements the ProtocolCatalogService interface.
type ProtocolCatalogServiceImpl struct {
	source       secondary.ProtocolSource
	settings     secondary.SettingsStore
	sharedFolder string
	logger       *slog.Logger
}

// NewProtocolCatalogService creates a new ProtocolCatalogService with injected dependencies.
// settings may be nil, in which case preference defaults apply.
func NewProtocolCatalogService(source secondary.ProtocolSource, settings secondary.SettingsStore, sharedFolder string, logger *slog.Logger) *ProtocolCatalogServiceImpl {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ProtocolCatalogServiceImpl{
		source:       source,
		settings:     settings,
		sharedFolder: sharedFolder,
		logger:       logger,
	}
}

// LoadProtocolDefinitions loads every protocol file in the request directories.
// A file that cannot be read or fails lint is excluded and reported in
// Failures; the other files still load.
func (s *ProtocolCatalogServiceImpl) LoadProtocolDefinitions(ctx context.Context, req primary.LoadRequest) (*primary.LoadResponse, error) {
	show, err := s.showExperimental(ctx, req.ShowExperimental)
	if err != nil {
		return nil, err
	}

	resp := &primary.LoadResponse{}
	loadedFrom := make(map[string]string)

	for _, dir := range req.Directories {
		if dir == "" {
			continue
		}
		paths, err := s.source.ListProtocolFiles(ctx, dir)
		if errors.Is(err, secondary.ErrNotDirectory) {
			s.logger.Debug("skipping protocol directory", "dir", dir)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan protocol directory: %w", err)
		}
		s.logger.Debug("scanning protocol directory", "dir", dir, "files", len(paths))

		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			p, err := s.source.ReadProtocol(ctx, path)
			if errors.Is(err, secondary.ErrNotProtocol) {
				s.logger.Debug("skipping non-protocol document", "path", path)
				continue
			}
			if err != nil {
				s.logger.Warn("failed to load protocol", "path", path, "error", err)
				resp.Failures = append(resp.Failures, primary.FileError{Path: path, Err: err})
				continue
			}

			if issues := protocol.ValidateDefinition(p); len(issues) > 0 {
				err := fmt.Errorf("%w: %s", ErrInvalidDefinition, strings.Join(issues, "; "))
				s.logger.Warn("failed to load protocol", "path", path, "error", err)
				resp.Failures = append(resp.Failures, primary.FileError{Path: path, Err: err})
				continue
			}

			if p.IsDeprecated() {
				s.logger.Debug("dropping deprecated protocol", "key", p.Key(), "path", path)
				continue
			}
			if p.IsExperimental() && !show {
				s.logger.Debug("hiding experimental protocol", "key", p.Key(), "path", path)
				continue
			}

			if prev, ok := loadedFrom[p.Key()]; ok {
				s.logger.Warn("duplicate protocol key", "key", p.Key(), "path", path, "first", prev)
			} else {
				loadedFrom[p.Key()] = path
			}

			s.logger.Debug("loaded protocol", "key", p.Key(), "path", path)
			resp.Protocols = append(resp.Protocols, p)
		}
	}

	return resp, nil
}

// ProtocolDirectories returns the search order for a project.
func (s *ProtocolCatalogServiceImpl) ProtocolDirectories(ctx context.Context, projectDir string) ([]string, error) {
	local, err := stringPreference(ctx, s.settings, secondary.SettingLocalProtocolFolder)
	if err != nil {
		return nil, err
	}

	var dirs []string
	if projectDir != "" {
		dirs = append(dirs, filepath.Join(projectDir, ProjectProtocolDir))
	}
	for _, dir := range []string{local, s.sharedFolder} {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

func (s *ProtocolCatalogServiceImpl) showExperimental(ctx context.Context, override *bool) (bool, error) {
	if override != nil {
		return *override, nil
	}
	return boolPreference(ctx, s.settings, secondary.SettingShowExperimentalProtocols, false)
}

// Ensure ProtocolCatalogServiceImpl implements the interface
var _ primary.ProtocolCatalogService = (*ProtocolCatalogServiceImpl)(nil)
