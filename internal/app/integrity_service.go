package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/example/qris/internal/core/protocol"
	"github.com/example/qris/internal/models"
	"github.com/example/qris/internal/ports/primary"
	"github.com/example/qris/internal/ports/secondary"
)

// IntegrityServiceImpl implements the IntegrityService interface.
type IntegrityServiceImpl struct {
	source secondary.ProtocolSource
	logger *slog.Logger
}

// NewIntegrityService creates a new IntegrityService with injected dependencies.
func NewIntegrityService(source secondary.ProtocolSource, logger *slog.Logger) *IntegrityServiceImpl {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &IntegrityServiceImpl{source: source, logger: logger}
}

// CheckIntegrity pairs files by name and checks every pair.
// Files whose root is not Protocol are skipped without a finding.
func (s *IntegrityServiceImpl) CheckIntegrity(ctx context.Context, req primary.CheckRequest) (*primary.CheckResponse, error) {
	newPaths, err := s.source.ListProtocolFiles(ctx, req.NewDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list new protocols: %w", err)
	}
	oldPaths, err := s.source.ListProtocolFiles(ctx, req.OldDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list previous protocols: %w", err)
	}

	oldByName := make(map[string]string, len(oldPaths))
	for _, p := range oldPaths {
		oldByName[filepath.Base(p)] = p
	}

	opts := protocol.CompareOptions{DeepCompare: req.DeepCompare}
	resp := &primary.CheckResponse{}

	for _, newPath := range newPaths {
		name := filepath.Base(newPath)
		oldPath, ok := oldByName[name]
		if !ok {
			resp.Skipped = append(resp.Skipped, name)
			continue
		}

		after, ok, err := s.read(ctx, newPath)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		before, ok, err := s.read(ctx, oldPath)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		findings := protocol.Check(before, after, opts)
		s.logger.Debug("checked protocol file", "file", name, "findings", len(findings))
		resp.Findings = append(resp.Findings, findings...)
	}

	return resp, nil
}

// read loads one paired file. ok is false for non-protocol documents.
func (s *IntegrityServiceImpl) read(ctx context.Context, path string) (models.Protocol, bool, error) {
	p, err := s.source.ReadProtocol(ctx, path)
	if errors.Is(err, secondary.ErrNotProtocol) {
		s.logger.Debug("skipping non-protocol document", "path", path)
		return models.Protocol{}, false, nil
	}
	if err != nil {
		return models.Protocol{}, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p, true, nil
}

// LintDirectory validates the definition of every protocol file in dir.
// Status filtering does not apply: deprecated and experimental files are linted too.
func (s *IntegrityServiceImpl) LintDirectory(ctx context.Context, dir string) (*primary.LintResponse, error) {
	paths, err := s.source.ListProtocolFiles(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list protocols: %w", err)
	}

	resp := &primary.LintResponse{}
	for _, path := range paths {
		p, ok, err := s.read(ctx, path)
		if err != nil {
			resp.Failures = append(resp.Failures, primary.FileError{Path: path, Err: err})
			continue
		}
		if !ok {
			continue
		}
		resp.Files = append(resp.Files, primary.LintResult{
			Path:   path,
			Key:    p.Key(),
			Issues: protocol.ValidateDefinition(p),
		})
	}
	return resp, nil
}

// Ensure IntegrityServiceImpl implements the interface
var _ primary.IntegrityService = (*IntegrityServiceImpl)(nil)
