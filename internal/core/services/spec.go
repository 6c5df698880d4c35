package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driven"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driving"
	"github.com/custodia-labs/pokeelt/internal/logger"
)

// Ensure SpecLoader implements the interface.
var _ driving.SpecLoader = (*SpecLoader)(nil)

// SpecLoader keeps a local copy of the API specification document and
// parses it. The cached file is never invalidated.
type SpecLoader struct {
	downloader driven.SpecDownloader
	parser     driven.SpecParser
}

// NewSpecLoader creates a new spec loader.
func NewSpecLoader(downloader driven.SpecDownloader, parser driven.SpecParser) *SpecLoader {
	return &SpecLoader{
		downloader: downloader,
		parser:     parser,
	}
}

// Load returns the parsed document cached at localPath, downloading it from
// remoteURL first if no file exists there. With an empty localPath the
// document is downloaded and parsed without being cached.
func (l *SpecLoader) Load(ctx context.Context, remoteURL, localPath string) (*domain.APISpec, error) {
	if remoteURL == "" && localPath == "" {
		return nil, fmt.Errorf("%w: a remote spec URL or a local spec path is required", domain.ErrConfiguration)
	}

	if localPath == "" {
		data, err := l.downloader.DownloadSpec(ctx, remoteURL)
		if err != nil {
			return nil, fmt.Errorf("download spec: %w", err)
		}
		return l.parser.Parse(data)
	}

	if err := l.ensureCached(ctx, remoteURL, localPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}

	spec, err := l.parser.Parse(data)
	if err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) && parseErr.Input == "" {
			parseErr.Input = localPath
		}
		return nil, err
	}
	return spec, nil
}

// ensureCached downloads the document to localPath unless a file is already there.
func (l *SpecLoader) ensureCached(ctx context.Context, remoteURL, localPath string) error {
	info, err := os.Stat(localPath)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("%w: spec path %s is a directory", domain.ErrConfiguration, localPath)
		}
		logger.Debug("Using cached API spec at %s", localPath)
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat spec: %w", err)
	}

	if remoteURL == "" {
		return fmt.Errorf("%w: no spec at %s and no remote spec URL", domain.ErrConfiguration, localPath)
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("creating spec directory: %w", err)
	}

	logger.Info("Downloading API spec from %s", remoteURL)
	data, err := l.downloader.DownloadSpec(ctx, remoteURL)
	if err != nil {
		return fmt.Errorf("download spec: %w", err)
	}

	if err := os.WriteFile(localPath, data, 0o644); err != nil {
		return fmt.Errorf("write spec: %w", err)
	}
	return nil
}
