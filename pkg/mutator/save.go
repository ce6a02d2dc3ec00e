package mutator

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/goliatone/go-formfill/internal/logger"
	"github.com/goliatone/go-formfill/pkg/document"
)

// Saver writes documents to an afero filesystem.
type Saver struct {
	fs  afero.Fs
	log logger.Logger
}

// NewSaver returns a Saver over fsys, defaulting to the OS filesystem.
func NewSaver(fsys afero.Fs, log logger.Logger) *Saver {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &Saver{fs: fsys, log: log}
}

// Save creates out.Folder when missing and writes doc to out.Path,
// replacing any existing file.
func (s *Saver) Save(ctx context.Context, doc document.Document, out Output) (path string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if doc == nil {
		return "", errors.New("mutator: document is nil")
	}
	if out.Filename == "" {
		return "", errors.New("mutator: output filename is required")
	}
	if out.Folder != "" {
		if err := s.fs.MkdirAll(out.Folder, 0o755); err != nil {
			return "", fmt.Errorf("mutator: create output folder %s: %w", out.Folder, err)
		}
	}

	path = out.Path()
	fh, err := s.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("mutator: create %s: %w", path, err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("mutator: close %s: %w", path, cerr)
		}
	}()

	if _, err := doc.WriteTo(fh); err != nil {
		return "", fmt.Errorf("mutator: write %s: %w", path, err)
	}
	s.log.Info("document saved", "path", path)
	return path, nil
}
