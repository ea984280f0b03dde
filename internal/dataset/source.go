package dataset

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"cobible/internal/domain"
	"cobible/internal/logger"

	"go.uber.org/zap"
)

//go:embed data/*.csv
var bundled embed.FS

const fileExt = ".csv"

// FileSource reads datasets from <Dir>/<name>.csv.
type FileSource struct {
	Dir string
}

// NewFileSource creates a source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (s *FileSource) Read(_ context.Context, name string) (string, error) {
	b, err := os.ReadFile(filepath.Join(s.Dir, name+fileExt))
	if err != nil {
		return "", fmt.Errorf("read dataset %q: %w", name, err)
	}
	return string(b), nil
}

// EmbeddedSource serves the datasets bundled into the binary.
type EmbeddedSource struct{}

// NewEmbeddedSource creates a source over the bundled datasets.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

func (s *EmbeddedSource) Read(_ context.Context, name string) (string, error) {
	b, err := bundled.ReadFile("data/" + name + fileExt)
	if err != nil {
		return "", fmt.Errorf("read bundled dataset %q: %w", name, err)
	}
	return string(b), nil
}

// ReadOrEmpty reads a dataset and degrades a missing or unreadable resource to
// empty content.
func ReadOrEmpty(ctx context.Context, src domain.ContentSource, name string) string {
	raw, err := src.Read(ctx, name)
	if err != nil {
		logger.Get().Warn("Dataset unavailable, continuing with empty content",
			zap.String("dataset", name),
			zap.Error(err))
		return ""
	}
	return raw
}
