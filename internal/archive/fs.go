// Package archive saves raw fetched pages to disk so extraction
// regressions can be replayed against the original markup.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileSystemSink writes one HTML snapshot per date key. Writes are
// best-effort; the caller swallows failures.
type FileSystemSink struct {
	root     string
	maxBytes int64
	logger   *zap.Logger
}

const defaultMaxBytes = 5 << 20

// NewFileSystemSink returns a sink rooted at dir.
func NewFileSystemSink(root string, maxBytes int64, logger *zap.Logger) (*FileSystemSink, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create archive dir %s: %w", root, err)
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &FileSystemSink{
		root:     root,
		maxBytes: maxBytes,
		logger:   logger,
	}, nil
}

// Save writes the page snapshot for a date key and returns the path.
func (s *FileSystemSink) Save(ctx context.Context, key string, body []byte) (string, error) {
	if len(body) == 0 {
		return "", fmt.Errorf("empty page body")
	}
	if int64(len(body)) > s.maxBytes {
		return "", fmt.Errorf("page size %d exceeds max %d", len(body), s.maxBytes)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context canceled: %w", err)
	}
	target := filepath.Join(s.root, key+".html")
	if err := os.WriteFile(target, body, 0o600); err != nil {
		return "", fmt.Errorf("writing snapshot to %s: %w", target, err)
	}
	s.logger.Debug("archived page snapshot",
		zap.String("key", key),
		zap.String("path", target),
	)
	return target, nil
}
