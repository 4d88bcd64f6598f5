package memory

import (
	"context"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/sandevgo/slackrelay/pkg/log"
)

// FileLoader re-reads a local memory file on every call, so edits are picked
// up without a restart.
type FileLoader struct {
	path    string
	baseDir string
}

// NewFileLoader resolves relative paths against baseDir, or the working
// directory when baseDir is empty.
func NewFileLoader(path, baseDir string) *FileLoader {
	return &FileLoader{path: path, baseDir: baseDir}
}

func (l *FileLoader) Source() string {
	return l.path
}

func (l *FileLoader) resolvePath() string {
	if filepath.IsAbs(l.path) || l.baseDir == "" {
		return l.path
	}
	return filepath.Join(l.baseDir, l.path)
}

// Load returns "" when the file is missing or unreadable.
func (l *FileLoader) Load(ctx context.Context) string {
	path := l.resolvePath()
	content, err := os.ReadFile(path)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("path", path).Msg("failed to read memory file")
		return ""
	}
	if !utf8.Valid(content) {
		log.FromCtx(ctx).Warn().Str("path", path).Msg("memory file is not valid UTF-8")
		return ""
	}
	return string(content)
}
