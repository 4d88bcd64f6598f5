package memory

import (
	"fmt"

	"github.com/sandevgo/slackrelay/internal/config"
	"github.com/sandevgo/slackrelay/internal/core"
)

// NewLoader picks the memory source named in cfg.
func NewLoader(cfg core.MemoryConfig) (core.ContextLoader, error) {
	switch cfg.GetMemorySource() {
	case config.MemorySourceFile:
		return NewFileLoader(cfg.GetMemoryPath(), ""), nil
	case config.MemorySourceURL:
		return NewURLLoader(cfg.GetMemoryURL()), nil
	default:
		return nil, fmt.Errorf("unknown memory source: %q", cfg.GetMemorySource())
	}
}
