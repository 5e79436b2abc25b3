package metadata

import (
	"fmt"

	"github.com/vvka-141/nftsql/internal/files/filesystem"
	"github.com/vvka-141/nftsql/pkg/nftsql"
)

// NewSource builds the MetadataSource selected by cfg.Kind.
func NewSource(cfg nftsql.SourceConfig, logger nftsql.Logger) (nftsql.MetadataSource, error) {
	switch cfg.Kind {
	case nftsql.SourceDirectory:
		return NewDirectorySource(cfg, filesystem.NewOSFileSystem(), logger)
	case nftsql.SourceGateway:
		return NewGatewaySource(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown source kind %q (expected directory or gateway): %w", cfg.Kind, nftsql.ErrInvalidConfig)
	}
}
