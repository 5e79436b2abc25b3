package metadata

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vvka-141/nftsql/internal/files/filesystem"
	"github.com/vvka-141/nftsql/internal/logging"
	"github.com/vvka-141/nftsql/pkg/nftsql"
)

// DirectorySource reads metadata documents from a local directory.
// Records are returned sorted by id; documents with equal ids keep file name order.
type DirectorySource struct {
	fs     filesystem.Provider
	dir    string
	ext    string
	opts   DecodeOptions
	logger nftsql.Logger
}

// NewDirectorySource creates a DirectorySource from cfg.
// A nil fsys reads the OS filesystem and a nil logger discards messages.
func NewDirectorySource(cfg nftsql.SourceConfig, fsys filesystem.Provider, logger nftsql.Logger) (*DirectorySource, error) {
	if cfg.Kind == "" {
		cfg.Kind = nftsql.SourceDirectory
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ext := cfg.Extension
	if ext == "" {
		ext = nftsql.DefaultExtension
	}
	if fsys == nil {
		fsys = filesystem.NewOSFileSystem()
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &DirectorySource{
		fs:     fsys,
		dir:    cfg.Directory,
		ext:    ext,
		opts:   DecodeOptions{ImageCID: cfg.ImageCID, NormalizeGatewayURLs: cfg.NormalizeGatewayURLs},
		logger: logger,
	}, nil
}

// Metadata implements nftsql.MetadataSource.
func (s *DirectorySource) Metadata(ctx context.Context) ([]nftsql.MetadataRecord, error) {
	docs, err := s.fs.List(s.dir, s.ext)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata in %s: %w: %w", s.dir, nftsql.ErrMetadataSource, err)
	}
	s.logger.Verbose("Found %d metadata document(s) in %s", len(docs), s.dir)

	records := make([]nftsql.MetadataRecord, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := doc.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w: %w", doc.Path(), nftsql.ErrMetadataSource, err)
		}
		if len(content) > nftsql.MaxMetadataDocumentSize {
			return nil, fmt.Errorf("%s exceeds %d bytes: %w", doc.Path(), nftsql.MaxMetadataDocumentSize, nftsql.ErrMetadataSource)
		}

		opts := s.opts
		if id, ok := idFromName(doc.Name(), s.ext); ok {
			opts = opts.WithFallbackID(id)
		}

		record, err := Decode(content, doc.Path(), opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", nftsql.ErrMetadataSource, err)
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// idFromName parses a token id from a file name such as "12.json".
func idFromName(name, ext string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSuffix(name, ext), 10, 64)
	return id, err == nil
}

var _ nftsql.MetadataSource = (*DirectorySource)(nil)
