package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type osDocument struct {
	path string
}

func (d osDocument) Path() string          { return d.path }
func (d osDocument) Name() string          { return filepath.Base(d.path) }
func (d osDocument) Read() ([]byte, error) { return os.ReadFile(d.path) }

// OSFileSystem implements Provider for the OS filesystem.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) List(dir, ext string) ([]Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		docs = append(docs, osDocument{path: filepath.Join(dir, entry.Name())})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name() < docs[j].Name() })
	return docs, nil
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

var _ Provider = (*OSFileSystem)(nil)
