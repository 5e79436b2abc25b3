package filesystem

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

type memoryDocument struct {
	path    string
	content []byte
}

func (d *memoryDocument) Path() string { return d.path }
func (d *memoryDocument) Name() string { return path.Base(d.path) }

func (d *memoryDocument) Read() ([]byte, error) {
	return d.content, nil
}

// MemoryFileSystem implements Provider in memory for tests.
// Paths are normalized to forward slashes and resolved against root.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	root  string
	files map[string]*memoryDocument
}

// NewMemoryFileSystem creates an empty in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	return &MemoryFileSystem{
		root:  path.Clean(filepath.ToSlash(root)),
		files: make(map[string]*memoryDocument),
	}
}

// AddFile adds or replaces a file.
func (mfs *MemoryFileSystem) AddFile(filePath, content string) {
	abs := mfs.resolve(filePath)
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[abs] = &memoryDocument{path: abs, content: []byte(content)}
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) List(dir, ext string) ([]Document, error) {
	abs := mfs.resolve(dir)
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	if _, isFile := mfs.files[abs]; isFile {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	var docs []Document
	found := false
	for p, doc := range mfs.files {
		if !strings.HasPrefix(p, abs+"/") {
			continue
		}
		found = true
		if path.Dir(p) != abs || !strings.HasSuffix(p, ext) {
			continue
		}
		docs = append(docs, doc)
	}
	if !found {
		return nil, fmt.Errorf("directory not found: %s", dir)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name() < docs[j].Name() })
	return docs, nil
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	abs := mfs.resolve(filePath)
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	doc, ok := mfs.files[abs]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	return doc.content, nil
}

var _ Provider = (*MemoryFileSystem)(nil)
