package filesystem

// Document is a regular file discovered by Provider.List.
type Document interface {
	// Path returns the path of the file, usable with Provider.ReadFile.
	Path() string

	// Name returns the base name of the file.
	Name() string

	// Read returns the file's content.
	Read() ([]byte, error)
}

// Provider abstracts the filesystem so sources can be tested in memory.
type Provider interface {
	// List returns the regular files directly inside dir whose names end
	// with ext (any file when ext is empty), sorted by name.
	List(dir, ext string) ([]Document, error)

	// ReadFile reads the file at path.
	ReadFile(path string) ([]byte, error)
}
