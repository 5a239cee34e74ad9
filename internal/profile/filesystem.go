package profile

// FilesystemManager provides the filesystem operations the catalog and copy
// engine need. It abstracts file access so the core can be exercised against
// temporary directories.
type FilesystemManager interface {
	// Match returns the paths, relative to dir, of regular files whose base
	// name matches pattern. When recursive is true subdirectories are searched
	// too. A missing dir yields no matches and no error.
	Match(dir string, pattern string, recursive bool) ([]string, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error

	// CopyFile copies src to dst, replacing dst if it exists. Parent
	// directories of dst are created as needed. Permissions and the
	// modification time are carried over.
	CopyFile(src, dst string) error
}
