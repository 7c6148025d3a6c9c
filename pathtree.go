package blobfs

import (
	"fmt"
	"io/fs"
	"os"
)

// FromPath walks fsys starting at root and builds the in-memory Tree that
// Compile expects: directories become Dir, regular files become File.
// Symlinks, devices, sockets and other irregular entries are rejected
// with ErrUnsupportedFileType, since the format has no way to represent
// them.
func FromPath(fsys fs.FS, root string) (Tree, error) {
	info, err := fs.Stat(fsys, root)
	if err != nil {
		return nil, err
	}
	return entryFromPath(fsys, root, info)
}

func entryFromPath(fsys fs.FS, name string, info fs.FileInfo) (Tree, error) {
	switch {
	case info.IsDir():
		entries, err := fs.ReadDir(fsys, name)
		if err != nil {
			return nil, err
		}

		dir := make(Dir, len(entries))
		for _, e := range entries {
			childName := e.Name()
			childPath := childName
			if name != "." {
				childPath = name + "/" + childName
			}

			childInfo, err := e.Info()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", childPath, err)
			}

			child, err := entryFromPath(fsys, childPath, childInfo)
			if err != nil {
				return nil, err
			}
			dir[childName] = child
		}
		return dir, nil

	case info.Mode().IsRegular():
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		return File(data), nil

	default:
		return nil, fmt.Errorf("%w: %s has mode %s", ErrUnsupportedFileType, name, info.Mode())
	}
}

// FromOSPath is the os.DirFS-backed convenience form of FromPath for
// building a Tree directly from a filesystem path outside of an fs.FS.
func FromOSPath(path string) (Tree, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("%w: %s is a symlink", ErrUnsupportedFileType, path)
	}

	if info.IsDir() {
		return FromPath(os.DirFS(path), ".")
	}

	dir, base := splitPath(path)
	return FromPath(os.DirFS(dir), base)
}

func splitPath(path string) (dir, base string) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i], path[i+1:]
		}
	}
	return ".", path
}
