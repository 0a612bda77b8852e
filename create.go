package star

import (
	"context"
	"fmt"
	"io/fs"
	"os"
)

// CreateFromPaths builds a complete archive from the regular files named by
// paths, in the order given. Each entry is stored under its path as written,
// so callers should pass the relative names they want recorded.
//
// Directories, symlinks and other non-regular files are rejected with
// ErrNotRegular. The returned archive has its offsets computed and is ready
// to Write. The context is checked between files.
func CreateFromPaths(ctx context.Context, paths []string, opts ...Option) (*Archive, error) {
	a, err := New(uint64(len(paths)), opts...)
	if err != nil {
		return nil, err
	}
	a.log().Info("creating archive", "files", len(paths))

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := a.addFile(uint64(i), path); err != nil {
			return nil, err
		}
	}

	if err := a.ComputeOffsets(); err != nil {
		return nil, err
	}
	return a, nil
}

// addFile stats and reads one file into slot index.
func (a *Archive) addFile(index uint64, path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return &fs.PathError{Op: "create", Path: path, Err: ErrNotRegular}
	}
	if info.Size() < 0 {
		return &fs.PathError{Op: "create", Path: path, Err: ErrSizeOverflow}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := a.AddEntry(index, path, uint64(info.Size()), f); err != nil {
		return fmt.Errorf("add %s: %w", path, err)
	}
	return nil
}
