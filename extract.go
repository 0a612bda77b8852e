package star

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// extractedFileMode is the permission given to extracted files.
// The format does not record modes.
const extractedFileMode = 0o644

var errIsDir = errors.New("is a directory")

// ReadFile returns a copy of the payload stored under path.
func (a *Archive) ReadFile(path string) ([]byte, error) {
	i, ok := a.Search(path)
	if !ok || i >= len(a.Data) || a.Data[i] == nil {
		return nil, &fs.PathError{Op: "readfile", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), a.Data[i]...), nil
}

// Extract writes entries under destDir, creating parent directories as
// needed. By default every entry is written; use ExtractPaths to select some.
//
// Entry paths must be valid fs paths (see fs.ValidPath); an archive holding
// an absolute or escaping path fails before anything is written. Each file
// is written to a temporary name and renamed into place. Existing files are
// skipped unless ExtractWithOverwrite is set.
func (a *Archive) Extract(ctx context.Context, destDir string, opts ...ExtractOption) error {
	if a == nil {
		return ErrNilArchive
	}
	if destDir == "" {
		return &fs.PathError{Op: "extract", Path: destDir, Err: fs.ErrInvalid}
	}
	cfg := extractConfig{workers: defaultExtractWorkers}
	for _, opt := range opts {
		opt(&cfg)
	}

	indexes, err := a.extractIndexes(cfg.paths)
	if err != nil {
		return err
	}

	root, err := os.OpenRoot(destDir)
	if err != nil {
		return fmt.Errorf("open destination root %s: %w", destDir, err)
	}
	defer root.Close()

	a.log().Info("extracting archive", "dir", destDir, "entries", len(indexes), "workers", cfg.workers)

	// Parent directories are created up front so workers never race on them.
	dirs := make(map[string]struct{})
	for _, i := range indexes {
		dir := filepath.Dir(filepath.FromSlash(a.Entries[i].Name()))
		if _, ok := dirs[dir]; ok {
			continue
		}
		dirs[dir] = struct{}{}
		if err := root.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for _, i := range indexes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return a.extractEntry(root, i, cfg.overwrite)
		})
	}
	return g.Wait()
}

// extractIndexes resolves the entries to extract and checks their paths.
func (a *Archive) extractIndexes(paths []string) ([]int, error) {
	var indexes []int
	if len(paths) == 0 {
		indexes = make([]int, 0, len(a.Entries))
		for i := range a.Entries {
			if !a.Entries[i].populated() || i >= len(a.Data) || a.Data[i] == nil {
				return nil, &EntryError{Op: "extract", Index: uint64(i), Err: ErrIncomplete}
			}
			indexes = append(indexes, i)
		}
	} else {
		indexes = make([]int, 0, len(paths))
		for _, p := range paths {
			i, ok := a.Search(p)
			if !ok || i >= len(a.Data) || a.Data[i] == nil {
				return nil, &fs.PathError{Op: "extract", Path: p, Err: fs.ErrNotExist}
			}
			indexes = append(indexes, i)
		}
	}

	for _, i := range indexes {
		if name := a.Entries[i].Name(); !fs.ValidPath(name) || name == "." {
			return nil, &fs.PathError{Op: "extract", Path: name, Err: fs.ErrInvalid}
		}
	}
	return indexes, nil
}

func (a *Archive) extractEntry(root *os.Root, i int, overwrite bool) error {
	name := a.Entries[i].Name()
	rel := filepath.FromSlash(name)

	if info, err := root.Stat(rel); err == nil {
		if info.IsDir() {
			return &fs.PathError{Op: "extract", Path: name, Err: errIsDir}
		}
		if !overwrite {
			a.log().Debug("skipped existing file", "path", name)
			return nil
		}
	}

	tmp, tmpRel, err := createTempFile(root, filepath.Dir(rel), ".star-")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = root.Remove(tmpRel)
		}
	}()

	if _, err := tmp.Write(a.Data[i]); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := root.Chmod(tmpRel, extractedFileMode); err != nil {
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if info, err := root.Stat(rel); err == nil && info.IsDir() {
		return &fs.PathError{Op: "extract", Path: name, Err: errIsDir}
	}
	if err := root.Rename(tmpRel, rel); err != nil {
		return fmt.Errorf("rename to %s: %w", name, err)
	}

	success = true
	a.log().Debug("extracted file", "path", name, "size", len(a.Data[i]))
	return nil
}

func createTempFile(root *os.Root, dir, prefix string) (*os.File, string, error) {
	const attempts = 10
	for range attempts {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			return nil, "", err
		}
		rel := filepath.Join(dir, prefix+hex.EncodeToString(b[:]))
		f, err := root.OpenFile(rel, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			return f, rel, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", errors.New("create temp file: exhausted retries")
}
