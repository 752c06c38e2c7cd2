// Package archive walks serialized node files stored in zip archives.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"path"
	"strings"
)

// WalkFunc is called for every file Walk selects. If an error is returned,
// processing stops.
type WalkFunc func(file *zip.File) error

// Walk visits files of the archive located under prefix whose names end with
// ext (case insensitive, empty ext selects everything), in archive order.
// Prefix is either a single file name or a directory, "dir" selects
// "dir/a.json" but not "dirx/a.json".
// Archives with absolute or escaping ("..") entry names are rejected.
func Walk(ctx context.Context, archive, prefix, ext string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := f.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !underPrefix(name, prefix) {
			continue
		}
		if ext != "" && !strings.EqualFold(path.Ext(name), ext) {
			continue
		}
		if err := walkFn(f); err != nil {
			return err
		}
	}
	return nil
}

func underPrefix(name, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" || name == prefix {
		return true
	}
	return strings.HasPrefix(name, prefix+"/")
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
