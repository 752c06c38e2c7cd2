package convert

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

// buildOutputPath returns name of the fragment file for source "src" which
// is relative to the original input (base name for a single file, path
// inside directory or archive otherwise). Unless nodirs is requested source
// directory structure is kept under "dst".
func (j *job) buildOutputPath(src string) string {
	outDir := j.dst
	if !j.noDirs {
		outDir = filepath.Join(j.dst, filepath.Dir(filepath.FromSlash(src)))
	}
	return filepath.Join(outDir, j.outputFileName(src))
}

func (j *job) outputFileName(src string) string {
	base := filepath.Base(filepath.FromSlash(src))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if j.transliterate {
		base = slug.Make(base)
	}
	if base == "" || base == "." {
		base = "_bad_file_name_"
	}
	return base + j.outExt
}
