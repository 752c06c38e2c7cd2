package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"lexhtml/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty report. When requested destination cannot be
// created report goes to temporary file.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	r := &Report{entries: make(map[string]entry)}

	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	r.file = f
	return r, nil
}

// entry is either path to a file to be read when report is finalized or
// data captured at the time of the call.
type entry struct {
	path  string
	data  []byte
	stamp time.Time
}

// Report accumulates everything necessary to troubleshoot a run and writes it
// into a zip archive on Close. All methods are safe on nil receiver, which
// means no report was requested.
type Report struct {
	mu      sync.Mutex
	entries map[string]entry
	file    *os.File
}

// Name returns absolute name of the report archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store registers file to be put into the report under name. File is read
// when report is closed, so its final state ends up in the archive.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if p, err := filepath.Abs(path); err == nil {
		path = p
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, exists := r.entries[name]; exists && old.path != path {
		panic(fmt.Sprintf("attempt to overwrite report entry [%s]: was %s, now %s", name, old.path, path))
	}
	r.entries[name] = entry{path: path}
}

// StoreData puts copy of data into the report under name. Names which were
// already used get a numeric suffix.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	unique := name
	for i := 1; ; i++ {
		if _, exists := r.entries[unique]; !exists {
			break
		}
		ext := filepath.Ext(name)
		unique = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), i, ext)
	}
	r.entries[unique] = entry{data: append([]byte{}, data...), stamp: time.Now()}
}

// Close writes the archive.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.finalize()
}

func (r *Report) finalize() (err error) {
	arc := zip.NewWriter(r.file)
	defer func() {
		if cerr := arc.Close(); err == nil {
			err = cerr
		}
	}()

	now := time.Now()
	names := slices.Sorted(maps.Keys(r.entries))

	var manifest bytes.Buffer
	for _, name := range names {
		e := r.entries[name]
		stamp := e.stamp
		if stamp.IsZero() {
			stamp = now
		}
		source := e.path
		if e.data != nil {
			source = fmt.Sprintf("<%d bytes>", len(e.data))
		}
		fmt.Fprintf(&manifest, "%s\t%s\t%s\n", stamp.UTC().Format(time.UnixDate), name, source)
	}
	if err := saveEntry(arc, "MANIFEST", now, &manifest); err != nil {
		return err
	}

	for _, name := range names {
		e := r.entries[name]
		if e.data != nil {
			if err := saveEntry(arc, name, e.stamp, bytes.NewReader(e.data)); err != nil {
				return err
			}
			continue
		}
		if err := saveFile(arc, name, e.path); err != nil {
			return err
		}
	}
	return nil
}

// saveFile ignores files which are absent or not regular.
func saveFile(arc *zip.Writer, name, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return saveEntry(arc, name, info.ModTime(), f)
}

func saveEntry(arc *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
