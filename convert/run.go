// Package convert implements "render" command: it finds serialized nodes in
// files, directories and zip archives and writes HTML fragments.
package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/h2non/filetype"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"lexhtml/archive"
	"lexhtml/config"
	"lexhtml/render"
	"lexhtml/state"
)

// job keeps everything needed to process a single run.
type job struct {
	dst           string
	out           io.Writer // when set single file result goes here
	inExt, outExt string
	noDirs        bool
	transliterate bool
	overwrite     bool

	rnd *render.Renderer
	rpt *config.Report
	log *zap.Logger
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")

	j := &job{
		inExt:         env.Cfg.Render.InputExt,
		outExt:        env.Cfg.Render.OutputExt,
		noDirs:        cmd.Bool("nodirs"),
		transliterate: env.Cfg.Render.FileNameTransliterate,
		overwrite:     env.Overwrite,
		rnd:           env.Renderer(),
		rpt:           env.Rpt,
		log:           log,
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		// single file goes to STDOUT, everything else to current directory
		j.out = os.Stdout
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if j.dst, err = filepath.Abs(dst); err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", j.dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return j.process(ctx, src)
}

// process determines input type (directory, archive with optional path inside
// or single file) and processes it accordingly.
func (j *job) process(ctx context.Context, src string) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exist - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			// directory results never go to STDOUT
			j.out = nil
			if err := j.processDir(ctx, head); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			return nil
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			j.out = nil
			pathIn := strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := j.processArchive(ctx, head, filepath.ToSlash(pathIn), ""); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			return nil
		}

		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		file, err := os.Open(head)
		if err != nil {
			return err
		}
		defer file.Close()
		return j.processNodes(ctx, file, filepath.Base(head))
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

// isArchiveFile checks file signature.
func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

func (j *job) hasInputExt(name string) bool {
	return strings.EqualFold(filepath.Ext(name), j.inExt)
}

// processDir walks directory tree finding node files and archives. Failures
// of individual files are logged and do not stop processing.
func (j *job) processDir(ctx context.Context, dir string) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			j.log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			j.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		if j.hasInputExt(path) {
			count++
			file, err := os.Open(path)
			if err != nil {
				j.log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
				return nil
			}
			defer file.Close()
			if err := j.processNodes(ctx, file, rel); err != nil {
				j.log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			j.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !isArchive {
			j.log.Debug("Skipping file, not recognized as nodes or archive", zap.String("file", path))
			return nil
		}
		count++
		if err := j.processArchive(ctx, path, "", filepath.Dir(rel)); err != nil {
			j.log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
}

// processArchive renders all node files inside archive under "pathIn",
// results are placed under "pathOut".
func (j *job) processArchive(ctx context.Context, path, pathIn, pathOut string) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			j.log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	return archive.Walk(ctx, path, pathIn, j.inExt, func(f *zip.File) error {
		count++

		r, err := f.Open()
		if err != nil {
			j.log.Error("Unable to process file in archive",
				zap.String("archive", path), zap.String("file", f.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		if err := j.processNodes(ctx, r, filepath.Join(pathOut, filepath.FromSlash(f.Name))); err != nil {
			j.log.Error("Unable to process file in archive",
				zap.String("archive", path), zap.String("file", f.Name), zap.Error(err))
		}
		return nil
	})
}

// processNodes renders single input holding node or array of nodes. "src" is
// input path relative to the original source.
func (j *job) processNodes(ctx context.Context, r io.Reader, src string) (rerr error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	var outputName string

	j.log.Debug("Rendering starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			j.log.Error("Rendering ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("from", src), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("rendering panic: %v", r)
		} else if rerr == nil {
			j.log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)), zap.String("from", src), zap.String("to", outputName))
		}
	}(time.Now())

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("unable to read nodes (%s): %w", src, err)
	}
	if j.rpt != nil {
		j.rpt.StoreData(filepath.ToSlash(filepath.Join("input", src)), data)
		if explained, err := j.rnd.Explain(data); err == nil {
			j.rpt.StoreData(filepath.ToSlash(filepath.Join("explain", src+".txt")), []byte(explained))
		}
	}

	fragment, err := j.rnd.Nodes(data)
	if err != nil {
		return fmt.Errorf("unable to render nodes (%s): %w", src, err)
	}

	if j.out != nil {
		outputName = "STDOUT"
		_, err := io.WriteString(j.out, fragment)
		return err
	}

	outputName = j.buildOutputPath(src)
	if err := j.prepareOutput(outputName); err != nil {
		return err
	}
	if err := os.WriteFile(outputName, []byte(fragment), 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	j.rpt.Store(filepath.ToSlash(filepath.Join("result", src+j.outExt)), outputName)
	return nil
}

func (j *job) prepareOutput(outputName string) error {
	if _, err := os.Stat(outputName); err == nil {
		if !j.overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		j.log.Warn("Overwriting existing file", zap.String("file", outputName))
		return os.Remove(outputName)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}
