// Package workspace mirrors the project tree into the shared volume the
// pipeline engine and its task pods work from.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/me/funcscan/internal/config"
	"github.com/me/funcscan/pkg/model"
)

// Stats summarizes one staging pass.
type Stats struct {
	Files    int
	Dirs     int
	Links    int
	Excluded int
	Bytes    int64
}

// Stager copies SourceDir into SharedDir.
type Stager struct {
	source  string
	shared  string
	exclude map[string]bool
	logger  *slog.Logger
}

// NewStager creates a Stager from workspace settings.
func NewStager(cfg config.WorkspaceConfig, logger *slog.Logger) *Stager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	exclude := make(map[string]bool, len(cfg.Exclude))
	for _, name := range cfg.Exclude {
		exclude[name] = true
	}
	return &Stager{
		source:  filepath.Clean(cfg.SourceDir),
		shared:  filepath.Clean(cfg.SharedDir),
		exclude: exclude,
		logger:  logger.With("component", "stager"),
	}
}

// Stage mirrors the source tree into the shared directory.
//
// Entries whose name is on the exclude list are skipped at every depth.
// Existing destination directories are merged into and existing files are
// overwritten. Symlinks to files are copied as files and symlinks to
// directories are followed, unless following would loop, in which case
// the link itself is recreated. Dangling symlinks are recreated verbatim.
// Any other failure is returned as a *model.StagingError.
func (s *Stager) Stage(ctx context.Context) (Stats, error) {
	start := time.Now()
	var st Stats

	info, err := os.Stat(s.source)
	if err != nil {
		return st, &model.StagingError{Path: s.source, Err: err}
	}
	if !info.IsDir() {
		return st, &model.StagingError{Path: s.source, Err: errors.New("not a directory")}
	}

	realSource, err := filepath.EvalSymlinks(s.source)
	if err != nil {
		return st, &model.StagingError{Path: s.source, Err: err}
	}

	s.logger.Info("staging workspace", "source", s.source, "destination", s.shared)

	ancestors := map[string]bool{realSource: true}
	if err := s.copyDir(ctx, s.source, s.shared, info, ancestors, &st); err != nil {
		return st, err
	}

	s.logger.Info("workspace staged",
		"files", st.Files,
		"dirs", st.Dirs,
		"links", st.Links,
		"excluded", st.Excluded,
		"size", humanize.Bytes(uint64(st.Bytes)),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return st, nil
}

func (s *Stager) copyDir(ctx context.Context, src, dst string, info fs.FileInfo, ancestors map[string]bool, st *Stats) error {
	if err := os.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
		return &model.StagingError{Path: dst, Err: err}
	}
	st.Dirs++

	entries, err := os.ReadDir(src)
	if err != nil {
		return &model.StagingError{Path: src, Err: err}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return &model.StagingError{Path: src, Err: err}
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if s.exclude[entry.Name()] || srcPath == s.shared {
			s.logger.Debug("excluded", "path", srcPath)
			st.Excluded++
			continue
		}

		if err := s.copyEntry(ctx, srcPath, dstPath, entry, ancestors, st); err != nil {
			return err
		}
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return &model.StagingError{Path: dst, Err: err}
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return &model.StagingError{Path: dst, Err: err}
	}
	return nil
}

func (s *Stager) copyEntry(ctx context.Context, src, dst string, entry fs.DirEntry, ancestors map[string]bool, st *Stats) error {
	if entry.Type()&fs.ModeSymlink == 0 {
		info, err := entry.Info()
		if err != nil {
			return &model.StagingError{Path: src, Err: err}
		}
		switch {
		case info.IsDir():
			real, err := filepath.EvalSymlinks(src)
			if err != nil {
				return &model.StagingError{Path: src, Err: err}
			}
			return s.descend(ctx, src, dst, info, real, ancestors, st)
		case info.Mode().IsRegular():
			return copyFile(src, dst, info, st)
		default:
			s.logger.Debug("skipping special file", "path", src, "mode", info.Mode().String())
			return nil
		}
	}

	target, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("preserving dangling symlink", "path", src)
		return copyLink(src, dst, st)
	}
	if err != nil {
		return &model.StagingError{Path: src, Err: err}
	}

	if target.IsDir() {
		real, err := filepath.EvalSymlinks(src)
		if err != nil {
			return &model.StagingError{Path: src, Err: err}
		}
		if ancestors[real] {
			s.logger.Warn("symlink loops back into the tree, recreating link", "path", src, "target", real)
			return copyLink(src, dst, st)
		}
		return s.descend(ctx, src, dst, target, real, ancestors, st)
	}
	if target.Mode().IsRegular() {
		return copyFile(src, dst, target, st)
	}
	return nil
}

func (s *Stager) descend(ctx context.Context, src, dst string, info fs.FileInfo, real string, ancestors map[string]bool, st *Stats) error {
	ancestors[real] = true
	defer delete(ancestors, real)
	return s.copyDir(ctx, src, dst, info, ancestors, st)
}

// copyFile copies a regular file's content, mode and modification time.
func copyFile(src, dst string, info fs.FileInfo, st *Stats) error {
	if err := removeIfLink(dst); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return &model.StagingError{Path: src, Err: err}
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return &model.StagingError{Path: dst, Err: err}
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &model.StagingError{Path: dst, Err: fmt.Errorf("copy: %w", err)}
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return &model.StagingError{Path: dst, Err: err}
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return &model.StagingError{Path: dst, Err: err}
	}

	st.Files++
	st.Bytes += n
	return nil
}

// copyLink recreates the symlink at src as dst with the same target text.
func copyLink(src, dst string, st *Stats) error {
	target, err := os.Readlink(src)
	if err != nil {
		return &model.StagingError{Path: src, Err: err}
	}
	if fi, err := os.Lstat(dst); err == nil {
		if fi.IsDir() {
			return &model.StagingError{Path: dst, Err: errors.New("destination is a directory")}
		}
		if err := os.Remove(dst); err != nil {
			return &model.StagingError{Path: dst, Err: err}
		}
	}
	if err := os.Symlink(target, dst); err != nil {
		return &model.StagingError{Path: dst, Err: err}
	}
	st.Links++
	return nil
}

func removeIfLink(path string) error {
	fi, err := os.Lstat(path)
	if err != nil || fi.Mode()&fs.ModeSymlink == 0 {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return &model.StagingError{Path: path, Err: err}
	}
	return nil
}
