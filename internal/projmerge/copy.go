package projmerge

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/lherron/tdsmerge/internal/paths"
)

// CopyReport lists the files handled by CopyFiles, as slash-separated paths
// relative to the source root.
type CopyReport struct {
	Target   string   `json:"target" yaml:"target"`
	Source   string   `json:"source" yaml:"source"`
	Copied   []string `json:"copied" yaml:"copied"`
	Skipped  []string `json:"skipped" yaml:"skipped"` // already present at the destination
	Excluded []string `json:"excluded" yaml:"excluded"`
	DryRun   bool     `json:"dry_run" yaml:"dry_run"`
}

// CopyFiles copies every allow-listed file under sourceDir into the same
// relative location under targetDir. Files that already exist at the
// destination are never touched.
func (m *Merger) CopyFiles(targetDir, sourceDir string) (*CopyReport, error) {
	if targetDir == "" {
		return nil, invalidArgument(opCopy, "targetLocation")
	}
	if sourceDir == "" {
		return nil, invalidArgument(opCopy, "sourceLocation")
	}

	info, err := os.Stat(sourceDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(opCopy, "sourceLocation", sourceDir)
		}
		return nil, fmt.Errorf("%s: failed to stat %s: %w", opCopy, sourceDir, err)
	}
	if !info.IsDir() {
		return nil, notFound(opCopy, "sourceLocation", sourceDir)
	}

	root := filepath.Clean(sourceDir)
	report := &CopyReport{
		Target:   targetDir,
		Source:   root,
		Copied:   []string{},
		Skipped:  []string{},
		Excluded: []string{},
		DryRun:   m.opts.DryRun,
	}

	// WalkDir does not descend a symlinked root.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve %s: %w", opCopy, root, err)
	}

	files, err := m.collectFiles(walkRoot, report)
	if err != nil {
		return nil, err
	}

	for _, rel := range files {
		dst := filepath.Join(targetDir, rel)
		slashRel := filepath.ToSlash(rel)

		if _, err := os.Lstat(dst); err == nil {
			report.Skipped = append(report.Skipped, slashRel)
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: failed to stat %s: %w", opCopy, dst, err)
		}

		if m.opts.DryRun {
			report.Copied = append(report.Copied, slashRel)
			continue
		}

		copied, err := copyFile(filepath.Join(walkRoot, rel), dst)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opCopy, err)
		}
		if !copied {
			report.Skipped = append(report.Skipped, slashRel)
			continue
		}
		report.Copied = append(report.Copied, slashRel)
		m.log.Debug().Str("file", slashRel).Msg("copied")
	}

	m.log.Info().
		Str("source", root).
		Str("target", targetDir).
		Int("copied", len(report.Copied)).
		Int("skipped", len(report.Skipped)).
		Int("excluded", len(report.Excluded)).
		Bool("dry_run", m.opts.DryRun).
		Msg("copied files")

	return report, nil
}

// collectFiles walks root depth-first in lexical order and returns the
// relative paths of allow-listed regular files.
func (m *Merger) collectFiles(root string, report *CopyReport) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || !slices.Contains(m.opts.CopyExtensions, filepath.Ext(d.Name())) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if paths.MatchAny(m.opts.CopyExcludes, filepath.ToSlash(rel)) {
			report.Excluded = append(report.Excluded, filepath.ToSlash(rel))
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to walk %s: %w", opCopy, root, err)
	}
	return files, nil
}

// copyFile copies src to a new file at dst, creating parent directories.
// It reports false without error when dst appeared in the meantime.
func copyFile(src, dst string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return false, fmt.Errorf("failed to create destination directory: %w", err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return false, fmt.Errorf("failed to open source: %w", err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat source: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		os.Remove(dst)
		return false, fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := dstFile.Close(); err != nil {
		os.Remove(dst)
		return false, fmt.Errorf("failed to close %s: %w", dst, err)
	}
	return true, nil
}
