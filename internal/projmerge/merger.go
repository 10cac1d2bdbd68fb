// Package projmerge folds TDS content projects into target projects.
//
// A Merger exposes three operations, each a load, transform, save sequence
// with no state kept between calls:
//
//   - MergeProjects merges build items and code generation properties from a
//     content project into a target project.
//   - CopyFiles copies serialized items and templates from a source tree into
//     a target tree without overwriting anything.
//   - UpdateExcludedFiles rewrites the ExcludedAssemblies item group.
package projmerge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/lherron/tdsmerge/internal/logging"
	"github.com/lherron/tdsmerge/internal/msbuild"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
)

const (
	opMerge   = "merge"
	opCopy    = "copy"
	opExclude = "exclude"
)

// Default item types merged by MergeProjects: Sitecore items first, then
// code generation templates.
var DefaultItemTypes = []string{"SitecoreItem", "CodeGenTemplate"}

// CodeGenProperties are moved from the content project into the target's
// first PropertyGroup.
var CodeGenProperties = []string{
	"EnableCodeGeneration",
	"FieldsForCodeGen",
	"CodeGenFile",
	"CodeGenTargetProject",
	"BaseTransformFile",
	"HeaderTransformFile",
	"BaseNamespace",
}

// DefaultCopyExtensions is the CopyFiles allow-list: serialized items and T4 templates.
var DefaultCopyExtensions = []string{".item", ".tt"}

// DefaultExcludedAssemblies is written, in order, by UpdateExcludedFiles.
var DefaultExcludedAssemblies = []string{
	"Sitecore.Kernel.dll",
	"Sitecore.Client.dll",
	"Sitecore.Analytics.dll",
	"Lucene.Net.dll",
}

// Options configures a Merger. Empty lists fall back to the defaults above.
type Options struct {
	ItemTypes          []string
	CopyExtensions     []string
	CopyExcludes       []string // slash-path globs skipped by CopyFiles
	ExcludedAssemblies []string
	DryRun             bool // compute results and diffs but write nothing
	Logger             *zerolog.Logger
}

// Merger runs project merge operations.
type Merger struct {
	opts Options
	log  zerolog.Logger
}

// New creates a Merger.
func New(opts Options) *Merger {
	if len(opts.ItemTypes) == 0 {
		opts.ItemTypes = DefaultItemTypes
	}
	if len(opts.CopyExtensions) == 0 {
		opts.CopyExtensions = DefaultCopyExtensions
	}
	if len(opts.ExcludedAssemblies) == 0 {
		opts.ExcludedAssemblies = DefaultExcludedAssemblies
	}

	log := logging.WithComponent("projmerge")
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "projmerge").Logger()
	}

	return &Merger{opts: opts, log: log}
}

// requireFile checks that path names an existing regular file.
func requireFile(op, arg, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return notFound(op, arg, path)
		}
		return fmt.Errorf("%s: failed to stat %s: %w", op, path, err)
	}
	if info.IsDir() {
		return notFound(op, arg, path)
	}
	return nil
}

func loadProject(op, path string) (*msbuild.Project, error) {
	project, err := msbuild.Load(path)
	if err != nil {
		if errors.Is(err, msbuild.ErrNotProject) {
			return nil, invalidProjectf(op, path, "root element is not an MSBuild Project")
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return project, nil
}

// commit saves after over its original path, or in dry-run mode returns a
// unified diff between before and after instead.
func (m *Merger) commit(before, after *msbuild.Project) (string, error) {
	if !m.opts.DryRun {
		if err := after.Save(); err != nil {
			return "", err
		}
		return "", nil
	}

	a, err := before.Bytes()
	if err != nil {
		return "", err
	}
	b, err := after.Bytes()
	if err != nil {
		return "", err
	}
	return unifiedDiff(before.Path(), a, b)
}

func unifiedDiff(path string, before, after []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", path, err)
	}
	return text, nil
}
