package projmerge

import (
	"github.com/lherron/tdsmerge/internal/msbuild"
)

const itemExcludedAssemblies = "ExcludedAssemblies"

// ExcludeReport describes the outcome of UpdateExcludedFiles.
type ExcludeReport struct {
	Project      string   `json:"project" yaml:"project"`
	Assemblies   []string `json:"assemblies" yaml:"assemblies"`
	Removed      int      `json:"removed" yaml:"removed"` // elements cleared from an existing group
	GroupCreated bool     `json:"group_created" yaml:"group_created"`
	DryRun       bool     `json:"dry_run" yaml:"dry_run"`
	Diff         string   `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// UpdateExcludedFiles replaces the project's ExcludedAssemblies item group
// with the configured assembly list and saves the project.
func (m *Merger) UpdateExcludedFiles(projectPath string) (*ExcludeReport, error) {
	if projectPath == "" {
		return nil, invalidArgument(opExclude, "contentProject")
	}
	if err := requireFile(opExclude, "contentProject", projectPath); err != nil {
		return nil, err
	}

	project, err := loadProject(opExclude, projectPath)
	if err != nil {
		return nil, err
	}

	updated, report := RewriteExcluded(project, m.opts.ExcludedAssemblies)
	report.DryRun = m.opts.DryRun

	if report.Diff, err = m.commit(project, updated); err != nil {
		return nil, err
	}

	m.log.Info().
		Str("project", projectPath).
		Strs("assemblies", report.Assemblies).
		Int("removed", report.Removed).
		Bool("group_created", report.GroupCreated).
		Bool("dry_run", m.opts.DryRun).
		Msg("updated excluded assemblies")

	return report, nil
}

// RewriteExcluded returns a copy of project whose ExcludedAssemblies group
// holds exactly assemblies, in order. An existing group loses its children
// and every attribute except namespace declarations; otherwise a new group
// is appended to the project root.
func RewriteExcluded(project *msbuild.Project, assemblies []string) (*msbuild.Project, *ExcludeReport) {
	out := project.Clone()
	report := &ExcludeReport{Project: project.Path(), Assemblies: assemblies}

	group := out.FirstItemGroupWith(itemExcludedAssemblies)
	if group == nil {
		group = out.NewElement(msbuild.TagItemGroup)
		out.Root().AddChild(group)
		report.GroupCreated = true
	} else {
		report.Removed = len(group.ChildElements())
		for len(group.Child) > 0 {
			group.RemoveChildAt(0)
		}
		attrs := group.Attr[:0]
		for _, a := range group.Attr {
			if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
				attrs = append(attrs, a)
			}
		}
		group.Attr = attrs
	}

	for _, name := range assemblies {
		el := out.NewElement(itemExcludedAssemblies)
		el.CreateAttr(msbuild.AttrInclude, name)
		group.AddChild(el)
	}
	return out, report
}
