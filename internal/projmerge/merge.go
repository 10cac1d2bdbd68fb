package projmerge

import (
	"maps"
	"slices"

	"github.com/beevik/etree"
	"github.com/lherron/tdsmerge/internal/msbuild"
)

// ItemTypeReport summarizes the merge of one item type.
type ItemTypeReport struct {
	ItemType     string `json:"item_type" yaml:"item_type"`
	Kept         int    `json:"kept" yaml:"kept"`             // items already in the target
	Added        int    `json:"added" yaml:"added"`           // items taken from the content project
	Skipped      int    `json:"skipped" yaml:"skipped"`       // content items whose key the target already had
	Duplicates   int    `json:"duplicates" yaml:"duplicates"` // repeated keys inside the content project
	GroupCreated bool   `json:"group_created" yaml:"group_created"`
}

// Total is the number of items in the merged group.
func (r ItemTypeReport) Total() int {
	return r.Kept + r.Added
}

// MergeReport describes the outcome of MergeProjects.
type MergeReport struct {
	Target     string           `json:"target" yaml:"target"`
	Content    string           `json:"content" yaml:"content"`
	Items      []ItemTypeReport `json:"items" yaml:"items"`
	Properties []string         `json:"properties" yaml:"properties"`
	DryRun     bool             `json:"dry_run" yaml:"dry_run"`
	Diff       string           `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// MergeProjects merges the build items and code generation properties of
// the content project into the target project and saves the target. The
// content project is only read.
func (m *Merger) MergeProjects(targetPath, contentPath string) (*MergeReport, error) {
	if targetPath == "" {
		return nil, invalidArgument(opMerge, "targetProject")
	}
	if contentPath == "" {
		return nil, invalidArgument(opMerge, "contentProject")
	}
	if err := requireFile(opMerge, "targetProject", targetPath); err != nil {
		return nil, err
	}
	if err := requireFile(opMerge, "contentProject", contentPath); err != nil {
		return nil, err
	}

	target, err := loadProject(opMerge, targetPath)
	if err != nil {
		return nil, err
	}
	content, err := loadProject(opMerge, contentPath)
	if err != nil {
		return nil, err
	}

	merged, report, err := Merge(target, content, m.opts.ItemTypes)
	if err != nil {
		return nil, err
	}
	report.Content = contentPath
	report.DryRun = m.opts.DryRun

	if report.Diff, err = m.commit(target, merged); err != nil {
		return nil, err
	}

	for _, it := range report.Items {
		m.log.Info().
			Str("target", targetPath).
			Str("item_type", it.ItemType).
			Int("kept", it.Kept).
			Int("added", it.Added).
			Int("skipped", it.Skipped).
			Int("duplicates", it.Duplicates).
			Bool("group_created", it.GroupCreated).
			Msg("merged items")
	}
	m.log.Info().
		Str("target", targetPath).
		Strs("properties", report.Properties).
		Bool("dry_run", m.opts.DryRun).
		Msg("merged project")

	return report, nil
}

// Merge computes the result of merging content into target. Neither input
// is modified; the returned project is a new document bound to target's path.
func Merge(target, content *msbuild.Project, itemTypes []string) (*msbuild.Project, *MergeReport, error) {
	out := target.Clone()
	report := &MergeReport{Target: target.Path(), Content: content.Path(), Properties: []string{}}

	for _, itemType := range itemTypes {
		r, err := mergeItems(out, content, itemType)
		if err != nil {
			return nil, nil, err
		}
		report.Items = append(report.Items, r)
	}

	report.Properties = mergeProperties(out, content)
	return out, report, nil
}

// mergeItems rebuilds the itemType list of the first group holding that type.
// Target items always survive; content items are added only under new keys.
func mergeItems(out, content *msbuild.Project, itemType string) (ItemTypeReport, error) {
	report := ItemTypeReport{ItemType: itemType}
	entries := make(map[string]*etree.Element)

	group := out.FirstItemGroupWith(itemType)
	if group != nil {
		for _, el := range msbuild.Children(group, itemType) {
			key, err := keyOf(opMerge, out.Path(), itemType, el)
			if err != nil {
				return report, err
			}
			if _, dup := entries[key]; dup {
				include, _ := msbuild.Include(el)
				return report, invalidProjectf(opMerge, out.Path(), "duplicate %s Include %q", itemType, include)
			}
			entries[key] = el
		}
		report.Kept = len(entries)
	}

	fromContent := make(map[string]bool)
	for _, el := range content.Items(itemType) {
		key, err := keyOf(opMerge, content.Path(), itemType, el)
		if err != nil {
			return report, err
		}
		if _, exists := entries[key]; exists {
			if fromContent[key] {
				report.Duplicates++
			} else {
				report.Skipped++
			}
			continue
		}
		entries[key] = out.Adopt(el)
		fromContent[key] = true
		report.Added++
	}

	if len(entries) == 0 {
		return report, nil
	}
	if group == nil {
		group = out.AppendItemGroup()
		report.GroupCreated = true
	}

	for _, el := range msbuild.Children(group, itemType) {
		group.RemoveChild(el)
	}

	keys := slices.Collect(maps.Keys(entries))
	slices.SortFunc(keys, CompareKeys)
	for _, key := range keys {
		group.AddChild(entries[key])
	}
	return report, nil
}

func keyOf(op, path, itemType string, el *etree.Element) (string, error) {
	include, ok := msbuild.Include(el)
	if !ok {
		return "", invalidProjectf(op, path, "%s element without Include attribute", itemType)
	}
	return ItemKey(include), nil
}

// mergeProperties replaces code generation properties in the first
// PropertyGroup of out with every one found in content. It returns the
// names that were replaced, in first-seen order.
func mergeProperties(out, content *msbuild.Project) []string {
	props := content.Descendants(CodeGenProperties...)
	names := []string{}
	if len(props) == 0 {
		return names
	}

	group := out.FirstPropertyGroup()
	if group == nil {
		group = out.PrependPropertyGroup()
	}

	for _, el := range props {
		if slices.Contains(names, el.Tag) {
			continue
		}
		names = append(names, el.Tag)
		for _, old := range msbuild.Children(group, el.Tag) {
			group.RemoveChild(old)
		}
	}
	for _, el := range props {
		group.AddChild(out.Adopt(el))
	}
	return names
}
