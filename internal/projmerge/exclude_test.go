package projmerge_test

import (
	"testing"

	"github.com/lherron/tdsmerge/internal/projmerge"
	"github.com/lherron/tdsmerge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wantExcluded = []string{
	"Sitecore.Kernel.dll",
	"Sitecore.Client.dll",
	"Sitecore.Analytics.dll",
	"Lucene.Net.dll",
}

func TestUpdateExcludedFilesReplacesGroup(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "ContentProject.scproj", testutil.ContentProject)

	report, err := projmerge.New(projmerge.Options{}).UpdateExcludedFiles(path)
	require.NoError(t, err)
	assert.False(t, report.GroupCreated)
	assert.Equal(t, 2, report.Removed)

	project := testutil.LoadProject(t, path)
	group := project.FirstItemGroupWith("ExcludedAssemblies")
	require.NotNil(t, group)
	assert.Equal(t, wantExcluded, testutil.Includes(group, "ExcludedAssemblies"))
	assert.Len(t, group.ChildElements(), 4)
	assert.Len(t, project.ItemGroups(), 3)
	assert.Len(t, project.Items("SitecoreItem"), 4, "other groups untouched")
}

func TestUpdateExcludedFilesCreatesGroup(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "Target.scproj", testutil.TargetProject)

	report, err := projmerge.New(projmerge.Options{}).UpdateExcludedFiles(path)
	require.NoError(t, err)
	assert.True(t, report.GroupCreated)

	project := testutil.LoadProject(t, path)
	children := project.Root().ChildElements()
	last := children[len(children)-1]
	assert.Equal(t, "ItemGroup", last.Tag, "new group is the last child of the project")
	assert.Equal(t, wantExcluded, testutil.Includes(last, "ExcludedAssemblies"))
}

func TestUpdateExcludedFilesIsRepeatable(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "Target.scproj", testutil.TargetProject)
	m := projmerge.New(projmerge.Options{})

	_, err := m.UpdateExcludedFiles(path)
	require.NoError(t, err)
	first := testutil.ReadFile(t, path)

	report, err := m.UpdateExcludedFiles(path)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Removed)
	assert.Equal(t, first, testutil.ReadFile(t, path))
}

func TestUpdateExcludedFilesDryRunAndCustomList(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "Content.scproj", testutil.ContentProject)

	m := projmerge.New(projmerge.Options{DryRun: true, ExcludedAssemblies: []string{"Custom.dll"}})
	report, err := m.UpdateExcludedFiles(path)
	require.NoError(t, err)

	assert.Equal(t, testutil.ContentProject, testutil.ReadFile(t, path))
	assert.Contains(t, report.Diff, `+    <ExcludedAssemblies Include="Custom.dll"/>`)
	assert.Contains(t, report.Diff, `-    <ExcludedAssemblies Include="Old.Assembly.dll"/>`)
}

func TestUpdateExcludedFilesArguments(t *testing.T) {
	m := projmerge.New(projmerge.Options{})

	_, err := m.UpdateExcludedFiles("")
	assert.ErrorIs(t, err, projmerge.ErrInvalidArgument)

	_, err = m.UpdateExcludedFiles(t.TempDir() + "/missing.scproj")
	assert.ErrorIs(t, err, projmerge.ErrNotFound)
}

func TestUpdateExcludedFilesKeepsNamespaceDeclarations(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "Content.scproj", `<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <ItemGroup xmlns:ms="http://schemas.microsoft.com/developer/msbuild/2003" Condition="'$(Configuration)' == 'Debug'">
    <ms:ExcludedAssemblies Include="Old.Assembly.dll"/>
  </ItemGroup>
</Project>`)

	report, err := projmerge.New(projmerge.Options{}).UpdateExcludedFiles(path)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Removed)

	saved := testutil.ReadFile(t, path)
	assert.Contains(t, saved, `xmlns:ms="http://schemas.microsoft.com/developer/msbuild/2003"`)
	assert.NotContains(t, saved, "Condition")

	project := testutil.LoadProject(t, path)
	group := project.FirstItemGroupWith("ExcludedAssemblies")
	require.NotNil(t, group)
	assert.Equal(t, wantExcluded, testutil.Includes(group, "ExcludedAssemblies"))
}
