package msbuild_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lherron/tdsmerge/internal/msbuild"
	"github.com/lherron/tdsmerge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, xml string) *msbuild.Project {
	t.Helper()
	p, err := msbuild.Parse("test.scproj", []byte(xml))
	require.NoError(t, err)
	return p
}

func TestParseRejectsNonProject(t *testing.T) {
	_, err := msbuild.Parse("x.xml", []byte(`<Root xmlns="http://schemas.microsoft.com/developer/msbuild/2003"/>`))
	assert.ErrorIs(t, err, msbuild.ErrNotProject)

	_, err = msbuild.Parse("x.xml", []byte(`<Project/>`))
	assert.ErrorIs(t, err, msbuild.ErrNotProject, "Project without the MSBuild namespace")

	_, err = msbuild.Parse("x.xml", []byte(`<Project`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, msbuild.ErrNotProject)
}

func TestQueries(t *testing.T) {
	p := parse(t, testutil.TargetProject)

	assert.Len(t, p.ItemGroups(), 2)

	pg := p.FirstPropertyGroup()
	require.NotNil(t, pg)
	assert.Equal(t, "Target.Models", testutil.ChildText(pg, "BaseNamespace"))

	group := p.FirstItemGroupWith("CodeGenTemplate")
	require.NotNil(t, group)
	assert.Equal(t, []string{`Code Generation Templates\Base Project Item.tt`}, testutil.Includes(group, "CodeGenTemplate"))
	assert.Nil(t, p.FirstItemGroupWith("ExcludedAssemblies"))

	assert.Len(t, p.Items("SitecoreItem"), 2)

	// Both property groups carry EnableCodeGeneration.
	assert.Len(t, p.Descendants("EnableCodeGeneration", "BaseNamespace"), 3)
}

func TestPrefixedNamespace(t *testing.T) {
	p := parse(t, `<ms:Project xmlns:ms="http://schemas.microsoft.com/developer/msbuild/2003">
  <ms:ItemGroup><ms:SitecoreItem Include="a.item"/></ms:ItemGroup>
  <ItemGroup><SitecoreItem Include="ignored.item"/></ItemGroup>
</ms:Project>`)

	assert.Len(t, p.ItemGroups(), 1)
	assert.Len(t, p.Items("SitecoreItem"), 1)

	group := p.AppendItemGroup()
	assert.Equal(t, "ms", group.Space)
}

func TestAppendItemGroupPlacement(t *testing.T) {
	p := parse(t, testutil.TargetProject)
	group := p.AppendItemGroup()

	children := p.Root().ChildElements()
	// PropertyGroup, PropertyGroup, ItemGroup, ItemGroup, new ItemGroup, Import
	require.Len(t, children, 6)
	assert.Same(t, group, children[4])
	assert.Equal(t, "Import", children[5].Tag)

	empty := parse(t, testutil.EmptyTargetProject)
	group = empty.AppendItemGroup()
	children = empty.Root().ChildElements()
	assert.Same(t, group, children[len(children)-1])
}

func TestPrependPropertyGroup(t *testing.T) {
	p := parse(t, `<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003"><ItemGroup/></Project>`)
	pg := p.PrependPropertyGroup()
	assert.Same(t, pg, p.Root().ChildElements()[0])
	assert.Same(t, pg, p.FirstPropertyGroup())
}

func TestCloneIsIndependent(t *testing.T) {
	p := parse(t, testutil.TargetProject)
	c := p.Clone()

	c.AppendItemGroup()
	assert.Len(t, c.ItemGroups(), 3)
	assert.Len(t, p.ItemGroups(), 2)
}

func TestAdoptCopiesWithoutDetaching(t *testing.T) {
	content := parse(t, testutil.ContentProject)
	target := parse(t, `<ms:Project xmlns:ms="http://schemas.microsoft.com/developer/msbuild/2003"><ms:ItemGroup/></ms:Project>`)

	src := content.Items("SitecoreItem")[0]
	adopted := target.Adopt(src)
	target.ItemGroups()[0].AddChild(adopted)

	assert.Len(t, content.Items("SitecoreItem"), 4, "source document keeps its items")
	assert.True(t, msbuild.Is(adopted, "SitecoreItem"))
	assert.Equal(t, "ms", adopted.Space)
	assert.Equal(t, "NeverDeploy", testutil.ChildText(adopted, "ItemDeployment"))
}

func TestSaveRoundTripKeepsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.scproj")
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(testutil.EmptyTargetProject)...)
	require.NoError(t, os.WriteFile(path, data, 0640))

	p, err := msbuild.Load(path)
	require.NoError(t, err)
	p.AppendItemGroup()
	require.NoError(t, p.Save())

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(saved), "\xEF\xBB\xBF<?xml"))
	assert.Contains(t, string(saved), "\n  <ItemGroup/>\n")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	reloaded := testutil.LoadProject(t, path)
	assert.Len(t, reloaded.ItemGroups(), 1)
}

func TestBytesDoesNotMutate(t *testing.T) {
	p := parse(t, testutil.TargetProject)
	first, err := p.Bytes()
	require.NoError(t, err)
	second, err := p.Bytes()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
