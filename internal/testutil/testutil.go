// Package testutil holds project fixtures and file helpers shared by tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/lherron/tdsmerge/internal/msbuild"
)

// TargetProject has code generation settings, two Sitecore items and one
// template, followed by an Import.
const TargetProject = `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="4.0" DefaultTargets="Build" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
    <Configuration Condition=" '$(Configuration)' == '' ">Debug</Configuration>
    <ProjectGuid>{6C3A2F0D-1B5E-4B8F-9C63-7C2D1A4E5F10}</ProjectGuid>
    <EnableCodeGeneration>False</EnableCodeGeneration>
    <BaseNamespace>Target.Models</BaseNamespace>
  </PropertyGroup>
  <PropertyGroup Condition=" '$(Configuration)|$(Platform)' == 'Debug|AnyCPU' ">
    <OutputPath>.\bin\Debug\</OutputPath>
    <EnableCodeGeneration>False</EnableCodeGeneration>
  </PropertyGroup>
  <ItemGroup>
    <SitecoreItem Include="sitecore\templates.item">
      <ItemDeployment>DeployOnce</ItemDeployment>
    </SitecoreItem>
    <SitecoreItem Include="sitecore\content\Home.item">
      <ItemDeployment>AlwaysUpdate</ItemDeployment>
    </SitecoreItem>
  </ItemGroup>
  <ItemGroup>
    <CodeGenTemplate Include="Code Generation Templates\Base Project Item.tt" />
  </ItemGroup>
  <Import Project="$(MSBuildExtensionsPath)\HedgehogDevelopment\SitecoreProject\v9.0\HedgehogDevelopment.SitecoreProject.targets" />
</Project>
`

// ContentProject overlaps TargetProject on one item key (different case),
// repeats one of its own keys, and carries three code generation settings.
const ContentProject = `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="4.0" DefaultTargets="Build" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
    <ProjectGuid>{0D1E2F3A-4B5C-6D7E-8F90-A1B2C3D4E5F6}</ProjectGuid>
    <EnableCodeGeneration>True</EnableCodeGeneration>
    <FieldsForCodeGen>Title,Text</FieldsForCodeGen>
    <CodeGenFile>Models\Generated.cs</CodeGenFile>
  </PropertyGroup>
  <ItemGroup>
    <SitecoreItem Include="SITECORE\CONTENT\home.item">
      <ItemDeployment>NeverDeploy</ItemDeployment>
    </SitecoreItem>
    <SitecoreItem Include="sitecore\content\About.item">
      <ItemDeployment>DeployOnce</ItemDeployment>
    </SitecoreItem>
    <SitecoreItem Include="sitecore\content\about.item">
      <ItemDeployment>AlwaysUpdate</ItemDeployment>
    </SitecoreItem>
    <SitecoreItem Include="sitecore\layout.item" />
  </ItemGroup>
  <ItemGroup>
    <CodeGenTemplate Include="Code Generation Templates\Glass.tt" />
  </ItemGroup>
  <ItemGroup>
    <ExcludedAssemblies Include="Old.Assembly.dll" />
    <ExcludedAssemblies Include="Another.dll" />
  </ItemGroup>
</Project>
`

// EmptyTargetProject has no item groups at all.
const EmptyTargetProject = `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="4.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
    <ProjectGuid>{E0000000-0000-0000-0000-000000000000}</ProjectGuid>
  </PropertyGroup>
  <Import Project="Sitecore.targets" />
</Project>
`

// WriteFile writes content to a file under dir, creating parent directories.
func WriteFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile reads content from a file
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// LoadProject loads a project file or fails the test.
func LoadProject(t *testing.T, path string) *msbuild.Project {
	t.Helper()
	project, err := msbuild.Load(path)
	if err != nil {
		t.Fatalf("Failed to load project %s: %v", path, err)
	}
	return project
}

// Includes returns the Include values of the itemType children of group, in order.
func Includes(group *etree.Element, itemType string) []string {
	var out []string
	for _, el := range msbuild.Children(group, itemType) {
		include, _ := msbuild.Include(el)
		out = append(out, include)
	}
	return out
}

// ChildText returns the text of the first MSBuild child named tag, or "".
func ChildText(parent *etree.Element, tag string) string {
	children := msbuild.Children(parent, tag)
	if len(children) == 0 {
		return ""
	}
	return children[0].Text()
}
