// Package msbuild loads, queries and saves MSBuild project documents.
//
// A Project wraps an etree document whose root is a Project element in the
// MSBuild namespace. Lookups match elements by local name and resolved
// namespace URI, so documents using a prefixed namespace work the same as
// the usual default-namespace form.
package msbuild

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/beevik/etree"
)

// Namespace is the MSBuild 2003 XML namespace.
const Namespace = "http://schemas.microsoft.com/developer/msbuild/2003"

// Element names and attributes used across project files.
const (
	TagProject       = "Project"
	TagPropertyGroup = "PropertyGroup"
	TagItemGroup     = "ItemGroup"
	AttrInclude      = "Include"
)

// ErrNotProject is returned when a document's root is not an MSBuild Project element.
var ErrNotProject = errors.New("not an MSBuild project")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Project is an in-memory MSBuild project document.
type Project struct {
	path string
	bom  bool
	doc  *etree.Document
}

// Load reads and parses the project file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Parse parses project XML. path is remembered as the default save location.
func Parse(path string, data []byte) (*Project, error) {
	bom := bytes.HasPrefix(data, utf8BOM)
	if bom {
		data = data[len(utf8BOM):]
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	root := doc.Root()
	if root == nil || !Is(root, TagProject) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotProject)
	}

	return &Project{path: path, bom: bom, doc: doc}, nil
}

// Path returns the file the project was loaded from.
func (p *Project) Path() string {
	return p.path
}

// Root returns the Project element.
func (p *Project) Root() *etree.Element {
	return p.doc.Root()
}

// Clone returns a deep copy that shares nothing with p.
func (p *Project) Clone() *Project {
	return &Project{path: p.path, bom: p.bom, doc: p.doc.Copy()}
}

// Is reports whether el is an MSBuild element with the given local name.
func Is(el *etree.Element, tag string) bool {
	return el != nil && el.Tag == tag && el.NamespaceURI() == Namespace
}

// Include returns the Include attribute of a build item.
func Include(el *etree.Element) (string, bool) {
	attr := el.SelectAttr(AttrInclude)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// Children returns the direct MSBuild children of parent named tag, in document order.
func Children(parent *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range parent.ChildElements() {
		if Is(child, tag) {
			out = append(out, child)
		}
	}
	return out
}

// ItemGroups returns the ItemGroup elements directly under the root.
func (p *Project) ItemGroups() []*etree.Element {
	return Children(p.Root(), TagItemGroup)
}

// FirstPropertyGroup returns the first PropertyGroup under the root, or nil.
func (p *Project) FirstPropertyGroup() *etree.Element {
	groups := Children(p.Root(), TagPropertyGroup)
	if len(groups) == 0 {
		return nil
	}
	return groups[0]
}

// FirstItemGroupWith returns the first ItemGroup holding at least one
// itemType element, or nil.
func (p *Project) FirstItemGroupWith(itemType string) *etree.Element {
	for _, group := range p.ItemGroups() {
		if len(Children(group, itemType)) > 0 {
			return group
		}
	}
	return nil
}

// Items returns every itemType element found in any root-level ItemGroup.
func (p *Project) Items(itemType string) []*etree.Element {
	var out []*etree.Element
	for _, group := range p.ItemGroups() {
		out = append(out, Children(group, itemType)...)
	}
	return out
}

// Descendants returns every MSBuild element anywhere in the document whose
// local name is one of tags, in document order.
func (p *Project) Descendants(tags ...string) []*etree.Element {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}

	var out []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if want[child.Tag] && child.NamespaceURI() == Namespace {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(p.Root())
	return out
}

// NewElement creates a detached MSBuild element using the root's namespace prefix.
func (p *Project) NewElement(tag string) *etree.Element {
	el := etree.NewElement(tag)
	el.Space = p.Root().Space
	return el
}

// AppendItemGroup adds an empty ItemGroup right after the last existing
// ItemGroup, or as the last child of the root when there is none.
func (p *Project) AppendItemGroup() *etree.Element {
	group := p.NewElement(TagItemGroup)
	root := p.Root()

	groups := p.ItemGroups()
	if len(groups) == 0 {
		root.AddChild(group)
		return group
	}

	last := groups[len(groups)-1]
	root.InsertChildAt(last.Index()+1, group)
	return group
}

// PrependPropertyGroup adds an empty PropertyGroup as the first child element of the root.
func (p *Project) PrependPropertyGroup() *etree.Element {
	group := p.NewElement(TagPropertyGroup)
	root := p.Root()

	if first := root.ChildElements(); len(first) > 0 {
		root.InsertChildAt(first[0].Index(), group)
	} else {
		root.AddChild(group)
	}
	return group
}

// Adopt returns a deep copy of src, taken from another document, with its
// MSBuild elements rebound to this document's namespace prefix. src is not
// modified.
func (p *Project) Adopt(src *etree.Element) *etree.Element {
	dst := src.Copy()
	rebind(src, dst, p.Root().Space)
	return dst
}

func rebind(src, dst *etree.Element, space string) {
	if src.NamespaceURI() == Namespace {
		dst.Space = space
	}
	srcChildren, dstChildren := src.ChildElements(), dst.ChildElements()
	for i := range srcChildren {
		rebind(srcChildren[i], dstChildren[i], space)
	}
}

// Bytes serializes the project with two-space indentation. The receiver is
// left untouched.
func (p *Project) Bytes() ([]byte, error) {
	doc := p.doc.Copy()
	doc.Indent(2)

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", p.path, err)
	}
	if p.bom {
		data = append(append([]byte{}, utf8BOM...), data...)
	}
	return data, nil
}

// Save writes the project back to the path it was loaded from.
func (p *Project) Save() error {
	return p.SaveAs(p.path)
}

// SaveAs atomically replaces path with the serialized project.
func (p *Project) SaveAs(path string) error {
	data, err := p.Bytes()
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}
