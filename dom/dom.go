// Package dom is a small server-side element substrate: element trees with
// classes, data attributes and synchronous event dispatch, built on etree.
// It is what block renderers and tunes construct their output with, and what
// the kernel serializes to markup.
package dom

import (
	"errors"

	"github.com/beevik/etree"
)

// Document owns one element tree and the listener table for every element
// created through it. It is not safe for concurrent use; the kernel drives
// each document from a single goroutine.
type Document struct {
	doc       *etree.Document
	listeners map[*etree.Element][]listener
}

// Element is a cheap handle into a Document. The zero value is valid and
// inert: every operation on it is a no-op and every query reports absence.
type Element struct {
	d *Document
	e *etree.Element
}

func newWriteSettings() etree.WriteSettings {
	return etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
}

func NewDocument() *Document {
	doc := etree.NewDocument()
	doc.WriteSettings = newWriteSettings()
	return &Document{
		doc:       doc,
		listeners: make(map[*etree.Element][]listener),
	}
}

// CreateElement returns a new detached element bound to this document.
func (d *Document) CreateElement(tag string) Element {
	return Element{d: d, e: etree.NewElement(tag)}
}

// SetRoot mounts el as the document root, replacing any previous root.
func (d *Document) SetRoot(el Element) {
	if el.e == nil {
		return
	}
	d.doc.SetRoot(el.e)
}

func (d *Document) Root() Element {
	root := d.doc.Root()
	if root == nil {
		return Element{}
	}
	return Element{d: d, e: root}
}

// Indent reformats the tree for human-readable output.
func (d *Document) Indent(spaces int) {
	d.doc.Indent(spaces)
}

// Render serializes the whole document.
func (d *Document) Render() (string, error) {
	return d.doc.WriteToString()
}

// ParseFragment reads a markup fragment (an icon SVG, imported content) and
// returns its root element bound to this document. The element is detached;
// appending it to the tree re-parents it.
func (d *Document) ParseFragment(data []byte) (Element, error) {
	scratch := etree.NewDocument()
	if err := scratch.ReadFromBytes(data); err != nil {
		return Element{}, err
	}
	root := scratch.Root()
	if root == nil {
		return Element{}, errors.New("fragment has no root element")
	}
	return Element{d: d, e: root}, nil
}

func (el Element) IsZero() bool {
	return el.e == nil
}

// Document returns the owning document, nil for the zero Element.
func (el Element) Document() *Document {
	return el.d
}

func (el Element) Tag() string {
	if el.e == nil {
		return ""
	}
	return el.e.Tag
}

func (el Element) SetAttr(key, value string) {
	if el.e == nil {
		return
	}
	el.e.CreateAttr(key, value)
}

// Attr returns the attribute value or "" when absent.
func (el Element) Attr(key string) string {
	if el.e == nil {
		return ""
	}
	return el.e.SelectAttrValue(key, "")
}

// Attrs returns the element attributes as "key=value" strings in document
// order.
func (el Element) Attrs() []string {
	if el.e == nil {
		return nil
	}
	attrs := make([]string, 0, len(el.e.Attr))
	for _, a := range el.e.Attr {
		attrs = append(attrs, a.FullKey()+"="+a.Value)
	}
	return attrs
}

func (el Element) RemoveAttr(key string) {
	if el.e == nil {
		return
	}
	el.e.RemoveAttr(key)
}

func (el Element) SetText(text string) {
	if el.e == nil {
		return
	}
	el.e.SetText(text)
}

func (el Element) Text() string {
	if el.e == nil {
		return ""
	}
	return el.e.Text()
}

// CreateChild creates a new element appended to el, mirroring the etree
// convenience of building trees top-down.
func (el Element) CreateChild(tag string) Element {
	if el.e == nil {
		return Element{}
	}
	return Element{d: el.d, e: el.e.CreateElement(tag)}
}

// AppendChild re-parents child under el. Appending an element that belongs
// to another subtree removes it from there first.
func (el Element) AppendChild(child Element) {
	if el.e == nil || child.e == nil {
		return
	}
	el.e.AddChild(child.e)
}

func (el Element) Children() []Element {
	if el.e == nil {
		return nil
	}
	kids := el.e.ChildElements()
	out := make([]Element, 0, len(kids))
	for _, k := range kids {
		out = append(out, Element{d: el.d, e: k})
	}
	return out
}

func (el Element) Parent() (Element, bool) {
	if el.e == nil {
		return Element{}, false
	}
	p := el.e.Parent()
	if p == nil || p.Tag == "" {
		return Element{}, false
	}
	return Element{d: el.d, e: p}, true
}

// Closest walks from el through its ancestors and returns the first element
// matching the predicate.
func (el Element) Closest(match func(Element) bool) (Element, bool) {
	for cur := el; cur.e != nil; {
		if match(cur) {
			return cur, true
		}
		p := cur.e.Parent()
		if p == nil || p.Tag == "" {
			break
		}
		cur = Element{d: el.d, e: p}
	}
	return Element{}, false
}

// Find returns the first element in el's subtree (el included) matching the
// predicate, depth-first. Lookups never leave the subtree.
func (el Element) Find(match func(Element) bool) (Element, bool) {
	if el.e == nil {
		return Element{}, false
	}
	if match(el) {
		return el, true
	}
	for _, child := range el.Children() {
		if found, ok := child.Find(match); ok {
			return found, true
		}
	}
	return Element{}, false
}

// FindAll collects every element in el's subtree matching the predicate.
func (el Element) FindAll(match func(Element) bool) []Element {
	if el.e == nil {
		return nil
	}
	var out []Element
	if match(el) {
		out = append(out, el)
	}
	for _, child := range el.Children() {
		out = append(out, child.FindAll(match)...)
	}
	return out
}

// HTML serializes el and its subtree. The element itself is left untouched.
func (el Element) HTML() (string, error) {
	if el.e == nil {
		return "", nil
	}
	scratch := etree.NewDocument()
	scratch.WriteSettings = newWriteSettings()
	scratch.AddChild(el.e.Copy())
	return scratch.WriteToString()
}
