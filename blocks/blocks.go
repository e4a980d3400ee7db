// Package blocks provides the built-in block renderers: paragraph, heading,
// quote and list. Each renderer maps block data onto one content element,
// decoration is left to tunes.
package blocks

import (
	"strconv"

	"caret/dom"
	"caret/editor"
)

func paragraph(d *dom.Document, data editor.BlockData) dom.Element {
	el := d.CreateElement("p")
	el.SetText(data.Text)
	return el
}

// heading clamps the level to h1..h6 with h2 as the default.
func heading(d *dom.Document, data editor.BlockData) dom.Element {
	level := data.Level
	if level < 1 || level > 6 {
		level = 2
	}
	el := d.CreateElement("h" + strconv.Itoa(level))
	el.SetText(data.Text)
	return el
}

func quote(d *dom.Document, data editor.BlockData) dom.Element {
	el := d.CreateElement("blockquote")
	el.SetText(data.Text)
	return el
}

// list renders items as ul or, when the style says ordered, as ol.
func list(d *dom.Document, data editor.BlockData) dom.Element {
	tag := "ul"
	if data.Style == "ordered" {
		tag = "ol"
	}
	el := d.CreateElement(tag)
	for _, item := range data.Items {
		li := el.CreateChild("li")
		li.SetText(item)
	}
	return el
}

// RegisterAll adds every built-in block type to the kernel registry.
func RegisterAll() {
	editor.RegisterBlock(editor.BlockSpec{Name: "paragraph", Render: paragraph})
	editor.RegisterBlock(editor.BlockSpec{Name: "heading", Render: heading})
	editor.RegisterBlock(editor.BlockSpec{Name: "quote", Render: quote})
	editor.RegisterBlock(editor.BlockSpec{Name: "list", Render: list})
}
