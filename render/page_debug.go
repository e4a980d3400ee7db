package render

import (
	"caret/dom"
	"caret/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// DumpElement returns a readable tree of an element subtree. It exists solely
// for manual inspection during debugging, rendered markup goes through
// Document.Render instead.
func DumpElement(el dom.Element) string {
	tw := treeWriter{debug.NewTreeWriter()}
	tw.element(0, el)
	return tw.String()
}

func (tw treeWriter) element(depth int, el dom.Element) {
	if el.IsZero() {
		tw.Line(depth, "<zero element>")
		return
	}
	tw.Line(depth, "<%s>", el.Tag())
	for _, attr := range el.Attrs() {
		tw.Line(depth+1, "@%s", attr)
	}
	if text := el.Text(); text != "" {
		tw.TextBlock(depth+1, "text", text)
	}
	for _, child := range el.Children() {
		tw.element(depth+1, child)
	}
}
