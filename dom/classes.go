package dom

import (
	"slices"
	"strings"
)

// Classes returns the element's class list in document order.
func (el Element) Classes() []string {
	if el.e == nil {
		return nil
	}
	return strings.Fields(el.e.SelectAttrValue("class", ""))
}

func (el Element) HasClass(name string) bool {
	return slices.Contains(el.Classes(), name)
}

func (el Element) AddClass(names ...string) {
	if el.e == nil {
		return
	}
	classes := el.Classes()
	for _, name := range names {
		if name == "" || slices.Contains(classes, name) {
			continue
		}
		classes = append(classes, name)
	}
	el.setClasses(classes)
}

func (el Element) RemoveClass(names ...string) {
	if el.e == nil {
		return
	}
	classes := slices.DeleteFunc(el.Classes(), func(c string) bool {
		return slices.Contains(names, c)
	})
	el.setClasses(classes)
}

// ToggleClass adds the class when on is true, removes it otherwise.
func (el Element) ToggleClass(name string, on bool) {
	if on {
		el.AddClass(name)
		return
	}
	el.RemoveClass(name)
}

// setClasses writes the class attribute back, dropping it entirely when the
// list is empty so serialized markup stays clean.
func (el Element) setClasses(classes []string) {
	if len(classes) == 0 {
		el.e.RemoveAttr("class")
		return
	}
	el.e.CreateAttr("class", strings.Join(classes, " "))
}

// SetData sets a data-* attribute, the conventional place for per-element
// state that survives serialization.
func (el Element) SetData(key, value string) {
	el.SetAttr("data-"+key, value)
}

// Data returns the data-* attribute value or "" when absent.
func (el Element) Data(key string) string {
	return el.Attr("data-" + key)
}
